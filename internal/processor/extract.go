// Package processor turns simulation trajectories into per entity GeoJSON feeds.
package processor

import (
	"fmt"

	"github.com/woozymasta/geoplot/internal/geo"
	"github.com/woozymasta/geoplot/internal/state"

	"github.com/rs/zerolog/log"
)

// Extraction holds the values read from a trajectory.
type Extraction struct {
	// Positions are read from the last consumed episode only.
	Positions []geo.LatLon
	// Series holds one flattened feature array per consumed episode.
	Series [][]float64
	// Episodes is the number of episodes consumed.
	Episodes int
}

// Extract reads positions and feature values from the final snapshot of
// every completed episode. The last episode of traj is skipped.
func Extract(traj state.Trajectory, coordPath, featurePath string) (Extraction, error) {
	completed := traj.Completed()
	ext := Extraction{
		Positions: []geo.LatLon{},
		Series:    make([][]float64, 0, len(completed)),
	}

	if len(completed) == 0 {
		log.Warn().
			Int("episodes", len(traj)).
			Msg("Trajectory has no completed episodes, nothing to extract")
		return ext, nil
	}

	for i, episode := range completed {
		final, err := episode.FinalState()
		if err != nil {
			return Extraction{}, fmt.Errorf("episode %d: %w", i, err)
		}

		positions, err := readPositions(final, coordPath)
		if err != nil {
			return Extraction{}, fmt.Errorf("episode %d: %w", i, err)
		}
		ext.Positions = positions

		values, err := readFeature(final, featurePath)
		if err != nil {
			return Extraction{}, fmt.Errorf("episode %d: %w", i, err)
		}
		ext.Series = append(ext.Series, values)

		log.Trace().
			Int("episode", i).
			Int("entities", len(positions)).
			Int("values", len(values)).
			Msg("Episode extracted")
	}

	ext.Episodes = len(completed)

	log.Debug().
		Int("episodes", ext.Episodes).
		Int("entities", len(ext.Positions)).
		Msg("Trajectory extracted")

	return ext, nil
}

func readPositions(snapshot state.Node, path string) ([]geo.LatLon, error) {
	node, err := state.Resolve(snapshot, path)
	if err != nil {
		return nil, err
	}

	rows, err := state.Matrix(node, 2)
	if err != nil {
		return nil, fmt.Errorf("coordinates %q: %w", path, err)
	}

	positions := make([]geo.LatLon, len(rows))
	for i, row := range rows {
		p, err := geo.LatLonFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("coordinates %q row %d: %w: %w", path, i, state.ErrShape, err)
		}
		positions[i] = p
	}

	return positions, nil
}

func readFeature(snapshot state.Node, path string) ([]float64, error) {
	node, err := state.Resolve(snapshot, path)
	if err != nil {
		return nil, err
	}

	values, err := state.Flatten(node)
	if err != nil {
		return nil, fmt.Errorf("feature %q: %w", path, err)
	}
	return values, nil
}
