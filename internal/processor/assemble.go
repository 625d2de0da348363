package processor

import (
	"fmt"
	"time"

	"github.com/woozymasta/geoplot/internal/geo"
	"github.com/woozymasta/geoplot/internal/state"
	"github.com/woozymasta/geoplot/internal/timeline"

	"github.com/rs/zerolog/log"
)

// IndexError reports an entity missing from one step's feature array.
type IndexError struct {
	Entity int
	Step   int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("entity %d out of range for step %d feature array of length %d", e.Entity, e.Step, e.Length)
}

// Unwrap lets callers match state.ErrShape.
func (e *IndexError) Unwrap() error { return state.ErrShape }

// EntityID is the identifier written to every feature of entity idx.
func EntityID(idx int) string {
	return fmt.Sprintf("entity_%d", idx)
}

// Steps is the number of (timestamp, feature array) pairs that can be emitted.
func Steps(times []time.Time, series [][]float64) int {
	return min(len(times), len(series))
}

// Assemble builds one FeatureCollection per entity. Timestamps and feature
// arrays are paired by position and truncated to the shorter of the two.
// Every entity keeps the same position for the whole animation.
func Assemble(ext Extraction, times []time.Time) ([]geo.FeatureCollection, error) {
	steps := Steps(times, ext.Series)
	if len(times) != len(ext.Series) && len(ext.Positions) > 0 {
		log.Warn().
			Int("timestamps", len(times)).
			Int("feature_steps", len(ext.Series)).
			Int("emitted_steps", steps).
			Msg("Timestamp count does not match consumed episodes, truncating")
	}

	stamps := make([]string, steps)
	for i := range stamps {
		stamps[i] = timeline.FormatISO(times[i])
	}

	collections := make([]geo.FeatureCollection, 0, len(ext.Positions))
	for idx, pos := range ext.Positions {
		id := EntityID(idx)
		fc := geo.NewFeatureCollection(steps)

		for step := 0; step < steps; step++ {
			values := ext.Series[step]
			if idx >= len(values) {
				return nil, &IndexError{Entity: idx, Step: step, Length: len(values)}
			}

			fc.Features = append(fc.Features, geo.NewPointFeature(pos, geo.Properties{
				ID:    id,
				Value: values[idx],
				Time:  stamps[step],
			}))
		}

		collections = append(collections, fc)
	}

	log.Debug().
		Int("collections", len(collections)).
		Int("features_per_entity", steps).
		Msg("GeoJSON assembled")

	return collections, nil
}
