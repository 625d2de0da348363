package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Episode is the ordered list of snapshots recorded during one simulation run.
type Episode []Node

// Trajectory is the ordered list of episodes produced by a simulation.
type Trajectory []Episode

// FinalState returns the last snapshot of the episode.
func (e Episode) FinalState() (Node, error) {
	if len(e) == 0 {
		return nil, ErrEmptyEpisode
	}
	return e[len(e)-1], nil
}

// Completed returns every episode except the last one, which may still be in progress.
func (t Trajectory) Completed() []Episode {
	if len(t) < 2 {
		return nil
	}
	return t[:len(t)-1]
}

// FromValue builds a trajectory from a decoded [][]snapshot document.
func FromValue(v any) (Trajectory, error) {
	episodes, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: trajectory must be a list of episodes, got %T", ErrShape, v)
	}

	traj := make(Trajectory, len(episodes))
	for i, ep := range episodes {
		snapshots, ok := ep.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: episode %d must be a list of snapshots, got %T", ErrShape, i, ep)
		}

		episode := make(Episode, len(snapshots))
		for j, snap := range snapshots {
			n, err := FromAny(snap)
			if err != nil {
				return nil, fmt.Errorf("episode %d snapshot %d: %w", i, j, err)
			}
			episode[j] = n
		}
		traj[i] = episode
	}

	return traj, nil
}

// Decode parses a trajectory document. format is "json" or "yaml".
func Decode(data []byte, format string) (Trajectory, error) {
	var raw any

	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported trajectory format %q", format)
	}

	return FromValue(raw)
}

// LoadFile reads a trajectory from disk, choosing the decoder by file extension.
func LoadFile(path string) (Trajectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		format = "json"
	}

	traj, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return traj, nil
}
