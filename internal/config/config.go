// Package config handles simulation configuration loading.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when the simulation metadata is incomplete.
var ErrInvalidConfig = errors.New("invalid configuration")

// MaxTotalSteps caps num_episodes * num_steps_per_episode.
const MaxTotalSteps = 10_000_000

// Config represents the root configuration file structure.
// Unknown top-level sections (agents, substeps, ...) are ignored.
type Config struct {
	Visualization      *Visualization `yaml:"visualization,omitempty"`
	SimulationMetadata Metadata       `yaml:"simulation_metadata"`
}

// Metadata describes the run that produced a trajectory.
type Metadata struct {
	Name               string `yaml:"name"`
	NumEpisodes        int    `yaml:"num_episodes"`
	NumStepsPerEpisode int    `yaml:"num_steps_per_episode"`
}

// Visualization holds optional defaults for the globe output.
type Visualization struct {
	CesiumToken       string  `yaml:"cesium_token,omitempty"`
	Coordinates       string  `yaml:"coordinates,omitempty"`
	Feature           string  `yaml:"feature,omitempty"`
	VisualizationType string  `yaml:"visualization_type,omitempty"`
	OutputDir         string  `yaml:"output_dir,omitempty"`
	StepTime          float64 `yaml:"step_time,omitempty"`
}

// TotalSteps is the number of timestamps in the animation.
func (m Metadata) TotalSteps() int {
	return m.NumEpisodes * m.NumStepsPerEpisode
}

// Validate checks the fields required to name and time the output.
func (m Metadata) Validate() error {
	switch {
	case m.Name == "":
		return fmt.Errorf("%w: simulation_metadata.name is empty", ErrInvalidConfig)
	case m.NumEpisodes <= 0:
		return fmt.Errorf("%w: simulation_metadata.num_episodes must be > 0", ErrInvalidConfig)
	case m.NumStepsPerEpisode <= 0:
		return fmt.Errorf("%w: simulation_metadata.num_steps_per_episode must be > 0", ErrInvalidConfig)
	case m.NumEpisodes > MaxTotalSteps/m.NumStepsPerEpisode:
		return fmt.Errorf("%w: %d episodes of %d steps exceed %d timestamps",
			ErrInvalidConfig, m.NumEpisodes, m.NumStepsPerEpisode, MaxTotalSteps)
	}
	return nil
}

// Parse decodes and validates a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.SimulationMetadata.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
