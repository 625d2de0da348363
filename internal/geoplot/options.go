package geoplot

import (
	"errors"
	"fmt"
	"math"

	"github.com/woozymasta/geoplot/internal/config"
	"github.com/woozymasta/geoplot/internal/page"
	"github.com/woozymasta/geoplot/internal/timeline"
)

// ErrInvalidOption is returned by Options.Validate.
var ErrInvalidOption = errors.New("invalid option")

// Options configures a GeoPlot.
type Options struct {
	// Clock provides the animation start. Defaults to the wall clock.
	Clock timeline.Clock

	CesiumToken string
	Coordinates string // path to the (lat, lon) array in a snapshot
	Feature     string // path to the per entity values in a snapshot
	OutputDir   string // defaults to the working directory

	VisualizationType page.Mode
	StepTime          float64 // seconds between timestamps

	Minify  bool
	Preview bool
}

// OptionsFromConfig seeds options from the visualization block of a config file.
func OptionsFromConfig(v *config.Visualization) Options {
	if v == nil {
		return Options{}
	}
	return Options{
		CesiumToken:       v.CesiumToken,
		Coordinates:       v.Coordinates,
		Feature:           v.Feature,
		OutputDir:         v.OutputDir,
		VisualizationType: page.Mode(v.VisualizationType),
		StepTime:          v.StepTime,
	}
}

// Validate checks required fields and normalises the visualization type.
func (o *Options) Validate() error {
	switch {
	case o.CesiumToken == "":
		return fmt.Errorf("%w: cesium token is required", ErrInvalidOption)
	case o.Coordinates == "":
		return fmt.Errorf("%w: coordinates path is required", ErrInvalidOption)
	case o.Feature == "":
		return fmt.Errorf("%w: feature path is required", ErrInvalidOption)
	case !(o.StepTime > 0) || math.IsInf(o.StepTime, 0):
		return fmt.Errorf("%w: step time must be a positive number of seconds, got %v", ErrInvalidOption, o.StepTime)
	case o.StepTime < timeline.MinStep.Seconds() || o.StepTime > timeline.MaxSpan.Seconds():
		return fmt.Errorf("%w: step time must be between %v and %v, got %vs",
			ErrInvalidOption, timeline.MinStep, timeline.MaxSpan, o.StepTime)
	}

	mode, err := page.ParseMode(string(o.VisualizationType))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}
	o.VisualizationType = mode

	if o.Clock == nil {
		o.Clock = timeline.SystemClock{}
	}
	if o.OutputDir == "" {
		o.OutputDir = "."
	}

	return nil
}
