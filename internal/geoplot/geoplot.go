// Package geoplot converts simulation trajectories into a GeoJSON feed and a
// globe page that animates it.
package geoplot

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/woozymasta/geoplot/internal/config"
	"github.com/woozymasta/geoplot/internal/geo"
	"github.com/woozymasta/geoplot/internal/page"
	"github.com/woozymasta/geoplot/internal/preview"
	"github.com/woozymasta/geoplot/internal/processor"
	"github.com/woozymasta/geoplot/internal/state"
	"github.com/woozymasta/geoplot/internal/timeline"

	"github.com/rs/zerolog/log"
)

// GeoPlot renders trajectories of one simulation.
type GeoPlot struct {
	meta config.Metadata
	opts Options
}

// Result describes the files written by Render.
type Result struct {
	Collections []geo.FeatureCollection
	GeoJSONPath string
	HTMLPath    string
	PreviewPath string // empty unless previews are enabled and there was data
	Start       string
	Stop        string
}

// New validates cfg and opts.
func New(cfg *config.Config, opts Options) (*GeoPlot, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidConfig)
	}
	if err := cfg.SimulationMetadata.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if span := float64(cfg.SimulationMetadata.TotalSteps()-1) * opts.StepTime; span > timeline.MaxSpan.Seconds() {
		return nil, fmt.Errorf("%w: animation spans %.0fs, longer than %v", ErrInvalidOption, span, timeline.MaxSpan)
	}

	return &GeoPlot{meta: cfg.SimulationMetadata, opts: opts}, nil
}

// Paths returns the GeoJSON, HTML and preview file paths for this simulation.
func (g *GeoPlot) Paths() (geojsonPath, htmlPath, previewPath string) {
	base := filepath.Join(g.opts.OutputDir, g.meta.Name)
	return base + ".geojson", base + ".html", base + ".webp"
}

// Render extracts the trajectory, writes <name>.geojson and then <name>.html.
// When the page cannot be written a fresh GeoJSON file may already exist.
func (g *GeoPlot) Render(traj state.Trajectory) (*Result, error) {
	geojsonPath, htmlPath, previewPath := g.Paths()

	log.Info().
		Str("simulation", g.meta.Name).
		Int("episodes", len(traj)).
		Str("coordinates", g.opts.Coordinates).
		Str("feature", g.opts.Feature).
		Msg("Rendering trajectory")

	ext, err := processor.Extract(traj, g.opts.Coordinates, g.opts.Feature)
	if err != nil {
		return nil, err
	}

	times := timeline.Generate(g.opts.Clock, g.meta.TotalSteps(), timeline.Seconds(g.opts.StepTime))
	if len(times) == 0 {
		return nil, fmt.Errorf("%w: simulation %q has no timestamps", config.ErrInvalidConfig, g.meta.Name)
	}

	collections, err := processor.Assemble(ext, times)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Collections: collections,
		GeoJSONPath: geojsonPath,
		HTMLPath:    htmlPath,
		Start:       timeline.FormatISO(times[0]),
		Stop:        timeline.FormatISO(times[len(times)-1]),
	}

	if err := geo.Save(geojsonPath, collections); err != nil {
		return nil, fmt.Errorf("write geojson: %w", err)
	}
	log.Info().Str("path", geojsonPath).Int("entities", len(collections)).Msg("GeoJSON written")

	var buf bytes.Buffer
	err = page.Render(&buf, page.Data{
		Title:       g.meta.Name,
		Token:       g.opts.CesiumToken,
		Start:       res.Start,
		Stop:        res.Stop,
		Mode:        g.opts.VisualizationType,
		Collections: collections,
	}, g.opts.Minify)
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}

	if err := os.WriteFile(htmlPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("write page: %w", err)
	}
	log.Info().Str("path", htmlPath).Str("mode", string(g.opts.VisualizationType)).Msg("Page written")

	if g.opts.Preview {
		img, err := preview.Render(collections, preview.Options{})
		switch {
		case err == nil:
			if err := preview.Save(previewPath, img, 0); err != nil {
				return nil, fmt.Errorf("write preview: %w", err)
			}
			res.PreviewPath = previewPath
			log.Info().Str("path", previewPath).Msg("Preview written")
		case errors.Is(err, preview.ErrNoSamples):
			log.Warn().Msg("Nothing to preview, skipping")
		default:
			return nil, fmt.Errorf("render preview: %w", err)
		}
	}

	return res, nil
}
