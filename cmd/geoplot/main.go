package main

import (
	"os"

	"github.com/woozymasta/geoplot/internal/config"
	"github.com/woozymasta/geoplot/internal/geoplot"
	"github.com/woozymasta/geoplot/internal/logger"
	"github.com/woozymasta/geoplot/internal/page"
	"github.com/woozymasta/geoplot/internal/state"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Args struct {
		Trajectory string `positional-arg-name:"TRAJECTORY" description:"Trajectory file (.json, .yaml)" required:"true"`
	} `positional-args:"yes"`

	ConfigFile  string  `short:"c" long:"config"      env:"CONFIG_FILE"  description:"Path to simulation configuration file" default:"config.yaml"`
	Token       string  `short:"t" long:"token"       env:"CESIUM_TOKEN" description:"Cesium ion access token"`
	Coordinates string  `short:"C" long:"coordinates" description:"Path to the (lat, lon) array in a snapshot"`
	Feature     string  `short:"F" long:"feature"     description:"Path to the per entity values in a snapshot"`
	Type        string  `short:"v" long:"type"        description:"Visualization type" choice:"color" choice:"size"`
	OutputDir   string  `short:"o" long:"out"         env:"OUTPUT_DIR"   description:"Output directory"`
	StepTime    float64 `short:"s" long:"step-time"   description:"Seconds between animation steps"`
	Minify      bool    `short:"m" long:"minify"      description:"Minify the generated page"`
	Preview     bool    `short:"p" long:"preview"     description:"Also write a WebP snapshot of the final step"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	plotOpts := mergeOptions(geoplot.OptionsFromConfig(cfg.Visualization), opts)

	plot, err := geoplot.New(cfg, plotOpts)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid visualization options")
	}

	traj, err := state.LoadFile(opts.Args.Trajectory)
	if err != nil {
		log.Fatal().Err(err).Str("path", opts.Args.Trajectory).Msg("Failed to load trajectory")
	}

	res, err := plot.Render(traj)
	if err != nil {
		log.Fatal().Err(err).Msg("Render failed")
	}

	log.Info().
		Str("geojson", res.GeoJSONPath).
		Str("html", res.HTMLPath).
		Int("entities", len(res.Collections)).
		Str("start", res.Start).
		Str("stop", res.Stop).
		Msg("Render finished successfully")
}

// mergeOptions lets command line values override the config file.
func mergeOptions(base geoplot.Options, opts Options) geoplot.Options {
	if opts.Token != "" {
		base.CesiumToken = opts.Token
	}
	if opts.Coordinates != "" {
		base.Coordinates = opts.Coordinates
	}
	if opts.Feature != "" {
		base.Feature = opts.Feature
	}
	if opts.Type != "" {
		base.VisualizationType = page.Mode(opts.Type)
	}
	if opts.OutputDir != "" {
		base.OutputDir = opts.OutputDir
	}
	if opts.StepTime != 0 {
		base.StepTime = opts.StepTime
	}
	base.Minify = opts.Minify
	base.Preview = opts.Preview

	return base
}
