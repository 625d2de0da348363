// Package preview draws a static snapshot of the final animation step.
package preview

import (
	"errors"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/woozymasta/geoplot/internal/geo"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
)

const (
	DefaultWidth   = 1024
	DefaultQuality = 85

	supersample = 2
)

// ErrNoSamples is returned when there is nothing to draw.
var ErrNoSamples = errors.New("no samples to draw")

var background = color.RGBA{R: 12, G: 18, B: 32, A: 255}

// Options controls the snapshot canvas.
type Options struct {
	Width  int // height is always Width/2
	Radius int // dot radius in output pixels
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Radius <= 0 {
		o.Radius = max(2, o.Width/256)
	}
	return o
}

type sample struct {
	pos   geo.LatLon
	value float64
}

// Render draws every entity at its position on an equirectangular canvas,
// coloured blue to red by its value at the last emitted time step.
func Render(collections []geo.FeatureCollection, opts Options) (image.Image, error) {
	opts = opts.withDefaults()

	samples := make([]sample, 0, len(collections))
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, fc := range collections {
		if len(fc.Features) == 0 {
			continue
		}
		f := fc.Features[len(fc.Features)-1]
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		s := sample{
			pos:   geo.LatLon{Lon: f.Geometry.Coordinates[0], Lat: f.Geometry.Coordinates[1]},
			value: f.Properties.Value,
		}
		minV = math.Min(minV, s.value)
		maxV = math.Max(maxV, s.value)
		samples = append(samples, s)
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	// Draw at a higher resolution and scale down for smooth dot edges.
	w, h := opts.Width*supersample, opts.Width/2*supersample
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(background), image.Point{}, xdraw.Src)

	r := opts.Radius * supersample
	for _, s := range samples {
		x, y := project(s.pos, w, h)
		dot := image.NewUniform(Ramp(normalize(s.value, minV, maxV)))
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy > r*r {
					continue
				}
				xdraw.Draw(canvas, image.Rect(x+dx, y+dy, x+dx+1, y+dy+1), dot, image.Point{}, xdraw.Over)
			}
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Width/2))
	xdraw.CatmullRom.Scale(out, out.Bounds(), canvas, canvas.Bounds(), xdraw.Src, nil)

	log.Debug().
		Int("entities", len(samples)).
		Float64("min", minV).
		Float64("max", maxV).
		Msg("Preview rendered")

	return out, nil
}

// Ramp interpolates from blue (0) to red (1), matching the globe page.
func Ramp(factor float64) color.RGBA {
	factor = math.Max(0, math.Min(1, factor))
	return color.RGBA{
		R: uint8(math.Round(255 * factor)),
		B: uint8(math.Round(255 * (1 - factor))),
		A: 255,
	}
}

func normalize(v, minV, maxV float64) float64 {
	if maxV <= minV {
		return 0
	}
	return (v - minV) / (maxV - minV)
}

// project maps lon/lat to equirectangular pixel coordinates.
func project(p geo.LatLon, w, h int) (int, int) {
	x := (p.Lon + 180) / 360 * float64(w)
	y := (90 - p.Lat) / 180 * float64(h)
	return clamp(int(x), w), clamp(int(y), h)
}

func clamp(v, size int) int {
	return max(0, min(v, size-1))
}

// Save encodes img as lossy WebP, overwriting path.
func Save(path string, img image.Image, quality float32) error {
	if quality <= 0 {
		quality = DefaultQuality
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := webp.Encode(f, img, &webp.Options{Lossless: false, Quality: quality}); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
