// Package page renders the self-contained globe page that animates a GeoJSON feed.
package page

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"

	"github.com/woozymasta/geoplot/assets"
	"github.com/woozymasta/geoplot/internal/geo"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// Mode selects how feature values are encoded on the globe.
type Mode string

const (
	ModeColor Mode = "color"
	ModeSize  Mode = "size"
)

// DefaultClockMultiplier plays one simulated hour per real second.
const DefaultClockMultiplier = 3600

// ParseMode validates a visualization type. Empty input yields ModeColor.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeColor:
		return ModeColor, nil
	case ModeSize:
		return ModeSize, nil
	default:
		return "", fmt.Errorf("unknown visualization type %q (want %q or %q)", s, ModeColor, ModeSize)
	}
}

// Data holds the values substituted into the page.
type Data struct {
	Title           string
	Token           string
	Start           string
	Stop            string
	Mode            Mode
	Collections     []geo.FeatureCollection
	ClockMultiplier float64
}

var pageTemplate = template.Must(template.New("geoplot").Parse(assets.GeoplotTemplate))

// Render writes the page for d to w. Every value lands in the page as a
// properly escaped literal of its context. When minified is set the page is
// passed through the HTML, CSS and JS minifiers.
func Render(w io.Writer, d Data, minified bool) error {
	if d.Mode == "" {
		d.Mode = ModeColor
	}
	if d.Collections == nil {
		d.Collections = []geo.FeatureCollection{}
	}
	if d.ClockMultiplier <= 0 {
		d.ClockMultiplier = DefaultClockMultiplier
	}

	if !minified {
		return pageTemplate.Execute(w, d)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, d); err != nil {
		return err
	}

	return newMinifier().Minify("text/html", w, &buf)
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	return m
}
