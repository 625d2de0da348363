// Package assets embeds the static page template.
package assets

import _ "embed"

// GeoplotTemplate is the html/template source of the globe page.
//
//go:embed geoplot.html.tpl
var GeoplotTemplate string
