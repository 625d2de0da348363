package geo

import (
	"fmt"

	"github.com/peterstace/simplefeatures/geom"
)

// LatLon is a position in degrees, stored in the (lat, lon) order simulations use.
type LatLon struct {
	Lat float64
	Lon float64
}

// LonLat returns the GeoJSON coordinate order.
func (p LatLon) LonLat() []float64 {
	return []float64{p.Lon, p.Lat}
}

// Point converts p to a simplefeatures point (X = lon, Y = lat). NaN and
// infinite coordinates are rejected by the constructor.
func (p LatLon) Point() (geom.Point, error) {
	return geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: p.Lon, Y: p.Lat},
		Type: geom.DimXY,
	})
}

// Validate rejects NaN and infinite coordinates.
func (p LatLon) Validate() error {
	if _, err := p.Point(); err != nil {
		return fmt.Errorf("invalid position (lat %v, lon %v): %w", p.Lat, p.Lon, err)
	}
	return nil
}

// LatLonFromRow reads a (lat, lon, ...) row. Extra columns such as altitude are ignored.
func LatLonFromRow(row []float64) (LatLon, error) {
	if len(row) < 2 {
		return LatLon{}, fmt.Errorf("position row needs 2 values, got %d", len(row))
	}
	p := LatLon{Lat: row[0], Lon: row[1]}
	return p, p.Validate()
}
