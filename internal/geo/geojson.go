// Package geo handles geographic data structures and coordinate conversions.
package geo

const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
	TypePoint             = "Point"
)

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type" yaml:"type"`
	Features []Feature `json:"features" yaml:"features"`
}

// Feature represents a single entity sample with geometry and properties.
type Feature struct {
	Type       string     `json:"type" yaml:"type"`
	Geometry   Geometry   `json:"geometry" yaml:"geometry"`
	Properties Properties `json:"properties" yaml:"properties"`
}

// Geometry represents the geometry of a feature.
type Geometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"` // [Lon, Lat]
}

// Properties carries the per sample attributes read by the globe page.
type Properties struct {
	ID    string  `json:"id" yaml:"id"`
	Value float64 `json:"value" yaml:"value"`
	Time  string  `json:"time" yaml:"time"` // ISO 8601
}

// NewFeatureCollection returns an empty collection with room for n features.
func NewFeatureCollection(n int) FeatureCollection {
	return FeatureCollection{Type: TypeFeatureCollection, Features: make([]Feature, 0, n)}
}

// NewPointFeature builds a Point feature at p.
func NewPointFeature(p LatLon, props Properties) Feature {
	return Feature{
		Type: TypeFeature,
		Geometry: Geometry{
			Type:        TypePoint,
			Coordinates: p.LonLat(),
		},
		Properties: props,
	}
}
