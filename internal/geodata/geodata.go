// Package geodata bundles the district plot polygons served to map
// clients. The GeoJSON is embedded at build time so the binary needs no
// external data files.
package geodata

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed district_polygons.geojson
var districtPolygons []byte

// FeatureCollection is a decoded GeoJSON feature collection. Geometry
// and properties stay as raw maps; the service never interprets them.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   map[string]any `json:"geometry"`
}

// DistrictPlots returns the bundled plot polygons. Each call decodes a
// fresh copy so callers can mutate the result safely.
func DistrictPlots() (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(districtPolygons, &fc); err != nil {
		return nil, fmt.Errorf("decode embedded district polygons: %w", err)
	}
	return &fc, nil
}
