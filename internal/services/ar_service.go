package services

import (
	"encoding/binary"
	"encoding/json"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"

	"atuna_estate/internal/models"
)

// ParseGeoJSONToWKB parses a GeoJSON string and returns WKB bytes for
// storage. Empty input stores no geometry.
func ParseGeoJSONToWKB(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// ConvertWKBToGeoJSON converts stored WKB bytes back into a GeoJSON string
// for API responses.
func ConvertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GenerateARSceneConfig builds the scene description an AR client renders
// for a property: model reference, placement defaults, lighting, and the
// listing coordinates as GeoJSON when present.
func GenerateARSceneConfig(property *models.Property) (string, error) {
	geometry, err := ConvertWKBToGeoJSON(property.Geometry)
	if err != nil {
		return "", err
	}

	scene := map[string]interface{}{
		"model_url": property.ARModelURL,
		"scale":     map[string]float64{"x": 1.0, "y": 1.0, "z": 1.0},
		"position":  map[string]float64{"x": 0, "y": 0, "z": 0},
		"rotation":  map[string]float64{"x": 0, "y": 0, "z": 0},
		"lighting": map[string]interface{}{
			"ambient": map[string]float64{"intensity": 0.5},
			"directional": map[string]interface{}{
				"intensity": 0.8,
				"position":  map[string]float64{"x": 10, "y": 10, "z": 10},
			},
		},
		"environment": map[string]interface{}{
			"floor":  map[string]interface{}{"texture": "default", "reflectivity": 0.2},
			"skybox": "default",
		},
		"property_metadata": map[string]interface{}{
			"title":    property.Title,
			"type":     property.Type,
			"location": property.Location,
		},
	}
	if geometry != "" {
		scene["geometry"] = json.RawMessage(geometry)
	}

	b, err := json.Marshal(scene)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
