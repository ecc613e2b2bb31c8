package types

// LineString is a GeoJSON LineString. Coordinates are [lon, lat] pairs.
type LineString struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

const geoJSONLineString = "LineString"

// NewLineString builds a LineString from raw [lon, lat] pairs, skipping any
// pair that does not carry exactly two values.
func NewLineString(points [][]float64) *LineString {
	coords := make([][2]float64, 0, len(points))
	for _, p := range points {
		if len(p) != 2 {
			continue
		}
		coords = append(coords, [2]float64{p[0], p[1]})
	}
	return &LineString{Type: geoJSONLineString, Coordinates: coords}
}

// Valid reports whether the geometry is a drawable LineString.
func (l *LineString) Valid() bool {
	return l != nil && l.Type == geoJSONLineString && len(l.Coordinates) >= 2
}
