package model

import "math"

// Position is a geographic coordinate in GeoJSON axis order:
// index 0 is longitude, index 1 is latitude. It marshals to the
// wire as a two-element JSON array, matching what clients send.
type Position [2]float64

// NewPosition builds a position from longitude and latitude
func NewPosition(lng, lat float64) Position {
	return Position{lng, lat}
}

// Lng returns the longitude component
func (p Position) Lng() float64 { return p[0] }

// Lat returns the latitude component
func (p Position) Lat() float64 { return p[1] }

// Valid reports whether both coordinates are finite numbers
func (p Position) Valid() bool {
	for _, c := range p {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
