// Package geo holds coordinate and address value objects.
package geo

import "strconv"

// Point is a geographic coordinate.
// The zero value is the unresolved default: callers must treat (0,0) as
// "no location could be resolved", not as a real position.
type Point struct {
	lat float64
	lon float64
}

// NewPoint creates a coordinate.
func NewPoint(lat, lon float64) Point {
	return Point{lat: lat, lon: lon}
}

// Unresolved returns the fallback point used when resolution fails.
func Unresolved() Point {
	return Point{}
}

// Lat returns the latitude.
func (p Point) Lat() float64 { return p.lat }

// Lon returns the longitude.
func (p Point) Lon() float64 { return p.lon }

// IsUnresolved reports whether the point is the unresolved default.
func (p Point) IsUnresolved() bool {
	return p.lat == 0 && p.lon == 0
}

// LatString returns the latitude formatted the way it is stored in the index.
func (p Point) LatString() string {
	return strconv.FormatFloat(p.lat, 'f', -1, 64)
}

// LonString returns the longitude formatted the way it is stored in the index.
func (p Point) LonString() string {
	return strconv.FormatFloat(p.lon, 'f', -1, 64)
}

// Provenance records how a point was obtained. The query compiler places
// explicitly requested locations in the mandatory clause bucket and inferred
// ones in the optional bucket.
type Provenance int

const (
	// Inferred means the point came from device-location inference.
	Inferred Provenance = iota
	// Explicit means the caller named the place.
	Explicit
)

// String returns a human-readable provenance label.
func (p Provenance) String() string {
	if p == Explicit {
		return "explicit"
	}
	return "inferred"
}
