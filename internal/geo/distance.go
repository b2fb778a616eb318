package geo

import (
	"errors"
	"fmt"
	"math"
)

// All distances are great-circle kilometers.
const earthRadiusKm = 6371.0

// ErrInvalidCoordinate matches any out-of-range latitude or longitude.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// CoordinateError reports a latitude or longitude outside its valid range.
type CoordinateError struct {
	Field string // "lat" or "lon"
	Value float64
}

func (e *CoordinateError) Error() string {
	lo, hi := -90.0, 90.0
	if e.Field == "lon" {
		lo, hi = -180.0, 180.0
	}
	return fmt.Sprintf("%s %v out of range [%v,%v]", e.Field, e.Value, lo, hi)
}

func (e *CoordinateError) Unwrap() error { return ErrInvalidCoordinate }

// Location is an immutable latitude/longitude pair in decimal degrees.
type Location struct {
	Lat float64
	Lon float64
}

// Validate checks the coordinate ranges: lat in [-90,90], lon in [-180,180].
func (l Location) Validate() error {
	if math.IsNaN(l.Lat) || l.Lat < -90 || l.Lat > 90 {
		return &CoordinateError{Field: "lat", Value: l.Lat}
	}
	if math.IsNaN(l.Lon) || l.Lon < -180 || l.Lon > 180 {
		return &CoordinateError{Field: "lon", Value: l.Lon}
	}
	return nil
}

// Distance returns the great-circle distance between two locations in
// kilometers. Both locations are range-checked; identical points are
// exactly zero.
func Distance(a, b Location) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return haversine(a, b), nil
}

func haversine(a, b Location) float64 {
	if a == b {
		return 0
	}
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
