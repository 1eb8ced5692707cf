package kernel

import (
	"errors"
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrGeoPointIsNotConstructed is returned when a zero-value GeoPoint is used.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is a latitude/longitude pair in signed degrees. It is used for order
// destinations and for the driver position recorded when a delivery is accepted.
// Only finite values are required; no range check is applied, so rows written
// by other systems always load.
//
// Example:
//
//	destination, err := kernel.NewGeoPoint(52.5200, 13.4050)
//	if err != nil {
//	    return err // errs.ValueIsInvalidError for NaN or Inf
//	}
//	fmt.Println(destination) // GeoPoint(52.520000,13.405000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint validates both coordinates and builds a GeoPoint.
//
// Parameters:
//   - latitude: finite degrees
//   - longitude: finite degrees
//
// Returns:
//   - GeoPoint: a valid point
//   - error: joined validation errors for every bad coordinate
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate returns ErrGeoPointIsNotConstructed for the zero value.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// IsEqual compares two points coordinate by coordinate.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

func (p *GeoPoint) setLatitude(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errs.NewValueIsInvalidError("latitude")
	}

	p.latitude = v
	return nil
}

func (p *GeoPoint) setLongitude(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errs.NewValueIsInvalidError("longitude")
	}

	p.longitude = v
	return nil
}
