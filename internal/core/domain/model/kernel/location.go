package kernel

import (
	"errors"
	"fmt"
	"math"

	"roundplanner/internal/pkg/errs"
	"roundplanner/internal/pkg/guard"
)

const (
	// LatitudeMin is the southern bound of a valid latitude, in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the northern bound of a valid latitude, in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the western bound of a valid longitude, in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the eastern bound of a valid longitude, in degrees.
	LongitudeMax = 180.0

	earthRadiusKm = 6371.0088
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation constructor")

// Location is a WGS84 point: a shipment destination or a company address.
// Stops do not store a Location; it is derived from the shipment or the company
// whenever a sequencing operation needs it.
//
// Location is an immutable value object; the zero value fails validation.
//
// Example:
//
//	loc, err := kernel.NewLocation(40.4168, -3.7038)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(loc) // Location(40.416800,-3.703800)
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation creates a Location, validating that lat is within
// [LatitudeMin..LatitudeMax] and lng within [LongitudeMin..LongitudeMax].
// NaN values are rejected by the same range checks.
func NewLocation(lat float64, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks that the Location was built by NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lng returns the longitude in degrees.
func (l Location) Lng() float64 {
	return l.lng
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lat, l.lng)
}

// IsEqual compares two locations. Both must be constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lng == other.lng, nil
}

// DistanceKm returns the great-circle (haversine) distance to other in kilometres.
// It is symmetric and zero for identical points.
//
// Example:
//
//	madrid, _ := kernel.NewLocation(40.4168, -3.7038)
//	toledo, _ := kernel.NewLocation(39.8628, -4.0273)
//	km, _ := madrid.DistanceKm(toledo) // ~67.5
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := degreesToRadians(l.lat)
	lat2 := degreesToRadians(other.lat)
	dLat := lat2 - lat1
	dLng := degreesToRadians(other.lng - l.lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h))), nil
}

// setLat uses a pointer receiver so construction can validate in place.
func (l *Location) setLat(lat float64) error {
	if !(lat >= LatitudeMin && lat <= LatitudeMax) {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	l.lat = lat
	return nil
}

// setLng uses a pointer receiver so construction can validate in place.
func (l *Location) setLng(lng float64) error {
	if !(lng >= LongitudeMin && lng <= LongitudeMax) {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}

	l.lng = lng
	return nil
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}
