package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
	EarthRadiusKm = 6371.0

	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ErrGeoPointIsNotConstructed is returned when a zero GeoPoint is used.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is an immutable WGS84 coordinate pair.
//
// Example:
//
//	riyadh, _ := kernel.NewGeoPoint(24.7136, 46.6753)
//	jeddah, _ := kernel.NewGeoPoint(21.5433, 39.1728)
//	km := riyadh.DistanceKm(jeddah) // ~846
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint validates latitude in [-90, 90] and longitude in [-180, 180].
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// NewOptionalGeoPoint builds a point only when both coordinates are present.
// One coordinate without the other is a validation error.
func NewOptionalGeoPoint(lat, lng *float64) (*GeoPoint, error) {
	switch {
	case lat == nil && lng == nil:
		return nil, nil
	case lat == nil:
		return nil, errs.NewValueIsRequiredError("latitude")
	case lng == nil:
		return nil, errs.NewValueIsRequiredError("longitude")
	}

	p, err := NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Lat() float64 {
	return p.lat
}

func (p GeoPoint) Lng() float64 {
	return p.lng
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lng)
}

func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lng == other.lng
}

// DistanceKm returns the great-circle distance between two points.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	return DistanceKm(p.lat, p.lng, other.lat, other.lng)
}

// DistanceKm computes the Haversine distance in kilometres between two coordinate pairs
// given in degrees. The result is symmetric, non-negative and zero for identical points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push a just outside [0, 1] for near-antipodal points.
	a = math.Max(0, math.Min(1, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func (p *GeoPoint) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}

	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lng, MinLongitude, MaxLongitude)
	}

	p.lng = lng
	return nil
}
