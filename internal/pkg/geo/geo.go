// Package geo validates a claimed device location against the registered
// site coordinate using the haversine great-circle distance.
package geo

import "math"

// Mean Earth radius in meters.
const earthRadiusMeters = 6371000

// Coordinate is a WGS84 point in degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Result reports the computed distance and whether it falls inside the
// allowed radius. The boundary is inclusive: distance == radius is Within.
type Result struct {
	DistanceMeters float64
	Within         bool
}

// Distance returns the haversine great-circle distance between two
// coordinates in meters.
func Distance(a, b Coordinate) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	latARad := a.Latitude * (math.Pi / 180.0)
	latBRad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(latARad)*math.Cos(latBRad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Validate checks a user coordinate against the site coordinate and the
// allowed radius in meters.
func Validate(user, site Coordinate, allowedRadiusMeters float64) Result {
	d := Distance(user, site)
	return Result{
		DistanceMeters: d,
		Within:         d <= allowedRadiusMeters,
	}
}
