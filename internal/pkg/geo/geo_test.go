package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Site used across tests: downtown Cairo.
var site = Coordinate{Latitude: 30.0444, Longitude: 31.2357}

func TestDistanceZero(t *testing.T) {
	assert.Zero(t, Distance(site, site))
}

func TestDistanceKnownPair(t *testing.T) {
	// Cairo to Alexandria is roughly 180 km great-circle.
	alexandria := Coordinate{Latitude: 31.2001, Longitude: 29.9187}
	d := Distance(site, alexandria)
	assert.InDelta(t, 180000, d, 5000)
}

func TestValidateInclusiveBoundary(t *testing.T) {
	user := Coordinate{Latitude: 30.0450, Longitude: 31.2357}
	d := Distance(user, site)

	// Exactly at the boundary counts as inside.
	res := Validate(user, site, d)
	assert.True(t, res.Within)
	assert.Equal(t, d, res.DistanceMeters)

	// One meter short of the actual distance is outside.
	res = Validate(user, site, d-1)
	assert.False(t, res.Within)
}

func TestValidateOutsideRadius(t *testing.T) {
	// ~1.1 km north of the site, radius 200 m.
	user := Coordinate{Latitude: 30.0544, Longitude: 31.2357}
	res := Validate(user, site, 200)
	assert.False(t, res.Within)
	assert.Greater(t, res.DistanceMeters, 1000.0)
}
