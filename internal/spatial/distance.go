package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineDistance calculates the great-circle distance between two points
// in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// HaversineDistanceKm calculates the great-circle distance in kilometers
func HaversineDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return HaversineDistance(lat1, lon1, lat2, lon2) / 1000.0
}

// BoundingBox returns (minLat, minLon, maxLat, maxLon) of the square that
// encloses a circle of radiusKm around the center. Used as a cheap SQL
// prefilter; candidates still go through the exact haversine check.
func BoundingBox(lat, lon, radiusKm float64) (float64, float64, float64, float64) {
	latDelta := radiusKm / 111.0 // ~111 km per degree of latitude
	lonDelta := latDelta
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat > 0.01 {
		lonDelta = latDelta / cosLat
	}

	minLat := math.Max(lat-latDelta, -90)
	maxLat := math.Min(lat+latDelta, 90)
	minLon := lon - lonDelta
	maxLon := lon + lonDelta
	if minLon < -180 {
		minLon = -180
	}
	if maxLon > 180 {
		maxLon = 180
	}

	return minLat, minLon, maxLat, maxLon
}
