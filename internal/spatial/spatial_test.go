package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// Vancouver downtown to Burnaby Metrotown, roughly 9.5 km
	d := HaversineDistanceKm(49.2827, -123.1207, 49.2276, -123.0076)
	assert.InDelta(t, 10.2, d, 1.0)

	assert.Equal(t, 0.0, HaversineDistance(49.2827, -123.1207, 49.2827, -123.1207))
}

func TestBoundingBox(t *testing.T) {
	minLat, minLon, maxLat, maxLon := BoundingBox(49.2827, -123.1207, 25)

	assert.Less(t, minLat, 49.2827)
	assert.Greater(t, maxLat, 49.2827)
	assert.Less(t, minLon, -123.1207)
	assert.Greater(t, maxLon, -123.1207)

	// The box must fully contain the circle: a point 25 km due north is
	// still inside
	assert.GreaterOrEqual(t, maxLat-49.2827, 25.0/111.0-1e-9)
}

func TestCellKey(t *testing.T) {
	t.Run("nearby points share a cell", func(t *testing.T) {
		a := CellKey(49.28271, -123.12071, 0.001)
		b := CellKey(49.28274, -123.12078, 0.001)
		assert.Equal(t, a, b)
	})

	t.Run("distant points differ", func(t *testing.T) {
		a := CellKey(49.2827, -123.1207, 0.001)
		b := CellKey(49.3000, -123.2000, 0.001)
		assert.NotEqual(t, a, b)
	})

	t.Run("cell center lies within the cell", func(t *testing.T) {
		lat, lon := CellCenter(49.28271, -123.12071, 0.001)
		assert.Equal(t, CellKey(49.28271, -123.12071, 0.001), CellKey(lat, lon, 0.001))
	})
}
