package spatial

import (
	"fmt"
	"math"
)

// CellKey buckets a coordinate into a fixed grid cell of cellSize degrees.
// Unlike a moving-centroid pass, cell assignment is independent of input
// order, so grids give deterministic clustering.
func CellKey(lat, lon, cellSize float64) string {
	if cellSize <= 0 {
		cellSize = 0.001
	}
	x := int(math.Floor(lon / cellSize))
	y := int(math.Floor(lat / cellSize))
	return fmt.Sprintf("%d:%d", x, y)
}

// CellCenter returns the center coordinate of the cell containing the point.
func CellCenter(lat, lon, cellSize float64) (float64, float64) {
	if cellSize <= 0 {
		cellSize = 0.001
	}
	cLat := (math.Floor(lat/cellSize) + 0.5) * cellSize
	cLon := (math.Floor(lon/cellSize) + 0.5) * cellSize
	return cLat, cLon
}
