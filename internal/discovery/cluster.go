package discovery

import (
	"fmt"
	"math"

	"github.com/famscout/activities-backend-go/internal/models"
	"github.com/famscout/activities-backend-go/internal/spatial"
)

// ClusterThresholdDegrees is the proximity threshold for joining an existing
// cluster, roughly 100 m in both axes.
const ClusterThresholdDegrees = 0.001

// Clustering methods accepted by the map endpoint.
const (
	ClusterMethodCentroid = "centroid"
	ClusterMethodGrid     = "grid"
)

// ClusterByCentroid groups activities into map clusters in a single linear
// pass. Each activity joins the first cluster whose centroid lies within the
// threshold on both axes; the centroid is then recomputed as the arithmetic
// mean of all members, so later activities are judged against a moving
// centroid and final membership depends on input order. Activities with
// missing or NaN coordinates are dropped.
func ClusterByCentroid(activities []models.Activity, threshold float64) []models.LocationCluster {
	if threshold <= 0 {
		threshold = ClusterThresholdDegrees
	}

	var clusters []models.LocationCluster
	// Coordinate sums per cluster, kept outside the model so the running
	// mean does not accumulate rounding from repeated re-averaging.
	var sumLat, sumLon []float64

	for _, a := range activities {
		lat, lon, ok := validCoordinates(&a)
		if !ok {
			continue
		}

		joined := -1
		for i := range clusters {
			if math.Abs(clusters[i].Latitude-lat) <= threshold &&
				math.Abs(clusters[i].Longitude-lon) <= threshold {
				joined = i
				break
			}
		}

		if joined >= 0 {
			c := &clusters[joined]
			c.Activities = append(c.Activities, a)
			c.Count = len(c.Activities)
			sumLat[joined] += lat
			sumLon[joined] += lon
			c.Latitude = sumLat[joined] / float64(c.Count)
			c.Longitude = sumLon[joined] / float64(c.Count)
			continue
		}

		clusters = append(clusters, models.LocationCluster{
			ID:         fmt.Sprintf("cluster-%d", len(clusters)+1),
			Latitude:   lat,
			Longitude:  lon,
			Name:       ActivityDisplayName(&a),
			Activities: []models.Activity{a},
			Count:      1,
		})
		sumLat = append(sumLat, lat)
		sumLon = append(sumLon, lon)
	}

	return clusters
}

// ClusterByGrid is the order-independent alternative: activities are
// bucketed into fixed cells of cellSize degrees, so the same set always
// produces the same membership regardless of input order. The reported
// centroid is still the mean of member coordinates.
func ClusterByGrid(activities []models.Activity, cellSize float64) []models.LocationCluster {
	if cellSize <= 0 {
		cellSize = ClusterThresholdDegrees
	}

	var clusters []models.LocationCluster
	index := make(map[string]int)
	var sumLat, sumLon []float64

	for _, a := range activities {
		lat, lon, ok := validCoordinates(&a)
		if !ok {
			continue
		}

		key := spatial.CellKey(lat, lon, cellSize)
		i, exists := index[key]
		if !exists {
			i = len(clusters)
			index[key] = i
			clusters = append(clusters, models.LocationCluster{
				ID:   fmt.Sprintf("cell-%s", key),
				Name: ActivityDisplayName(&a),
			})
			sumLat = append(sumLat, 0)
			sumLon = append(sumLon, 0)
		}

		c := &clusters[i]
		c.Activities = append(c.Activities, a)
		c.Count = len(c.Activities)
		sumLat[i] += lat
		sumLon[i] += lon
		c.Latitude = sumLat[i] / float64(c.Count)
		c.Longitude = sumLon[i] / float64(c.Count)
	}

	return clusters
}

func validCoordinates(a *models.Activity) (float64, float64, bool) {
	if !a.HasCoordinates() {
		return 0, 0, false
	}
	lat, lon := *a.Latitude, *a.Longitude
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return 0, 0, false
	}
	return lat, lon, true
}
