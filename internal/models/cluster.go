package models

// LocationCluster groups nearby activity pins for map display. Clusters are
// recomputed on every load and never persisted; the centroid is the running
// mean of member coordinates.
type LocationCluster struct {
	ID         string     `json:"id"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Name       string     `json:"name"`
	Activities []Activity `json:"activities"`
	Count      int        `json:"count"`
}
