package service

import (
	"fmt"

	"github.com/famscout/activities-backend-go/internal/config"
	"github.com/famscout/activities-backend-go/internal/discovery"
	"github.com/famscout/activities-backend-go/internal/models"
	"github.com/famscout/activities-backend-go/internal/repository"
)

// MapService produces clustered pins for the map screen
type MapService struct {
	activities *repository.ActivityRepository
	cfg        *config.Config
}

// NewMapService creates a new map service
func NewMapService(activities *repository.ActivityRepository, cfg *config.Config) *MapService {
	return &MapService{activities: activities, cfg: cfg}
}

// Clusters loads the activities inside the viewport and groups them. The
// default method is the moving-centroid pass; "grid" selects the
// order-independent bucketing.
func (s *MapService) Clusters(filter models.MapFilter) ([]models.LocationCluster, error) {
	if filter.MinLat >= filter.MaxLat || filter.MinLon >= filter.MaxLon {
		return nil, fmt.Errorf("%w: viewport bounds are empty", ErrInvalidInput)
	}

	limit := filter.Limit
	if limit < 1 || limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}

	activities, err := s.activities.GetByBounds(filter.MinLat, filter.MinLon, filter.MaxLat, filter.MaxLon, limit)
	if err != nil {
		return nil, err
	}

	var clusters []models.LocationCluster
	switch filter.Method {
	case discovery.ClusterMethodGrid:
		clusters = discovery.ClusterByGrid(activities, s.cfg.ClusterThreshold)
	case "", discovery.ClusterMethodCentroid:
		clusters = discovery.ClusterByCentroid(activities, s.cfg.ClusterThreshold)
	default:
		return nil, fmt.Errorf("%w: unknown cluster method %q", ErrInvalidInput, filter.Method)
	}

	if clusters == nil {
		clusters = []models.LocationCluster{}
	}
	return clusters, nil
}
