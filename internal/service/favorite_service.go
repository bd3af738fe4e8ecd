package service

import (
	"fmt"
	"log"
	"sync"

	"github.com/famscout/activities-backend-go/internal/models"
	"github.com/famscout/activities-backend-go/internal/repository"
)

// FavoriteService handles saved activities and polled capacity alerts
type FavoriteService struct {
	favorites  *repository.FavoriteRepository
	activities *repository.ActivityRepository
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(favorites *repository.FavoriteRepository, activities *repository.ActivityRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, activities: activities}
}

// List returns the user's favorite references.
func (s *FavoriteService) List(userID string) ([]models.Favorite, error) {
	return s.favorites.ListByUser(userID)
}

// Add saves an activity reference, recording the availability seen at save
// time as the baseline for capacity alerts.
func (s *FavoriteService) Add(userID, activityID string) (*models.Favorite, error) {
	activity, err := s.activities.GetByID(activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, fmt.Errorf("%w: activity not found", ErrInvalidInput)
	}

	favorite := &models.Favorite{
		UserID:        userID,
		ActivityID:    activityID,
		RecordedSpots: activity.SpotsAvailable,
	}
	if err := s.favorites.Add(favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

// Remove deletes a favorite by activity reference.
func (s *FavoriteService) Remove(userID, activityID string) (bool, error) {
	return s.favorites.Remove(userID, activityID)
}

// Details fetches the full activity record for every favorite concurrently.
// Individual failures are logged and skipped so one bad record never empties
// the whole list; surviving results keep the favorites' order.
func (s *FavoriteService) Details(userID string) ([]models.Activity, error) {
	favorites, err := s.favorites.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	results := make([]*models.Activity, len(favorites))
	var wg sync.WaitGroup
	for i, f := range favorites {
		wg.Add(1)
		go func(i int, activityID string) {
			defer wg.Done()
			activity, err := s.activities.GetByID(activityID)
			if err != nil {
				log.Printf("failed to load favorite activity %s: %v", activityID, err)
				return
			}
			results[i] = activity
		}(i, f.ActivityID)
	}
	wg.Wait()

	details := make([]models.Activity, 0, len(favorites))
	for _, a := range results {
		if a != nil {
			a.IsFavorite = true
			details = append(details, *a)
		}
	}
	return details, nil
}

// PollCapacity compares each favorite's recorded availability against the
// current value, records an alert per change, and advances the baseline.
// Per-favorite failures are skipped; the poll reports what it could check.
func (s *FavoriteService) PollCapacity(userID string) ([]models.CapacityAlert, error) {
	favorites, err := s.favorites.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	var alerts []models.CapacityAlert
	for _, f := range favorites {
		activity, err := s.activities.GetByID(f.ActivityID)
		if err != nil {
			log.Printf("capacity poll: failed to load activity %s: %v", f.ActivityID, err)
			continue
		}
		if activity == nil || activity.SpotsAvailable == f.RecordedSpots {
			continue
		}

		alert := models.CapacityAlert{
			UserID:        userID,
			ActivityID:    f.ActivityID,
			ActivityName:  activity.Name,
			PreviousSpots: f.RecordedSpots,
			CurrentSpots:  activity.SpotsAvailable,
		}
		if err := s.favorites.InsertAlert(&alert); err != nil {
			log.Printf("capacity poll: failed to record alert for %s: %v", f.ActivityID, err)
			continue
		}
		if err := s.favorites.UpdateRecordedSpots(f.ID, activity.SpotsAvailable); err != nil {
			log.Printf("capacity poll: failed to advance baseline for %s: %v", f.ID, err)
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// Alerts returns previously recorded capacity alerts, newest first.
func (s *FavoriteService) Alerts(userID string, limit int) ([]models.CapacityAlert, error) {
	return s.favorites.ListAlerts(userID, limit)
}
