package service

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famscout/activities-backend-go/internal/models"
	"github.com/famscout/activities-backend-go/internal/repository"
)

func newFavoriteFixture(t *testing.T) (*FavoriteService, *repository.ActivityRepository, *models.User, *sql.DB) {
	t.Helper()

	db := testDB(t)
	activities := repository.NewActivityRepository(db)
	favorites := repository.NewFavoriteRepository(db)
	users := repository.NewUserRepository(db)

	svc := NewFavoriteService(favorites, activities)
	user := createTestUser(t, users)
	return svc, activities, user, db
}

func TestFavoriteService_AddRemove(t *testing.T) {
	svc, activities, user, _ := newFavoriteFixture(t)

	seedActivity(t, activities, models.Activity{
		ID: "swim-1", Name: "Learn to Swim", SpotsAvailable: 4,
	})

	favorite, err := svc.Add(user.ID, "swim-1")
	require.NoError(t, err)
	assert.Equal(t, 4, favorite.RecordedSpots)

	_, err = svc.Add(user.ID, "missing")
	assert.ErrorIs(t, err, ErrInvalidInput)

	removed, err := svc.Remove(user.ID, "swim-1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Remove(user.ID, "swim-1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFavoriteService_Details(t *testing.T) {
	svc, activities, user, _ := newFavoriteFixture(t)

	seedActivity(t, activities, models.Activity{ID: "swim-1", Name: "Learn to Swim", SpotsAvailable: 4})
	seedActivity(t, activities, models.Activity{ID: "art-1", Name: "Junior Painters", SpotsAvailable: 2})

	_, err := svc.Add(user.ID, "swim-1")
	require.NoError(t, err)
	_, err = svc.Add(user.ID, "art-1")
	require.NoError(t, err)

	details, err := svc.Details(user.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)

	// Results follow the favorites' order (newest favorite first) and
	// carry the favorite flag
	assert.Equal(t, "art-1", details[0].ID)
	assert.Equal(t, "swim-1", details[1].ID)
	for _, d := range details {
		assert.True(t, d.IsFavorite)
	}
}

func TestFavoriteService_DetailsSkipsMissingActivities(t *testing.T) {
	svc, activities, user, db := newFavoriteFixture(t)

	seedActivity(t, activities, models.Activity{ID: "swim-1", Name: "Learn to Swim", SpotsAvailable: 4})
	seedActivity(t, activities, models.Activity{ID: "art-1", Name: "Junior Painters", SpotsAvailable: 2})
	seedActivity(t, activities, models.Activity{ID: "chess-1", Name: "Chess Club", SpotsAvailable: 6})

	for _, id := range []string{"swim-1", "art-1", "chess-1"} {
		_, err := svc.Add(user.ID, id)
		require.NoError(t, err)
	}

	// The activity disappears from the store after it was favorited, as
	// happens when a provider delists it
	_, err := db.Exec("DELETE FROM activities WHERE id = ?", "art-1")
	require.NoError(t, err)

	details, err := svc.Details(user.ID)
	require.NoError(t, err)

	// The survivors come back alone, still in the favorites' order
	require.Len(t, details, 2)
	assert.Equal(t, "chess-1", details[0].ID)
	assert.Equal(t, "swim-1", details[1].ID)

	// Capacity polling skips the missing favorite the same way
	alerts, err := svc.PollCapacity(user.ID)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestFavoriteService_CapacityPolling(t *testing.T) {
	svc, activities, user, _ := newFavoriteFixture(t)

	seedActivity(t, activities, models.Activity{ID: "swim-1", Name: "Learn to Swim", SpotsAvailable: 4})

	_, err := svc.Add(user.ID, "swim-1")
	require.NoError(t, err)

	t.Run("no change, no alert", func(t *testing.T) {
		alerts, err := svc.PollCapacity(user.ID)
		require.NoError(t, err)
		assert.Empty(t, alerts)
	})

	t.Run("spots drop produces an alert and advances the baseline", func(t *testing.T) {
		seedActivity(t, activities, models.Activity{ID: "swim-1", Name: "Learn to Swim", SpotsAvailable: 1})

		alerts, err := svc.PollCapacity(user.ID)
		require.NoError(t, err)
		require.Len(t, alerts, 1)
		assert.Equal(t, 4, alerts[0].PreviousSpots)
		assert.Equal(t, 1, alerts[0].CurrentSpots)
		assert.Equal(t, "Learn to Swim", alerts[0].ActivityName)

		// Polling again without a further change stays quiet
		again, err := svc.PollCapacity(user.ID)
		require.NoError(t, err)
		assert.Empty(t, again)

		// The alert history is retained
		history, err := svc.Alerts(user.ID, 10)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})
}
