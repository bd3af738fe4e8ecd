package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famscout/activities-backend-go/internal/discovery"
	"github.com/famscout/activities-backend-go/internal/models"
	"github.com/famscout/activities-backend-go/internal/repository"
)

func newSearchFixture(t *testing.T) (*SearchService, *repository.ActivityRepository, *repository.UserRepository, *repository.ChildRepository, *repository.PreferenceRepository) {
	t.Helper()

	db := testDB(t)
	activities := repository.NewActivityRepository(db)
	favorites := repository.NewFavoriteRepository(db)
	users := repository.NewUserRepository(db)
	children := repository.NewChildRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)

	prefService := NewPreferenceService(prefRepo, children, testConfig())
	search := NewSearchService(activities, favorites, prefService, testConfig())

	return search, activities, users, children, prefRepo
}

func seedActivity(t *testing.T, repo *repository.ActivityRepository, a models.Activity) {
	t.Helper()
	require.NoError(t, repo.Upsert(&a))
}

func TestSearchService_Search(t *testing.T) {
	search, activities, _, _, _ := newSearchFixture(t)

	seedActivity(t, activities, models.Activity{
		ID: "swim-1", Name: "Learn to Swim", Category: "swimming",
		City: "Vancouver", Cost: 45, AgeMin: 3, AgeMax: 6, SpotsAvailable: 4,
	})
	seedActivity(t, activities, models.Activity{
		ID: "soccer-1", Name: "Mini Soccer", Category: "soccer",
		City: "Vancouver", Cost: 120, AgeMin: 5, AgeMax: 9, SpotsAvailable: 2,
	})

	resp, err := search.Search(models.ActivityFilter{City: "Vancouver", Limit: 1}, "", false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Len(t, resp.Items, 1)
	assert.True(t, resp.HasMore)

	resp, err = search.Search(models.ActivityFilter{City: "Vancouver", Limit: 10, Offset: 1}, "", false)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.False(t, resp.HasMore)
}

func TestSearchService_ComposedSearch(t *testing.T) {
	search, activities, users, children, prefRepo := newSearchFixture(t)
	user := createTestUser(t, users)

	seedActivity(t, activities, models.Activity{
		ID: "swim-1", Name: "Learn to Swim", Category: "swimming",
		City: "Vancouver", Cost: 45, AgeMin: 3, AgeMax: 6, SpotsAvailable: 4,
	})
	seedActivity(t, activities, models.Activity{
		ID: "chess-1", Name: "Chess Club", Category: "chess",
		City: "Vancouver", Cost: 30, AgeMin: 6, AgeMax: 14, SpotsAvailable: 6,
	})

	child := &models.Child{UserID: user.ID, Name: "Theo", DateOfBirth: dobForAge(5)}
	require.NoError(t, children.Create(child))
	require.NoError(t, prefRepo.SaveChildPreferences(&models.ChildPreferences{
		ChildID: child.ID, ActivityTypes: []string{"swimming"}, City: "Vancouver",
	}))

	t.Run("child preferences narrow the result", func(t *testing.T) {
		resp, err := search.ComposedSearch(ComposedSearchInput{
			UserID: user.ID, Screen: discovery.ScreenAll, Limit: 10,
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "swim-1", resp.Items[0].ID)
	})

	t.Run("contextual overlay overrides the preference types", func(t *testing.T) {
		resp, err := search.ComposedSearch(ComposedSearchInput{
			UserID: user.ID,
			Screen: discovery.ScreenAll,
			Contextual: &models.ContextualFilters{
				ActivityTypes: []string{"chess"},
				AgeMin:        0, AgeMax: 18,
			},
			Limit: 10,
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "chess-1", resp.Items[0].ID)
	})

	t.Run("invalid and-mode age overlap matches nothing", func(t *testing.T) {
		sibling := &models.Child{UserID: user.ID, Name: "Maya", DateOfBirth: dobForAge(12)}
		require.NoError(t, children.Create(sibling))
		require.NoError(t, prefRepo.SaveChildPreferences(&models.ChildPreferences{
			ChildID: sibling.ID, ActivityTypes: []string{"swimming"},
		}))

		resp, err := search.ComposedSearch(ComposedSearchInput{
			UserID: user.ID, Screen: discovery.ScreenAll,
			Mode: discovery.MergeModeAnd, Limit: 10,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
	})
}

func TestSearchService_FallbackRetry(t *testing.T) {
	search, activities, users, children, prefRepo := newSearchFixture(t)
	user := createTestUser(t, users)

	// The only matching activity is full, so the primary query (which
	// inherits hideFull from the account settings) returns nothing; the
	// simplified retry drops the view toggles and finds it.
	seedActivity(t, activities, models.Activity{
		ID: "swim-1", Name: "Learn to Swim", Category: "swimming",
		City: "Vancouver", Cost: 45, AgeMin: 3, AgeMax: 6, SpotsAvailable: 0,
	})

	child := &models.Child{UserID: user.ID, Name: "Theo", DateOfBirth: dobForAge(5)}
	require.NoError(t, children.Create(child))
	require.NoError(t, prefRepo.SaveChildPreferences(&models.ChildPreferences{
		ChildID: child.ID, ActivityTypes: []string{"swimming"}, City: "Vancouver",
	}))
	require.NoError(t, prefRepo.SaveUserPreferences(&models.UserPreferences{
		UserID: user.ID, HideFull: true,
	}))

	t.Run("new screen retries with the simplified query", func(t *testing.T) {
		resp, err := search.ComposedSearch(ComposedSearchInput{
			UserID: user.ID, Screen: discovery.ScreenNew, Limit: 10,
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "swim-1", resp.Items[0].ID)
	})

	t.Run("other screens stay empty", func(t *testing.T) {
		resp, err := search.ComposedSearch(ComposedSearchInput{
			UserID: user.ID, Screen: discovery.ScreenAll, Limit: 10,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
	})

	t.Run("later pages never retry", func(t *testing.T) {
		resp, err := search.ComposedSearch(ComposedSearchInput{
			UserID: user.ID, Screen: discovery.ScreenNew, Limit: 10, Offset: 10,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
	})
}
