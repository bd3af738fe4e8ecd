package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famscout/activities-backend-go/internal/models"
)

func TestComposeQuery_SentinelSuppression(t *testing.T) {
	t.Run("untouched 0-18 age range is omitted", func(t *testing.T) {
		f := ComposeQuery(ComposeInput{
			Screen:     ScreenAll,
			Contextual: &models.ContextualFilters{AgeMin: 0, AgeMax: 18},
		})

		assert.Nil(t, f.AgeMin)
		assert.Nil(t, f.AgeMax)
	})

	t.Run("a narrowed age range is included", func(t *testing.T) {
		f := ComposeQuery(ComposeInput{
			Screen:     ScreenAll,
			Contextual: &models.ContextualFilters{AgeMin: 3, AgeMax: 10},
		})

		require.NotNil(t, f.AgeMin)
		require.NotNil(t, f.AgeMax)
		assert.Equal(t, 3, *f.AgeMin)
		assert.Equal(t, 10, *f.AgeMax)
	})

	t.Run("price at or above the sentinel is omitted", func(t *testing.T) {
		f := ComposeQuery(ComposeInput{
			Screen:     ScreenAll,
			Contextual: &models.ContextualFilters{AgeMin: 0, AgeMax: 18, PriceMax: PriceSentinel},
		})
		assert.Nil(t, f.CostMax)
	})

	t.Run("all seven days selected means no day filter", func(t *testing.T) {
		allWeek := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
		f := ComposeQuery(ComposeInput{
			Screen:     ScreenAll,
			Contextual: &models.ContextualFilters{AgeMin: 0, AgeMax: 18, Days: allWeek},
		})
		assert.Empty(t, f.Days)

		f = ComposeQuery(ComposeInput{
			Screen:     ScreenAll,
			Contextual: &models.ContextualFilters{AgeMin: 0, AgeMax: 18, Days: []string{"saturday"}},
		})
		assert.Equal(t, []string{"saturday"}, f.Days)
	})

	t.Run("duplicate days are judged by distinct count", func(t *testing.T) {
		// Six distinct days padded to length seven still narrows the week
		padded := []string{"monday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
		f := ComposeQuery(ComposeInput{
			Screen:     ScreenAll,
			Contextual: &models.ContextualFilters{AgeMin: 0, AgeMax: 18, Days: padded},
		})
		assert.Equal(t, padded, f.Days)

		// The whole week with a duplicate is still the whole week
		fullWeek := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday", "sunday"}
		f = ComposeQuery(ComposeInput{
			Screen:     ScreenAll,
			Contextual: &models.ContextualFilters{AgeMin: 0, AgeMax: 18, Days: fullWeek},
		})
		assert.Empty(t, f.Days)
	})

	t.Run("environment all is omitted", func(t *testing.T) {
		f := ComposeQuery(ComposeInput{
			Screen:     ScreenAll,
			Contextual: &models.ContextualFilters{AgeMin: 0, AgeMax: 18, Environment: EnvironmentAll},
		})
		assert.Empty(t, f.Environment)
	})
}

func TestComposeQuery_Precedence(t *testing.T) {
	base := models.MergedFilter{
		ActivityTypes: []string{"swimming"},
		AgeMin:        4, AgeMax: 8,
		HasAgeRange: true, AgeRangeValid: true,
		City: "Vancouver", RadiusKm: 25,
		PriceMax: 200, HasPriceMax: true,
	}

	t.Run("base merged filter flows into the query", func(t *testing.T) {
		f := ComposeQuery(ComposeInput{Screen: ScreenAll, Base: base,
			View: models.ViewSettings{HideClosed: true, HideFull: true}})

		assert.Equal(t, []string{"swimming"}, f.Categories)
		require.NotNil(t, f.AgeMin)
		assert.Equal(t, 4, *f.AgeMin)
		assert.Equal(t, "Vancouver", f.City)
		assert.Equal(t, 25.0, f.RadiusKm)
		require.NotNil(t, f.CostMax)
		assert.Equal(t, 200.0, *f.CostMax)
		assert.True(t, f.HideClosed)
		assert.True(t, f.HideFull)
	})

	t.Run("contextual overlay overrides the base", func(t *testing.T) {
		f := ComposeQuery(ComposeInput{
			Screen: ScreenAll,
			Base:   base,
			Contextual: &models.ContextualFilters{
				ActivityTypes: []string{"art"},
				AgeMin:        6, AgeMax: 12,
				PriceMax: 75,
			},
		})

		assert.Equal(t, []string{"art"}, f.Categories)
		assert.Equal(t, 6, *f.AgeMin)
		assert.Equal(t, 12, *f.AgeMax)
		assert.Equal(t, 75.0, *f.CostMax)
		// Location still comes from the base; the contextual layer has no
		// location control
		assert.Equal(t, "Vancouver", f.City)
	})

	t.Run("budget screen forces its ceiling over the contextual price", func(t *testing.T) {
		f := ComposeQuery(ComposeInput{
			Screen:        ScreenBudget,
			Base:          base,
			Contextual:    &models.ContextualFilters{AgeMin: 0, AgeMax: 18, PriceMax: 75},
			BudgetCeiling: 50,
		})

		require.NotNil(t, f.CostMax)
		assert.Equal(t, 50.0, *f.CostMax)
	})

	t.Run("new screen sorts by newest", func(t *testing.T) {
		f := ComposeQuery(ComposeInput{Screen: ScreenNew})
		assert.Equal(t, "newest", f.SortBy)
	})
}

func TestShouldFallback(t *testing.T) {
	assert.True(t, ShouldFallback(ScreenNew, 0, 0))
	assert.True(t, ShouldFallback(ScreenRecommended, 0, 0))

	assert.False(t, ShouldFallback(ScreenAll, 0, 0), "only new/recommended screens retry")
	assert.False(t, ShouldFallback(ScreenNew, 50, 0), "only the first page retries")
	assert.False(t, ShouldFallback(ScreenNew, 0, 3), "non-empty results never retry")
}

func TestSimplifyFilter(t *testing.T) {
	ageMin, ageMax := 4, 8
	costMax := 50.0
	full := models.ActivityFilter{
		Search:     "dragons",
		Categories: []string{"swimming"},
		AgeMin:     &ageMin, AgeMax: &ageMax,
		CostMax:     &costMax,
		City:        "Vancouver",
		Environment: "indoor",
		RadiusKm:    25,
		Days:        []string{"saturday"},
		HideClosed:  true,
		HideFull:    true,
		Limit:       50,
		Offset:      0,
	}

	simplified := SimplifyFilter(full)

	// Location, age, category and date constraints survive
	assert.Equal(t, []string{"swimming"}, simplified.Categories)
	assert.Equal(t, &ageMin, simplified.AgeMin)
	assert.Equal(t, "Vancouver", simplified.City)
	assert.Equal(t, []string{"saturday"}, simplified.Days)

	// Everything else is dropped
	assert.Empty(t, simplified.Search)
	assert.Nil(t, simplified.CostMax)
	assert.Empty(t, simplified.Environment)
	assert.False(t, simplified.HideClosed)
	assert.False(t, simplified.HideFull)
}
