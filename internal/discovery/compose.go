package discovery

import (
	"github.com/famscout/activities-backend-go/internal/models"
)

// Screen types that imply their own filtering on top of whatever the user
// selected.
const (
	ScreenAll         = "all"
	ScreenNew         = "new"
	ScreenRecommended = "recommended"
	ScreenBudget      = "budget"
)

// Sentinel defaults. A contextual control left at these values is treated as
// untouched and excluded from the outgoing query, so an unmoved slider never
// narrows the results.
const (
	SentinelAgeMin = 0
	SentinelAgeMax = 18
	PriceSentinel  = 9999.0
	EnvironmentAll = "all"
	DaysInWeek     = 7
)

// ComposeInput is everything that feeds the final query: the screen's own
// implied filter, the session's contextual overlay, the child-preference
// base filter and the global view toggles, in that precedence order.
type ComposeInput struct {
	Screen     string
	Contextual *models.ContextualFilters
	Base       models.MergedFilter
	View       models.ViewSettings

	// BudgetCeiling is the price cap the budget screen forces, suppressing
	// any contextual price filter.
	BudgetCeiling float64

	Limit  int
	Offset int
}

// ComposeQuery flattens the filter layers into the parameter object sent to
// the activity search. Layers are applied lowest-precedence first so later
// layers overwrite earlier ones.
func ComposeQuery(in ComposeInput) models.ActivityFilter {
	f := models.ActivityFilter{
		HideClosed: in.View.HideClosed,
		HideFull:   in.View.HideFull,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}

	applyBase(&f, &in.Base)
	applyContextual(&f, in.Contextual)
	applyScreen(&f, in.Screen, in.BudgetCeiling)

	return f
}

func applyBase(f *models.ActivityFilter, base *models.MergedFilter) {
	if base.IsEmpty() {
		return
	}
	if len(base.ActivityTypes) > 0 {
		f.Categories = base.ActivityTypes
	}
	if base.HasAgeRange {
		ageMin, ageMax := base.AgeMin, base.AgeMax
		f.AgeMin = &ageMin
		f.AgeMax = &ageMax
	}
	if base.City != "" {
		f.City = base.City
		f.RadiusKm = base.RadiusKm
	}
	if base.HasPriceMax {
		priceMax := base.PriceMax
		f.CostMax = &priceMax
	}
}

// applyContextual overlays the session filter, skipping any field still at
// its sentinel default.
func applyContextual(f *models.ActivityFilter, ctx *models.ContextualFilters) {
	if ctx == nil {
		return
	}
	if len(ctx.ActivityTypes) > 0 {
		f.Categories = ctx.ActivityTypes
	}
	if AgeRangeActive(ctx.AgeMin, ctx.AgeMax) {
		ageMin, ageMax := ctx.AgeMin, ctx.AgeMax
		f.AgeMin = &ageMin
		f.AgeMax = &ageMax
	}
	if PriceActive(ctx.PriceMax) {
		priceMax := ctx.PriceMax
		f.CostMax = &priceMax
	}
	if DaysActive(ctx.Days) {
		f.Days = ctx.Days
	}
	if EnvironmentActive(ctx.Environment) {
		f.Environment = ctx.Environment
	}
}

// applyScreen forces screen-implied constraints last so they win over the
// contextual layer.
func applyScreen(f *models.ActivityFilter, screen string, budgetCeiling float64) {
	switch screen {
	case ScreenBudget:
		if budgetCeiling > 0 {
			ceiling := budgetCeiling
			f.CostMax = &ceiling
		}
	case ScreenNew:
		f.SortBy = "newest"
	}
}

// AgeRangeActive reports whether a contextual age range differs from the
// untouched 0-18 default.
func AgeRangeActive(ageMin, ageMax int) bool {
	return !(ageMin == SentinelAgeMin && ageMax == SentinelAgeMax)
}

// PriceActive reports whether a contextual price cap is set below the
// sentinel.
func PriceActive(priceMax float64) bool {
	return priceMax > 0 && priceMax < PriceSentinel
}

// DaysActive reports whether the day selection narrows the week at all.
// Duplicates are ignored so a padded list is still judged by the distinct
// days it names.
func DaysActive(days []string) bool {
	if len(days) == 0 {
		return false
	}
	unique := make(map[string]bool, len(days))
	for _, d := range days {
		unique[d] = true
	}
	return len(unique) < DaysInWeek
}

// EnvironmentActive reports whether the environment picker left "all".
func EnvironmentActive(env string) bool {
	return env != "" && env != EnvironmentAll
}

// ShouldFallback decides whether an empty primary result warrants the
// one-shot simplified retry: only on the first page, and only for the
// new/recommended screens.
func ShouldFallback(screen string, offset, itemCount int) bool {
	if offset != 0 || itemCount != 0 {
		return false
	}
	return screen == ScreenNew || screen == ScreenRecommended
}

// SimplifyFilter strips a composed query down to location, age, category and
// day constraints for the fallback attempt. Free-text search, price,
// environment and the view toggles are dropped.
func SimplifyFilter(f models.ActivityFilter) models.ActivityFilter {
	return models.ActivityFilter{
		Categories: f.Categories,
		AgeMin:     f.AgeMin,
		AgeMax:     f.AgeMax,
		City:       f.City,
		Latitude:   f.Latitude,
		Longitude:  f.Longitude,
		RadiusKm:   f.RadiusKm,
		Days:       f.Days,
		Limit:      f.Limit,
		SortBy:     f.SortBy,
	}
}
