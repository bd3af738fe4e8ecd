package discovery

import (
	"github.com/famscout/activities-backend-go/internal/models"
)

// Merge modes. "or" widens across the selected children, "and" narrows to
// their overlap.
const (
	MergeModeOr  = "or"
	MergeModeAnd = "and"
)

// Age range bounds and the padding applied in or-mode.
const (
	AgeFloor    = 0
	AgeCeiling  = 18
	AgePadYears = 1
)

// MergeInput carries one selected child per index: Prefs[i] may be nil when
// the child has no stored preference record, but Ages[i] must still hold the
// child's computed age (or a negative value to skip it).
type MergeInput struct {
	Prefs   []*models.ChildPreferences
	Ages    []int
	Genders []string
	Mode    string

	// Account-level fallbacks
	Global          *models.UserPreferences
	DefaultRadiusKm float64
	DefaultPriceMax float64
}

// MergePreferences combines the selected children's preferences into one
// effective filter. It is a pure function of its inputs.
//
// When no child has a stored preference record the result is an empty filter
// meaning "no narrowing". Otherwise every child with a valid age contributes
// to the age range, even if its preference record is missing.
func MergePreferences(in MergeInput) models.MergedFilter {
	var out models.MergedFilter

	hasPrefs := false
	for _, p := range in.Prefs {
		if p != nil {
			hasPrefs = true
			break
		}
	}
	if !hasPrefs {
		return out
	}

	out.ActivityTypes = mergeTypes(in.Prefs, in.Mode)
	out.Genders = dedupe(in.Genders)
	mergeAges(&out, in.Ages, in.Mode)
	mergeLocation(&out, in)
	mergePrice(&out, in)

	return out
}

// mergeTypes unions (or) or intersects (and) the per-child activity type
// lists, preserving first-seen order. Children without preferences are
// skipped entirely.
func mergeTypes(prefs []*models.ChildPreferences, mode string) []string {
	var lists [][]string
	for _, p := range prefs {
		if p == nil || len(p.ActivityTypes) == 0 {
			continue
		}
		lists = append(lists, p.ActivityTypes)
	}
	if len(lists) == 0 {
		return nil
	}

	if mode == MergeModeAnd {
		result := dedupe(lists[0])
		for _, list := range lists[1:] {
			result = intersect(result, list)
		}
		return result
	}

	var union []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, t := range list {
			if !seen[t] {
				seen[t] = true
				union = append(union, t)
			}
		}
	}
	return union
}

// mergeAges computes the merged age window. Or-mode covers every child with
// a ±1 year pad clamped to [0,18]. And-mode takes the literal overlap
// [max(ages), min(ages)]; when the children's ages diverge that range
// inverts, which is reported via AgeRangeValid=false rather than silently
// swapped.
func mergeAges(out *models.MergedFilter, ages []int, mode string) {
	minAge, maxAge := -1, -1
	for _, a := range ages {
		if a < 0 {
			continue
		}
		if minAge < 0 || a < minAge {
			minAge = a
		}
		if maxAge < 0 || a > maxAge {
			maxAge = a
		}
	}
	if minAge < 0 {
		return
	}

	out.HasAgeRange = true
	if mode == MergeModeAnd {
		out.AgeMin = clampAge(maxAge)
		out.AgeMax = clampAge(minAge)
	} else {
		out.AgeMin = clampAge(minAge - AgePadYears)
		out.AgeMax = clampAge(maxAge + AgePadYears)
	}
	out.AgeRangeValid = out.AgeMin <= out.AgeMax
}

// mergeLocation picks the first child with a saved city, falling back to the
// account's preferred location; the radius comes from the first child that
// set one, else the configured default.
func mergeLocation(out *models.MergedFilter, in MergeInput) {
	var cities []string
	for _, p := range in.Prefs {
		if p != nil {
			cities = append(cities, p.City)
		}
	}
	if in.Global != nil {
		cities = append(cities, in.Global.PreferredLocation)
	}
	out.City = FirstNonEmpty(cities...)

	for _, p := range in.Prefs {
		if p != nil && p.RadiusKm > 0 {
			out.RadiusKm = p.RadiusKm
			break
		}
	}
	if out.RadiusKm == 0 {
		out.RadiusKm = in.DefaultRadiusKm
	}
}

// mergePrice takes the minimum across the children's price caps so that
// every selected child's budget is respected, falling back to the global
// default cap.
func mergePrice(out *models.MergedFilter, in MergeInput) {
	for _, p := range in.Prefs {
		if p == nil || p.PriceMax == nil {
			continue
		}
		if !out.HasPriceMax || *p.PriceMax < out.PriceMax {
			out.PriceMax = *p.PriceMax
			out.HasPriceMax = true
		}
	}
	if !out.HasPriceMax && in.DefaultPriceMax > 0 {
		out.PriceMax = in.DefaultPriceMax
		out.HasPriceMax = true
	}
}

func clampAge(age int) int {
	if age < AgeFloor {
		return AgeFloor
	}
	if age > AgeCeiling {
		return AgeCeiling
	}
	return age
}

func dedupe(values []string) []string {
	var result []string
	seen := make(map[string]bool)
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}

func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}
	var result []string
	for _, v := range a {
		if inB[v] {
			result = append(result, v)
		}
	}
	return result
}
