package models

// ChildPreferences holds per-child filter defaults. A child without a stored
// record is skipped for type/price aggregation but still contributes its age
// to the merged range.
type ChildPreferences struct {
	ChildID       string   `json:"childId" db:"child_id"`
	ActivityTypes []string `json:"activityTypes,omitempty" db:"activity_types"`
	Environment   string   `json:"environment,omitempty" db:"environment"` // indoor, outdoor, all
	RadiusKm      float64  `json:"radiusKm,omitempty" db:"radius_km"`
	PriceMax      *float64 `json:"priceMax,omitempty" db:"price_max"`
	Days          []string `json:"days,omitempty" db:"days"`
	TimeSlots     []string `json:"timeSlots,omitempty" db:"time_slots"` // morning, afternoon, evening
	City          string   `json:"city,omitempty" db:"city"`
	UpdatedAt     int64    `json:"updatedAt" db:"updated_at"`
}

// UserPreferences holds account-level settings shared across screens:
// the preferred location fallback and the global view-only toggles.
type UserPreferences struct {
	UserID            string `json:"-" db:"user_id"`
	PreferredLocation string `json:"preferredLocation,omitempty" db:"preferred_location"`
	HideClosed        bool   `json:"hideClosed" db:"hide_closed"`
	HideFull          bool   `json:"hideFull" db:"hide_full"`
	UpdatedAt         int64  `json:"updatedAt" db:"updated_at"`
}

// MergedFilter is the effective filter produced by merging the selected
// children's preferences. An all-zero value means "no narrowing".
type MergedFilter struct {
	ActivityTypes []string `json:"activityTypes,omitempty"`
	Genders       []string `json:"genders,omitempty"`

	AgeMin      int  `json:"ageMin"`
	AgeMax      int  `json:"ageMax"`
	HasAgeRange bool `json:"hasAgeRange"`
	// AgeRangeValid is false when an and-mode merge produced an inverted
	// overlap (min > max), i.e. the selected children share no common age
	// window. Callers must treat that as matching nothing, not as a range.
	AgeRangeValid bool `json:"ageRangeValid"`

	City     string  `json:"city,omitempty"`
	RadiusKm float64 `json:"radiusKm,omitempty"`

	PriceMax    float64 `json:"priceMax,omitempty"`
	HasPriceMax bool    `json:"hasPriceMax"`
}

// IsEmpty reports whether the merge produced no constraints at all, in which
// case every activity passes.
func (f *MergedFilter) IsEmpty() bool {
	return len(f.ActivityTypes) == 0 && !f.HasAgeRange && f.City == "" &&
		!f.HasPriceMax
}
