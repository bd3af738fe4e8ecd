package models

// Activity represents a bookable kids activity as returned by providers.
// Records are read-only once imported; the only client-side mutation is the
// ephemeral favorite flag overlay.
type Activity struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Provider string `json:"provider" db:"provider"`
	Category string `json:"category" db:"category"`
	Subtype  string `json:"subtype,omitempty" db:"subtype"`

	Description string `json:"description,omitempty" db:"description"`

	// Location: LocationName is the structured venue name, Location the
	// plain-string address fallback. Coordinates are nullable because many
	// providers only supply an address.
	LocationName string   `json:"locationName,omitempty" db:"location_name"`
	Location     string   `json:"location,omitempty" db:"location"`
	City         string   `json:"city,omitempty" db:"city"`
	Latitude     *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude    *float64 `json:"longitude,omitempty" db:"longitude"`

	Cost        float64 `json:"cost" db:"cost"`
	AgeMin      int     `json:"ageMin" db:"age_min"`
	AgeMax      int     `json:"ageMax" db:"age_max"`
	Environment string  `json:"environment,omitempty" db:"environment"` // indoor, outdoor, all

	Days     []string `json:"days,omitempty" db:"days"`         // lowercase day names
	Schedule string   `json:"schedule,omitempty" db:"schedule"` // free-form, e.g. "Mon/Wed 16:00-17:00"

	SpotsAvailable int  `json:"spotsAvailable" db:"spots_available"`
	TotalSpots     int  `json:"totalSpots" db:"total_spots"`
	IsClosed       bool `json:"isClosed" db:"is_closed"`

	CreatedAt int64 `json:"createdAt" db:"created_at"` // Unix timestamp
	UpdatedAt int64 `json:"updatedAt" db:"updated_at"` // Unix timestamp

	// Ephemeral overlay, never stored
	IsFavorite bool `json:"isFavorite,omitempty" db:"-"`
}

// HasCoordinates reports whether the activity carries a usable lat/lon pair.
// NaN checks live in the clustering pass, which is where bad provider data
// actually surfaces.
func (a *Activity) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// ActivitiesResponse is the paged search payload.
type ActivitiesResponse struct {
	Items        []Activity    `json:"items"`
	Total        int64         `json:"total"`
	HasMore      bool          `json:"hasMore"`
	Aggregations *Aggregations `json:"aggregations,omitempty"`
}

// Aggregations summarizes the full (unpaged) result set for filter UIs.
type Aggregations struct {
	Categories []CategoryCount `json:"categories,omitempty"`
	PriceRange *PriceRange     `json:"priceRange,omitempty"`
}

// CategoryCount is the number of matching activities in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PriceRange is the min/max cost across a result set.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
