package models

// ActivityFilter is the flat parameter object accepted by the activity
// search API.
type ActivityFilter struct {
	Search      string   `form:"q"`
	Categories  []string `form:"categories"`
	AgeMin      *int     `form:"ageMin"`
	AgeMax      *int     `form:"ageMax"`
	CostMin     *float64 `form:"costMin"`
	CostMax     *float64 `form:"costMax"`
	City        string   `form:"city"`
	Environment string   `form:"environment"`
	Latitude    *float64 `form:"lat"`
	Longitude   *float64 `form:"lon"`
	RadiusKm    float64  `form:"radiusKm"`
	Days        []string `form:"days"`
	HideClosed  bool     `form:"hideClosed"`
	HideFull    bool     `form:"hideFull"`
	Limit       int      `form:"limit"`
	Offset      int      `form:"offset"`
	SortBy      string   `form:"sortBy"` // name, cost, ageMin, newest
}

// ContextualFilters is a screen-session filter overlay. It is never
// persisted; fields left at their sentinel defaults are treated as unset and
// excluded from the outgoing query.
type ContextualFilters struct {
	ActivityTypes []string `json:"activityTypes,omitempty" form:"activityTypes"`
	AgeMin        int      `json:"ageMin" form:"ctxAgeMin,default=0"`
	AgeMax        int      `json:"ageMax" form:"ctxAgeMax,default=18"`
	PriceMax      float64  `json:"priceMax,omitempty" form:"ctxPriceMax"`
	Days          []string `json:"days,omitempty" form:"ctxDays"`
	Environment   string   `json:"environment,omitempty" form:"environment"`
}

// ViewSettings are the global view-only toggles applied beneath every other
// filter layer.
type ViewSettings struct {
	HideClosed bool `form:"hideClosed"`
	HideFull   bool `form:"hideFull"`
}

// MapFilter selects the viewport and clustering method for the map endpoint.
type MapFilter struct {
	MinLat float64 `form:"minLat"`
	MaxLat float64 `form:"maxLat"`
	MinLon float64 `form:"minLon"`
	MaxLon float64 `form:"maxLon"`
	Method string  `form:"method"` // centroid (default) or grid
	Limit  int     `form:"limit"`
}
