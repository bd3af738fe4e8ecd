package service

import (
	"log"

	"github.com/famscout/activities-backend-go/internal/config"
	"github.com/famscout/activities-backend-go/internal/discovery"
	"github.com/famscout/activities-backend-go/internal/models"
	"github.com/famscout/activities-backend-go/internal/repository"
)

// SearchService runs activity queries: the direct filtered search and the
// composed search that layers screen, contextual and child-preference
// filters before querying.
type SearchService struct {
	activities *repository.ActivityRepository
	favorites  *repository.FavoriteRepository
	prefs      *PreferenceService
	cfg        *config.Config
}

// NewSearchService creates a new search service
func NewSearchService(activities *repository.ActivityRepository, favorites *repository.FavoriteRepository, prefs *PreferenceService, cfg *config.Config) *SearchService {
	return &SearchService{activities: activities, favorites: favorites, prefs: prefs, cfg: cfg}
}

// ComposedSearchInput is one screen-load worth of search context.
type ComposedSearchInput struct {
	UserID     string
	Screen     string
	Contextual *models.ContextualFilters
	ChildIDs   []string
	Mode       string // child preference merge mode, "or" or "and"
	Limit      int
	Offset     int
}

// Search runs a direct filtered query. withAggregations additionally
// computes category counts and the price range over the full match set.
func (s *SearchService) Search(filter models.ActivityFilter, userID string, withAggregations bool) (*models.ActivitiesResponse, error) {
	if filter.Limit < 1 || filter.Limit > s.cfg.MaxPageSize {
		filter.Limit = 50
	}

	items, total, err := s.activities.Search(filter)
	if err != nil {
		return nil, err
	}

	resp := &models.ActivitiesResponse{
		Items:   items,
		Total:   total,
		HasMore: int64(filter.Offset+len(items)) < total,
	}
	if resp.Items == nil {
		resp.Items = []models.Activity{}
	}

	if withAggregations {
		agg, err := s.activities.Aggregate(filter)
		if err != nil {
			// Aggregations are decoration; the search result still stands
			log.Printf("aggregation query failed: %v", err)
		} else {
			resp.Aggregations = agg
		}
	}

	s.overlayFavorites(resp.Items, userID)
	return resp, nil
}

// GetActivity returns one activity with the caller's favorite flag applied,
// or nil when absent.
func (s *SearchService) GetActivity(id, userID string) (*models.Activity, error) {
	activity, err := s.activities.GetByID(id)
	if err != nil || activity == nil {
		return activity, err
	}

	if userID != "" {
		saved, err := s.favorites.IsFavorite(userID, id)
		if err != nil {
			log.Printf("favorite overlay failed: %v", err)
		} else {
			activity.IsFavorite = saved
		}
	}
	return activity, nil
}

// ComposedSearch merges the selected children's preferences, layers the
// contextual and screen filters on top, and queries. For the new and
// recommended screens an empty first page triggers one simplified retry
// before giving up.
func (s *SearchService) ComposedSearch(in ComposedSearchInput) (*models.ActivitiesResponse, error) {
	base, err := s.prefs.MergedFilter(in.UserID, in.ChildIDs, in.Mode)
	if err != nil {
		return nil, err
	}

	// An and-mode merge with no common age window matches nothing, by
	// construction; don't bother the database.
	if base.HasAgeRange && !base.AgeRangeValid {
		return &models.ActivitiesResponse{Items: []models.Activity{}}, nil
	}

	global, err := s.prefs.GetUserPreferences(in.UserID)
	if err != nil {
		return nil, err
	}

	filter := discovery.ComposeQuery(discovery.ComposeInput{
		Screen:        in.Screen,
		Contextual:    in.Contextual,
		Base:          base,
		View:          models.ViewSettings{HideClosed: global.HideClosed, HideFull: global.HideFull},
		BudgetCeiling: s.cfg.BudgetCeiling,
		Limit:         in.Limit,
		Offset:        in.Offset,
	})

	resp, err := s.Search(filter, in.UserID, false)
	if err != nil {
		return nil, err
	}

	if discovery.ShouldFallback(in.Screen, filter.Offset, len(resp.Items)) {
		simplified := discovery.SimplifyFilter(filter)
		retry, err := s.Search(simplified, in.UserID, false)
		if err != nil {
			// The primary result (empty, but valid) still answers the query
			log.Printf("fallback search failed: %v", err)
			return resp, nil
		}
		return retry, nil
	}

	return resp, nil
}

// overlayFavorites marks which results the user has favorited. The flag is
// an ephemeral view overlay; lookup failures only cost the flag.
func (s *SearchService) overlayFavorites(items []models.Activity, userID string) {
	if userID == "" || len(items) == 0 {
		return
	}

	favorites, err := s.favorites.ListByUser(userID)
	if err != nil {
		log.Printf("favorite overlay failed: %v", err)
		return
	}

	saved := make(map[string]bool, len(favorites))
	for _, f := range favorites {
		saved[f.ActivityID] = true
	}
	for i := range items {
		items[i].IsFavorite = saved[items[i].ID]
	}
}
