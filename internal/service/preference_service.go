package service

import (
	"fmt"
	"time"

	"github.com/famscout/activities-backend-go/internal/config"
	"github.com/famscout/activities-backend-go/internal/discovery"
	"github.com/famscout/activities-backend-go/internal/models"
	"github.com/famscout/activities-backend-go/internal/repository"
)

// PreferenceService handles per-child and account-level preferences and the
// preference merge.
type PreferenceService struct {
	prefs    *repository.PreferenceRepository
	children *repository.ChildRepository
	cfg      *config.Config
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(prefs *repository.PreferenceRepository, children *repository.ChildRepository, cfg *config.Config) *PreferenceService {
	return &PreferenceService{prefs: prefs, children: children, cfg: cfg}
}

// GetChildPreferences returns a child's stored preferences after verifying
// ownership. A child with no record yields nil.
func (s *PreferenceService) GetChildPreferences(userID, childID string) (*models.ChildPreferences, error) {
	child, err := s.children.GetByID(userID, childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, fmt.Errorf("%w: child not found", ErrInvalidInput)
	}
	return s.prefs.GetChildPreferences(childID)
}

// SaveChildPreferences stores a child's preferences after verifying
// ownership.
func (s *PreferenceService) SaveChildPreferences(userID string, p *models.ChildPreferences) error {
	child, err := s.children.GetByID(userID, p.ChildID)
	if err != nil {
		return err
	}
	if child == nil {
		return fmt.Errorf("%w: child not found", ErrInvalidInput)
	}
	return s.prefs.SaveChildPreferences(p)
}

// GetUserPreferences returns the account-level preferences.
func (s *PreferenceService) GetUserPreferences(userID string) (*models.UserPreferences, error) {
	return s.prefs.GetUserPreferences(userID)
}

// SaveUserPreferences stores the account-level preferences.
func (s *PreferenceService) SaveUserPreferences(userID string, p *models.UserPreferences) error {
	p.UserID = userID
	return s.prefs.SaveUserPreferences(p)
}

// MergedFilter merges the selected children's preferences into one effective
// filter. Children not owned by the user are ignored; an empty selection
// merges every child on the account.
func (s *PreferenceService) MergedFilter(userID string, childIDs []string, mode string) (models.MergedFilter, error) {
	if mode != discovery.MergeModeAnd {
		mode = discovery.MergeModeOr
	}

	children, err := s.children.ListByUser(userID)
	if err != nil {
		return models.MergedFilter{}, err
	}

	selected := children
	if len(childIDs) > 0 {
		wanted := make(map[string]bool, len(childIDs))
		for _, id := range childIDs {
			wanted[id] = true
		}
		selected = selected[:0]
		for _, c := range children {
			if wanted[c.ID] {
				selected = append(selected, c)
			}
		}
	}
	if len(selected) == 0 {
		return models.MergedFilter{}, nil
	}

	ids := make([]string, len(selected))
	for i, c := range selected {
		ids[i] = c.ID
	}
	prefsByChild, err := s.prefs.GetChildPreferencesBatch(ids)
	if err != nil {
		return models.MergedFilter{}, err
	}

	global, err := s.prefs.GetUserPreferences(userID)
	if err != nil {
		return models.MergedFilter{}, err
	}

	now := time.Now()
	in := discovery.MergeInput{
		Prefs:           make([]*models.ChildPreferences, len(selected)),
		Ages:            make([]int, len(selected)),
		Genders:         make([]string, len(selected)),
		Mode:            mode,
		Global:          global,
		DefaultRadiusKm: s.cfg.DefaultRadiusKm,
		DefaultPriceMax: s.cfg.DefaultPriceMax,
	}
	for i, c := range selected {
		in.Prefs[i] = prefsByChild[c.ID]
		in.Ages[i] = discovery.AgeFromString(c.DateOfBirth, now)
		in.Genders[i] = c.Gender
	}

	return discovery.MergePreferences(in), nil
}
