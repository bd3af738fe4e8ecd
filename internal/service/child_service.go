package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/famscout/activities-backend-go/internal/discovery"
	"github.com/famscout/activities-backend-go/internal/models"
	"github.com/famscout/activities-backend-go/internal/repository"
)

// ChildService handles business logic for child profiles
type ChildService struct {
	children *repository.ChildRepository
}

// NewChildService creates a new child service
func NewChildService(children *repository.ChildRepository) *ChildService {
	return &ChildService{children: children}
}

// List returns the user's children with their current ages filled in.
func (s *ChildService) List(userID string) ([]models.Child, error) {
	children, err := s.children.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range children {
		children[i].Age = discovery.AgeFromString(children[i].DateOfBirth, now)
	}
	return children, nil
}

// Get returns one child with its current age, or nil when absent.
func (s *ChildService) Get(userID, childID string) (*models.Child, error) {
	child, err := s.children.GetByID(userID, childID)
	if err != nil || child == nil {
		return child, err
	}
	child.Age = discovery.AgeFromString(child.DateOfBirth, time.Now())
	return child, nil
}

// Create validates and stores a new child profile.
func (s *ChildService) Create(userID string, child *models.Child) error {
	if err := validateChild(child); err != nil {
		return err
	}
	child.UserID = userID
	if err := s.children.Create(child); err != nil {
		return err
	}
	child.Age = discovery.AgeFromString(child.DateOfBirth, time.Now())
	return nil
}

// Update validates and rewrites a child profile. Returns false when the
// child does not exist for this user.
func (s *ChildService) Update(userID string, child *models.Child) (bool, error) {
	if err := validateChild(child); err != nil {
		return false, err
	}
	child.UserID = userID
	updated, err := s.children.Update(child)
	if err != nil || !updated {
		return updated, err
	}
	child.Age = discovery.AgeFromString(child.DateOfBirth, time.Now())
	return true, nil
}

// Delete removes a child profile and its preferences.
func (s *ChildService) Delete(userID, childID string) (bool, error) {
	return s.children.Delete(userID, childID)
}

func validateChild(child *models.Child) error {
	if strings.TrimSpace(child.Name) == "" {
		return fmt.Errorf("%w: child name is required", ErrInvalidInput)
	}
	dob, err := time.Parse(discovery.DateOfBirthLayout, child.DateOfBirth)
	if err != nil {
		return fmt.Errorf("%w: date of birth must be YYYY-MM-DD", ErrInvalidInput)
	}
	if dob.After(time.Now()) {
		return fmt.Errorf("%w: date of birth is in the future", ErrInvalidInput)
	}
	return nil
}
