package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/famscout/activities-backend-go/internal/models"
)

// FavoriteRepository handles favorites and capacity alerts
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// ListByUser returns a user's favorites, newest first.
func (r *FavoriteRepository) ListByUser(userID string) ([]models.Favorite, error) {
	query := `SELECT id, user_id, activity_id, recorded_spots, created_at
		FROM favorites WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.ActivityID, &f.RecordedSpots, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// Add stores a favorite reference; adding the same activity twice is a
// no-op that refreshes the recorded spots.
func (r *FavoriteRepository) Add(f *models.Favorite) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.CreatedAt = time.Now().Unix()

	query := `INSERT INTO favorites (id, user_id, activity_id, recorded_spots, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, activity_id) DO UPDATE SET recorded_spots=excluded.recorded_spots`

	_, err := r.db.Exec(query, f.ID, f.UserID, f.ActivityID, f.RecordedSpots, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes a favorite by activity reference.
func (r *FavoriteRepository) Remove(userID, activityID string) (bool, error) {
	result, err := r.db.Exec("DELETE FROM favorites WHERE user_id = ? AND activity_id = ?", userID, activityID)
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return n > 0, nil
}

// IsFavorite reports whether the user saved the activity.
func (r *FavoriteRepository) IsFavorite(userID, activityID string) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM favorites WHERE user_id = ? AND activity_id = ?",
		userID, activityID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// UpdateRecordedSpots stores the availability seen during the latest
// capacity poll.
func (r *FavoriteRepository) UpdateRecordedSpots(favoriteID string, spots int) error {
	_, err := r.db.Exec("UPDATE favorites SET recorded_spots = ? WHERE id = ?", spots, favoriteID)
	if err != nil {
		return fmt.Errorf("failed to update recorded spots: %w", err)
	}
	return nil
}

// InsertAlert records a detected capacity change.
func (r *FavoriteRepository) InsertAlert(a *models.CapacityAlert) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now().Unix()

	query := `INSERT INTO capacity_alerts (id, user_id, activity_id, previous_spots, current_spots, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, a.ID, a.UserID, a.ActivityID, a.PreviousSpots, a.CurrentSpots, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert capacity alert: %w", err)
	}
	return nil
}

// ListAlerts returns a user's capacity alerts, newest first.
func (r *FavoriteRepository) ListAlerts(userID string, limit int) ([]models.CapacityAlert, error) {
	if limit < 1 {
		limit = 50
	}

	query := `SELECT id, user_id, activity_id, previous_spots, current_spots, created_at
		FROM capacity_alerts WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query capacity alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.CapacityAlert
	for rows.Next() {
		var a models.CapacityAlert
		if err := rows.Scan(&a.ID, &a.UserID, &a.ActivityID, &a.PreviousSpots, &a.CurrentSpots, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan capacity alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
