package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/famscout/activities-backend-go/internal/models"
)

// PreferenceRepository handles per-child preference records and
// account-level user preferences.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetChildPreferences returns the preference record for a child, or nil when
// none has been stored.
func (r *PreferenceRepository) GetChildPreferences(childID string) (*models.ChildPreferences, error) {
	query := `SELECT child_id, activity_types, environment, radius_km, price_max,
		days, time_slots, city, updated_at
		FROM child_preferences WHERE child_id = ?`

	var p models.ChildPreferences
	var types, days, slots string
	var priceMax sql.NullFloat64

	err := r.db.QueryRow(query, childID).Scan(
		&p.ChildID, &types, &p.Environment, &p.RadiusKm, &priceMax,
		&days, &slots, &p.City, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child preferences: %w", err)
	}

	p.ActivityTypes = splitList(types)
	p.Days = splitList(days)
	p.TimeSlots = splitList(slots)
	if priceMax.Valid {
		p.PriceMax = &priceMax.Float64
	}
	return &p, nil
}

// GetChildPreferencesBatch returns stored preferences keyed by child ID for
// the given children; missing records simply have no entry.
func (r *PreferenceRepository) GetChildPreferencesBatch(childIDs []string) (map[string]*models.ChildPreferences, error) {
	result := make(map[string]*models.ChildPreferences, len(childIDs))
	if len(childIDs) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(childIDs)), ",")
	query := `SELECT child_id, activity_types, environment, radius_km, price_max,
		days, time_slots, city, updated_at
		FROM child_preferences WHERE child_id IN (` + placeholders + `)`

	args := make([]interface{}, len(childIDs))
	for i, id := range childIDs {
		args[i] = id
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query child preferences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.ChildPreferences
		var types, days, slots string
		var priceMax sql.NullFloat64

		err := rows.Scan(&p.ChildID, &types, &p.Environment, &p.RadiusKm, &priceMax,
			&days, &slots, &p.City, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child preferences: %w", err)
		}

		p.ActivityTypes = splitList(types)
		p.Days = splitList(days)
		p.TimeSlots = splitList(slots)
		if priceMax.Valid {
			v := priceMax.Float64
			p.PriceMax = &v
		}
		result[p.ChildID] = &p
	}
	return result, rows.Err()
}

// SaveChildPreferences inserts or replaces a child's preference record.
func (r *PreferenceRepository) SaveChildPreferences(p *models.ChildPreferences) error {
	p.UpdatedAt = time.Now().Unix()

	query := `INSERT INTO child_preferences
		(child_id, activity_types, environment, radius_km, price_max, days, time_slots, city, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(child_id) DO UPDATE SET
			activity_types=excluded.activity_types, environment=excluded.environment,
			radius_km=excluded.radius_km, price_max=excluded.price_max,
			days=excluded.days, time_slots=excluded.time_slots,
			city=excluded.city, updated_at=excluded.updated_at`

	var priceMax interface{}
	if p.PriceMax != nil {
		priceMax = *p.PriceMax
	}

	_, err := r.db.Exec(query,
		p.ChildID, joinList(p.ActivityTypes), strings.ToLower(p.Environment), p.RadiusKm,
		priceMax, joinList(p.Days), joinList(p.TimeSlots), p.City, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save child preferences: %w", err)
	}
	return nil
}

// GetUserPreferences returns account-level preferences, defaulting to the
// zero value when the user never saved any.
func (r *PreferenceRepository) GetUserPreferences(userID string) (*models.UserPreferences, error) {
	query := `SELECT user_id, preferred_location, hide_closed, hide_full, updated_at
		FROM user_preferences WHERE user_id = ?`

	var p models.UserPreferences
	var hideClosed, hideFull int

	err := r.db.QueryRow(query, userID).Scan(
		&p.UserID, &p.PreferredLocation, &hideClosed, &hideFull, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return &models.UserPreferences{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user preferences: %w", err)
	}

	p.HideClosed = hideClosed != 0
	p.HideFull = hideFull != 0
	return &p, nil
}

// SaveUserPreferences inserts or replaces account-level preferences.
func (r *PreferenceRepository) SaveUserPreferences(p *models.UserPreferences) error {
	p.UpdatedAt = time.Now().Unix()

	query := `INSERT INTO user_preferences (user_id, preferred_location, hide_closed, hide_full, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			preferred_location=excluded.preferred_location,
			hide_closed=excluded.hide_closed, hide_full=excluded.hide_full,
			updated_at=excluded.updated_at`

	_, err := r.db.Exec(query, p.UserID, p.PreferredLocation,
		boolToInt(p.HideClosed), boolToInt(p.HideFull), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save user preferences: %w", err)
	}
	return nil
}
