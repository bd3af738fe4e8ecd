package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/famscout/activities-backend-go/internal/models"
)

const childColumns = `id, user_id, name, date_of_birth, gender, color, city,
	latitude, longitude, created_at, updated_at`

// ChildRepository handles database operations for child profiles
type ChildRepository struct {
	db *sql.DB
}

// NewChildRepository creates a new child repository
func NewChildRepository(db *sql.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

// ListByUser returns all children owned by a user, oldest profile first.
func (r *ChildRepository) ListByUser(userID string) ([]models.Child, error) {
	query := "SELECT " + childColumns + " FROM children WHERE user_id = ? ORDER BY created_at ASC"

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, *c)
	}
	return children, rows.Err()
}

// GetByID returns a child owned by the user, or nil when absent. Ownership
// is enforced in the query so one user can never read another's children.
func (r *ChildRepository) GetByID(userID, childID string) (*models.Child, error) {
	query := "SELECT " + childColumns + " FROM children WHERE id = ? AND user_id = ?"

	c, err := scanChild(r.db.QueryRow(query, childID, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	return c, nil
}

// Create inserts a new child profile and assigns its ID.
func (r *ChildRepository) Create(c *models.Child) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().Unix()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `INSERT INTO children (` + childColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		c.ID, c.UserID, c.Name, c.DateOfBirth, c.Gender, c.Color, c.City,
		nullFloat(c.Latitude), nullFloat(c.Longitude), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create child: %w", err)
	}
	return nil
}

// Update rewrites a child profile. Returns false when the child does not
// exist or belongs to another user.
func (r *ChildRepository) Update(c *models.Child) (bool, error) {
	c.UpdatedAt = time.Now().Unix()

	query := `UPDATE children SET name = ?, date_of_birth = ?, gender = ?, color = ?,
		city = ?, latitude = ?, longitude = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`
	result, err := r.db.Exec(query,
		c.Name, c.DateOfBirth, c.Gender, c.Color, c.City,
		nullFloat(c.Latitude), nullFloat(c.Longitude), c.UpdatedAt,
		c.ID, c.UserID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update child: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update child: %w", err)
	}
	return n > 0, nil
}

// Delete removes a child profile; preferences cascade.
func (r *ChildRepository) Delete(userID, childID string) (bool, error) {
	result, err := r.db.Exec("DELETE FROM children WHERE id = ? AND user_id = ?", childID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete child: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete child: %w", err)
	}
	return n > 0, nil
}

func scanChild(row rowScanner) (*models.Child, error) {
	var c models.Child
	var lat, lon sql.NullFloat64

	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.DateOfBirth, &c.Gender, &c.Color, &c.City,
		&lat, &lon, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid {
		c.Latitude = &lat.Float64
	}
	if lon.Valid {
		c.Longitude = &lon.Float64
	}
	return &c, nil
}
