package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/famscout/activities-backend-go/internal/models"
)

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user account.
func (r *UserRepository) Create(u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now().Unix()

	query := `INSERT INTO users (id, email, name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail returns the user with the given email, or nil when absent.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?`

	var u models.User
	err := r.db.QueryRow(query, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

// GetByID returns the user with the given ID, or nil when absent.
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	query := `SELECT id, email, name, password_hash, created_at FROM users WHERE id = ?`

	var u models.User
	err := r.db.QueryRow(query, id).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &u, nil
}
