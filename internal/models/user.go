package models

// User is an authenticated account that owns children and favorites.
type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	Name         string `json:"name" db:"name"`
	PasswordHash string `json:"-" db:"password_hash"`
	CreatedAt    int64  `json:"createdAt" db:"created_at"`
}
