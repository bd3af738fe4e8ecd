package models

// Child represents a child profile owned by the authenticated user.
type Child struct {
	ID          string   `json:"id" db:"id"`
	UserID      string   `json:"-" db:"user_id"`
	Name        string   `json:"name" db:"name"`
	DateOfBirth string   `json:"dateOfBirth" db:"date_of_birth"` // YYYY-MM-DD
	Gender      string   `json:"gender,omitempty" db:"gender"`
	Color       string   `json:"color,omitempty" db:"color"` // tag color for list/calendar views
	City        string   `json:"city,omitempty" db:"city"`
	Latitude    *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64 `json:"longitude,omitempty" db:"longitude"`
	CreatedAt   int64    `json:"createdAt" db:"created_at"`
	UpdatedAt   int64    `json:"updatedAt" db:"updated_at"`

	// Age is computed from DateOfBirth at read time, never stored
	Age int `json:"age" db:"-"`
}
