package models

// Favorite is a reference from a user to a saved activity. RecordedSpots is
// the availability seen when the favorite was added or last polled; capacity
// alerts are generated by comparing it against the current value.
type Favorite struct {
	ID            string `json:"id" db:"id"`
	UserID        string `json:"-" db:"user_id"`
	ActivityID    string `json:"activityId" db:"activity_id"`
	RecordedSpots int    `json:"recordedSpots" db:"recorded_spots"`
	CreatedAt     int64  `json:"createdAt" db:"created_at"`
}

// CapacityAlert records a spots-available change on a favorited activity,
// detected by polling.
type CapacityAlert struct {
	ID            string `json:"id" db:"id"`
	UserID        string `json:"-" db:"user_id"`
	ActivityID    string `json:"activityId" db:"activity_id"`
	ActivityName  string `json:"activityName,omitempty" db:"-"`
	PreviousSpots int    `json:"previousSpots" db:"previous_spots"`
	CurrentSpots  int    `json:"currentSpots" db:"current_spots"`
	CreatedAt     int64  `json:"createdAt" db:"created_at"`
}
