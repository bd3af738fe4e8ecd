package database

import (
	"database/sql"
	"fmt"
	"log"
	"sort"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered schema history. DDL is embedded so the binary is
// self-contained; new changes append a new version, existing entries are
// frozen.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_users",
		SQL: `
			CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL,
				password_hash TEXT NOT NULL,
				created_at INTEGER NOT NULL
			);
			CREATE TABLE IF NOT EXISTS user_preferences (
				user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
				preferred_location TEXT NOT NULL DEFAULT '',
				hide_closed INTEGER NOT NULL DEFAULT 0,
				hide_full INTEGER NOT NULL DEFAULT 0,
				updated_at INTEGER NOT NULL
			);
		`,
	},
	{
		Version: 2,
		Name:    "create_children",
		SQL: `
			CREATE TABLE IF NOT EXISTS children (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				name TEXT NOT NULL,
				date_of_birth TEXT NOT NULL,
				gender TEXT NOT NULL DEFAULT '',
				color TEXT NOT NULL DEFAULT '',
				city TEXT NOT NULL DEFAULT '',
				latitude REAL,
				longitude REAL,
				created_at INTEGER NOT NULL,
				updated_at INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_children_user ON children(user_id);
			CREATE TABLE IF NOT EXISTS child_preferences (
				child_id TEXT PRIMARY KEY REFERENCES children(id) ON DELETE CASCADE,
				activity_types TEXT NOT NULL DEFAULT '',
				environment TEXT NOT NULL DEFAULT '',
				radius_km REAL NOT NULL DEFAULT 0,
				price_max REAL,
				days TEXT NOT NULL DEFAULT '',
				time_slots TEXT NOT NULL DEFAULT '',
				city TEXT NOT NULL DEFAULT '',
				updated_at INTEGER NOT NULL
			);
		`,
	},
	{
		Version: 3,
		Name:    "create_activities",
		SQL: `
			CREATE TABLE IF NOT EXISTS activities (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				provider TEXT NOT NULL DEFAULT '',
				category TEXT NOT NULL DEFAULT '',
				subtype TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				location_name TEXT NOT NULL DEFAULT '',
				location TEXT NOT NULL DEFAULT '',
				city TEXT NOT NULL DEFAULT '',
				latitude REAL,
				longitude REAL,
				cost REAL NOT NULL DEFAULT 0,
				age_min INTEGER NOT NULL DEFAULT 0,
				age_max INTEGER NOT NULL DEFAULT 18,
				environment TEXT NOT NULL DEFAULT '',
				days TEXT NOT NULL DEFAULT '',
				schedule TEXT NOT NULL DEFAULT '',
				spots_available INTEGER NOT NULL DEFAULT 0,
				total_spots INTEGER NOT NULL DEFAULT 0,
				is_closed INTEGER NOT NULL DEFAULT 0,
				created_at INTEGER NOT NULL,
				updated_at INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_activities_city ON activities(city);
			CREATE INDEX IF NOT EXISTS idx_activities_category ON activities(category);
			CREATE INDEX IF NOT EXISTS idx_activities_coords ON activities(latitude, longitude);
			CREATE INDEX IF NOT EXISTS idx_activities_created ON activities(created_at);
		`,
	},
	{
		Version: 4,
		Name:    "create_favorites",
		SQL: `
			CREATE TABLE IF NOT EXISTS favorites (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				activity_id TEXT NOT NULL,
				recorded_spots INTEGER NOT NULL DEFAULT 0,
				created_at INTEGER NOT NULL,
				UNIQUE(user_id, activity_id)
			);
			CREATE TABLE IF NOT EXISTS capacity_alerts (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				activity_id TEXT NOT NULL,
				previous_spots INTEGER NOT NULL,
				current_spots INTEGER NOT NULL,
				created_at INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_capacity_alerts_user ON capacity_alerts(user_id, created_at);
		`,
	},
}

// Migrate applies all pending migrations in version order.
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	pending := make([]Migration, 0, len(migrations))
	for _, m := range migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	for _, m := range pending {
		err := Transaction(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
			}
			if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

// initMigrationsTable creates the migrations tracking table
func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// appliedMigrations returns the set of applied migration versions
func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, nil
}
