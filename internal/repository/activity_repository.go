package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/famscout/activities-backend-go/internal/models"
	"github.com/famscout/activities-backend-go/internal/spatial"
)

const activityColumns = `id, name, provider, category, subtype, description,
	location_name, location, city, latitude, longitude,
	cost, age_min, age_max, environment, days, schedule,
	spots_available, total_spots, is_closed, created_at, updated_at`

// ActivityRepository handles database operations for activities
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// buildConditions translates an ActivityFilter into SQL conditions. The
// radius constraint is only a bounding-box prefilter here; the exact
// haversine check happens in Search after scanning.
func buildConditions(filter models.ActivityFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, "(name LIKE ? OR description LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if len(filter.Categories) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.Categories)), ",")
		conditions = append(conditions, "category COLLATE NOCASE IN ("+placeholders+")")
		for _, c := range filter.Categories {
			args = append(args, c)
		}
	}
	if filter.AgeMin != nil && filter.AgeMax != nil {
		// Range overlap: the activity's window intersects the requested one
		conditions = append(conditions, "age_min <= ? AND age_max >= ?")
		args = append(args, *filter.AgeMax, *filter.AgeMin)
	}
	if filter.CostMin != nil {
		conditions = append(conditions, "cost >= ?")
		args = append(args, *filter.CostMin)
	}
	if filter.CostMax != nil {
		conditions = append(conditions, "cost <= ?")
		args = append(args, *filter.CostMax)
	}
	if filter.City != "" {
		conditions = append(conditions, "city = ? COLLATE NOCASE")
		args = append(args, filter.City)
	}
	if filter.Environment != "" {
		// Activities tagged "all" or untagged satisfy any environment choice
		conditions = append(conditions, "(environment = ? OR environment = 'all' OR environment = '')")
		args = append(args, strings.ToLower(filter.Environment))
	}
	if len(filter.Days) > 0 {
		var dayConds []string
		for _, d := range filter.Days {
			dayConds = append(dayConds, "instr(days, ?) > 0")
			args = append(args, strings.ToLower(d))
		}
		// An activity with no day schedule is treated as running every day
		conditions = append(conditions, "(days = '' OR "+strings.Join(dayConds, " OR ")+")")
	}
	if filter.HideClosed {
		conditions = append(conditions, "is_closed = 0")
	}
	if filter.HideFull {
		conditions = append(conditions, "spots_available > 0")
	}
	if filter.Latitude != nil && filter.Longitude != nil && filter.RadiusKm > 0 {
		minLat, minLon, maxLat, maxLon := spatial.BoundingBox(*filter.Latitude, *filter.Longitude, filter.RadiusKm)
		conditions = append(conditions, "latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?")
		args = append(args, minLat, maxLat, minLon, maxLon)
	}

	return conditions, args
}

func orderClause(sortBy string) string {
	switch sortBy {
	case "name":
		return " ORDER BY name ASC"
	case "cost":
		return " ORDER BY cost ASC"
	case "ageMin":
		return " ORDER BY age_min ASC"
	case "newest":
		return " ORDER BY created_at DESC"
	default:
		return " ORDER BY name ASC"
	}
}

// Search retrieves activities matching the filter with pagination. For
// coordinate searches the bounding-box candidates are post-filtered with the
// exact haversine distance before paging, so the reported total reflects the
// true radius match.
func (r *ActivityRepository) Search(filter models.ActivityFilter) ([]models.Activity, int64, error) {
	conditions, args := buildConditions(filter)

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	radiusSearch := filter.Latitude != nil && filter.Longitude != nil && filter.RadiusKm > 0
	if radiusSearch {
		return r.searchWithinRadius(filter, where, args)
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM activities" + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	query := "SELECT " + activityColumns + " FROM activities" + where +
		orderClause(filter.SortBy) + " LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities, err := scanActivities(rows)
	if err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

// searchWithinRadius loads all bounding-box candidates, applies the exact
// distance check, then pages in memory. Candidate sets are small (hundreds)
// because the box already excludes everything far away.
func (r *ActivityRepository) searchWithinRadius(filter models.ActivityFilter, where string, args []interface{}) ([]models.Activity, int64, error) {
	query := "SELECT " + activityColumns + " FROM activities" + where + orderClause(filter.SortBy)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	candidates, err := scanActivities(rows)
	if err != nil {
		return nil, 0, err
	}

	var matched []models.Activity
	for _, a := range candidates {
		if !a.HasCoordinates() {
			continue
		}
		d := spatial.HaversineDistanceKm(*filter.Latitude, *filter.Longitude, *a.Latitude, *a.Longitude)
		if d <= filter.RadiusKm {
			matched = append(matched, a)
		}
	}

	total := int64(len(matched))
	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

// GetByID retrieves a single activity by ID
func (r *ActivityRepository) GetByID(id string) (*models.Activity, error) {
	query := "SELECT " + activityColumns + " FROM activities WHERE id = ?"

	row := r.db.QueryRow(query, id)
	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

// GetByBounds retrieves activities with coordinates inside a viewport, for
// map clustering.
func (r *ActivityRepository) GetByBounds(minLat, minLon, maxLat, maxLon float64, limit int) ([]models.Activity, error) {
	if limit < 1 {
		limit = 500
	}

	query := "SELECT " + activityColumns + ` FROM activities
		WHERE latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?
		ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.Query(query, minLat, maxLat, minLon, maxLon, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities by bounds: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

// Aggregate computes category counts and the price range over the full
// (unpaged) match set of the filter.
func (r *ActivityRepository) Aggregate(filter models.ActivityFilter) (*models.Aggregations, error) {
	conditions, args := buildConditions(filter)
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	agg := &models.Aggregations{}

	rows, err := r.db.Query("SELECT category, COUNT(*) FROM activities"+where+
		" GROUP BY category ORDER BY COUNT(*) DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		agg.Categories = append(agg.Categories, c)
	}

	var minCost, maxCost sql.NullFloat64
	err = r.db.QueryRow("SELECT MIN(cost), MAX(cost) FROM activities"+where, args...).
		Scan(&minCost, &maxCost)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate price range: %w", err)
	}
	if minCost.Valid && maxCost.Valid {
		agg.PriceRange = &models.PriceRange{Min: minCost.Float64, Max: maxCost.Float64}
	}

	return agg, nil
}

// Upsert inserts or replaces an activity record (provider imports and tests)
func (r *ActivityRepository) Upsert(a *models.Activity) error {
	now := time.Now().Unix()
	if a.CreatedAt == 0 {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	query := `INSERT INTO activities (` + activityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, provider=excluded.provider, category=excluded.category,
			subtype=excluded.subtype, description=excluded.description,
			location_name=excluded.location_name, location=excluded.location,
			city=excluded.city, latitude=excluded.latitude, longitude=excluded.longitude,
			cost=excluded.cost, age_min=excluded.age_min, age_max=excluded.age_max,
			environment=excluded.environment, days=excluded.days, schedule=excluded.schedule,
			spots_available=excluded.spots_available, total_spots=excluded.total_spots,
			is_closed=excluded.is_closed, updated_at=excluded.updated_at`

	_, err := r.db.Exec(query,
		a.ID, a.Name, a.Provider, a.Category, a.Subtype, a.Description,
		a.LocationName, a.Location, a.City, nullFloat(a.Latitude), nullFloat(a.Longitude),
		a.Cost, a.AgeMin, a.AgeMax, strings.ToLower(a.Environment), joinList(a.Days), a.Schedule,
		a.SpotsAvailable, a.TotalSpots, boolToInt(a.IsClosed), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert activity: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanActivity(row rowScanner) (*models.Activity, error) {
	var a models.Activity
	var lat, lon sql.NullFloat64
	var days string
	var isClosed int

	err := row.Scan(
		&a.ID, &a.Name, &a.Provider, &a.Category, &a.Subtype, &a.Description,
		&a.LocationName, &a.Location, &a.City, &lat, &lon,
		&a.Cost, &a.AgeMin, &a.AgeMax, &a.Environment, &days, &a.Schedule,
		&a.SpotsAvailable, &a.TotalSpots, &isClosed, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid {
		a.Latitude = &lat.Float64
	}
	if lon.Valid {
		a.Longitude = &lon.Float64
	}
	a.Days = splitList(days)
	a.IsClosed = isClosed != 0

	return &a, nil
}

func scanActivities(rows *sql.Rows) ([]models.Activity, error) {
	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
