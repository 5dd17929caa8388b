package db

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the peak gazetteer database
type DB struct {
	*sql.DB
}

// Peak is one gazetteer entry used for name autocomplete
type Peak struct {
	Name       string  `json:"name"`
	Region     string  `json:"region"`
	ElevationM int     `json:"elevation_m"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// NewDB opens the gazetteer database and ensures the schema exists
func NewDB() (*DB, error) {
	path := getEnvOrDefault("PEAKS_DB", "data/peaks.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DB{db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS peaks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			region TEXT NOT NULL DEFAULT '',
			elevation_m INTEGER NOT NULL DEFAULT 0,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_peaks_name ON peaks(name);
	`)
	return err
}

// SearchPeaks returns peaks whose name matches the query, prefix matches
// first, then taller peaks first within each group. The query is treated as
// a literal, not a LIKE pattern.
func (db *DB) SearchPeaks(query string) ([]Peak, error) {
	pattern := escapeLike(query)
	rows, err := db.Query(`
		SELECT name, region, elevation_m, latitude, longitude
		FROM peaks
		WHERE name LIKE '%' || ? || '%' ESCAPE '\'
		ORDER BY
			CASE WHEN name LIKE ? || '%' ESCAPE '\' THEN 0 ELSE 1 END,
			elevation_m DESC,
			name
		LIMIT 10
	`, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var peaks []Peak
	for rows.Next() {
		var p Peak
		if err := rows.Scan(&p.Name, &p.Region, &p.ElevationM, &p.Latitude, &p.Longitude); err != nil {
			return nil, err
		}
		peaks = append(peaks, p)
	}
	return peaks, rows.Err()
}

// InsertPeak adds one gazetteer entry
func (db *DB) InsertPeak(p Peak) error {
	_, err := db.Exec(
		"INSERT INTO peaks (name, region, elevation_m, latitude, longitude) VALUES (?, ?, ?, ?, ?)",
		p.Name, p.Region, p.ElevationM, p.Latitude, p.Longitude,
	)
	return err
}

// escapeLike neutralizes LIKE metacharacters in user input
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
