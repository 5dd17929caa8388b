package db

import (
	"database/sql"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for testing
	sqlDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	// Initialize schema
	if err := initSchema(sqlDB); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	testDB := &DB{sqlDB}

	testData := []Peak{
		{Name: "合歡山主峰", Region: "南投縣", ElevationM: 3417, Latitude: 24.1439, Longitude: 121.2716},
		{Name: "合歡山東峰", Region: "南投縣", ElevationM: 3421, Latitude: 24.1366, Longitude: 121.2801},
		{Name: "石門山", Region: "南投縣", ElevationM: 3237, Latitude: 24.1530, Longitude: 121.2880},
		{Name: "玉山主峰", Region: "南投縣", ElevationM: 3952, Latitude: 23.4700, Longitude: 120.9575},
		{Name: "雪山主峰", Region: "臺中市", ElevationM: 3886, Latitude: 24.3833, Longitude: 121.2333},
	}

	for _, peak := range testData {
		if err := testDB.InsertPeak(peak); err != nil {
			t.Fatalf("Failed to insert test data: %v", err)
		}
	}

	return testDB
}

func TestNewDBUnusablePath(t *testing.T) {
	// A directory is not a database file, so the connection check fails and
	// NewDB must return the error (closing the handle it opened)
	t.Setenv("PEAKS_DB", t.TempDir())

	if _, err := NewDB(); err == nil {
		t.Error("expected an error for an unusable database path")
	}
}

func TestSearchPeaks(t *testing.T) {
	testDB := setupTestDB(t)

	peaks, err := testDB.SearchPeaks("合歡")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(peaks) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(peaks))
	}
	// Taller peak ranks first within the prefix group
	if peaks[0].Name != "合歡山東峰" {
		t.Errorf("expected 合歡山東峰 first, got %q", peaks[0].Name)
	}
}

func TestSearchPeaksSubstring(t *testing.T) {
	testDB := setupTestDB(t)

	peaks, err := testDB.SearchPeaks("主峰")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(peaks) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(peaks))
	}
	// No prefix matches, so tallest first
	if peaks[0].Name != "玉山主峰" {
		t.Errorf("expected 玉山主峰 first, got %q", peaks[0].Name)
	}
}

func TestSearchPeaksNoMatch(t *testing.T) {
	testDB := setupTestDB(t)

	peaks, err := testDB.SearchPeaks("不存在的山")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(peaks) != 0 {
		t.Errorf("expected no matches, got %d", len(peaks))
	}
}

func TestSearchPeaksLiteralWildcards(t *testing.T) {
	testDB := setupTestDB(t)

	// LIKE metacharacters in the query must not match everything
	for _, query := range []string{"%", "_", "合%峰", "__山"} {
		peaks, err := testDB.SearchPeaks(query)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", query, err)
		}
		if len(peaks) != 0 {
			t.Errorf("query %q: expected no matches, got %d", query, len(peaks))
		}
	}

	// A peak whose name contains a literal metacharacter is still findable
	if err := testDB.InsertPeak(Peak{Name: "測試_山", Latitude: 24.0, Longitude: 121.0}); err != nil {
		t.Fatalf("Failed to insert test data: %v", err)
	}
	peaks, err := testDB.SearchPeaks("測試_山")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(peaks) != 1 || peaks[0].Name != "測試_山" {
		t.Errorf("expected the literal-underscore peak, got %+v", peaks)
	}
}

func TestSearchPeaksFields(t *testing.T) {
	testDB := setupTestDB(t)

	peaks, err := testDB.SearchPeaks("石門山")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(peaks) != 1 {
		t.Fatalf("expected 1 match, got %d", len(peaks))
	}

	p := peaks[0]
	if p.Region != "南投縣" || p.ElevationM != 3237 {
		t.Errorf("unexpected fields: %+v", p)
	}
	if p.Latitude != 24.1530 || p.Longitude != 121.2880 {
		t.Errorf("unexpected coordinates: %+v", p)
	}
}
