// Command import-peaks loads a peak gazetteer CSV into the local database
// used for name autocomplete. Expected columns:
//
//	name,region,elevation_m,latitude,longitude
//
// Usage: import-peaks [peaks.csv]
package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/doog8889-droid/hiking-helper/internal/db"
)

const defaultCSV = "data/peaks.csv"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := defaultCSV
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", csvPath, err)
	}
	defer f.Close()

	database, err := db.NewDB()
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer database.Close()

	count, err := importPeaks(database.DB, f)
	if err != nil {
		return fmt.Errorf("failed to import peaks: %w", err)
	}

	fmt.Printf("Imported %d peaks from %s\n", count, csvPath)
	return nil
}

func importPeaks(db *sql.DB, r io.Reader) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Re-imports replace the whole table
	if _, err := tx.Exec("DELETE FROM peaks"); err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare("INSERT INTO peaks (name, region, elevation_m, latitude, longitude) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	reader := csv.NewReader(r)
	reader.LazyQuotes = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, err
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		if len(record) < 5 {
			log.Printf("Skipping short record: %v", record)
			continue
		}

		var elevation int
		var lat, lon float64
		if _, err := fmt.Sscanf(record[2], "%d", &elevation); err != nil {
			log.Printf("Skipping record with bad elevation %q: %v", record[2], err)
			continue
		}
		if _, err := fmt.Sscanf(record[3], "%f", &lat); err != nil {
			log.Printf("Skipping record with bad latitude %q: %v", record[3], err)
			continue
		}
		if _, err := fmt.Sscanf(record[4], "%f", &lon); err != nil {
			log.Printf("Skipping record with bad longitude %q: %v", record[4], err)
			continue
		}

		if _, err := stmt.Exec(record[0], record[1], elevation, lat, lon); err != nil {
			return 0, err
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}
