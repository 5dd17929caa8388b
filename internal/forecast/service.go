package forecast

import (
	"log"
	"time"

	"github.com/sixdouglas/suncalc"
)

// sunStampLayout matches the ISO-like shape Open-Meteo uses for sunrise and
// sunset, so downstream trimming treats both sources the same.
const sunStampLayout = "2006-01-02T15:04"

// Service wraps the API client and patches gaps in the data it returns
type Service struct {
	client *Client
	zone   *time.Location
}

// NewService creates a new forecast service
func NewService(client *Client) *Service {
	zone, err := time.LoadLocation(Timezone)
	if err != nil {
		log.Printf("Failed to load %s zone, using fixed offset: %v", Timezone, err)
		zone = time.FixedZone("CST", 8*60*60)
	}

	return &Service{
		client: client,
		zone:   zone,
	}
}

// Daily returns the forecast table for the given coordinates. Days the API
// returned without sunrise/sunset are filled with locally computed times, so
// every entry in the table carries usable sun times.
func (s *Service) Daily(lat, lon float64) (Table, error) {
	table, err := s.client.Daily(lat, lon)
	if err != nil {
		return nil, err
	}

	for i := range table {
		s.fillSunTimes(&table[i], lat, lon)
	}

	return table, nil
}

// fillSunTimes computes missing sunrise/sunset for a day from its coordinates.
// Temperatures and rain probability are left as delivered; their absence is
// rendered by the composer, not repaired here.
func (s *Service) fillSunTimes(day *Day, lat, lon float64) {
	if day.Sunrise != "" && day.Sunset != "" {
		return
	}

	date, err := time.ParseInLocation("2006-01-02", day.Date, s.zone)
	if err != nil {
		log.Printf("Unparseable forecast date %q: %v", day.Date, err)
		return
	}

	// Noon keeps the computation anchored inside the local calendar day.
	times := suncalc.GetTimes(date.Add(12*time.Hour), lat, lon)

	if day.Sunrise == "" {
		day.Sunrise = times["sunrise"].Value.In(s.zone).Format(sunStampLayout)
	}
	if day.Sunset == "" {
		day.Sunset = times["sunset"].Value.In(s.zone).Format(sunStampLayout)
	}
}
