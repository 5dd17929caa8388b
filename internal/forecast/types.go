package forecast

// Day holds one day of the forecast table. Open-Meteo reports daily values
// as nullable arrays, so the numeric fields stay pointers; absence is a
// valid state the composer knows how to render.
type Day struct {
	Date            string   `json:"date"`
	MaxTemp         *float64 `json:"max_temp"`
	MinTemp         *float64 `json:"min_temp"`
	RainProbability *int     `json:"rain_probability"`
	Sunrise         string   `json:"sunrise"`
	Sunset          string   `json:"sunset"`
}

// Table is an ordered forecast, one entry per day, dates ascending and
// unique within the table.
type Table []Day

// Day returns the entry for an ISO date (YYYY-MM-DD), if present.
func (t Table) Day(date string) (*Day, bool) {
	for i := range t {
		if t[i].Date == date {
			return &t[i], true
		}
	}
	return nil, false
}
