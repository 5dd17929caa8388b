package forecast

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleDailyJSON = `{
	"latitude": 24.125,
	"longitude": 121.25,
	"daily": {
		"time": ["2024-01-15", "2024-01-16", "2024-01-17"],
		"temperature_2m_max": [5.2, null, 7.1],
		"temperature_2m_min": [-2.0, 0.5, null],
		"precipitation_probability_max": [60, null, 10],
		"sunrise": ["2024-01-15T06:30", "2024-01-16T06:30", ""],
		"sunset": ["2024-01-15T17:10", "2024-01-16T17:11", ""]
	}
}`

func TestDaily(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("latitude") != "24.1439" {
			t.Errorf("expected latitude=24.1439, got %s", q.Get("latitude"))
		}
		if q.Get("longitude") != "121.2716" {
			t.Errorf("expected longitude=121.2716, got %s", q.Get("longitude"))
		}
		if q.Get("timezone") != "Asia/Taipei" {
			t.Errorf("expected timezone=Asia/Taipei, got %s", q.Get("timezone"))
		}
		if q.Get("daily") != "temperature_2m_max,temperature_2m_min,precipitation_probability_max,sunrise,sunset" {
			t.Errorf("unexpected daily fields: %s", q.Get("daily"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleDailyJSON))
	}))
	defer ts.Close()

	client := NewClient("TestApp/1.0")
	client.SetBaseURL(ts.URL)

	table, err := client.Daily(24.1439, 121.2716)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(table) != 3 {
		t.Fatalf("expected 3 days, got %d", len(table))
	}

	first := table[0]
	if first.Date != "2024-01-15" {
		t.Errorf("unexpected date %q", first.Date)
	}
	if first.MaxTemp == nil || *first.MaxTemp != 5.2 {
		t.Errorf("unexpected max temp: %v", first.MaxTemp)
	}
	if first.MinTemp == nil || *first.MinTemp != -2.0 {
		t.Errorf("unexpected min temp: %v", first.MinTemp)
	}
	if first.RainProbability == nil || *first.RainProbability != 60 {
		t.Errorf("unexpected rain probability: %v", first.RainProbability)
	}
	if first.Sunrise != "2024-01-15T06:30" {
		t.Errorf("unexpected sunrise %q", first.Sunrise)
	}

	// Null values stay absent
	if table[1].MaxTemp != nil {
		t.Error("null max temp should stay nil")
	}
	if table[1].RainProbability != nil {
		t.Error("null rain probability should stay nil")
	}
	if table[2].MinTemp != nil {
		t.Error("null min temp should stay nil")
	}
}

func TestDailyAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	}))
	defer ts.Close()

	client := NewClient("TestApp/1.0")
	client.SetBaseURL(ts.URL)

	_, err := client.Daily(24.1439, 121.2716)
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("unexpected status code %d", apiErr.StatusCode)
	}
}

func TestDailyValidatesCoordinates(t *testing.T) {
	client := NewClient("TestApp/1.0")

	if _, err := client.Daily(91, 0); err == nil {
		t.Error("expected validation error for latitude 91")
	}
	if _, err := client.Daily(0, -181); err == nil {
		t.Error("expected validation error for longitude -181")
	}
}

func TestTableDay(t *testing.T) {
	table := Table{
		{Date: "2024-01-15"},
		{Date: "2024-01-16"},
	}

	day, ok := table.Day("2024-01-16")
	if !ok {
		t.Fatal("expected lookup to succeed")
	}
	if day.Date != "2024-01-16" {
		t.Errorf("unexpected date %q", day.Date)
	}

	if _, ok := table.Day("2024-02-01"); ok {
		t.Error("expected lookup to fail for a date outside the table")
	}
}
