package forecast

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

const gappyDailyJSON = `{
	"daily": {
		"time": ["2024-01-15", "2024-01-16"],
		"temperature_2m_max": [5.2, null],
		"temperature_2m_min": [-2.0, null],
		"precipitation_probability_max": [60, null],
		"sunrise": ["2024-01-15T06:30", ""],
		"sunset": ["2024-01-15T17:10", ""]
	}
}`

func newTestService(t *testing.T, body string) (*Service, func()) {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))

	client := NewClient("TestApp/1.0")
	client.SetBaseURL(ts.URL)

	return NewService(client), ts.Close
}

func TestServiceFillsMissingSunTimes(t *testing.T) {
	svc, done := newTestService(t, gappyDailyJSON)
	defer done()

	table, err := svc.Daily(24.1439, 121.2716)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 days, got %d", len(table))
	}

	// API-provided values pass through untouched
	if table[0].Sunrise != "2024-01-15T06:30" {
		t.Errorf("provided sunrise was modified: %q", table[0].Sunrise)
	}
	if table[0].Sunset != "2024-01-15T17:10" {
		t.Errorf("provided sunset was modified: %q", table[0].Sunset)
	}

	// Missing values are computed locally in the same shape
	stamp := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}$`)
	if !stamp.MatchString(table[1].Sunrise) {
		t.Errorf("computed sunrise has unexpected shape: %q", table[1].Sunrise)
	}
	if !stamp.MatchString(table[1].Sunset) {
		t.Errorf("computed sunset has unexpected shape: %q", table[1].Sunset)
	}

	// Numeric gaps are not repaired
	if table[1].MaxTemp != nil || table[1].MinTemp != nil || table[1].RainProbability != nil {
		t.Error("numeric gaps must stay absent")
	}
}

func TestServicePropagatesClientError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient("TestApp/1.0")
	client.SetBaseURL(ts.URL)

	if _, err := NewService(client).Daily(24.1439, 121.2716); err == nil {
		t.Error("expected upstream error to propagate")
	}
}
