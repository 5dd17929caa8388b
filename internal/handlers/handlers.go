package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/doog8889-droid/hiking-helper/internal/calendar"
	"github.com/doog8889-droid/hiking-helper/internal/db"
	"github.com/doog8889-droid/hiking-helper/internal/forecast"
	"github.com/doog8889-droid/hiking-helper/internal/geocode"
	"github.com/doog8889-droid/hiking-helper/internal/itinerary"
	"github.com/doog8889-droid/hiking-helper/internal/session"
)

const defaultStartClock = "06:00"

// Gazetteer defines the peak database operations needed by handlers
type Gazetteer interface {
	SearchPeaks(query string) ([]db.Peak, error)
	Ping() error
}

// Resolver turns a place name into coordinates
type Resolver interface {
	Resolve(placeName string) (geocode.Location, bool)
}

// Forecaster fetches the daily forecast table for coordinates
type Forecaster interface {
	Daily(lat, lon float64) (forecast.Table, error)
}

// Handlers holds dependencies for HTTP handlers
type Handlers struct {
	db         Gazetteer
	resolver   Resolver
	forecaster Forecaster
	session    *session.State
	templates  *template.Template
}

// New creates a new Handlers instance
func New(database *db.DB, resolver Resolver, forecaster Forecaster) *Handlers {
	// Parse templates
	tmpl, err := template.ParseGlob("templates/*.html")
	if err != nil {
		log.Printf("Warning: Failed to parse templates: %v", err)
	}

	h := &Handlers{
		resolver:   resolver,
		forecaster: forecaster,
		session:    session.NewState(),
		templates:  tmpl,
	}
	if database != nil {
		h.db = database
	}
	return h
}

// HandleIndex handles the main page
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if h.templates != nil {
		err := h.templates.ExecuteTemplate(w, "index.html", nil)
		if err != nil {
			log.Printf("Error executing template: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	} else {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
	<title>登山行程整合助手</title>
</head>
<body>
	<h1>🏔️ 登山行程整合助手</h1>
	<p>Hiking trip planner - templates not loaded</p>
</body>
</html>`))
	}
}

// HandleHealth handles health check endpoint
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")

	status := "ok"
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status = "degraded"
		}
	} else {
		status = "no_database"
	}

	w.Write([]byte(`{"status":"` + status + `"}`))
}

// searchResponse is the payload for a successful location search
type searchResponse struct {
	Query    string           `json:"query"`
	Location geocode.Location `json:"location"`
	Forecast forecast.Table   `json:"forecast"`
	Warning  string           `json:"warning,omitempty"`
}

// HandleSearch resolves a place name and fetches its forecast table. The
// result becomes the session's last search. A failed resolution is a 404; a
// failed forecast fetch degrades to a warning with an empty table.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query().Get("q")

	loc, ok := h.resolver.Resolve(query)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "location not found"})
		return
	}

	resp := searchResponse{Query: query, Location: loc}

	table, err := h.forecaster.Daily(loc.Latitude, loc.Longitude)
	if err != nil {
		log.Printf("Forecast error for %q: %v", query, err)
		resp.Warning = "定位成功但查無天氣資料。"
		table = forecast.Table{}
	}
	resp.Forecast = table

	h.session.SetSearch(query, loc, table)

	writeJSON(w, http.StatusOK, resp)
}

// HandleSuggest performs peak name autocomplete against the local gazetteer
func (h *Handlers) HandleSuggest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query().Get("q")
	if len([]rune(q)) < 2 || h.db == nil {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
		return
	}

	peaks, err := h.db.SearchPeaks(q)
	if err != nil {
		log.Printf("Suggest error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if peaks == nil {
		peaks = []db.Peak{}
	}

	writeJSON(w, http.StatusOK, peaks)
}

// planResponse carries everything the page needs to render the trip preview
// and its action links.
type planResponse struct {
	Title           string `json:"title"`
	Details         string `json:"details"`
	MapURL          string `json:"map_url"`
	TrailURL        string `json:"trail_url"`
	CalendarURL     string `json:"calendar_url"`
	ICSURL          string `json:"ics_url"`
	QRURL           string `json:"qr_url"`
	ForecastMatched bool   `json:"forecast_matched"`
}

// HandlePlan composes the itinerary for the confirmed trip form and returns
// the text plus all derived links.
func (h *Handlers) HandlePlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, start, err := h.parsePlan(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	day, matched := h.session.ForecastDay(req.Date.Format("2006-01-02"))
	details := itinerary.Compose(req, day)
	title := calendar.Title(req.Destination, req.RouteNote)

	passthrough := url.Values{}
	passthrough.Set("destination", req.Destination)
	passthrough.Set("route", req.RouteNote)
	passthrough.Set("date", req.Date.Format("2006-01-02"))
	passthrough.Set("time", start.Format("15:04"))
	passthrough.Set("notes", req.Notes)

	writeJSON(w, http.StatusOK, planResponse{
		Title:           title,
		Details:         details,
		MapURL:          itinerary.MapURL(req.Destination),
		TrailURL:        itinerary.TrailNotesURL(req.Destination),
		CalendarURL:     calendar.Link(title, start, details, req.Destination),
		ICSURL:          "/api/plan.ics?" + passthrough.Encode(),
		QRURL:           "/api/plan.qr?" + passthrough.Encode(),
		ForecastMatched: matched,
	})
}

// HandlePlanICS serves the same plan as a downloadable iCalendar event
func (h *Handlers) HandlePlanICS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, start, err := h.parsePlan(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	day, _ := h.session.ForecastDay(req.Date.Format("2006-01-02"))
	details := itinerary.Compose(req, day)
	title := calendar.Title(req.Destination, req.RouteNote)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trip.ics"`)
	if _, err := w.Write([]byte(calendar.ICS(title, start, details, req.Destination))); err != nil {
		log.Printf("Response write error: %v", err)
	}
}

// HandlePlanQR serves a QR code PNG of the calendar creation link, for
// handing the event off to a phone.
func (h *Handlers) HandlePlanQR(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, start, err := h.parsePlan(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	day, _ := h.session.ForecastDay(req.Date.Format("2006-01-02"))
	details := itinerary.Compose(req, day)
	title := calendar.Title(req.Destination, req.RouteNote)
	link := calendar.Link(title, start, details, req.Destination)

	// Low error correction: the link embeds the whole percent-encoded
	// itinerary text and can get close to QR capacity.
	png, err := qrcode.Encode(link, qrcode.Low, 256)
	if err != nil {
		log.Printf("QR encode error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		log.Printf("Response write error: %v", err)
	}
}

// parsePlan reads the trip form fields from the request. Works for both the
// POST form and the GET passthrough query used by the ics/qr endpoints.
func (h *Handlers) parsePlan(r *http.Request) (itinerary.Request, time.Time, error) {
	destination := r.FormValue("destination")
	if destination == "" {
		return itinerary.Request{}, time.Time{}, fmt.Errorf("destination is required")
	}

	dateStr := r.FormValue("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return itinerary.Request{}, time.Time{}, fmt.Errorf("invalid date %q", dateStr)
	}

	clockStr := r.FormValue("time")
	if clockStr == "" {
		clockStr = defaultStartClock
	}
	clock, err := time.Parse("15:04", clockStr)
	if err != nil {
		return itinerary.Request{}, time.Time{}, fmt.Errorf("invalid time %q", clockStr)
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)

	return itinerary.Request{
		Destination: destination,
		RouteNote:   r.FormValue("route"),
		Date:        date,
		Notes:       r.FormValue("notes"),
	}, start, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("JSON encode error: %v", err)
	}
}
