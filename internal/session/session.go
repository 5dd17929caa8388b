// Package session holds the single in-memory record of the last search:
// the query, the resolved location, and its forecast table. Each new search
// overwrites the record wholesale; nothing is persisted.
package session

import (
	"sync"

	"github.com/doog8889-droid/hiking-helper/internal/forecast"
	"github.com/doog8889-droid/hiking-helper/internal/geocode"
)

// Search is the snapshot stored after a successful location search.
type Search struct {
	Query    string
	Location geocode.Location
	Forecast forecast.Table
}

// State guards the last-search record. Usage is one logical actor, but the
// handlers run on the HTTP server's goroutines, so access is still locked.
type State struct {
	mu   sync.RWMutex
	last *Search
}

// NewState creates an empty session state
func NewState() *State {
	return &State{}
}

// SetSearch replaces the stored search record.
func (s *State) SetSearch(query string, loc geocode.Location, table forecast.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &Search{Query: query, Location: loc, Forecast: table}
}

// LastSearch returns a copy of the stored record, if any.
func (s *State) LastSearch() (Search, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return Search{}, false
	}
	out := *s.last
	out.Forecast = make(forecast.Table, len(s.last.Forecast))
	copy(out.Forecast, s.last.Forecast)
	return out, true
}

// ForecastDay returns the stored forecast entry for an ISO date, if the last
// search produced a table covering it.
func (s *State) ForecastDay(date string) (*forecast.Day, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, false
	}
	day, ok := s.last.Forecast.Day(date)
	if !ok {
		return nil, false
	}
	out := *day
	return &out, true
}
