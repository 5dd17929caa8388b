package geocode

import (
	"log"
	"strings"
)

// countryHint biases Nominatim toward Taiwanese mountains; place names like
// 合歡山 are ambiguous without it.
const countryHint = "台灣"

// Resolver turns a free-text place name into coordinates. Every failure mode
// of the underlying geocoder collapses to a single not-found outcome; callers
// never see a fault.
type Resolver struct {
	client *Client
}

// NewResolver creates a Resolver backed by the given client
func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve looks up a place name. The boolean is false when the name is empty,
// the geocoder errored or timed out, or nothing matched. No retries.
func (r *Resolver) Resolve(placeName string) (Location, bool) {
	if strings.TrimSpace(placeName) == "" {
		return Location{}, false
	}

	loc, err := r.client.Search(countryHint + " " + placeName)
	if err != nil {
		log.Printf("Geocode failed for %q: %v", placeName, err)
		return Location{}, false
	}

	return *loc, true
}
