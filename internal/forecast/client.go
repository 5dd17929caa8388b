package forecast

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Timezone is the zone all daily records are reported in. The itinerary is
// for Taiwanese mountains, so this is fixed rather than derived.
const Timezone = "Asia/Taipei"

// dailyFields are the daily aggregates requested from the API.
var dailyFields = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"precipitation_probability_max",
	"sunrise",
	"sunset",
}

// Client represents a client for the Open-Meteo forecast API
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a new Open-Meteo client
func NewClient(userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   "https://api.open-meteo.com/v1/forecast",
		userAgent: userAgent,
	}
}

// NewClientWithHTTPClient creates a new client with a custom HTTP client
func NewClientWithHTTPClient(httpClient *http.Client, userAgent string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    "https://api.open-meteo.com/v1/forecast",
		userAgent:  userAgent,
	}
}

// SetBaseURL sets the base URL for the API (useful for testing)
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// dailyResponse mirrors the "daily" block of the Open-Meteo response.
// Every array is positionally aligned with "time".
type dailyResponse struct {
	Daily struct {
		Time     []string   `json:"time"`
		TempMax  []*float64 `json:"temperature_2m_max"`
		TempMin  []*float64 `json:"temperature_2m_min"`
		RainProb []*int     `json:"precipitation_probability_max"`
		Sunrise  []string   `json:"sunrise"`
		Sunset   []string   `json:"sunset"`
	} `json:"daily"`
}

// Daily fetches the daily forecast table for the given coordinates. The API
// decides the window (typically 7 days forward); dates outside it simply have
// no entry in the returned table.
func (c *Client) Daily(lat, lon float64) (Table, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	reqURL, err := c.buildURL(lat, lon)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var dr dailyResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return tableFromResponse(&dr), nil
}

func (c *Client) buildURL(lat, lon float64) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}

	query := u.Query()
	query.Set("latitude", formatFloat(lat))
	query.Set("longitude", formatFloat(lon))
	query.Set("daily", strings.Join(dailyFields, ","))
	query.Set("timezone", Timezone)

	u.RawQuery = query.Encode()
	return u.String(), nil
}

// tableFromResponse flattens the column-oriented daily arrays into rows.
// Short or missing value arrays leave the corresponding fields absent.
func tableFromResponse(dr *dailyResponse) Table {
	d := dr.Daily
	table := make(Table, 0, len(d.Time))
	for i, date := range d.Time {
		day := Day{Date: date}
		if i < len(d.TempMax) {
			day.MaxTemp = d.TempMax[i]
		}
		if i < len(d.TempMin) {
			day.MinTemp = d.TempMin[i]
		}
		if i < len(d.RainProb) {
			day.RainProbability = d.RainProb[i]
		}
		if i < len(d.Sunrise) {
			day.Sunrise = d.Sunrise[i]
		}
		if i < len(d.Sunset) {
			day.Sunset = d.Sunset[i]
		}
		table = append(table, day)
	}
	return table
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return &ValidationError{Field: "latitude", Message: fmt.Sprintf("must be between -90 and 90, got %f", lat)}
	}
	if lon < -180 || lon > 180 {
		return &ValidationError{Field: "longitude", Message: fmt.Sprintf("must be between -180 and 180, got %f", lon)}
	}
	return nil
}
