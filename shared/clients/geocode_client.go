package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"staffdir-backend/shared/config"
)

// Coordinates is a resolved latitude/longitude pair
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves a free-text address into coordinates. Resolution is
// best-effort: implementations always return a pair, falling back to 0/0
// when the address cannot be resolved.
type Geocoder interface {
	Resolve(ctx context.Context, address string) Coordinates
}

// GeocodeClient handles communication with the Nominatim geocoding service
type GeocodeClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeocodeClient creates a new geocode client
func NewGeocodeClient() *GeocodeClient {
	cfg := config.GetConfig()
	return &GeocodeClient{
		baseURL: cfg.GeocoderURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.GeocoderTimeoutSeconds) * time.Second,
		},
	}
}

// nominatimResult is one entry of a Nominatim search response
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks up an address and returns its coordinates. Any failure
// (network error, non-200 status, empty result set, unparseable payload)
// yields the 0/0 fallback, never an error.
func (gc *GeocodeClient) Resolve(ctx context.Context, address string) Coordinates {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")

	searchURL := fmt.Sprintf("%s/search?%s", gc.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return Coordinates{}
	}

	resp, err := gc.httpClient.Do(req)
	if err != nil {
		return Coordinates{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinates{}
	}
	if len(results) == 0 {
		return Coordinates{}
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}
	}

	return Coordinates{Latitude: lat, Longitude: lon}
}
