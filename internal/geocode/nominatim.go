package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"mastoride/internal/config"
)

// NominatimProvider geocodes against the OpenStreetMap Nominatim API.
// Queries are bounded to the configured campus viewbox so ambiguous
// names resolve locally.
type NominatimProvider struct {
	baseURL string
	viewbox string
	client  *http.Client
}

func NewNominatimProvider(cfg *config.NominatimConfig) *NominatimProvider {
	return &NominatimProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		viewbox: cfg.Viewbox,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *NominatimProvider) Lookup(ctx context.Context, query string) (*Point, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("viewbox", p.viewbox)
	params.Set("bounded", "1")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "mastoride/1.0")
	req.Header.Set("Accept-Language", "en")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("bad latitude in nominatim response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("bad longitude in nominatim response: %w", err)
	}

	return &Point{Lat: lat, Lng: lng}, nil
}
