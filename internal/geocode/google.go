package geocode

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"mastoride/internal/config"
)

// GoogleProvider is the alternative geocoder for deployments with a
// Google Maps API key. Region biasing stands in for the viewbox.
type GoogleProvider struct {
	client *maps.Client
	region string
}

func NewGoogleProvider(cfg *config.GoogleMapsConfig) (*GoogleProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return &GoogleProvider{
		client: client,
		region: cfg.Region,
	}, nil
}

func (p *GoogleProvider) Lookup(ctx context.Context, query string) (*Point, error) {
	req := &maps.GeocodingRequest{
		Address: query,
		Region:  p.region,
	}

	results, err := p.client.Geocode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("geocoding failed: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	return &Point{
		Lat: results[0].Geometry.Location.Lat,
		Lng: results[0].Geometry.Location.Lng,
	}, nil
}
