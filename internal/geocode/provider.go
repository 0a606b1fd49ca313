package geocode

import "context"

// Point is a geocoded coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Provider resolves free-text place queries to coordinates within the
// campus service area. A query that matches nothing returns (nil, nil);
// an error means the provider itself failed.
type Provider interface {
	Lookup(ctx context.Context, query string) (*Point, error)
}
