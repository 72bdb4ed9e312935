package service

import (
	"context"
)

// Place is a geocoded location.
type Place struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Route is a driving route between two points.
type Route struct {
	DistanceKm float64 `json:"distance_km"`
	DurationS  int     `json:"duration_s"`
	Polyline   string  `json:"polyline,omitempty"`
}

// MapsService defines the interface to the external mapping API:
// address geocoding, turn-by-turn directions and place autocomplete.
type MapsService interface {
	// Geocode resolves a free-form address to coordinates.
	Geocode(ctx context.Context, address string) (*Place, error)

	// Directions computes the driving route between two coordinates.
	Directions(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (*Route, error)

	// Autocomplete suggests places for a partial query.
	Autocomplete(ctx context.Context, query string) ([]*Place, error)
}
