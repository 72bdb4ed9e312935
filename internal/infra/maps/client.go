// Package maps implements the MapsService against the Google Maps web
// APIs used by the mobile apps.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"

	"parcel/config"
	"parcel/internal/domain/service"
)

const defaultBaseURL = "https://maps.googleapis.com"

// fallbackSpeedKmh estimates route duration when only the straight-line
// distance is available.
const fallbackSpeedKmh = 30.0

// Client provides access to the geocoding, directions and place
// autocomplete endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient constructs a maps client from configuration.
func NewClient(cfg *config.Config) service.MapsService {
	baseURL := defaultBaseURL
	apiKey := ""
	timeout := 7 * time.Second
	if cfg.Maps != nil {
		if cfg.Maps.BaseURL != "" {
			baseURL = strings.TrimRight(cfg.Maps.BaseURL, "/")
		}
		apiKey = cfg.Maps.APIKey
		if cfg.Maps.Timeout > 0 {
			timeout = cfg.Maps.Timeout
		}
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Geocode resolves a free-form address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (*service.Place, error) {
	if strings.TrimSpace(address) == "" {
		return nil, errors.New("geocode: empty address")
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			FormattedAddress string `json:"formatted_address"`
			Geometry         struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "/maps/api/geocode/json", params, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" || len(payload.Results) == 0 {
		return nil, errors.Errorf("geocode: no results (status=%s)", payload.Status)
	}

	top := payload.Results[0]

	return &service.Place{
		Address:   top.FormattedAddress,
		Latitude:  top.Geometry.Location.Lat,
		Longitude: top.Geometry.Location.Lng,
	}, nil
}

// Directions computes the driving route between two coordinates. When
// the API is unreachable or returns no route, the straight-line
// distance stands in so fare quoting keeps working.
func (c *Client) Directions(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (*service.Route, error) {
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", fromLat, fromLng))
	params.Set("destination", fmt.Sprintf("%f,%f", toLat, toLng))
	params.Set("mode", "driving")
	params.Set("key", c.apiKey)

	var payload struct {
		Status string `json:"status"`
		Routes []struct {
			OverviewPolyline struct {
				Points string `json:"points"`
			} `json:"overview_polyline"`
			Legs []struct {
				Distance struct {
					Value int `json:"value"` // meters
				} `json:"distance"`
				Duration struct {
					Value int `json:"value"` // seconds
				} `json:"duration"`
			} `json:"legs"`
		} `json:"routes"`
	}

	err := c.getJSON(ctx, "/maps/api/directions/json", params, &payload)
	if err != nil || payload.Status != "OK" || len(payload.Routes) == 0 {
		return haversineRoute(fromLat, fromLng, toLat, toLng), nil
	}

	route := payload.Routes[0]
	var meters, seconds int
	for _, leg := range route.Legs {
		meters += leg.Distance.Value
		seconds += leg.Duration.Value
	}

	return &service.Route{
		DistanceKm: float64(meters) / 1000,
		DurationS:  seconds,
		Polyline:   route.OverviewPolyline.Points,
	}, nil
}

// Autocomplete suggests places for a partial query.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]*service.Place, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("input", query)
	params.Set("key", c.apiKey)

	var payload struct {
		Status      string `json:"status"`
		Predictions []struct {
			Description string `json:"description"`
		} `json:"predictions"`
	}
	if err := c.getJSON(ctx, "/maps/api/place/autocomplete/json", params, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, errors.Errorf("autocomplete: status=%s", payload.Status)
	}

	places := make([]*service.Place, 0, len(payload.Predictions))
	for _, p := range payload.Predictions {
		places = append(places, &service.Place{Address: p.Description})
	}

	return places, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "build maps request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "do maps request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))

		return errors.Errorf("maps api: http %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode maps response")
	}

	return nil
}

// haversineRoute is the offline fallback: great-circle distance plus a
// conservative speed estimate.
func haversineRoute(fromLat, fromLng, toLat, toLng float64) *service.Route {
	meters := geo.Distance(orb.Point{fromLng, fromLat}, orb.Point{toLng, toLat})
	km := meters / 1000

	return &service.Route{
		DistanceKm: km,
		DurationS:  int(km / fallbackSpeedKmh * 3600),
	}
}
