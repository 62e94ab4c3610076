package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/weatherlyhq/weatherly/internal/config"
)

var (
	ErrUnknownLocation = errors.New("weather: unknown location")
	ErrProvider        = errors.New("weather: provider request failed")
)

// Snapshot is the current-conditions reading for one location.
type Snapshot struct {
	LocationName string
	Country      string
	Condition    string
	IconURL      string
	TempC        float64
	Humidity     float64
	WindKPH      float64
	UVIndex      float64
}

// Service fetches current conditions for a free-text city name.
type Service interface {
	Current(ctx context.Context, city string) (Snapshot, error)
}

// Client talks to a weatherapi.com-compatible current.json endpoint.
type Client struct {
	baseURL string
	key     string
	client  *http.Client
}

var _ Service = (*Client)(nil)

func NewClient(cfg *config.Weather) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		key:     cfg.Key,
		client:  &http.Client{Timeout: cfg.Timeout.Duration},
	}
}

// API error code for "no matching location found".
const codeNoMatchingLocation = 1006

type currentResponse struct {
	Location *struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"location"`
	Current *struct {
		TempC     float64 `json:"temp_c"`
		Humidity  float64 `json:"humidity"`
		WindKPH   float64 `json:"wind_kph"`
		UV        float64 `json:"uv"`
		Condition struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
		} `json:"condition"`
	} `json:"current"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Current(ctx context.Context, city string) (Snapshot, error) {
	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s", c.baseURL, url.QueryEscape(c.key), url.QueryEscape(city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("build weather request for %q: %w", city, err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: fetch conditions for %q: %v", ErrProvider, city, err)
	}
	defer res.Body.Close()

	var payload currentResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return Snapshot{}, fmt.Errorf("%w: decode conditions for %q: %v", ErrProvider, city, err)
	}

	if payload.Error != nil {
		if payload.Error.Code == codeNoMatchingLocation {
			return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownLocation, city)
		}
		return Snapshot{}, fmt.Errorf("%w: %s (code %d)", ErrProvider, payload.Error.Message, payload.Error.Code)
	}

	if res.StatusCode != http.StatusOK || payload.Current == nil || payload.Location == nil {
		return Snapshot{}, fmt.Errorf("%w: unexpected response for %q with status %d", ErrProvider, city, res.StatusCode)
	}

	return Snapshot{
		LocationName: payload.Location.Name,
		Country:      payload.Location.Country,
		Condition:    payload.Current.Condition.Text,
		IconURL:      normalizeIconURL(payload.Current.Condition.Icon),
		TempC:        payload.Current.TempC,
		Humidity:     payload.Current.Humidity,
		WindKPH:      payload.Current.WindKPH,
		UVIndex:      payload.Current.UV,
	}, nil
}

// The provider returns protocol-relative icon refs like
// //cdn.weatherapi.com/weather/64x64/day/116.png.
func normalizeIconURL(icon string) string {
	if strings.HasPrefix(icon, "//") {
		return "https:" + icon
	}
	return icon
}
