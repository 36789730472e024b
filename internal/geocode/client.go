// Package geocode resolves place names to coordinates through an
// OpenStreetMap Nominatim compatible search API.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "soundXcape/1.0 (field notebook service)"
	defaultTimeout   = 15 * time.Second
)

var (
	ErrEmptyQuery         = errors.New("place name is empty")
	ErrNotFound           = errors.New("no coordinates found for place")
	ErrInvalidCoordinates = errors.New("geocoder returned invalid coordinates")
)

// Coordinates is a resolved location.
type Coordinates struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name,omitempty"`
}

// Config configures a Client. Zero values select the defaults.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client looks up coordinates for place names.
type Client struct {
	http   fastshot.ClientHttpMethods
	logger *slog.Logger
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// New creates a Client.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := fastshot.NewClient(strings.TrimRight(cfg.BaseURL, "/")).
		Config().SetTimeout(cfg.Timeout).
		Header().Add("User-Agent", cfg.UserAgent).
		Header().Add("Accept", "application/json").
		Build()

	return &Client{http: c, logger: logger}
}

// Lookup returns the best match for place.
func (c *Client) Lookup(ctx context.Context, place string) (Coordinates, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return Coordinates{}, ErrEmptyQuery
	}

	resp, err := c.http.GET("/search").
		Context().Set(ctx).
		Query().AddParam("q", place).
		Query().AddParam("format", "json").
		Query().AddParam("limit", "1").
		Query().AddParam("addressdetails", "0").
		Send()
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocode %q: %w", place, err)
	}
	defer resp.Body().Close()

	if resp.Status().IsError() {
		msg, _ := resp.Body().AsString()
		c.logger.Warn("geocoding service error", "place", place, "body", msg)
		return Coordinates{}, fmt.Errorf("geocode %q: service error: %s", place, strings.TrimSpace(msg))
	}

	var results []searchResult
	if err := resp.Body().AsJSON(&results); err != nil {
		return Coordinates{}, fmt.Errorf("geocode %q: failed to parse response: %w", place, err)
	}
	if len(results) == 0 {
		return Coordinates{}, ErrNotFound
	}

	first := results[0]
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(first.Lat), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(first.Lon), 64)
	if latErr != nil || lonErr != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		c.logger.Warn("invalid coordinates from geocoder", "place", place, "lat", first.Lat, "lon", first.Lon)
		return Coordinates{}, ErrInvalidCoordinates
	}

	return Coordinates{Latitude: lat, Longitude: lon, DisplayName: first.DisplayName}, nil
}
