// Package nominatim is a geocoding adapter speaking the Nominatim JSON API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/geodex-search/geodex/internal/domain"
	"github.com/geodex-search/geodex/internal/domain/geo"
	"github.com/geodex-search/geodex/internal/metrics"
)

// Client calls a Nominatim-compatible geocoding endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

// Config holds the geocoder settings. The Nominatim usage policy requires a
// descriptive User-Agent.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Logger    *zap.Logger
}

// New creates a Nominatim client.
func New(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		logger:     cfg.Logger,
	}
}

// Forward geocodes a place name into ranked candidates.
func (c *Client) Forward(ctx context.Context, place string) ([]geo.Candidate, error) {
	params := url.Values{}
	params.Set("q", place)
	params.Set("format", "json")

	var raw []searchResult
	if err := c.get(ctx, "/search", params, &raw); err != nil {
		metrics.GeocoderRequestsTotal.WithLabelValues("forward", "error").Inc()
		return nil, fmt.Errorf("forward geocode %q: %w", place, err)
	}
	metrics.GeocoderRequestsTotal.WithLabelValues("forward", "success").Inc()

	candidates := make([]geo.Candidate, 0, len(raw))
	for _, r := range raw {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			continue
		}
		candidates = append(candidates, geo.Candidate{
			AddressType: r.AddressType,
			DisplayName: r.DisplayName,
			Point:       geo.NewPoint(lat, lon),
		})
	}
	return candidates, nil
}

// Reverse resolves a coordinate into its full display address.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")

	var raw reverseResult
	if err := c.get(ctx, "/reverse", params, &raw); err != nil {
		metrics.GeocoderRequestsTotal.WithLabelValues("reverse", "error").Inc()
		return "", fmt.Errorf("reverse geocode (%g, %g): %w", lat, lon, err)
	}
	metrics.GeocoderRequestsTotal.WithLabelValues("reverse", "success").Inc()

	if raw.DisplayName == "" {
		return "", fmt.Errorf("reverse geocode (%g, %g): empty display name: %w",
			lat, lon, domain.ErrGeocoderUnavailable)
	}
	return raw.DisplayName, nil
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	AddressType string `json:"addresstype"`
	DisplayName string `json:"display_name"`
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrGeocoderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", domain.ErrGeocoderUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", domain.ErrGeocoderUnavailable, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", domain.ErrGeocoderUnavailable, err)
	}
	return nil
}
