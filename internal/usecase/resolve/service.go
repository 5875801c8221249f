// Package resolve turns place names or caller IPs into coordinates.
package resolve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/geodex-search/geodex/internal/domain/geo"
	"github.com/geodex-search/geodex/internal/metrics"
)

const (
	// maxAttempts bounds geocoding retries. Resolution failure falls back to
	// the unresolved point instead of erroring.
	maxAttempts = 3

	defaultBackoff = 200 * time.Millisecond
)

// Service resolves search locations with bounded retries.
type Service struct {
	geocoder Geocoder
	locator  IPLocator
	logger   *zap.Logger
	backoff  time.Duration
}

// New creates a location resolver.
func New(geocoder Geocoder, locator IPLocator, logger *zap.Logger) *Service {
	return &Service{
		geocoder: geocoder,
		locator:  locator,
		logger:   logger,
		backoff:  defaultBackoff,
	}
}

// WithBackoff overrides the retry backoff base.
func (s *Service) WithBackoff(d time.Duration) *Service {
	if d > 0 {
		s.backoff = d
	}
	return s
}

// Resolve turns a search location into a coordinate. An explicitly named
// place is forward-geocoded; with no place given, the caller's city is
// inferred from their IP first. Resolution never fails the request: after
// exhausting retries the unresolved point is returned. The provenance
// reports whether the caller named the place themselves.
func (s *Service) Resolve(ctx context.Context, specificLocation, clientIP string) (geo.Point, geo.Provenance) {
	place := strings.TrimSpace(specificLocation)
	provenance := geo.Explicit

	if place == "" {
		provenance = geo.Inferred

		city, err := s.locator.CityByIP(ctx, clientIP)
		if err != nil || city == "" {
			if err != nil {
				s.logger.Warn("ip location inference failed",
					zap.String("client_ip", clientIP), zap.Error(err))
			}
			metrics.ResolutionFallbacksTotal.Inc()
			return geo.Unresolved(), provenance
		}
		place = city
	}

	point, ok := s.resolvePlace(ctx, place)
	if !ok {
		s.logger.Warn("location resolution exhausted retries",
			zap.String("place", place), zap.Stringer("provenance", provenance))
		metrics.ResolutionFallbacksTotal.Inc()
		return geo.Unresolved(), provenance
	}
	return point, provenance
}

// resolvePlace forward-geocodes with up to maxAttempts tries. The first
// candidate whose address type qualifies wins; no ranking beyond provider
// order. An empty or unqualified result set counts as a failed attempt.
func (s *Service) resolvePlace(ctx context.Context, place string) (geo.Point, bool) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			metrics.GeocoderRetriesTotal.Inc()
			select {
			case <-ctx.Done():
				return geo.Unresolved(), false
			case <-time.After(s.backoff * time.Duration(attempt-1)):
			}
		}

		candidates, err := s.geocoder.Forward(ctx, place)
		if err != nil {
			if ctx.Err() != nil {
				// Caller gone: abandon without further retries.
				return geo.Unresolved(), false
			}
			s.logger.Debug("forward geocode attempt failed",
				zap.String("place", place), zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		for _, c := range candidates {
			if c.Qualifies() {
				return c.Point, true
			}
		}
	}
	return geo.Unresolved(), false
}

// ReversePlace reverse-geocodes a coordinate and normalizes the address into
// a "place, country, state" label.
func (s *Service) ReversePlace(ctx context.Context, p geo.Point) (string, error) {
	full, err := s.geocoder.Reverse(ctx, p.Lat(), p.Lon())
	if err != nil {
		return "", fmt.Errorf("reverse place: %w", err)
	}
	return geo.NormalizeAddress(full), nil
}
