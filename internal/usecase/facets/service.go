// Package facets shapes the two corpus analytics: top georeferences and the
// daily document-count histogram.
package facets

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/geodex-search/geodex/internal/domain/geo"
	"github.com/geodex-search/geodex/internal/domain/search/query"
	"github.com/geodex-search/geodex/internal/domain/search/result"
)

const (
	// topBuckets bounds both coordinate term aggregations.
	topBuckets = 10

	// dayKeyLen truncates histogram keys to calendar-day precision.
	dayKeyLen = 10
)

// Service computes the two analytic facets.
type Service struct {
	index    Aggregator
	resolver ReverseGeocoder
	logger   *zap.Logger
}

// New creates a facets service.
func New(index Aggregator, resolver ReverseGeocoder, logger *zap.Logger) *Service {
	return &Service{index: index, resolver: resolver, logger: logger}
}

// TopGeoreferences returns the most frequent geographic references as
// normalized place names. Latitude and longitude buckets are zipped pairwise
// by rank position, not by co-occurrence in the same document. The first
// pair is a degenerate zero-default entry and is discarded; pairs that fail
// to reverse-geocode are skipped so the facet stays best-effort.
func (s *Service) TopGeoreferences(ctx context.Context) ([]string, error) {
	latBuckets, err := s.index.RunTermsAggregation(ctx, query.TermsAggregation{
		Field: "geopoints_lat",
		Size:  topBuckets,
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate latitudes: %w", err)
	}

	lonBuckets, err := s.index.RunTermsAggregation(ctx, query.TermsAggregation{
		Field: "geopoints_lon",
		Size:  topBuckets,
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate longitudes: %w", err)
	}

	pairs := len(latBuckets)
	if len(lonBuckets) < pairs {
		pairs = len(lonBuckets)
	}
	if pairs <= 1 {
		return []string{}, nil
	}

	names := make([]string, 0, pairs-1)
	for i := 1; i < pairs; i++ {
		lat, err := strconv.ParseFloat(latBuckets[i].Key, 64)
		if err != nil {
			s.logger.Warn("unparsable latitude bucket", zap.String("key", latBuckets[i].Key))
			continue
		}
		lon, err := strconv.ParseFloat(lonBuckets[i].Key, 64)
		if err != nil {
			s.logger.Warn("unparsable longitude bucket", zap.String("key", lonBuckets[i].Key))
			continue
		}

		name, err := s.resolver.ReversePlace(ctx, geo.NewPoint(lat, lon))
		if err != nil {
			s.logger.Warn("reverse geocoding bucket pair failed",
				zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// DatesDistribution returns the per-day document counts in chronological
// order. Bucket keys are truncated to day precision; empty days never appear.
func (s *Service) DatesDistribution(ctx context.Context) ([]result.Bucket, error) {
	buckets, err := s.index.RunDateHistogram(ctx, query.DateHistogramAggregation{
		Field:       "date",
		MinDocCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate dates: %w", err)
	}

	out := make([]result.Bucket, 0, len(buckets))
	for _, b := range buckets {
		key := b.Key
		if len(key) > dayKeyLen {
			key = key[:dayKeyLen]
		}
		out = append(out, result.Bucket{Key: key, Count: b.Count})
	}
	return out, nil
}
