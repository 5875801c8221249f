package facets

import (
	"context"

	"github.com/geodex-search/geodex/internal/domain/geo"
	"github.com/geodex-search/geodex/internal/domain/search/query"
	"github.com/geodex-search/geodex/internal/domain/search/result"
)

// Aggregator runs aggregation queries against the document index.
type Aggregator interface {
	RunTermsAggregation(ctx context.Context, agg query.TermsAggregation) ([]result.Bucket, error)
	RunDateHistogram(ctx context.Context, agg query.DateHistogramAggregation) ([]result.Bucket, error)
}

// ReverseGeocoder turns a coordinate into a normalized place name.
type ReverseGeocoder interface {
	ReversePlace(ctx context.Context, p geo.Point) (string, error)
}
