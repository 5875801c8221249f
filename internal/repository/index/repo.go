// Package index adapts the typed query tree onto the FT search store.
package index

import (
	"context"
	"errors"

	"github.com/geodex-search/geodex/internal/db"
	"github.com/geodex-search/geodex/internal/domain"
	"github.com/geodex-search/geodex/internal/domain/search/query"
	"github.com/geodex-search/geodex/internal/domain/search/result"
)

// histogramLimit caps the number of daily buckets a histogram query returns.
const histogramLimit = 1000

// store is the consumer interface for index operations (ISP).
type store interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	Aggregate(ctx context.Context, q *db.AggregateQuery) (*db.AggregateResult, error)
}

// Repo implements the usecase Index contracts over an FT search store.
type Repo struct {
	store     store
	indexName string
	limit     int
}

// New creates an index repository. limit bounds the number of hits a search
// returns.
func New(s store, indexName string, limit int) *Repo {
	return &Repo{store: s, indexName: indexName, limit: limit}
}

// Execute runs a compiled query and projects the hits to titles.
func (r *Repo) Execute(ctx context.Context, q query.Bool) ([]result.Hit, error) {
	sr, err := r.store.Search(ctx, &db.SearchQuery{
		IndexName:    r.indexName,
		Query:        Serialize(q),
		Limit:        r.limit,
		ReturnFields: []string{fieldTitle},
	})
	if err != nil {
		return nil, errors.Join(domain.ErrIndexUnavailable, err)
	}

	hits := make([]result.Hit, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		hits = append(hits, result.NewHit(e.Fields[fieldTitle]))
	}
	return hits, nil
}

// RunTermsAggregation returns the top agg.Size buckets of agg.Field by
// document count, most frequent first.
func (r *Repo) RunTermsAggregation(ctx context.Context, agg query.TermsAggregation) ([]result.Bucket, error) {
	ar, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		IndexName: r.indexName,
		GroupBy:   agg.Field,
		Limit:     agg.Size,
	})
	if err != nil {
		return nil, errors.Join(domain.ErrIndexUnavailable, err)
	}
	return toBuckets(ar.Rows, 0), nil
}

// RunDateHistogram returns per-day buckets of agg.Field in chronological
// order. Only days with at least agg.MinDocCount documents are kept; days
// with no documents produce no group at all, so empty buckets never appear.
func (r *Repo) RunDateHistogram(ctx context.Context, agg query.DateHistogramAggregation) ([]result.Bucket, error) {
	ar, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		IndexName: r.indexName,
		GroupBy:   agg.Field,
		SortBy:    agg.Field,
		Ascending: true,
		Limit:     histogramLimit,
	})
	if err != nil {
		return nil, errors.Join(domain.ErrIndexUnavailable, err)
	}
	return toBuckets(ar.Rows, agg.MinDocCount), nil
}

func toBuckets(rows []db.AggregateRow, minCount int) []result.Bucket {
	buckets := make([]result.Bucket, 0, len(rows))
	for _, row := range rows {
		if row.Count < int64(minCount) {
			continue
		}
		buckets = append(buckets, result.Bucket{Key: row.Key, Count: row.Count})
	}
	return buckets
}
