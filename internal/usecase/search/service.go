// Package search compiles user input into one boolean index query and runs it.
package search

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/geodex-search/geodex/internal/domain"
	"github.com/geodex-search/geodex/internal/domain/author"
	"github.com/geodex-search/geodex/internal/domain/geo"
	"github.com/geodex-search/geodex/internal/domain/search/query"
	"github.com/geodex-search/geodex/internal/domain/search/request"
	"github.com/geodex-search/geodex/internal/domain/search/result"
)

// titleBoost weights title matches above content matches.
const titleBoost = 2.0

// Service handles the search pipeline: temporal extraction, location
// resolution, query compilation, execution, and hit dedup.
type Service struct {
	index      Index
	recognizer Recognizer
	resolver   Resolver
	logger     *zap.Logger
}

// New creates a search service.
func New(index Index, recognizer Recognizer, resolver Resolver, logger *zap.Logger) *Service {
	return &Service{index: index, recognizer: recognizer, resolver: resolver, logger: logger}
}

// Search resolves the request's signals, compiles them into one boolean
// query, executes it, and returns deduplicated hits. Temporal extraction and
// location resolution are independent, so they run concurrently and are
// joined before compiling.
func (s *Service) Search(ctx context.Context, req request.Request) ([]result.Hit, error) {
	var (
		temporal   string
		point      geo.Point
		provenance geo.Provenance
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		temporal = s.extractTemporal(ctx, req.Query())
	}()
	go func() {
		defer wg.Done()
		point, provenance = s.resolver.Resolve(ctx, req.SpecificLocation(), req.ClientIP())
	}()
	wg.Wait()

	compiled := Compile(req, temporal, point, provenance)

	hits, err := s.index.Execute(ctx, compiled)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}
	return result.Dedupe(hits), nil
}

// extractTemporal keeps the first entity labeled as a date. No match is
// absence, not an error; per-request recognizer failures also degrade to
// absence so partial-signal requests still succeed.
func (s *Service) extractTemporal(ctx context.Context, text string) string {
	entities, err := s.recognizer.Entities(ctx, text)
	if err != nil {
		s.logger.Warn("temporal extraction failed", zap.Error(err))
		return ""
	}
	for _, e := range entities {
		if e.Label == domain.LabelDate {
			return e.Text
		}
	}
	return ""
}

// Compile assembles the boolean query. Text and title matches are always
// optional; topic and author are always mandatory; the geo clause's bucket
// depends solely on provenance. Clauses never move between buckets.
func Compile(req request.Request, temporal string, point geo.Point, provenance geo.Provenance) query.Bool {
	var q query.Bool

	q.Add(query.Match{Field: "content", Text: req.Query()}, query.Optional)
	q.Add(query.Match{Field: "title", Text: req.Query(), Boost: titleBoost}, query.Optional)

	if temporal != "" {
		var inner query.Bool
		inner.Add(query.Match{Field: "expressions", Text: temporal}, query.Optional)
		q.Add(query.Nested{Path: "temporal", Query: inner}, query.Optional)
	}

	// The geo clause is always present, carrying whatever point resolution
	// produced; the unresolved default ranks like any other optional clause.
	var geoInner query.Bool
	geoInner.Add(query.Term{Field: "lat", Value: point.LatString()}, query.Mandatory)
	geoInner.Add(query.Term{Field: "lon", Value: point.LonString()}, query.Mandatory)
	geoOcc := query.Optional
	if provenance == geo.Explicit {
		geoOcc = query.Mandatory
	}
	q.Add(query.Nested{Path: "geopoints", Query: geoInner}, geoOcc)

	if req.Topic() != "" {
		q.Add(query.Term{Field: "topics", Value: req.Topic()}, query.Mandatory)
	}

	if name := author.Parse(req.Author()); !name.IsZero() {
		var inner query.Bool
		inner.Add(query.Term{Field: "firstname", Value: name.Firstname()}, query.Optional)
		if name.Surname() != "" {
			inner.Add(query.Term{Field: "surname", Value: name.Surname()}, query.Optional)
		}
		q.Add(query.Nested{Path: "authors", Query: inner}, query.Mandatory)
	}

	return q
}
