package search

import (
	"context"

	"github.com/geodex-search/geodex/internal/domain"
	"github.com/geodex-search/geodex/internal/domain/geo"
	"github.com/geodex-search/geodex/internal/domain/search/query"
	"github.com/geodex-search/geodex/internal/domain/search/result"
)

// Index executes compiled queries against the document index.
type Index interface {
	Execute(ctx context.Context, q query.Bool) ([]result.Hit, error)
}

// Recognizer extracts named entities from free text.
type Recognizer interface {
	Entities(ctx context.Context, text string) ([]domain.Entity, error)
}

// Resolver turns a search location into a coordinate with provenance.
type Resolver interface {
	Resolve(ctx context.Context, specificLocation, clientIP string) (geo.Point, geo.Provenance)
}
