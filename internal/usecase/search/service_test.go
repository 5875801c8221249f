package search

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/geodex-search/geodex/internal/domain"
	"github.com/geodex-search/geodex/internal/domain/geo"
	"github.com/geodex-search/geodex/internal/domain/search/query"
	"github.com/geodex-search/geodex/internal/domain/search/request"
	"github.com/geodex-search/geodex/internal/domain/search/result"
)

// mockIndex implements Index for tests.
type mockIndex struct {
	executeFn func(ctx context.Context, q query.Bool) ([]result.Hit, error)
}

func (m *mockIndex) Execute(ctx context.Context, q query.Bool) ([]result.Hit, error) {
	if m.executeFn != nil {
		return m.executeFn(ctx, q)
	}
	return nil, nil
}

// mockRecognizer implements Recognizer for tests.
type mockRecognizer struct {
	entitiesFn func(ctx context.Context, text string) ([]domain.Entity, error)
}

func (m *mockRecognizer) Entities(ctx context.Context, text string) ([]domain.Entity, error) {
	if m.entitiesFn != nil {
		return m.entitiesFn(ctx, text)
	}
	return nil, nil
}

// mockResolver implements Resolver for tests.
type mockResolver struct {
	resolveFn func(ctx context.Context, specificLocation, clientIP string) (geo.Point, geo.Provenance)
}

func (m *mockResolver) Resolve(ctx context.Context, specificLocation, clientIP string) (geo.Point, geo.Provenance) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, specificLocation, clientIP)
	}
	return geo.Unresolved(), geo.Inferred
}

func mustRequest(t *testing.T, q, topic, author, location string) request.Request {
	t.Helper()
	req, err := request.New(q, topic, author, location, "203.0.113.7")
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return req
}

func findNested(clauses []query.Clause, path string) (query.Nested, bool) {
	for _, c := range clauses {
		if n, ok := c.(query.Nested); ok && n.Path == path {
			return n, true
		}
	}
	return query.Nested{}, false
}

func findMatch(clauses []query.Clause, field string) (query.Match, bool) {
	for _, c := range clauses {
		if m, ok := c.(query.Match); ok && m.Field == field {
			return m, true
		}
	}
	return query.Match{}, false
}

func findTerm(clauses []query.Clause, field string) (query.Term, bool) {
	for _, c := range clauses {
		if tm, ok := c.(query.Term); ok && tm.Field == field {
			return tm, true
		}
	}
	return query.Term{}, false
}

func TestCompile_UnresolvableDeviceLocationScenario(t *testing.T) {
	req := mustRequest(t, "floods in March 2021", "disaster", "Maria Lopez", "")

	q := Compile(req, "March 2021", geo.Unresolved(), geo.Inferred)

	// should bucket: content, title, temporal, geo at the unresolved default
	if m, ok := findMatch(q.Should, "content"); !ok || m.Text != "floods in March 2021" {
		t.Errorf("missing or wrong content match: %+v", m)
	}
	title, ok := findMatch(q.Should, "title")
	if !ok {
		t.Fatal("missing title match in should bucket")
	}
	if title.Boost <= 1 {
		t.Errorf("title boost must exceed content weight, got %g", title.Boost)
	}

	temporal, ok := findNested(q.Should, "temporal")
	if !ok {
		t.Fatal("missing temporal nested clause in should bucket")
	}
	if m, ok := findMatch(temporal.Query.Should, "expressions"); !ok || m.Text != "March 2021" {
		t.Errorf("temporal clause does not carry the extracted expression: %+v", m)
	}

	geoClause, ok := findNested(q.Should, "geopoints")
	if !ok {
		t.Fatal("inferred geo clause must live in the should bucket")
	}
	if lat, ok := findTerm(geoClause.Query.Filter, "lat"); !ok || lat.Value != "0" {
		t.Errorf("expected unresolved lat term 0, got %+v", lat)
	}
	if lon, ok := findTerm(geoClause.Query.Filter, "lon"); !ok || lon.Value != "0" {
		t.Errorf("expected unresolved lon term 0, got %+v", lon)
	}

	// filter bucket: topic and author disjunction
	if tm, ok := findTerm(q.Filter, "topics"); !ok || tm.Value != "disaster" {
		t.Errorf("missing or wrong topic filter: %+v", tm)
	}
	authors, ok := findNested(q.Filter, "authors")
	if !ok {
		t.Fatal("author clause must live in the filter bucket")
	}
	if fn, ok := findTerm(authors.Query.Should, "firstname"); !ok || fn.Value != "Maria" {
		t.Errorf("missing firstname disjunct: %+v", fn)
	}
	if sn, ok := findTerm(authors.Query.Should, "surname"); !ok || sn.Value != "Lopez" {
		t.Errorf("missing surname disjunct: %+v", sn)
	}
}

func TestCompile_ExplicitLocationGoesToFilter(t *testing.T) {
	req := mustRequest(t, "street art", "", "", "Paris")
	point := geo.NewPoint(48.8566, 2.3522)

	q := Compile(req, "", point, geo.Explicit)

	geoClause, ok := findNested(q.Filter, "geopoints")
	if !ok {
		t.Fatal("explicit geo clause must live in the filter bucket")
	}
	if _, inShould := findNested(q.Should, "geopoints"); inShould {
		t.Error("geo clause must not appear in both buckets")
	}
	if lat, ok := findTerm(geoClause.Query.Filter, "lat"); !ok || lat.Value != point.LatString() {
		t.Errorf("expected exact lat term %q, got %+v", point.LatString(), lat)
	}
	if lon, ok := findTerm(geoClause.Query.Filter, "lon"); !ok || lon.Value != point.LonString() {
		t.Errorf("expected exact lon term %q, got %+v", point.LonString(), lon)
	}
}

func TestCompile_NoTemporalClauseWhenAbsent(t *testing.T) {
	req := mustRequest(t, "oil prices", "", "", "")

	q := Compile(req, "", geo.Unresolved(), geo.Inferred)

	if _, ok := findNested(q.Should, "temporal"); ok {
		t.Error("temporal clause must be omitted when no expression was extracted")
	}
}

func TestCompile_SingleTokenAuthor(t *testing.T) {
	req := mustRequest(t, "poetry", "", "Jane", "")

	q := Compile(req, "", geo.Unresolved(), geo.Inferred)

	authors, ok := findNested(q.Filter, "authors")
	if !ok {
		t.Fatal("missing author clause")
	}
	if fn, ok := findTerm(authors.Query.Should, "firstname"); !ok || fn.Value != "Jane" {
		t.Errorf("missing firstname disjunct: %+v", fn)
	}
	if _, ok := findTerm(authors.Query.Should, "surname"); ok {
		t.Error("surname disjunct must be omitted for single-token authors")
	}
}

func TestCompile_NoOptionalSignals(t *testing.T) {
	req := mustRequest(t, "plain text", "", "", "")

	q := Compile(req, "", geo.Unresolved(), geo.Inferred)

	if len(q.Filter) != 0 {
		t.Errorf("expected empty filter bucket without topic/author/explicit location, got %v", q.Filter)
	}
	// content + title + geo
	if len(q.Should) != 3 {
		t.Errorf("expected 3 should clauses, got %d", len(q.Should))
	}
}

func TestSearch_PipelineJoinsSignalsAndDedupes(t *testing.T) {
	var executed query.Bool
	idx := &mockIndex{
		executeFn: func(_ context.Context, q query.Bool) ([]result.Hit, error) {
			executed = q
			return []result.Hit{
				result.NewHit("Floods in March"),
				result.NewHit("Floods in March"),
				result.NewHit("Oil prices"),
			}, nil
		},
	}
	rec := &mockRecognizer{
		entitiesFn: func(_ context.Context, _ string) ([]domain.Entity, error) {
			return []domain.Entity{
				{Text: "Maria", Label: "PERSON"},
				{Text: "March 2021", Label: domain.LabelDate},
				{Text: "April 2022", Label: domain.LabelDate},
			}, nil
		},
	}
	res := &mockResolver{
		resolveFn: func(_ context.Context, _, _ string) (geo.Point, geo.Provenance) {
			return geo.NewPoint(48.8566, 2.3522), geo.Explicit
		},
	}
	s := New(idx, rec, res, zap.NewNop())

	req := mustRequest(t, "floods in March 2021", "", "", "Paris")

	hits, err := s.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("expected 2 hits after dedup, got %d", len(hits))
	}

	// First DATE entity wins.
	temporal, ok := findNested(executed.Should, "temporal")
	if !ok {
		t.Fatal("missing temporal clause in executed query")
	}
	if m, _ := findMatch(temporal.Query.Should, "expressions"); m.Text != "March 2021" {
		t.Errorf("expected first date entity, got %q", m.Text)
	}
	if _, ok := findNested(executed.Filter, "geopoints"); !ok {
		t.Error("explicit location must produce a filter geo clause")
	}
}

func TestSearch_RecognizerErrorDegradesToAbsence(t *testing.T) {
	var executed query.Bool
	idx := &mockIndex{
		executeFn: func(_ context.Context, q query.Bool) ([]result.Hit, error) {
			executed = q
			return []result.Hit{result.NewHit("hit")}, nil
		},
	}
	rec := &mockRecognizer{
		entitiesFn: func(_ context.Context, _ string) ([]domain.Entity, error) {
			return nil, errors.New("model overloaded")
		},
	}
	s := New(idx, rec, &mockResolver{}, zap.NewNop())

	hits, err := s.Search(context.Background(), mustRequest(t, "floods", "", "", ""))
	if err != nil {
		t.Fatalf("recognizer failure must not fail the request: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("expected best-effort results, got %d hits", len(hits))
	}
	if _, ok := findNested(executed.Should, "temporal"); ok {
		t.Error("temporal clause must be absent when extraction failed")
	}
}

func TestSearch_IndexErrorPropagates(t *testing.T) {
	idx := &mockIndex{
		executeFn: func(_ context.Context, _ query.Bool) ([]result.Hit, error) {
			return nil, domain.ErrIndexUnavailable
		},
	}
	s := New(idx, &mockRecognizer{}, &mockResolver{}, zap.NewNop())

	_, err := s.Search(context.Background(), mustRequest(t, "floods", "", "", ""))
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}
