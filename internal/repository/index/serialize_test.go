package index

import (
	"strings"
	"testing"

	"github.com/geodex-search/geodex/internal/domain/search/query"
)

func TestSerialize_Empty(t *testing.T) {
	if got := Serialize(query.Bool{}); got != "*" {
		t.Errorf("expected *, got %q", got)
	}
}

func TestSerialize_SingleShouldMatch(t *testing.T) {
	var q query.Bool
	q.Add(query.Match{Field: "content", Text: "floods"}, query.Optional)

	got := Serialize(q)
	want := "(@content:(floods))"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSerialize_ShouldGroupJoinedWithPipe(t *testing.T) {
	var q query.Bool
	q.Add(query.Match{Field: "content", Text: "floods"}, query.Optional)
	q.Add(query.Match{Field: "title", Text: "floods"}, query.Optional)

	got := Serialize(q)
	want := "(@content:(floods) | @title:(floods))"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSerialize_FiltersJoinedWithSpace(t *testing.T) {
	var q query.Bool
	q.Add(query.Match{Field: "topics", Text: "disaster"}, query.Mandatory)
	q.Add(query.Term{Field: "date", Value: "2021-03-01"}, query.Mandatory)

	got := Serialize(q)
	want := `@topics:(disaster) @date:{2021\-03\-01}`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSerialize_BoostedMatch(t *testing.T) {
	var q query.Bool
	q.Add(query.Match{Field: "title", Text: "floods", Boost: 2}, query.Optional)

	got := Serialize(q)
	want := "((@title:(floods) => { $weight: 2 }))"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSerialize_NestedFlattensPath(t *testing.T) {
	inner := query.Bool{}
	inner.Add(query.Term{Field: "lat", Value: "48.8566"}, query.Mandatory)
	inner.Add(query.Term{Field: "lon", Value: "2.3522"}, query.Mandatory)

	var q query.Bool
	q.Add(query.Nested{Path: "geopoints", Query: inner}, query.Mandatory)

	got := Serialize(q)
	want := `(@geopoints_lat:{48\.8566} @geopoints_lon:{2\.3522})`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSerialize_NestedShouldDisjunction(t *testing.T) {
	inner := query.Bool{}
	inner.Add(query.Term{Field: "firstname", Value: "Maria"}, query.Optional)
	inner.Add(query.Term{Field: "surname", Value: "Lopez"}, query.Optional)

	var q query.Bool
	q.Add(query.Nested{Path: "authors", Query: inner}, query.Mandatory)

	got := Serialize(q)
	want := "((@authors_firstname:{Maria} | @authors_surname:{Lopez}))"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSerialize_ShouldStaysOptionalNextToFilters(t *testing.T) {
	var q query.Bool
	q.Add(query.Match{Field: "content", Text: "floods"}, query.Optional)
	q.Add(query.Term{Field: "topics", Value: "disaster"}, query.Mandatory)

	// A document matching only the topic filter must still be a hit, so the
	// should clause carries the optional operator instead of joining the
	// filter intersection.
	got := Serialize(q)
	want := "@topics:{disaster} ~@content:(floods)"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSerialize_EveryShouldClauseOptionalNextToFilters(t *testing.T) {
	var q query.Bool
	q.Add(query.Match{Field: "content", Text: "floods"}, query.Optional)
	q.Add(query.Match{Field: "title", Text: "floods", Boost: 2}, query.Optional)
	q.Add(query.Term{Field: "topics", Value: "disaster"}, query.Mandatory)

	got := Serialize(q)
	want := `@topics:{disaster} ~@content:(floods) ~(@title:(floods) => { $weight: 2 })`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSerialize_EmptyNestedDropped(t *testing.T) {
	var q query.Bool
	q.Add(query.Nested{Path: "geopoints", Query: query.Bool{}}, query.Optional)
	q.Add(query.Match{Field: "content", Text: "floods"}, query.Optional)

	got := Serialize(q)
	want := "(@content:(floods))"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSerialize_EscapesTextSpecials(t *testing.T) {
	var q query.Bool
	q.Add(query.Match{Field: "content", Text: "hello @user (test)"}, query.Optional)

	got := Serialize(q)
	if strings.Contains(got, "@user") && !strings.Contains(got, `\@user`) {
		t.Errorf("expected escaped @ in %q", got)
	}
	if !strings.Contains(got, `\(test\)`) {
		t.Errorf("expected escaped parens in %q", got)
	}
}

func TestSerialize_EscapesTagSpecials(t *testing.T) {
	var q query.Bool
	q.Add(query.Term{Field: "lat", Value: "-33.8688"}, query.Mandatory)

	got := Serialize(q)
	want := `@lat:{\-33\.8688}`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
