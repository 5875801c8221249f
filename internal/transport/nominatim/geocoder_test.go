package nominatim

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/geodex-search/geodex/internal/domain"
)

func newTestClient(url string) *Client {
	return New(&Config{
		BaseURL:   url,
		UserAgent: "geodex-test",
		Timeout:   time.Second,
		Logger:    zap.NewNop(),
	})
}

func TestForward_ParsesCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Paris" {
			t.Errorf("unexpected q param: %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "geodex-test" {
			t.Errorf("unexpected user agent: %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"lat":"48.8534951","lon":"2.3483915","addresstype":"city","display_name":"Paris, Ile-de-France, Metropolitan France, France"},
			{"lat":"33.6617962","lon":"-95.555513","addresstype":"town","display_name":"Paris, Lamar County, Texas, United States"}
		]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	candidates, err := c.Forward(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].AddressType != "city" {
		t.Errorf("unexpected address type %q", candidates[0].AddressType)
	}
	if lat := candidates[0].Point.Lat(); lat < 48.8 || lat > 48.9 {
		t.Errorf("unexpected lat %f", lat)
	}
	if lon := candidates[1].Point.Lon(); lon > -95 {
		t.Errorf("unexpected lon %f", lon)
	}
}

func TestForward_SkipsUnparsableCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"lat":"not-a-number","lon":"2.34","addresstype":"city","display_name":"Broken"},
			{"lat":"48.85","lon":"2.34","addresstype":"city","display_name":"Paris, France"}
		]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	candidates, err := c.Forward(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate after skipping malformed row, got %d", len(candidates))
	}
}

func TestForward_EmptyResultSet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	candidates, err := c.Forward(context.Background(), "nowhereville-zzz")
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected no candidates, got %v", candidates)
	}
}

func TestForward_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Forward(context.Background(), "Paris")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrGeocoderUnavailable) {
		t.Errorf("expected ErrGeocoderUnavailable, got %v", err)
	}
}

func TestReverse_ReturnsDisplayName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("lat"); got != "48.8566" {
			t.Errorf("unexpected lat param: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name":"Paris, Ile-de-France, Metropolitan France, France"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	name, err := c.Reverse(context.Background(), 48.8566, 2.3522)
	if err != nil {
		t.Fatalf("Reverse failed: %v", err)
	}
	if name != "Paris, Ile-de-France, Metropolitan France, France" {
		t.Errorf("unexpected display name %q", name)
	}
}

func TestReverse_EmptyDisplayName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Reverse(context.Background(), 0, 0)
	if err == nil {
		t.Fatal("expected error for empty display name")
	}
	if !errors.Is(err, domain.ErrGeocoderUnavailable) {
		t.Errorf("expected ErrGeocoderUnavailable, got %v", err)
	}
}

func TestGet_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := c.Forward(ctx, "Paris")
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
}
