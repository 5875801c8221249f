package resolve

import (
	"context"

	"github.com/geodex-search/geodex/internal/domain/geo"
)

// Geocoder resolves place names to coordinates and coordinates to addresses.
type Geocoder interface {
	Forward(ctx context.Context, place string) ([]geo.Candidate, error)
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// IPLocator infers a caller's city from their IP address.
type IPLocator interface {
	CityByIP(ctx context.Context, addr string) (string, error)
}
