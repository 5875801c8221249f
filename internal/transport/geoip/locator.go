// Package geoip infers a caller's city from their IP using a MaxMind database.
package geoip

import (
	"context"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/geodex-search/geodex/internal/metrics"
)

// Locator resolves IP addresses to city names from a local mmdb file.
type Locator struct {
	reader *geoip2.Reader
}

// Open loads a GeoLite2/GeoIP2 City database. The reader is safe for
// concurrent use and lives for the whole process.
func Open(path string) (*Locator, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database %s: %w", path, err)
	}
	return &Locator{reader: reader}, nil
}

// CityByIP returns the English city name for an IP address. An unknown or
// private IP yields an empty city name, not an error.
func (l *Locator) CityByIP(_ context.Context, addr string) (string, error) {
	ip := net.ParseIP(addr)
	if ip == nil {
		metrics.GeocoderRequestsTotal.WithLabelValues("ip_lookup", "error").Inc()
		return "", fmt.Errorf("invalid ip address %q", addr)
	}

	record, err := l.reader.City(ip)
	if err != nil {
		metrics.GeocoderRequestsTotal.WithLabelValues("ip_lookup", "error").Inc()
		return "", fmt.Errorf("city lookup %s: %w", addr, err)
	}

	metrics.GeocoderRequestsTotal.WithLabelValues("ip_lookup", "success").Inc()
	return record.City.Names["en"], nil
}

// Close releases the database reader.
func (l *Locator) Close() error {
	return l.reader.Close()
}
