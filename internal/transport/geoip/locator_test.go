package geoip

import (
	"context"
	"testing"
)

func TestCityByIP_InvalidAddress(t *testing.T) {
	l := &Locator{}

	tests := []string{"", "not-an-ip", "999.1.1.1"}
	for _, addr := range tests {
		if _, err := l.CityByIP(context.Background(), addr); err == nil {
			t.Errorf("expected error for %q", addr)
		}
	}
}

func TestOpen_MissingDatabase(t *testing.T) {
	if _, err := Open("/nonexistent/GeoLite2-City.mmdb"); err == nil {
		t.Fatal("expected error for missing database file")
	}
}
