// Package request holds the validated search request value object.
package request

import (
	"fmt"
	"strings"

	"github.com/geodex-search/geodex/internal/domain"
)

// MaxQueryLength is the maximum allowed search query length.
const MaxQueryLength = 4096

// Request is a validated search request. Topic, author, and location are
// optional signals; only the free-text query is required.
type Request struct {
	query            string
	topic            string
	author           string
	specificLocation string
	clientIP         string
}

// New validates and normalizes search parameters. ClientIP is the caller's
// network origin, used for device-location inference when no explicit
// location is given; it may be empty.
func New(query, topic, author, specificLocation, clientIP string) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}

	return Request{
		query:            query,
		topic:            strings.TrimSpace(topic),
		author:           strings.TrimSpace(author),
		specificLocation: strings.TrimSpace(specificLocation),
		clientIP:         clientIP,
	}, nil
}

// Query returns the free-text query.
func (r *Request) Query() string { return r.query }

// Topic returns the topic filter, empty if not given.
func (r *Request) Topic() string { return r.topic }

// Author returns the raw author text, empty if not given.
func (r *Request) Author() string { return r.author }

// SpecificLocation returns the explicitly requested place, empty if not given.
func (r *Request) SpecificLocation() string { return r.specificLocation }

// ClientIP returns the caller's network origin, empty if unknown.
func (r *Request) ClientIP() string { return r.clientIP }

// HasExplicitLocation reports whether the caller named a place.
func (r *Request) HasExplicitLocation() bool { return r.specificLocation != "" }
