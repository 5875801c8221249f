package domain

import "errors"

var (
	// ErrIndexUnavailable signals that the document index cannot be reached
	// or a query against it failed.
	ErrIndexUnavailable = errors.New("document index unavailable")
	// ErrRecognizerUnavailable signals that the entity recognizer cannot be reached.
	ErrRecognizerUnavailable = errors.New("entity recognizer unavailable")
	// ErrGeocoderUnavailable signals a geocoding provider failure.
	ErrGeocoderUnavailable = errors.New("geocoder unavailable")
	// ErrInvalidRequest signals a malformed search request.
	ErrInvalidRequest = errors.New("invalid request")
)
