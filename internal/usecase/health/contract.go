package health

import "context"

// DBPinger checks document-index availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// RecognizerChecker checks entity-recognizer availability.
type RecognizerChecker interface {
	HealthCheck(ctx context.Context) error
}
