package health

import "context"

// DBPinger checks availability of the profile store.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks availability of the embedding provider.
// Optional: matching stored profiles works without it.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
