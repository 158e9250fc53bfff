package ports

import (
	"context"
)

// SourceResolver turns a source URL into a playable track payload.
type SourceResolver interface {
	// Resolve loads the first playable track behind url.
	Resolve(ctx context.Context, url string) (*ResolvedSource, error)
}
