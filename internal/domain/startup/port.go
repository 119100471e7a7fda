package startup

import "context"

// Repository port (interface untuk persistence)
// The catalog is written by the ingestion/enrichment collaborator; the
// scoring pipeline only reads it.
type Repository interface {
	Save(ctx context.Context, s *Startup) error
	Get(ctx context.Context, tenant string, id ID) (*Startup, error)
	All(ctx context.Context, tenant string) ([]*Startup, error)
	Count(ctx context.Context, tenant string) (int64, error)
}
