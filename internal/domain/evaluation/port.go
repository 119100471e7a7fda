package evaluation

import (
	"context"

	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
)

// Filters for paginated evaluation queries.
// Empty values mean "no filter".
type Filters struct {
	Tier   *Tier
	Topic  string
	Usable *bool
}

// PaginatedResult represents a paginated response with data and metadata
type PaginatedResult struct {
	Data       []*Evaluation `json:"data"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	Total      int64         `json:"totalItems"`
	TotalPages int           `json:"totalPages"`
}

// Repository port (interface untuk persistence)
// Writes are append-only: a new pass inserts fresh rows and readers always
// take the newest fully written row per startup.
type Repository interface {
	Save(ctx context.Context, e *Evaluation) error
	LatestByStartup(ctx context.Context, tenant string, id startup.ID) (*Evaluation, error)
	Latest(ctx context.Context, tenant string, limit int) ([]*Evaluation, error)
	// LatestAll returns the newest evaluation per startup for the tenant.
	LatestAll(ctx context.Context, tenant string) ([]*Evaluation, error)
	Paginate(ctx context.Context, tenant string, page, pageSize int, f Filters) (PaginatedResult, error)
	// ScoredStartupIDs lists startups already evaluated under a pass id,
	// which is what makes interrupted passes safely resumable.
	ScoredStartupIDs(ctx context.Context, tenant string, passID string) (map[startup.ID]bool, error)
}

// SnapshotStore port (interface untuk export snapshot evaluation)
type SnapshotStore interface {
	UploadJSON(ctx context.Context, key string, payload any) (string, error)
}
