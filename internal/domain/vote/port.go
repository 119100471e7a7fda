package vote

import "context"

// Repository port. Read-only by design: votes are written by the UI/API
// collaborator, never by the recommendation path.
type Repository interface {
	ListByUser(ctx context.Context, tenant string, userID string) ([]Vote, error)
}
