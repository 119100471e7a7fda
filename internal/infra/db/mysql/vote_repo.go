package mysql

import (
	"context"
	"database/sql"

	domain "github.com/bryanwahyu/startup-radar/internal/domain/vote"
)

// VoteRepository is read-only: votes are written by the UI/API
// collaborator, never by this service.
type VoteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// ListByUser returns the full vote log for one user, oldest first
func (r *VoteRepository) ListByUser(ctx context.Context, tenant string, userID string) ([]domain.Vote, error) {
	const q = `
SELECT startup_id, user_id, interested, voted_at
FROM votes
WHERE tenant_id=? AND user_id=?
ORDER BY voted_at, startup_id;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Vote
	for rows.Next() {
		var v domain.Vote
		if err := rows.Scan(&v.StartupID, &v.UserID, &v.Interested, &v.VotedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
