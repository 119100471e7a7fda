package export

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/startup-radar/internal/application"
	"github.com/bryanwahyu/startup-radar/internal/domain/evaluation"
)

// Service snapshots the latest evaluations to object storage for the
// dashboard and admin export tooling.
type Service struct {
	Evals evaluation.Repository
	Store evaluation.SnapshotStore
	Clock application.Clock
}

type Snapshot struct {
	TenantID    string                   `json:"tenant_id"`
	ExportedAt  string                   `json:"exported_at"`
	Count       int                      `json:"count"`
	Evaluations []*evaluation.Evaluation `json:"evaluations"`
}

// Export uploads the newest evaluation per startup as one JSON object and
// returns its URL.
func (s *Service) Export(ctx context.Context, tenant string) (string, int, error) {
	evals, err := s.Evals.LatestAll(ctx, tenant)
	if err != nil {
		return "", 0, fmt.Errorf("loading evaluations: %w", err)
	}
	now := s.Clock.Now().UTC()
	snap := Snapshot{
		TenantID:    tenant,
		ExportedAt:  now.Format("2006-01-02T15:04:05Z"),
		Count:       len(evals),
		Evaluations: evals,
	}
	key := fmt.Sprintf("%s/evaluations-%s.json", tenant, now.Format("20060102-150405"))
	url, err := s.Store.UploadJSON(ctx, key, snap)
	if err != nil {
		return "", 0, fmt.Errorf("uploading snapshot: %w", err)
	}
	return url, len(evals), nil
}
