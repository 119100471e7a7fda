package export

import (
	"context"
	"testing"
	"time"

	"github.com/bryanwahyu/startup-radar/internal/domain/evaluation"
	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
)

type memEvals struct{ latest []*evaluation.Evaluation }

func (m *memEvals) Save(context.Context, *evaluation.Evaluation) error { return nil }
func (m *memEvals) LatestByStartup(context.Context, string, startup.ID) (*evaluation.Evaluation, error) {
	return nil, nil
}
func (m *memEvals) Latest(context.Context, string, int) ([]*evaluation.Evaluation, error) {
	return m.latest, nil
}
func (m *memEvals) LatestAll(context.Context, string) ([]*evaluation.Evaluation, error) {
	return m.latest, nil
}
func (m *memEvals) Paginate(context.Context, string, int, int, evaluation.Filters) (evaluation.PaginatedResult, error) {
	return evaluation.PaginatedResult{}, nil
}
func (m *memEvals) ScoredStartupIDs(context.Context, string, string) (map[startup.ID]bool, error) {
	return nil, nil
}

type memStore struct {
	key     string
	payload any
}

func (m *memStore) UploadJSON(_ context.Context, key string, payload any) (string, error) {
	m.key = key
	m.payload = payload
	return "https://storage.local/" + key, nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func TestExportSnapshot(t *testing.T) {
	store := &memStore{}
	svc := &Service{
		Evals: &memEvals{latest: []*evaluation.Evaluation{
			{StartupID: "s1", Score: 85, Tier: evaluation.Tier1},
			{StartupID: "s2", Score: 42, Tier: evaluation.Tier3},
		}},
		Store: store,
		Clock: fixedClock{at: time.Date(2026, 9, 1, 12, 30, 45, 0, time.UTC)},
	}

	url, count, err := svc.Export(context.Background(), "acme")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	wantKey := "acme/evaluations-20260901-123045.json"
	if store.key != wantKey {
		t.Errorf("key = %q, want %q", store.key, wantKey)
	}
	if url != "https://storage.local/"+wantKey {
		t.Errorf("url = %q", url)
	}
	snap, ok := store.payload.(Snapshot)
	if !ok {
		t.Fatalf("payload type %T, want Snapshot", store.payload)
	}
	if snap.TenantID != "acme" || snap.Count != 2 || len(snap.Evaluations) != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.ExportedAt != "2026-09-01T12:30:45Z" {
		t.Errorf("exported_at = %q", snap.ExportedAt)
	}
}
