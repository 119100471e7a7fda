package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/bryanwahyu/startup-radar/internal/domain/evaluation"
	"github.com/bryanwahyu/startup-radar/internal/domain/feed"
	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
	"github.com/bryanwahyu/startup-radar/internal/domain/vote"
)

type memStartups struct{ items []*startup.Startup }

func (m *memStartups) Save(context.Context, *startup.Startup) error { return nil }
func (m *memStartups) Get(context.Context, string, startup.ID) (*startup.Startup, error) {
	return nil, nil
}
func (m *memStartups) All(context.Context, string) ([]*startup.Startup, error) {
	return m.items, nil
}
func (m *memStartups) Count(context.Context, string) (int64, error) {
	return int64(len(m.items)), nil
}

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

type memVotes struct{ votes []vote.Vote }

func (m *memVotes) ListByUser(context.Context, string, string) ([]vote.Vote, error) {
	return m.votes, nil
}

func eval(id string, score int, tier evaluation.Tier, topic string) *evaluation.Evaluation {
	return &evaluation.Evaluation{
		StartupID: startup.ID(id),
		Score:     score,
		Tier:      tier,
		TopicID:   topic,
		UseCases:  []evaluation.UseCaseMatch{{TopicID: topic, UseCaseID: topic + "-uc", Confidence: score}},
	}
}

func TestFeedExcludesTierExcluded(t *testing.T) {
	svc := &Service{
		Startups: &memStartups{items: []*startup.Startup{
			{ID: "good", Maturity: startup.MaturityGrowth},
			{ID: "bad", Maturity: startup.MaturitySeed},
		}},
		Evals: &memEvals{latest: []*evaluation.Evaluation{
			eval("good", 85, evaluation.Tier1, "ai-agentic"),
			eval("bad", 12, evaluation.TierExcluded, "ai-agentic"),
		}},
		Votes:    &memVotes{},
		FeedSize: 20,
	}

	res, err := svc.Feed(context.Background(), "acme", "u1", 0, nil)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if res.Mode != feed.ModeColdStart {
		t.Fatalf("mode = %q, want cold-start with no votes", res.Mode)
	}
	if len(res.StartupIDs) != 1 || res.StartupIDs[0] != "good" {
		t.Fatalf("feed = %v, want only the tiered startup", res.StartupIDs)
	}
}

func TestFeedPersonalizedFromVoteHistory(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	var evals []*evaluation.Evaluation
	var items []*startup.Startup
	var votes []vote.Vote

	for i := 0; i < 10; i++ {
		id := "voted-" + string(rune('a'+i))
		items = append(items, &startup.Startup{ID: startup.ID(id)})
		evals = append(evals, eval(id, 50, evaluation.Tier3, "ai-agentic"))
		votes = append(votes, vote.Vote{StartupID: startup.ID(id), UserID: "u1",
			Interested: true, VotedAt: base.Add(time.Duration(i) * time.Hour)})
	}
	items = append(items, &startup.Startup{ID: "in"}, &startup.Startup{ID: "out"})
	evals = append(evals,
		eval("in", 70, evaluation.Tier2, "ai-agentic"),
		eval("out", 90, evaluation.Tier1, "devtools"),
	)

	svc := &Service{
		Startups:           &memStartups{items: items},
		Evals:              &memEvals{latest: evals},
		Votes:              &memVotes{votes: votes},
		FeedSize:           20,
		ColdStartThreshold: 10,
		DiversityRatio:     0.2,
	}

	res, err := svc.Feed(context.Background(), "acme", "u1", 0, nil)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if res.Mode != feed.ModePersonalized {
		t.Fatalf("mode = %q, want personalized", res.Mode)
	}
	got := map[startup.ID]bool{}
	for _, id := range res.StartupIDs {
		got[id] = true
	}
	if !got["in"] || !got["out"] {
		t.Fatalf("feed = %v, want both unseen startups", res.StartupIDs)
	}
	for _, v := range votes {
		if got[v.StartupID] {
			t.Fatalf("voted startup %s surfaced again", v.StartupID)
		}
	}
}
