package recommend

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/startup-radar/internal/domain/evaluation"
	"github.com/bryanwahyu/startup-radar/internal/domain/feed"
	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
	"github.com/bryanwahyu/startup-radar/internal/domain/vote"
)

// Service implements use-cases untuk recommendation feed
type Service struct {
	Startups startup.Repository
	Evals    evaluation.Repository
	Votes    vote.Repository

	FeedSize           int
	ColdStartThreshold int
	DiversityRatio     float64
}

// Feed builds the ordered feed for one user session. Everything derived
// (affinity profile, candidate pool) is recomputed from the persisted
// evaluations and the user's vote log on every call.
func (s *Service) Feed(ctx context.Context, tenant, userID string, size int, exclude []startup.ID) (feed.Result, error) {
	if size <= 0 {
		size = s.FeedSize
	}

	evals, err := s.Evals.LatestAll(ctx, tenant)
	if err != nil {
		return feed.Result{}, fmt.Errorf("loading evaluations: %w", err)
	}
	catalog, err := s.Startups.All(ctx, tenant)
	if err != nil {
		return feed.Result{}, fmt.Errorf("loading catalog: %w", err)
	}
	votes, err := s.Votes.ListByUser(ctx, tenant, userID)
	if err != nil {
		return feed.Result{}, fmt.Errorf("loading votes: %w", err)
	}

	maturity := make(map[startup.ID]string, len(catalog))
	for _, su := range catalog {
		maturity[su.ID] = string(su.Maturity)
	}

	cands := make([]feed.Candidate, 0, len(evals))
	for _, ev := range evals {
		if ev.Tier == evaluation.TierExcluded {
			continue
		}
		var ucs []string
		for _, uc := range ev.UseCases {
			ucs = append(ucs, uc.UseCaseID)
		}
		cands = append(cands, feed.Candidate{
			StartupID:  ev.StartupID,
			Score:      ev.Score,
			TopicID:    ev.TopicID,
			UseCaseIDs: ucs,
			Maturity:   maturity[ev.StartupID],
		})
	}

	return feed.Select(cands, votes, feed.Options{
		Size:               size,
		ColdStartThreshold: s.ColdStartThreshold,
		DiversityRatio:     s.DiversityRatio,
		Exclude:            exclude,
	}), nil
}
