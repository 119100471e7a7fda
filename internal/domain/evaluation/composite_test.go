package evaluation

import (
	"testing"

	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
)

func TestScoreStartupTopCandidate(t *testing.T) {
	tax := testTaxonomy()
	s := &startup.Startup{
		ID:          "s1",
		Name:        "FlowMind",
		Description: "Agent orchestration platform for enterprise workflows",
		FundingUSD:  120_000_000,
		Employees:   startup.Employees500Plus,
		Maturity:    startup.MaturityScaling,
		Country:     "de",
	}

	match := MatchStartup(s, tax, MatchOptions{})
	if match.Confidence < 80 {
		t.Fatalf("confidence = %d, want >= 80", match.Confidence)
	}

	c, score, tier := ScoreStartup(s, match, DefaultWeights())

	if c.Match != 34 { // round(86 * 0.4)
		t.Errorf("match component = %d, want 34", c.Match)
	}
	if c.MultiRule != 10 {
		t.Errorf("multi-rule bonus = %d, want 10", c.MultiRule)
	}
	if c.Funding != 35 {
		t.Errorf("funding component = %d, want 35", c.Funding)
	}
	if c.Maturity != 30 { // scaling 20 + 500+ 10, at the cap
		t.Errorf("maturity component = %d, want 30", c.Maturity)
	}
	if c.Geography != 20 {
		t.Errorf("geography component = %d, want 20", c.Geography)
	}
	if len(c.Penalties) != 0 {
		t.Errorf("unexpected penalties: %+v", c.Penalties)
	}
	if c.Raw != 129 {
		t.Errorf("raw = %d, want 129", c.Raw)
	}
	if score < 80 {
		t.Errorf("score = %d, want >= 80", score)
	}
	if tier != Tier1 {
		t.Errorf("tier = %d, want Tier 1", tier)
	}
}

func TestScoreStartupEmptyNoFunding(t *testing.T) {
	tax := testTaxonomy()
	s := &startup.Startup{ID: "ghost"}

	match := MatchStartup(s, tax, MatchOptions{})
	if match.Matched() {
		t.Fatalf("empty startup matched: %+v", match)
	}

	c, score, tier := ScoreStartup(s, match, DefaultWeights())
	if c.Match != 0 || c.Funding != 0 {
		t.Errorf("components = %+v, want zero match and funding", c)
	}
	if score >= 20 {
		t.Errorf("score = %d, want < 20", score)
	}
	if tier != TierExcluded {
		t.Errorf("tier = %d, want excluded", tier)
	}
}

func TestScoreStartupDeterministic(t *testing.T) {
	tax := testTaxonomy()
	s := &startup.Startup{
		ID:          "s1",
		Description: "agent orchestration for enterprise workflows",
		FundingUSD:  30_000_000,
		Maturity:    startup.MaturityGrowth,
		Employees:   startup.Employees51to200,
		Country:     "us",
	}
	match := MatchStartup(s, tax, MatchOptions{})

	_, first, _ := ScoreStartup(s, match, DefaultWeights())
	for i := 0; i < 10; i++ {
		if _, again, _ := ScoreStartup(s, match, DefaultWeights()); again != first {
			t.Fatalf("run %d diverged: %d vs %d", i, again, first)
		}
	}
}

func TestScoreBounded(t *testing.T) {
	w := DefaultWeights()
	cases := []*startup.Startup{
		{ID: "max", FundingUSD: 900_000_000, Maturity: startup.MaturityScaling,
			Employees: startup.Employees500Plus, Country: "de"},
		{ID: "min"},
		{ID: "penalized", Maturity: startup.MaturityPrototype},
	}
	for _, s := range cases {
		match := MatchResult{TopicID: "t", Confidence: 100,
			UseCases: []UseCaseMatch{{TopicID: "t", UseCaseID: "a", Confidence: 100},
				{TopicID: "t", UseCaseID: "b", Confidence: 90}}}
		if _, score, _ := ScoreStartup(s, match, w); score < 0 || score > 100 {
			t.Errorf("startup %s: score %d out of [0,100]", s.ID, score)
		}
		if _, score, _ := ScoreStartup(s, MatchResult{}, w); score < 0 || score > 100 {
			t.Errorf("startup %s unmatched: score %d out of [0,100]", s.ID, score)
		}
	}
}

func TestFundingMonotonic(t *testing.T) {
	ladder := DefaultWeights().Funding
	amounts := []int64{0, 1, 999_999, 1_000_000, 5_000_000, 19_999_999,
		20_000_000, 50_000_000, 99_999_999, 100_000_000, 500_000_000, 2_000_000_000}
	prev := -1
	for _, usd := range amounts {
		pts := fundingPoints(usd, ladder)
		if pts < prev {
			t.Fatalf("funding %d -> %d points, below previous %d", usd, pts, prev)
		}
		prev = pts
	}
	if fundingPoints(0, ladder) != 0 {
		t.Errorf("undisclosed funding must score 0, got %d", fundingPoints(0, ladder))
	}
	if fundingPoints(120_000_000, ladder) != 35 {
		t.Errorf("120M = %d points, want 35", fundingPoints(120_000_000, ladder))
	}
	if fundingPoints(600_000_000, ladder) != 40 {
		t.Errorf("600M = %d points, want 40", fundingPoints(600_000_000, ladder))
	}
}

func TestPenaltiesItemized(t *testing.T) {
	w := DefaultWeights()

	s := &startup.Startup{ID: "s1", Maturity: startup.MaturityGrowth} // no funding at growth
	c, _, _ := ScoreStartup(s, MatchResult{}, w)
	if len(c.Penalties) != 1 {
		t.Fatalf("penalties = %+v, want exactly one", c.Penalties)
	}
	if c.Penalties[0].Points >= 0 || c.Penalties[0].Reason == "" {
		t.Errorf("penalty not itemized: %+v", c.Penalties[0])
	}

	s = &startup.Startup{ID: "s2", Maturity: startup.MaturityPrototype}
	c, _, _ = ScoreStartup(s, MatchResult{}, w)
	if len(c.Penalties) != 1 {
		t.Fatalf("prototype penalties = %+v, want exactly one", c.Penalties)
	}

	// seed with no funding is expected, no penalty
	s = &startup.Startup{ID: "s3", Maturity: startup.MaturitySeed}
	c, _, _ = ScoreStartup(s, MatchResult{}, w)
	if len(c.Penalties) != 0 {
		t.Errorf("seed penalties = %+v, want none", c.Penalties)
	}
}

func TestTierFor(t *testing.T) {
	cases := []struct {
		score int
		want  Tier
	}{
		{100, Tier1}, {80, Tier1}, {79, Tier2}, {60, Tier2},
		{59, Tier3}, {40, Tier3}, {39, Tier4}, {20, Tier4},
		{19, TierExcluded}, {0, TierExcluded},
	}
	for _, tc := range cases {
		if got := TierFor(tc.score); got != tc.want {
			t.Errorf("TierFor(%d) = %d, want %d", tc.score, got, tc.want)
		}
	}
}
