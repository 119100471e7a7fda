package feed

import (
	"testing"
	"time"

	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
	"github.com/bryanwahyu/startup-radar/internal/domain/vote"
)

func cand(id string, score int, topic string) Candidate {
	return Candidate{StartupID: startup.ID(id), Score: score, TopicID: topic,
		UseCaseIDs: []string{topic + "-uc"}, Maturity: "growth"}
}

func interested(id string, at time.Time) vote.Vote {
	return vote.Vote{StartupID: startup.ID(id), UserID: "u1", Interested: true, VotedAt: at}
}

// enough interested votes in topic "a" to clear the personalization threshold
func votesForTopicA(n int) ([]Candidate, []vote.Vote) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	var cands []Candidate
	var votes []vote.Vote
	for i := 0; i < n; i++ {
		id := string(rune('A' + i))
		cands = append(cands, cand("voted-"+id, 50, "a"))
		votes = append(votes, interested("voted-"+id, base.Add(time.Duration(i)*time.Hour)))
	}
	return cands, votes
}

func TestSelectColdStartRanksByScore(t *testing.T) {
	cands := []Candidate{
		cand("s1", 40, "a"), cand("s2", 90, "b"), cand("s3", 70, "a"),
	}

	res := Select(cands, nil, Options{Size: 2})
	if res.Mode != ModeColdStart {
		t.Fatalf("mode = %q, want cold-start with no votes", res.Mode)
	}
	want := []startup.ID{"s2", "s3"}
	if len(res.StartupIDs) != 2 || res.StartupIDs[0] != want[0] || res.StartupIDs[1] != want[1] {
		t.Fatalf("feed = %v, want %v", res.StartupIDs, want)
	}
	if res.Status != StatusOK {
		t.Fatalf("status = %q, want ok", res.Status)
	}
}

func TestSelectDeterministicTieBreak(t *testing.T) {
	cands := []Candidate{
		cand("zeta", 80, "a"), cand("alpha", 80, "a"), cand("mid", 80, "a"),
	}
	first := Select(cands, nil, Options{Size: 3})
	want := []startup.ID{"alpha", "mid", "zeta"}
	for i, id := range want {
		if first.StartupIDs[i] != id {
			t.Fatalf("feed = %v, want id-ordered %v", first.StartupIDs, want)
		}
	}
	for i := 0; i < 5; i++ {
		again := Select(cands, nil, Options{Size: 3})
		for j := range want {
			if again.StartupIDs[j] != first.StartupIDs[j] {
				t.Fatalf("run %d diverged: %v vs %v", i, again.StartupIDs, first.StartupIDs)
			}
		}
	}
}

func TestSelectDeduplicatesCandidates(t *testing.T) {
	// two evaluations persisted in the same second produce the same
	// startup twice in the candidate list
	cands := []Candidate{
		cand("dup", 80, "a"), cand("dup", 75, "a"), cand("other", 60, "b"),
	}

	res := Select(cands, nil, Options{Size: 5})
	seen := map[startup.ID]int{}
	for _, id := range res.StartupIDs {
		seen[id]++
	}
	if seen["dup"] != 1 {
		t.Fatalf("feed contains %q %d times: %v", "dup", seen["dup"], res.StartupIDs)
	}
	if len(res.StartupIDs) != 2 {
		t.Fatalf("feed = %v, want [dup other]", res.StartupIDs)
	}
	if res.StartupIDs[0] != "dup" || res.StartupIDs[1] != "other" {
		t.Fatalf("feed order = %v, want first occurrence kept and ranked", res.StartupIDs)
	}
}

func TestSelectExcludesVotedAndExplicit(t *testing.T) {
	seen, votes := votesForTopicA(12)
	cands := append(seen,
		cand("fresh-1", 90, "a"),
		cand("fresh-2", 85, "a"),
		cand("blocked", 99, "a"),
	)

	res := Select(cands, votes, Options{Size: 20, Exclude: []startup.ID{"blocked"}})
	got := map[startup.ID]bool{}
	for _, id := range res.StartupIDs {
		got[id] = true
	}
	if got["blocked"] {
		t.Error("explicitly excluded startup surfaced")
	}
	for _, v := range votes {
		if got[v.StartupID] {
			t.Errorf("already-voted startup %s surfaced", v.StartupID)
		}
	}
	if !got["fresh-1"] || !got["fresh-2"] {
		t.Errorf("unseen startups missing from feed: %v", res.StartupIDs)
	}
}

func TestSelectColdStartBelowThreshold(t *testing.T) {
	cands, votes := votesForTopicA(3) // below the default threshold of 10
	cands = append(cands, cand("fresh", 60, "b"))

	res := Select(cands, votes, Options{Size: 5})
	if res.Mode != ModeColdStart {
		t.Fatalf("mode = %q, want cold-start below threshold", res.Mode)
	}
}

func TestSelectPersonalizedDiversityQuota(t *testing.T) {
	seen, votes := votesForTopicA(10)
	cands := append([]Candidate{}, seen...)
	// plenty of unseen candidates in the affinity topic and outside it
	for i := 0; i < 15; i++ {
		cands = append(cands, cand("in-"+string(rune('a'+i)), 90-i, "a"))
		cands = append(cands, cand("out-"+string(rune('a'+i)), 90-i, "b"))
	}

	res := Select(cands, votes, Options{Size: 10, DiversityRatio: 0.3})
	if res.Mode != ModePersonalized {
		t.Fatalf("mode = %q, want personalized", res.Mode)
	}
	if len(res.StartupIDs) != 10 {
		t.Fatalf("feed size = %d, want 10", len(res.StartupIDs))
	}
	out := 0
	for _, id := range res.StartupIDs {
		if len(id) > 4 && id[:4] == "out-" {
			out++
		}
	}
	// round(0.3 * 10) = 3 slots from outside the affinity topics
	if out != 3 {
		t.Fatalf("outside-topic picks = %d, want 3 (ids %v)", out, res.StartupIDs)
	}
}

func TestSelectPersonalizedBackfill(t *testing.T) {
	seen, votes := votesForTopicA(10)
	cands := append([]Candidate{}, seen...)
	// only 2 unseen inside the affinity topic; outside pool must backfill
	cands = append(cands, cand("in-1", 80, "a"), cand("in-2", 75, "a"))
	for i := 0; i < 10; i++ {
		cands = append(cands, cand("out-"+string(rune('a'+i)), 70-i, "b"))
	}

	res := Select(cands, votes, Options{Size: 6, DiversityRatio: 0.2})
	if len(res.StartupIDs) != 6 {
		t.Fatalf("feed size = %d, want 6 after backfill", len(res.StartupIDs))
	}
	if res.StartupIDs[0] != "in-1" || res.StartupIDs[1] != "in-2" {
		t.Fatalf("affinity candidates not ranked first: %v", res.StartupIDs)
	}
}

func TestSelectExhausted(t *testing.T) {
	cands, votes := votesForTopicA(12)

	// every candidate already voted on
	res := Select(cands, votes, Options{Size: 5})
	if res.Status != StatusExhausted {
		t.Fatalf("status = %q, want exhausted", res.Status)
	}
	if len(res.StartupIDs) != 0 {
		t.Fatalf("feed = %v, want empty", res.StartupIDs)
	}

	// no candidates at all
	res = Select(nil, nil, Options{})
	if res.Status != StatusExhausted || res.Mode != ModeColdStart {
		t.Fatalf("empty catalog: %+v", res)
	}
}

func TestSelectAllNotInterestedFallsBack(t *testing.T) {
	base := time.Now()
	var votes []vote.Vote
	var cands []Candidate
	for i := 0; i < 12; i++ {
		id := startup.ID("v" + string(rune('a'+i)))
		cands = append(cands, Candidate{StartupID: id, Score: 50, TopicID: "a"})
		votes = append(votes, vote.Vote{StartupID: id, UserID: "u1",
			Interested: false, VotedAt: base.Add(time.Duration(i) * time.Minute)})
	}
	cands = append(cands, cand("fresh", 60, "b"))

	res := Select(cands, votes, Options{Size: 5})
	if res.Mode != ModeColdStart {
		t.Fatalf("mode = %q, want cold-start for an empty profile", res.Mode)
	}
	if len(res.StartupIDs) != 1 || res.StartupIDs[0] != "fresh" {
		t.Fatalf("feed = %v, want only the unvoted startup", res.StartupIDs)
	}
}
