package feed

import (
	"math"
	"sort"

	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
	"github.com/bryanwahyu/startup-radar/internal/domain/vote"
)

// Mode enum
type Mode string

const (
	ModeColdStart    Mode = "cold-start"
	ModePersonalized Mode = "personalized"
)

// Status enum
type Status string

const (
	StatusOK        Status = "ok"
	StatusExhausted Status = "exhausted"
)

// Candidate is one scored startup as the selector sees it: the latest
// evaluation projected down to what ranking needs.
type Candidate struct {
	StartupID  startup.ID
	Score      int
	TopicID    string
	UseCaseIDs []string
	Maturity   string
}

// Options konfigurasi selector per request.
type Options struct {
	Size               int
	ColdStartThreshold int        // min interested votes for personalization
	DiversityRatio     float64    // r in [0,1]
	Exclude            []startup.ID
}

// Result is the ordered feed plus the mode that produced it.
type Result struct {
	Mode       Mode         `json:"mode"`
	Status     Status       `json:"status"`
	StartupIDs []startup.ID `json:"startup_ids"`
}

// Affinity bonus weights. Small relative to the base score so
// personalization nudges rather than overrides the evaluation ranking.
const (
	topicBonus    = 20
	useCaseBonus  = 10
	maturityBonus = 5
)

// Select produces the ordered, deduplicated feed for one user request.
// No randomness: selection within each pool is score-ordered with ties
// broken by startup id, so feeds are reproducible and testable.
func Select(cands []Candidate, votes []vote.Vote, o Options) Result {
	if o.Size <= 0 {
		o.Size = 20
	}
	if o.ColdStartThreshold <= 0 {
		o.ColdStartThreshold = 10
	}

	excluded := make(map[startup.ID]bool, len(o.Exclude))
	for _, id := range o.Exclude {
		excluded[id] = true
	}
	latest := vote.Latest(votes)
	for id := range latest {
		excluded[id] = true
	}

	byStartup := make(map[startup.ID]Candidate, len(cands))
	var unseen []Candidate
	for _, c := range cands {
		// first occurrence wins: a startup may show up twice when two
		// evaluations share a created_at timestamp
		if _, dup := byStartup[c.StartupID]; dup {
			continue
		}
		byStartup[c.StartupID] = c
		if !excluded[c.StartupID] {
			unseen = append(unseen, c)
		}
	}

	profile := BuildProfile(votes, byStartup)
	if profile.Interested < o.ColdStartThreshold || profile.Empty() {
		// fall back to cold start rather than erroring on an empty profile
		return coldStart(unseen, o.Size)
	}
	return personalized(unseen, profile, o)
}

func coldStart(unseen []Candidate, size int) Result {
	sortByScore(unseen, nil)
	ids := take(unseen, size)
	return Result{Mode: ModeColdStart, Status: statusFor(ids), StartupIDs: ids}
}

func personalized(unseen []Candidate, profile Profile, o Options) Result {
	blend := func(c Candidate) int {
		b := c.Score
		if n := profile.Topics[c.TopicID]; n > 0 {
			b += topicBonus * n / profile.Interested
		}
		for _, uc := range c.UseCaseIDs {
			if n := profile.UseCases[uc]; n > 0 {
				b += useCaseBonus * n / profile.Interested
			}
		}
		if n := profile.Maturities[c.Maturity]; n > 0 {
			b += maturityBonus * n / profile.Interested
		}
		return b
	}

	var inside, outside []Candidate
	for _, c := range unseen {
		if profile.Topics[c.TopicID] > 0 {
			inside = append(inside, c)
		} else {
			outside = append(outside, c)
		}
	}
	sortByScore(inside, blend)
	sortByScore(outside, nil) // non-affinity pool ranks by base score

	// A fraction r of slots comes from outside the user's affinity topics
	// to avoid feed collapse into a single topic.
	outSlots := int(math.Round(o.DiversityRatio * float64(o.Size)))
	if outSlots > len(outside) {
		outSlots = len(outside)
	}
	inSlots := o.Size - outSlots
	if inSlots > len(inside) {
		inSlots = len(inside)
	}

	picked := append(append([]Candidate{}, inside[:inSlots]...), outside[:outSlots]...)

	// Backfill when either pool ran dry.
	for _, c := range inside[inSlots:] {
		if len(picked) >= o.Size {
			break
		}
		picked = append(picked, c)
	}
	for _, c := range outside[outSlots:] {
		if len(picked) >= o.Size {
			break
		}
		picked = append(picked, c)
	}

	sortByScore(picked, blend)
	ids := take(picked, o.Size)
	return Result{Mode: ModePersonalized, Status: statusFor(ids), StartupIDs: ids}
}

func sortByScore(cands []Candidate, score func(Candidate) int) {
	if score == nil {
		score = func(c Candidate) int { return c.Score }
	}
	sort.SliceStable(cands, func(i, j int) bool {
		si, sj := score(cands[i]), score(cands[j])
		if si != sj {
			return si > sj
		}
		return cands[i].StartupID < cands[j].StartupID
	})
}

func take(cands []Candidate, n int) []startup.ID {
	if n > len(cands) {
		n = len(cands)
	}
	ids := make([]startup.ID, 0, n)
	for _, c := range cands[:n] {
		ids = append(ids, c.StartupID)
	}
	return ids
}

func statusFor(ids []startup.ID) Status {
	if len(ids) == 0 {
		return StatusExhausted
	}
	return StatusOK
}
