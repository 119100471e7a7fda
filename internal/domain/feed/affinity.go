package feed

import (
	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
	"github.com/bryanwahyu/startup-radar/internal/domain/vote"
)

// Profile is the per-user affinity profile: frequency of topic, use case,
// and maturity among startups the user marked interested. Derived, never
// stored; recomputing from the same vote set is deterministic.
type Profile struct {
	Topics     map[string]int
	UseCases   map[string]int
	Maturities map[string]int
	Interested int
}

// Empty reports whether no interested vote contributed anything (edge
// case: all votes "not interested", or none of the liked startups carry an
// evaluation yet).
func (p Profile) Empty() bool {
	return len(p.Topics) == 0 && len(p.UseCases) == 0 && len(p.Maturities) == 0
}

// BuildProfile aggregates attribute frequencies from the latest vote per
// startup, counting only "interested" votes against evaluated candidates.
func BuildProfile(votes []vote.Vote, byStartup map[startup.ID]Candidate) Profile {
	p := Profile{
		Topics:     map[string]int{},
		UseCases:   map[string]int{},
		Maturities: map[string]int{},
	}
	for id, v := range vote.Latest(votes) {
		if !v.Interested {
			continue
		}
		p.Interested++
		c, ok := byStartup[id]
		if !ok {
			continue
		}
		if c.TopicID != "" {
			p.Topics[c.TopicID]++
		}
		for _, uc := range c.UseCaseIDs {
			p.UseCases[uc]++
		}
		if c.Maturity != "" {
			p.Maturities[c.Maturity]++
		}
	}
	return p
}
