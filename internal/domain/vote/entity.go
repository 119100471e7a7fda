package vote

import (
	"sort"
	"time"

	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
)

// Vote is an append-only swipe record. The most recent vote per
// (startup, user) pair is authoritative; this service only ever reads them.
type Vote struct {
	StartupID  startup.ID `json:"startup_id"`
	UserID     string     `json:"user_id"`
	Interested bool       `json:"interested"`
	VotedAt    time.Time  `json:"voted_at"`
}

// Latest collapses a vote log to the newest vote per startup.
// Deterministic: ties on timestamp resolve by keeping the later log entry.
func Latest(votes []Vote) map[startup.ID]Vote {
	sorted := make([]Vote, len(votes))
	copy(sorted, votes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].VotedAt.Before(sorted[j].VotedAt)
	})
	out := make(map[startup.ID]Vote, len(sorted))
	for _, v := range sorted {
		out[v.StartupID] = v
	}
	return out
}
