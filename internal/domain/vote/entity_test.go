package vote

import (
	"testing"
	"time"
)

func TestLatest(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	votes := []Vote{
		{StartupID: "s1", Interested: true, VotedAt: base},
		{StartupID: "s1", Interested: false, VotedAt: base.Add(time.Hour)},
		{StartupID: "s2", Interested: true, VotedAt: base.Add(2 * time.Hour)},
	}

	latest := Latest(votes)
	if len(latest) != 2 {
		t.Fatalf("latest = %d entries, want 2", len(latest))
	}
	if latest["s1"].Interested {
		t.Error("older vote won for s1")
	}
	if !latest["s2"].Interested {
		t.Error("vote lost for s2")
	}
}

func TestLatestTimestampTie(t *testing.T) {
	at := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	votes := []Vote{
		{StartupID: "s1", Interested: true, VotedAt: at},
		{StartupID: "s1", Interested: false, VotedAt: at},
	}
	// ties resolve by keeping the later log entry
	if Latest(votes)["s1"].Interested {
		t.Error("earlier log entry won a timestamp tie")
	}
}
