package evaluation

import (
	"time"

	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
)

// ID tipe untuk Evaluation
type ID string

// Tier priority bucket (1 tertinggi). TierExcluded means the startup falls
// below every threshold and is dropped from tiered feeds.
type Tier int

const (
	TierExcluded Tier = 0
	Tier1        Tier = 1
	Tier2        Tier = 2
	Tier3        Tier = 3
	Tier4        Tier = 4
)

// TierFor maps a normalized score to its tier. Thresholds are fixed:
// >=80 Tier 1, 60-79 Tier 2, 40-59 Tier 3, 20-39 Tier 4, <20 excluded.
func TierFor(score int) Tier {
	switch {
	case score >= 80:
		return Tier1
	case score >= 60:
		return Tier2
	case score >= 40:
		return Tier3
	case score >= 20:
		return Tier4
	default:
		return TierExcluded
	}
}

// Usability enum
type Usability string

const (
	Usable    Usability = "usable"
	NotUsable Usability = "not-usable"
	Uncertain Usability = "uncertain"
)

// ValidationState records what the semantic validator did for this record.
type ValidationState string

const (
	ValidationSkipped  ValidationState = "skipped"
	ValidationAgreed   ValidationState = "agreed"
	ValidationAdjusted ValidationState = "adjusted"
	ValidationFailed   ValidationState = "failed"
)

// Penalty itemized negative adjustment, never folded into another component.
type Penalty struct {
	Reason string `json:"reason"`
	Points int    `json:"points"`
}

// Components raw sub-scores before normalization.
type Components struct {
	Match     int       `json:"match"`
	MultiRule int       `json:"multi_rule"`
	Funding   int       `json:"funding"`
	Maturity  int       `json:"maturity"`
	Geography int       `json:"geography"`
	Penalties []Penalty `json:"penalties,omitempty"`
	Raw       int       `json:"raw"`
}

// UseCaseMatch hasil Rule Matcher untuk satu use case.
type UseCaseMatch struct {
	TopicID    string   `json:"topic_id"`
	UseCaseID  string   `json:"use_case_id"`
	Confidence int      `json:"confidence"`
	Signals    []string `json:"signals,omitempty"`
}

// Aggregate Root: Evaluation
// One record per (startup, taxonomy version) scoring pass. Superseded by
// the next pass, never mutated in place, so history stays inspectable.
type Evaluation struct {
	ID              ID              `json:"id"`
	TenantID        string          `json:"tenant_id"`
	StartupID       startup.ID      `json:"startup_id"`
	PassID          string          `json:"pass_id"`
	TaxonomyVersion string          `json:"taxonomy_version"`
	TopicID         string          `json:"topic_id,omitempty"`
	UseCases        []UseCaseMatch  `json:"use_cases,omitempty"`
	Components      Components      `json:"components"`
	Score           int             `json:"score"`
	Tier            Tier            `json:"tier"`
	Usability       Usability       `json:"usability"`
	Usable          bool            `json:"usable"`
	Validation      ValidationState `json:"validation"`
	Rationale       string          `json:"rationale,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
