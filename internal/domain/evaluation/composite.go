package evaluation

import (
	"math"

	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
)

// FundingBucket one rung of the funding ladder: disclosed funding at or
// above MinUSD earns Points. Buckets must be ordered high to low so the
// component stays monotonic in funding amount.
type FundingBucket struct {
	MinUSD int64 `yaml:"min_usd"`
	Points int   `yaml:"points"`
}

// Weights konfigurasi Composite Scorer. Zero-value fields fall back to
// DefaultWeights at config load.
type Weights struct {
	MatchScale     float64         `yaml:"match_scale"` // best topic confidence * scale, 0-40
	MultiRuleBonus int             `yaml:"multi_rule_bonus"`
	Funding        []FundingBucket `yaml:"funding"`
	Maturity       map[string]int  `yaml:"maturity"`
	Employees      map[string]int  `yaml:"employees"`
	MaturityCap    int             `yaml:"maturity_cap"`
	Geography      map[string]int  `yaml:"geography"` // country code -> points, 0-20
	RawMax         int             `yaml:"raw_max"`

	UnfundedAtScalePenalty int `yaml:"unfunded_at_scale_penalty"`
	PrototypePenalty       int `yaml:"prototype_penalty"`
}

// DefaultWeights returns the shipped configuration.
func DefaultWeights() Weights {
	return Weights{
		MatchScale:     0.4,
		MultiRuleBonus: 10,
		Funding: []FundingBucket{
			{MinUSD: 500_000_000, Points: 40},
			{MinUSD: 100_000_000, Points: 35},
			{MinUSD: 50_000_000, Points: 30},
			{MinUSD: 20_000_000, Points: 25},
			{MinUSD: 5_000_000, Points: 15},
			{MinUSD: 1, Points: 8},
		},
		Maturity: map[string]int{
			string(startup.MaturityScaling):   20,
			string(startup.MaturityGrowth):    15,
			string(startup.MaturitySeed):      8,
			string(startup.MaturityPrototype): 3,
		},
		Employees: map[string]int{
			string(startup.Employees500Plus):  10,
			string(startup.Employees201to500): 8,
			string(startup.Employees51to200):  6,
			string(startup.Employees11to50):   4,
			string(startup.Employees1to10):    2,
		},
		MaturityCap: 30,
		Geography: map[string]int{
			"de": 20, "ch": 20, "at": 18,
			"us": 15, "gb": 15, "nl": 15,
			"fr": 12, "se": 12, "fi": 12,
			"il": 10, "sg": 10, "ca": 10,
		},
		RawMax:                 140,
		UnfundedAtScalePenalty: -10,
		PrototypePenalty:       -10,
	}
}

// ScoreStartup combines the Rule Matcher output with structured attributes
// into an itemized raw total, a normalized 0-100 score, and a tier.
// Pure and deterministic: identical inputs always yield identical output.
func ScoreStartup(s *startup.Startup, match MatchResult, w Weights) (Components, int, Tier) {
	var c Components

	c.Match = int(math.Round(float64(match.Confidence) * w.MatchScale))
	if multiRule(match) {
		c.MultiRule = w.MultiRuleBonus
	}
	c.Funding = fundingPoints(s.FundingUSD, w.Funding)
	c.Maturity = maturityPoints(s, w)
	c.Geography = w.Geography[s.Country]

	c.Raw = c.Match + c.MultiRule + c.Funding + c.Maturity + c.Geography
	for _, p := range penalties(s, w) {
		c.Penalties = append(c.Penalties, p)
		c.Raw += p.Points
	}

	score := normalize(c.Raw, w.RawMax)
	return c, score, TierFor(score)
}

// multiRule: multiple use cases in the startup's topic, or (with the
// explicit cross-topic override) matches spanning more than one topic.
func multiRule(match MatchResult) bool {
	if match.CrossTopic {
		return true
	}
	n := 0
	for _, uc := range match.UseCases {
		if uc.TopicID == match.TopicID {
			n++
		}
	}
	return n > 1
}

// fundingPoints walks the ladder high to low. Undisclosed (zero) funding
// gets the floor value, never a penalty here; monotonic in amount.
func fundingPoints(usd int64, ladder []FundingBucket) int {
	if usd <= 0 {
		return 0
	}
	for _, b := range ladder {
		if usd >= b.MinUSD {
			return b.Points
		}
	}
	return 0
}

func maturityPoints(s *startup.Startup, w Weights) int {
	pts := w.Maturity[string(s.Maturity)] + w.Employees[string(s.Employees)]
	if pts > w.MaturityCap {
		pts = w.MaturityCap
	}
	return pts
}

// penalties are itemized and explainable, never silently folded into
// another component.
func penalties(s *startup.Startup, w Weights) []Penalty {
	var out []Penalty
	if s.FundingUSD <= 0 &&
		(s.Maturity == startup.MaturityGrowth || s.Maturity == startup.MaturityScaling) {
		out = append(out, Penalty{
			Reason: "no disclosed funding at a stage where it would be expected",
			Points: w.UnfundedAtScalePenalty,
		})
	}
	if s.Maturity == startup.MaturityPrototype {
		out = append(out, Penalty{
			Reason: "prototype-only maturity",
			Points: w.PrototypePenalty,
		})
	}
	return out
}

func normalize(raw, rawMax int) int {
	if rawMax <= 0 {
		rawMax = 140
	}
	score := int(math.Round(float64(raw) / float64(rawMax) * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
