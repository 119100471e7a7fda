package evaluation

import (
	"sort"
	"strings"

	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
	"github.com/bryanwahyu/startup-radar/internal/domain/taxonomy"
)

const (
	maxConfidence = 100

	// DefaultMinConfidence floor below which a use case is not "matched".
	DefaultMinConfidence = 20

	// multiUseCaseBonus rewards a second matching use case in the same
	// topic without letting it dominate.
	multiUseCaseBonus = 10
)

// MatchOptions konfigurasi Rule Matcher.
type MatchOptions struct {
	MinConfidence int
	// AllowCrossTopic keeps matches from more than one topic. Off by
	// default; cross-topic matching is an explicit override, never
	// automatic.
	AllowCrossTopic bool
}

// MatchResult hasil Rule Matcher untuk satu startup.
type MatchResult struct {
	TopicID    string
	Confidence int // best topic confidence incl. multi-use-case bonus
	UseCases   []UseCaseMatch
	CrossTopic bool // true only when AllowCrossTopic kept a second topic
}

// Matched reports whether any use case cleared the floor.
func (m MatchResult) Matched() bool { return m.TopicID != "" }

// BestUseCase returns the strongest match, or nil when nothing matched.
func (m MatchResult) BestUseCase() *UseCaseMatch {
	var best *UseCaseMatch
	for i := range m.UseCases {
		if best == nil || m.UseCases[i].Confidence > best.Confidence {
			best = &m.UseCases[i]
		}
	}
	return best
}

// MatchStartup scores one startup's matchable text against the taxonomy.
// Pure function: identical inputs always yield identical output. Empty or
// missing text yields zero confidence everywhere, not an error.
func MatchStartup(s *startup.Startup, tax *taxonomy.Taxonomy, opts MatchOptions) MatchResult {
	floor := opts.MinConfidence
	if floor <= 0 {
		floor = DefaultMinConfidence
	}

	text := s.MatchableText()
	if strings.TrimSpace(text) == "" {
		return MatchResult{}
	}

	type topicMatch struct {
		topicID    string
		order      int
		confidence int
		useCases   []UseCaseMatch
	}
	var matched []topicMatch

	for ti, tp := range tax.Topics {
		var ucs []UseCaseMatch
		best := 0
		for _, uc := range tp.UseCases {
			conf, signals := scoreUseCase(text, uc, tax)
			if conf < floor {
				continue
			}
			ucs = append(ucs, UseCaseMatch{
				TopicID:    tp.ID,
				UseCaseID:  uc.ID,
				Confidence: conf,
				Signals:    signals,
			})
			if conf > best {
				best = conf
			}
		}
		if len(ucs) == 0 {
			continue
		}
		if len(ucs) > 1 {
			best += multiUseCaseBonus
			if best > maxConfidence {
				best = maxConfidence
			}
		}
		matched = append(matched, topicMatch{topicID: tp.ID, order: ti, confidence: best, useCases: ucs})
	}

	if len(matched) == 0 {
		return MatchResult{}
	}

	// Best topic wins; ties break by taxonomy order for reproducibility.
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].confidence != matched[j].confidence {
			return matched[i].confidence > matched[j].confidence
		}
		return matched[i].order < matched[j].order
	})

	res := MatchResult{
		TopicID:    matched[0].topicID,
		Confidence: matched[0].confidence,
		UseCases:   matched[0].useCases,
	}
	if opts.AllowCrossTopic && len(matched) > 1 {
		res.CrossTopic = true
		for _, tm := range matched[1:] {
			res.UseCases = append(res.UseCases, tm.useCases...)
		}
	}
	return res
}

// scoreUseCase sums signal weights for one use case, capped at 100.
// Stoplisted signals (common words like "platform") only count when a
// non-stoplisted signal of the same use case also matched.
func scoreUseCase(text string, uc taxonomy.UseCase, tax *taxonomy.Taxonomy) (int, []string) {
	conf := 0
	var signals []string
	hasSpecific := false

	type weighted struct {
		signal string
		weight int
	}
	all := make([]weighted, 0, len(uc.Primary)+len(uc.Secondary))
	for _, sig := range uc.Primary {
		all = append(all, weighted{sig, tax.PrimaryWeight})
	}
	for _, sig := range uc.Secondary {
		all = append(all, weighted{sig, tax.SecondaryWeight})
	}

	var guarded []weighted
	for _, w := range all {
		if !strings.Contains(text, strings.ToLower(w.signal)) {
			continue
		}
		if tax.IsStoplisted(w.signal) {
			guarded = append(guarded, w)
			continue
		}
		hasSpecific = true
		conf += w.weight
		signals = append(signals, w.signal)
	}
	if hasSpecific {
		for _, w := range guarded {
			conf += w.weight
			signals = append(signals, w.signal)
		}
	}
	if conf > maxConfidence {
		conf = maxConfidence
	}
	return conf, signals
}
