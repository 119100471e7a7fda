package evaluation

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
)

// Business-model vocabulary for the provider-usability gate. This is a
// heuristic, not a scoring input; "uncertain" results go to the semantic
// validator when enabled and otherwise default to not-usable (fail-closed:
// a false positive here misleads business users more than a false negative).
var (
	serviceVocab = []string{
		"consulting", "consultancy", "advisory", "coaching",
		"agency", "outsourcing", "staffing", "bootcamp",
	}
	productVocab = []string{
		"platform", "saas", "api", "software", "infrastructure",
		"engine", "sdk", "toolkit", "product",
	}
	consumerVocab   = []string{"b2c", "consumer app", "for consumers", "direct-to-consumer"}
	enterpriseVocab = []string{"enterprise", "b2b", "for businesses", "for teams", "corporate"}
)

// ClassifyUsability judges whether the startup offers a procurable product
// versus a pure service or a competitor. competitors holds lowercased core
// business keywords of the evaluating organization.
func ClassifyUsability(s *startup.Startup, competitors []string) (Usability, string) {
	text := s.MatchableText()
	if strings.TrimSpace(text) == "" {
		return Uncertain, "no descriptive text to judge business model"
	}

	for _, c := range competitors {
		if c != "" && strings.Contains(text, strings.ToLower(c)) {
			return NotUsable, fmt.Sprintf("overlaps the evaluating organization's core business (%q)", c)
		}
	}

	services := countVocab(text, serviceVocab)
	products := countVocab(text, productVocab)

	if countVocab(text, consumerVocab) > 0 && countVocab(text, enterpriseVocab) == 0 && products == 0 {
		return NotUsable, "exclusively consumer-facing with no enterprise offering"
	}

	switch {
	case products > 0 && services == 0:
		return Usable, "describes a deployable product or platform"
	case services > 0 && products == 0:
		return NotUsable, "describes consulting or services rather than a procurable product"
	case products > services:
		return Usable, "product vocabulary dominates a mixed business model"
	case services > products:
		return NotUsable, "service vocabulary dominates a mixed business model"
	default:
		return Uncertain, "business model unclear from available text"
	}
}

func countVocab(text string, vocab []string) int {
	n := 0
	for _, v := range vocab {
		if strings.Contains(text, v) {
			n++
		}
	}
	return n
}
