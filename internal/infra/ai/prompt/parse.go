package prompt

import (
	"encoding/json"
	"strings"

	"github.com/bryanwahyu/startup-radar/internal/domain/ai"
)

// ParseVerdict extracts a verdict from free-form model output. Models often
// wrap the answer in reasoning text or code fences, so this scans for the
// first decodable JSON object carrying the verdict keys. Nothing decodable
// is a failure (ai.ErrUnparsable), never a "disagrees".
func ParseVerdict(blob string) (ai.Verdict, error) {
	for start := strings.IndexByte(blob, '{'); start >= 0; {
		candidate := blob[start:]
		var raw struct {
			Agrees             *bool   `json:"agrees"`
			AdjustedConfidence *int    `json:"adjusted_confidence"`
			Rationale          string  `json:"rationale"`
			Confidence         *int    `json:"confidence"` // some models shorten the key
		}
		dec := json.NewDecoder(strings.NewReader(candidate))
		if err := dec.Decode(&raw); err == nil && raw.Agrees != nil {
			v := ai.Verdict{Agrees: *raw.Agrees, Rationale: strings.TrimSpace(raw.Rationale)}
			switch {
			case raw.AdjustedConfidence != nil:
				v.AdjustedConfidence = *raw.AdjustedConfidence
			case raw.Confidence != nil:
				v.AdjustedConfidence = *raw.Confidence
			default:
				// agrees without a number means "keep what you have";
				// callers treat -1 as no adjustment proposed
				v.AdjustedConfidence = -1
			}
			return v, nil
		}
		next := strings.IndexByte(blob[start+1:], '{')
		if next < 0 {
			break
		}
		start = start + 1 + next
	}
	return ai.Verdict{}, ai.ErrUnparsable
}
