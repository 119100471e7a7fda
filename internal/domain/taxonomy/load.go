package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultPrimaryWeight   = 10
	defaultSecondaryWeight = 3
)

// Load baca file taxonomy.yaml dan validasi sebelum dipakai scoring.
// A corrupt taxonomy silently corrupts every downstream score, so any
// integrity violation here is fatal: no scoring starts until the document
// loads clean.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy: %w", err)
	}
	return Parse(data)
}

// Parse unmarshal + validate a taxonomy document.
func Parse(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing taxonomy: %w", err)
	}
	if t.PrimaryWeight == 0 {
		t.PrimaryWeight = defaultPrimaryWeight
	}
	if t.SecondaryWeight == 0 {
		t.SecondaryWeight = defaultSecondaryWeight
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks referential integrity of the document.
func (t *Taxonomy) Validate() error {
	if strings.TrimSpace(t.Version) == "" {
		return fmt.Errorf("taxonomy: version is required")
	}
	if len(t.Topics) == 0 {
		return fmt.Errorf("taxonomy %s: no topics defined", t.Version)
	}
	if t.PrimaryWeight < t.SecondaryWeight {
		return fmt.Errorf("taxonomy %s: primary_weight %d below secondary_weight %d",
			t.Version, t.PrimaryWeight, t.SecondaryWeight)
	}

	topicIDs := map[string]bool{}
	ucIDs := map[string]string{} // use case id -> owning topic id
	for _, tp := range t.Topics {
		if strings.TrimSpace(tp.ID) == "" {
			return fmt.Errorf("taxonomy %s: topic with empty id", t.Version)
		}
		if topicIDs[tp.ID] {
			return fmt.Errorf("taxonomy %s: duplicate topic id %q", t.Version, tp.ID)
		}
		topicIDs[tp.ID] = true

		if len(tp.UseCases) == 0 {
			return fmt.Errorf("taxonomy %s: topic %q has no use cases", t.Version, tp.ID)
		}
		for _, uc := range tp.UseCases {
			if strings.TrimSpace(uc.ID) == "" {
				return fmt.Errorf("taxonomy %s: topic %q has use case with empty id", t.Version, tp.ID)
			}
			if owner, dup := ucIDs[uc.ID]; dup {
				// every use case belongs to exactly one topic
				return fmt.Errorf("taxonomy %s: use case %q appears under both %q and %q",
					t.Version, uc.ID, owner, tp.ID)
			}
			ucIDs[uc.ID] = tp.ID

			if len(uc.Primary)+len(uc.Secondary) == 0 {
				return fmt.Errorf("taxonomy %s: use case %q has no signals", t.Version, uc.ID)
			}
			for _, sig := range append(append([]string{}, uc.Primary...), uc.Secondary...) {
				if strings.TrimSpace(sig) == "" {
					return fmt.Errorf("taxonomy %s: use case %q has empty signal", t.Version, uc.ID)
				}
			}
		}
	}
	return nil
}
