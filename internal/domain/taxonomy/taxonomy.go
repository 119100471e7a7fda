package taxonomy

// Taxonomy is the versioned Topic/Use-Case/signal configuration document.
// It is loaded once per pass into an immutable structure; updates require a
// fresh Load, never in-place mutation. Every Evaluation is stamped with the
// Version that produced it.
type Taxonomy struct {
	Version string  `yaml:"version"`
	Topics  []Topic `yaml:"topics"`

	// PrimaryWeight/SecondaryWeight are points per matched signal.
	PrimaryWeight   int `yaml:"primary_weight"`
	SecondaryWeight int `yaml:"secondary_weight"`

	// Stoplist holds signals too common to stand alone ("platform", "app").
	// A stoplisted signal only counts when a non-stoplisted signal of the
	// same use case also matched.
	Stoplist []string `yaml:"stoplist"`
}

// Topic top-level strategic category (e.g. "AI-Agentic")
type Topic struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	UseCases    []UseCase `yaml:"use_cases"`
}

// UseCase application within a Topic; Description doubles as LLM context.
type UseCase struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Primary     []string `yaml:"primary"`
	Secondary   []string `yaml:"secondary"`
}

// TopicByID lookup helper; returns nil when absent.
func (t *Taxonomy) TopicByID(id string) *Topic {
	for i := range t.Topics {
		if t.Topics[i].ID == id {
			return &t.Topics[i]
		}
	}
	return nil
}

// UseCaseByID lookup di dalam satu topic; returns nil when absent.
func (tp *Topic) UseCaseByID(id string) *UseCase {
	for i := range tp.UseCases {
		if tp.UseCases[i].ID == id {
			return &tp.UseCases[i]
		}
	}
	return nil
}

// IsStoplisted reports whether a signal needs co-occurrence support.
func (t *Taxonomy) IsStoplisted(signal string) bool {
	for _, s := range t.Stoplist {
		if s == signal {
			return true
		}
	}
	return false
}
