package taxonomy

import (
	"strings"
	"testing"
)

const validDoc = `
version: "2026-09"
stoplist: [platform]
topics:
  - id: ai-agentic
    name: AI-Agentic
    use_cases:
      - id: agent-orchestration
        name: Agent Orchestration
        primary: [agent, orchestration]
        secondary: [enterprise, platform]
  - id: devtools
    name: Developer Tooling
    use_cases:
      - id: code-review
        name: Automated Code Review
        primary: [code review]
`

func TestParseValid(t *testing.T) {
	tax, err := Parse([]byte(validDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tax.Version != "2026-09" {
		t.Errorf("version = %q", tax.Version)
	}
	if tax.PrimaryWeight != 10 || tax.SecondaryWeight != 3 {
		t.Errorf("weights = %d/%d, want defaults 10/3", tax.PrimaryWeight, tax.SecondaryWeight)
	}
	if len(tax.Topics) != 2 {
		t.Fatalf("topics = %d, want 2", len(tax.Topics))
	}
	if tp := tax.TopicByID("devtools"); tp == nil || tp.UseCaseByID("code-review") == nil {
		t.Error("lookup helpers broken")
	}
	if !tax.IsStoplisted("platform") || tax.IsStoplisted("agent") {
		t.Error("stoplist lookup broken")
	}
}

func TestParseRejectsCorruptDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string // substring of the error
	}{
		{
			name: "not yaml",
			doc:  "{{{",
			want: "parsing taxonomy",
		},
		{
			name: "missing version",
			doc: `
topics:
  - id: t
    use_cases:
      - {id: u, primary: [x]}
`,
			want: "version is required",
		},
		{
			name: "no topics",
			doc:  `version: v1`,
			want: "no topics",
		},
		{
			name: "duplicate topic id",
			doc: `
version: v1
topics:
  - id: t
    use_cases: [{id: u1, primary: [x]}]
  - id: t
    use_cases: [{id: u2, primary: [y]}]
`,
			want: `duplicate topic id "t"`,
		},
		{
			name: "topic without use cases",
			doc: `
version: v1
topics:
  - id: t
`,
			want: "has no use cases",
		},
		{
			name: "use case under two topics",
			doc: `
version: v1
topics:
  - id: t1
    use_cases: [{id: u, primary: [x]}]
  - id: t2
    use_cases: [{id: u, primary: [y]}]
`,
			want: `use case "u" appears under both`,
		},
		{
			name: "use case without signals",
			doc: `
version: v1
topics:
  - id: t
    use_cases: [{id: u}]
`,
			want: "has no signals",
		},
		{
			name: "empty signal",
			doc: `
version: v1
topics:
  - id: t
    use_cases: [{id: u, primary: ["x", "  "]}]
`,
			want: "empty signal",
		},
		{
			name: "inverted weights",
			doc: `
version: v1
primary_weight: 2
secondary_weight: 5
topics:
  - id: t
    use_cases: [{id: u, primary: [x]}]
`,
			want: "below secondary_weight",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
