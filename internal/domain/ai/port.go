package ai

import "context"

// Request carries one (startup, top candidate) pair to the external model.
type Request struct {
	StartupName    string
	StartupSummary string
	TopicName      string
	UseCaseName    string
	UseCaseContext string
	Confidence     int // Rule Matcher confidence, 0-100
}

// Verdict is the parsed second opinion. AdjustedConfidence is the model's
// proposal; callers clamp it to [0,100] and to ±20 of the input before use.
type Verdict struct {
	Agrees             bool   `json:"agrees"`
	AdjustedConfidence int    `json:"adjusted_confidence"`
	Rationale          string `json:"rationale"`
}

// Validator port ke external language model.
type Validator interface {
	Validate(ctx context.Context, req Request) (Verdict, error)
}
