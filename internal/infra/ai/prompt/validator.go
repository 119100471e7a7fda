package prompt

import (
	"fmt"

	"github.com/bryanwahyu/startup-radar/internal/domain/ai"
)

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	return `You are a senior venture analyst reviewing an automated topic classification of a conference startup. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object.
- agrees is true when the startup genuinely fits the proposed use case.
- adjusted_confidence is an integer 0-100; stay close to the given confidence unless the match is clearly wrong or clearly stronger than the keywords suggest.
- rationale is one or two short sentences.

Schema (example with empty values):
{
  "agrees": true,
  "adjusted_confidence": 0,
  "rationale": "<string>"
}`
}

// GetUserPrompt builds the per-candidate message.
func GetUserPrompt(req ai.Request) string {
	return fmt.Sprintf(
		"Startup: %s\nSummary: %s\n\nProposed topic: %s\nProposed use case: %s\nUse case context: %s\nKeyword-rule confidence: %d\n\nRespond with the JSON per schema.",
		req.StartupName, req.StartupSummary,
		req.TopicName, req.UseCaseName, req.UseCaseContext,
		req.Confidence,
	)
}
