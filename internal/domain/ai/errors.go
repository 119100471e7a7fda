package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrUnparsable indicates no well-formed verdict could be extracted from
// the model output. Treated as failure, never as "disagrees".
var ErrUnparsable = errors.New("ai verdict unparsable")
