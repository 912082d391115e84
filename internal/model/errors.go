package model

import "fmt"

// ValidationError reports a caller contract violation (missing job id, empty
// or malformed transcript). Raised before any external call is made.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s: %s", e.Field, e.Msg)
	}
	return fmt.Sprintf("validation: %s", e.Msg)
}

// AiServiceError wraps a failed completion call (network, timeout, quota,
// non-2xx). Transient instances may be retried inside the provider; the
// error itself always propagates once retries are exhausted.
type AiServiceError struct {
	Provider string
	Err      error
}

func (e *AiServiceError) Error() string {
	return fmt.Sprintf("ai service (%s): %v", e.Provider, e.Err)
}

func (e *AiServiceError) Unwrap() error {
	return e.Err
}

// AnalysisFormatError means the provider responded but the text violated the
// feedback contract: unparsable JSON or required fields missing. Raw carries
// a truncated excerpt of the response for diagnostics. Never retried and
// never papered over with fabricated scores.
type AnalysisFormatError struct {
	Reason string
	Raw    string
}

func (e *AnalysisFormatError) Error() string {
	return fmt.Sprintf("analysis format: %s", e.Reason)
}

// PersistenceError wraps a failed interview insert after a valid feedback
// result was obtained. Nothing is written, so the caller may retry the whole
// request.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
