// Package apperr defines the error taxonomy shared by services and
// controllers. Services wrap these sentinels with fmt.Errorf("...: %w", ...)
// and controllers map them to HTTP statuses with errors.Is.
package apperr

import "errors"

var (
	// ErrInvalidTransition means the caller attempted a state change not
	// permitted from the current state. Recoverable by inspecting state.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrForbidden means the caller is not the owning teacher or not a valid
	// student for the assessment.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the referenced assessment, attempt or join code does
	// not exist or is not in a resolvable state.
	ErrNotFound = errors.New("not found")

	// ErrExternalService means an OCR or AI provider call failed or timed
	// out. Retried with backoff inside the marking pipeline.
	ErrExternalService = errors.New("external service failure")

	// ErrCodeGenerationExhausted means join code collision retries exceeded
	// their bound. Surfaced to the teacher, never auto-retried.
	ErrCodeGenerationExhausted = errors.New("join code generation exhausted")
)
