package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pipeline's failure taxonomy. Extraction and
// authentication failures abort the current run; generation and field
// update failures degrade it and surface as annotations on the result.
var (
	// ErrBackendUnavailable means the generation backend or its model is
	// not ready. Detected before first use; never silently degraded.
	ErrBackendUnavailable = errors.New("generation backend unavailable")

	// ErrMalformedResponse means no usable answer remained after stripping
	// the reasoning span from a backend response.
	ErrMalformedResponse = errors.New("malformed backend response")

	// ErrAuthFailed means platform login failed. The automating stage
	// aborts entirely; no fields are attempted.
	ErrAuthFailed = errors.New("platform authentication failed")

	// ErrSnapshotUnavailable means the live profile state could not be
	// observed. This is a normal outcome: diffing degrades to additive.
	ErrSnapshotUnavailable = errors.New("live snapshot unavailable")

	// ErrUnsupportedPlatform means the requested platform is not in the
	// closed set of variants.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// ExtractionError reports an unreachable or unparsable portfolio source.
// Extraction is all-or-nothing: no partial record accompanies it.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting portfolio from %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// GenerationError reports an exhausted generation attempt for one task,
// with the last underlying error attached.
type GenerationError struct {
	Task     TaskKind
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating %s after %d attempts: %v", e.Task, e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// FieldUpdateError reports a failed automated update for one field.
// Remaining fields continue; the error is recorded on the field diff.
type FieldUpdateError struct {
	Field FieldName
	Err   error
}

func (e *FieldUpdateError) Error() string {
	return fmt.Sprintf("updating field %s: %v", e.Field, e.Err)
}

func (e *FieldUpdateError) Unwrap() error { return e.Err }

// TransientError marks a backend transport failure (connection refused,
// timeout) that is worth retrying with backoff.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient backend error: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a retryable backend failure.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
