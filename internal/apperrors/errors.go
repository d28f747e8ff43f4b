package apperrors

import (
	"errors"
	"fmt"
)

// Kind categorizes every failure the pipeline can surface. Each external
// boundary (completion endpoint, search API, PDF extraction) translates
// provider errors into exactly one of these.
type Kind string

const (
	// Response normalizer
	KindMalformedResponse Kind = "malformed_response"
	KindEmptyAnalysis     Kind = "empty_analysis"
	KindValidationFailed  Kind = "validation_failed"

	// Completion client
	KindAuthError        Kind = "auth_error"
	KindRateLimited      Kind = "rate_limited"
	KindTimeout          Kind = "timeout"
	KindModelUnavailable Kind = "model_unavailable"
	KindUnknown          Kind = "unknown"

	// Search adapter
	KindSearchUnavailable Kind = "search_unavailable"

	// Text extraction
	KindExtractionFailed  Kind = "extraction_failed"
	KindEncryptedDocument Kind = "encrypted_document"
	KindEmptyContent      Kind = "empty_content"
)

// Error is the categorized error returned across component boundaries.
// Hint carries a short remediation suggestion shown to the user.
type Error struct {
	Kind    Kind
	Message string
	Hint    string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithHint returns a copy of e carrying a remediation hint.
func (e *Error) WithHint(hint string) *Error {
	clone := *e
	clone.Hint = hint
	return &clone
}

// KindOf extracts the category from any error in the chain.
// Errors that never went through a boundary translation report KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given category.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// AsError returns the categorized error in the chain, or wraps err as
// KindUnknown so callers always see a categorized failure.
func AsError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Kind: KindUnknown, Message: err.Error(), Err: err}
}
