package godos

import (
	"errors"
	"fmt"
	"strings"
)

// Issue and ValidationError codes.
const (
	CodeInvalidType          = "invalid_type"
	CodeRequired             = "required"
	CodeNonNullable          = "non_nullable"
	CodeUnknownKey           = "unknown_key"
	CodeInvalidValue         = "invalid_value"
	CodeNoMatchingAlt        = "no_matching_alternative"
	CodeUndefinedStatus      = "undefined_status"
	CodeUnsupportedValidator = "unsupported_validator"
)

// ValidationError reports a response body that does not satisfy its output
// schema. It is a server-side contract violation, not a client error.
type ValidationError struct {
	Code    string
	Field   string // Offending field name; empty for whole-body failures.
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AsValidationError extracts a *ValidationError using errors.As.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Issue represents a single schema lint finding.
type Issue struct {
	Path    string // JSON Pointer into the schema tree (for example: /200/results/items/id).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"validator":"ExactLength", "kind":"Object"})
	// for i18n and tooling.
	Params map[string]any
}

// Issues is a collection of lint findings that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. unsupported_validator at /basic_object
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
