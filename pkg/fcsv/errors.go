package fcsv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/afids/afids-go/pkg/afids"
)

// Sentinel errors identifying which rule a file violated.
var (
	ErrInvalidHeader     = errors.New("missing or invalid header in fiducial file")
	ErrTooOldVersion     = errors.New("markups fiducial file version too low")
	ErrMissingField      = errors.New("missing field")
	ErrLabelDescMismatch = errors.New("label does not match description")
	ErrNotARealNumber    = errors.New("not a real number")
	ErrNotFinite         = errors.New("not finite")
	ErrWrongColumnCount  = errors.New("incorrect number of columns")
	ErrTooManyRows       = errors.New("too many rows")
	ErrTooFewRows        = errors.New("too few rows")
	ErrDuplicateLabel    = errors.New("duplicate label")
	ErrRead              = errors.New("failed to read fiducial file")

	// ErrUnknownLabel is the taxonomy's error, re-exported for callers that
	// only import this package.
	ErrUnknownLabel = afids.ErrUnknownLabel
)

// ParseError describes why a file was rejected.
type ParseError struct {
	// Err is the sentinel for the violated rule.
	Err error

	// Line is the 1-based source line of the offending row, 0 if unknown.
	Line int

	// Label is the row's label as written, empty if not yet known.
	Label string

	// Field names the offending column, if any.
	Field string

	// Value is the offending text (description, version, ...), if any.
	Value string

	// Count is the observed column or row count, if relevant.
	Count int

	// Cause is an underlying error, if any.
	Cause error
}

// Error formats the diagnostic.
func (e *ParseError) Error() string {
	var msg string
	switch e.Err {
	case ErrInvalidHeader:
		msg = "Missing or invalid header in fiducial file"
	case ErrTooOldVersion:
		msg = fmt.Sprintf("Markups fiducial file version %s too low", e.Value)
	case ErrMissingField:
		if e.Label != "" {
			msg = fmt.Sprintf("Row %s has no value %s", e.Label, e.Field)
		} else {
			msg = fmt.Sprintf("Row has no value %s", e.Field)
		}
	case ErrUnknownLabel:
		msg = fmt.Sprintf("Row label %s is not a known fiducial (expected 1-%d)", e.Label, afids.Count)
	case ErrLabelDescMismatch:
		msg = fmt.Sprintf("Row label %s does not match row description %s", e.Label, e.Value)
	case ErrNotARealNumber:
		msg = fmt.Sprintf("%s in row %s is not a real number", e.Field, e.Label)
	case ErrNotFinite:
		msg = fmt.Sprintf("%s in row %s is not finite", e.Field, e.Label)
	case ErrWrongColumnCount:
		msg = fmt.Sprintf("Incorrect number of columns (%d) in row %s", e.Count, e.Label)
	case ErrDuplicateLabel:
		msg = fmt.Sprintf("Row label %s appears more than once", e.Label)
	case ErrTooManyRows:
		msg = "Too many rows"
	case ErrTooFewRows:
		msg = fmt.Sprintf("Too few rows (%d of %d)", e.Count, afids.Count)
	default:
		msg = e.Err.Error()
	}

	var sb strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&sb, "line %d: ", e.Line)
	}
	sb.WriteString(msg)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the sentinel and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// Code returns a short upper-case identifier for the violated rule, used in
// machine-readable output.
func (e *ParseError) Code() string {
	switch e.Err {
	case ErrInvalidHeader:
		return "INVALID_HEADER"
	case ErrTooOldVersion:
		return "VERSION_TOO_OLD"
	case ErrMissingField:
		return "MISSING_FIELD"
	case ErrUnknownLabel:
		return "UNKNOWN_LABEL"
	case ErrLabelDescMismatch:
		return "LABEL_DESC_MISMATCH"
	case ErrNotARealNumber:
		return "NOT_A_REAL_NUMBER"
	case ErrNotFinite:
		return "NOT_FINITE"
	case ErrWrongColumnCount:
		return "COLUMN_COUNT"
	case ErrDuplicateLabel:
		return "DUPLICATE_LABEL"
	case ErrTooManyRows:
		return "TOO_MANY_ROWS"
	case ErrTooFewRows:
		return "TOO_FEW_ROWS"
	default:
		return "READ"
	}
}
