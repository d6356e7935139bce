package csvskema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/csvskema/i18n"
)

// Issue codes.
const (
	// Per-record codes.
	CodeBadField     = "bad_field"
	CodeMissingField = "missing_field"
	CodeEndOfInput   = "end_of_input"
	// Schema construction codes.
	CodeEmptyName      = "empty_name"
	CodeUnknownType    = "unknown_type"
	CodeDuplicateField = "duplicate_field"
	CodeInvalidDefault = "invalid_default"
	CodeParseError     = "parse_error"
)

// ErrEndOfInput signals that the line source is exhausted. It is the normal
// termination signal of RecordParser.Next and keeps being returned on every
// subsequent call.
var ErrEndOfInput = errors.New("csvskema: end of input")

// ErrMissingHeader is returned by NewRecordParser when the input has no header line.
var ErrMissingHeader = errors.New("csvskema: input has no header line")

// BadFieldError reports a present column whose value could not be coerced to
// the declared type of a required field.
type BadFieldError struct {
	Field string
	Type  DataType
	Value string // cleaned token as it appeared in the line
	Line  int    // 1-based physical line number; the header is line 1
}

func (e *BadFieldError) Error() string {
	return fmt.Sprintf("line %d: %s %q: %q is not a valid %s",
		e.Line, i18n.T(CodeBadField, nil), e.Field, e.Value, e.Type)
}

// Code returns CodeBadField.
func (e *BadFieldError) Code() string { return CodeBadField }

// MissingFieldError reports a required field with no aligned, resolvable column.
type MissingFieldError struct {
	Field string
	Line  int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("line %d: %s %q", e.Line, i18n.T(CodeMissingField, nil), e.Field)
}

// Code returns CodeMissingField.
func (e *MissingFieldError) Code() string { return CodeMissingField }

// IsRecordError reports whether err is a per-record error (BadField or
// MissingField) after which the parser can keep going.
func IsRecordError(err error) bool {
	var bf *BadFieldError
	var mf *MissingFieldError
	return errors.As(err, &bf) || errors.As(err, &mf)
}

// Issue is one schema problem located by a JSON Pointer into the field list,
// such as /fields/2/default.
type Issue struct {
	Path    string
	Code    string // a Code* constant
	Message string // localized through i18n.T
	Cause   error
	Params  map[string]any // message parameters, for example {"type": "float"}
}

// Issues collects every problem found while building a Schema. It
// implements error.
type Issues []Issue

// issueSummaryLimit bounds how many issues Error spells out.
const issueSummaryLimit = 3

// Error lists up to three issues as "code at path: message".
func (iss Issues) Error() string {
	parts := make([]string, 0, min(len(iss), issueSummaryLimit)+1)
	for _, it := range iss[:min(len(iss), issueSummaryLimit)] {
		s := it.Code + " at " + it.Path
		if it.Message != "" {
			s += ": " + it.Message
		}
		parts = append(parts, s)
	}
	if len(iss) > issueSummaryLimit {
		parts = append(parts, fmt.Sprintf("... (total %d)", len(iss)))
	}
	return strings.Join(parts, "; ")
}

// AppendIssues returns dst with more appended; dst may be nil.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = make(Issues, 0, len(more))
	}
	return append(dst, more...)
}

// AsIssues unwraps err to Issues.
func AsIssues(err error) (Issues, bool) {
	var iss Issues
	if err == nil || !errors.As(err, &iss) {
		return nil, false
	}
	return iss, true
}
