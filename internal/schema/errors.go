package schema

import (
	"fmt"

	"cuelang.org/go/cue/token"
)

// Error codes for schema problems.
const (
	ErrCodeGeneric          = "S001" // Generic/unknown error
	ErrCodeNotFound         = "S002" // Schema directory not found
	ErrCodeNoFiles          = "S003" // No CUE files found
	ErrCodeLoadFailed       = "S004" // CUE load or build failed
	ErrCodeDuplicateRecord  = "S005" // Record registered twice
	ErrCodeFieldName        = "S006" // Empty or duplicate field name
	ErrCodeUnknownKind      = "S007" // Kind not recognised
	ErrCodeMissingTarget    = "S008" // Lookup without target
	ErrCodeUnexpectedTarget = "S009" // Target on a non-lookup field
	ErrCodeUnknownTarget    = "S010" // Lookup target not registered
)

// SchemaError describes an invalid schema declaration.
type SchemaError struct {
	Code    string
	Record  string
	Field   string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *SchemaError) Error() string {
	where := e.Record
	if e.Field != "" {
		where += "." + e.Field
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, where, e.Message)
	}
	if where == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, where, e.Message)
}
