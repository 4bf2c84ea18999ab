package coerce

import (
	"fmt"
	"strings"

	language "github.com/hanpama/gqlcoerce/internal/language"
	schema "github.com/hanpama/gqlcoerce/internal/schema"
)

// ErrorKind classifies a coercion error.
type ErrorKind string

const (
	// StructuralMismatch: the value has the wrong shape (object expected,
	// depth limit exceeded, non-input variable type).
	StructuralMismatch ErrorKind = "STRUCTURAL_MISMATCH"
	// NonNullViolation: null or no value at a non-null position.
	NonNullViolation ErrorKind = "NON_NULL_VIOLATION"
	// UnknownField: an input object field the type does not declare.
	UnknownField ErrorKind = "UNKNOWN_FIELD"
	// MissingRequiredField: an absent non-null field without a default.
	MissingRequiredField ErrorKind = "MISSING_REQUIRED_FIELD"
	// OneOfViolation: zero, several or a null field on a OneOf input object.
	OneOfViolation ErrorKind = "ONE_OF_VIOLATION"
	// ScalarParseFailure: a scalar or enum rejected its payload.
	ScalarParseFailure ErrorKind = "SCALAR_PARSE_FAILURE"
	// SchemaAstMismatch: a type reference names a type the schema lacks.
	SchemaAstMismatch ErrorKind = "SCHEMA_AST_MISMATCH"
)

// Error is a single located coercion error.
type Error struct {
	Kind    ErrorKind
	Path    language.Path
	Value   any // offending raw value or *language.Value
	Message string
	Err     error // underlying cause, e.g. a scalar hook rejection
}

func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return e.Path.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// GQLError converts the error to its GraphQL wire form. The kind is exposed
// as extensions.code.
func (e *Error) GQLError() *language.Error {
	return &language.Error{
		Err:        e.Err,
		Message:    e.Message,
		Path:       e.Path,
		Extensions: map[string]any{"code": string(e.Kind)},
	}
}

// withPrefix returns a copy located under name, with msg prepended to the
// message.
func (e *Error) withPrefix(name string, msg string) *Error {
	path := append(language.Path{language.PathName(name)}, e.Path...)
	return &Error{Kind: e.Kind, Path: path, Value: e.Value, Message: msg + e.Message, Err: e.Err}
}

// Errors is every error collected by one coercion. A non-empty Errors means
// the coerced value must be discarded.
type Errors []*Error

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

func (e Errors) GQLErrors() language.ErrorList {
	out := make(language.ErrorList, len(e))
	for i, err := range e {
		out[i] = err.GQLError()
	}
	return out
}

// Kinds lists the kind of each error, in order.
func (e Errors) Kinds() []ErrorKind {
	out := make([]ErrorKind, len(e))
	for i, err := range e {
		out[i] = err.Kind
	}
	return out
}

// InputTypeError reports misuse of the engine: coercion was asked to
// descend into a type that is not an input type, or into a type name the
// schema does not know. It is returned instead of Errors and indicates a
// programming or schema error rather than bad input.
type InputTypeError struct {
	TypeName string
	Kind     schema.TypeKind // empty when the type is unknown
	Path     language.Path
}

func (e *InputTypeError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("coerce: unknown type %q at %q", e.TypeName, e.Path.String())
	}
	return fmt.Sprintf("coerce: %s type %q cannot be used as an input type (at %q)", e.Kind, e.TypeName, e.Path.String())
}
