// Package coerce validates and converts GraphQL input values against the
// input types of a schema.
//
// # Overview
//
// Input reaches a server in two forms: raw values decoded from a transport
// (variables in a JSON request body) and literals written in a document
// (argument values, defaults). A Coercer handles both:
//   - CoerceValue checks a raw value against an input type.
//   - CoerceLiteral checks a literal, resolving variables from an operation
//     scope and an optional fragment scope.
//   - ValueToLiteral turns a coerced value back into a literal.
//   - ReplaceVariables rewrites a literal so that it no longer refers to
//     variables.
//
// ValueFromASTUntyped extracts a literal without a type, and
// CoerceVariableValues and CoerceArgumentValues drive the Coercer for an
// operation's variable definitions and a field's arguments.
//
// # Errors
//
// Coercion does not stop at the first problem. Every violation is recorded
// as an *Error with a kind and the path of the offending value, and the
// whole list is returned as Errors. A coerced value is only meaningful when
// the error is nil.
//
// Asking for coercion into something that is not an input type, or into a
// type the schema does not define, is a programming error. It aborts the
// call with an *InputTypeError.
//
// # Absent and null
//
// nil is an explicit null. Unset is no value at all: an input object field
// holding Unset, or bound to a variable that has no value, is treated as
// missing, so its default applies.
//
// # Limits
//
// Options.MaxDepth bounds nesting. Input types whose defaults refer back to
// themselves would otherwise expand forever. Going past the bound is an
// error everywhere: coercion records a StructuralMismatch, and
// ValueToLiteral and ReplaceVariables return an error wrapping ErrMaxDepth.
// Values are never truncated.
package coerce
