package coerce

import (
	"fmt"
	"sort"

	schema "github.com/hanpama/gqlcoerce/internal/schema"
)

// Coercer validates and coerces input values against the input types of a
// schema. It holds no mutable state and may be shared between goroutines.
type Coercer struct {
	schema *schema.Schema
	opts   Options
}

func NewCoercer(s *schema.Schema, opts ...Option) *Coercer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Coercer{schema: s, opts: o}
}

func (c *Coercer) Schema() *schema.Schema { return c.schema }

// state is the per-call accumulator threaded through one coercion.
type state struct {
	c            *Coercer
	vars         *VariableValues
	fragmentVars *VariableValues
	errors       Errors
	misuse       error
}

func (c *Coercer) newState(vars, fragmentVars *VariableValues) *state {
	return &state{c: c, vars: vars, fragmentVars: fragmentVars}
}

func (st *state) result(v any) (any, error) {
	if st.misuse != nil {
		return nil, st.misuse
	}
	if len(st.errors) > 0 {
		return nil, st.errors
	}
	return v, nil
}

func (st *state) addError(kind ErrorKind, path *Path, value any, cause error, msg string) {
	e := &Error{Kind: kind, Path: path.AsAST(), Value: value, Message: msg, Err: cause}
	st.errors = append(st.errors, e)
	if st.c.opts.OnError != nil {
		st.c.opts.OnError(e)
	}
}

// inputType resolves name to an input type. Anything else is recorded as
// misuse, which aborts the whole call.
func (st *state) inputType(name string, path *Path) *schema.Type {
	t := st.c.schema.Type(name)
	switch {
	case t == nil:
		st.misuse = &InputTypeError{TypeName: name, Path: path.AsAST()}
	case !t.IsInput():
		st.misuse = &InputTypeError{TypeName: name, Kind: t.Kind, Path: path.AsAST()}
	default:
		return t
	}
	return nil
}

func (st *state) tooDeep(depth int, path *Path, value any) bool {
	if depth <= st.c.opts.MaxDepth {
		return false
	}
	st.depthExceeded(path, value, nil)
	return true
}

func (st *state) depthExceeded(path *Path, value any, cause error) {
	st.addError(StructuralMismatch, path, value, cause,
		fmt.Sprintf("Exceeded maximum input depth of %d.", st.c.opts.MaxDepth))
}

func (st *state) didYouMean(input string, options []string) string {
	if st.c.opts.Suggest == nil {
		return ""
	}
	return didYouMean(st.c.opts.Suggest(input, options))
}

// CoerceValue coerces a raw input value, such as decoded JSON variables,
// to the given input type. On failure the value is nil and the error is
// either Errors or *InputTypeError.
func (c *Coercer) CoerceValue(value any, t *schema.TypeRef) (any, error) {
	st := c.newState(nil, nil)
	out := st.coerceValue(value, t, nil, 0)
	return st.result(out)
}

func (st *state) coerceValue(value any, t *schema.TypeRef, path *Path, depth int) any {
	if st.misuse != nil || st.tooDeep(depth, path, value) {
		return nil
	}
	if t.Kind == schema.TypeRefKindNonNull {
		if isNullish(value) || IsUnset(value) {
			st.addError(NonNullViolation, path, nil, nil, nonNullMessage(t))
			return nil
		}
		return st.coerceValue(value, t.OfType, path, depth)
	}
	if isNullish(value) || IsUnset(value) {
		return nil
	}

	switch t.Kind {
	case schema.TypeRefKindList:
		items, ok := asList(value)
		if !ok {
			return []any{st.coerceValue(value, t.OfType, path, depth+1)}
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = st.coerceValue(item, t.OfType, path.WithIndex(i), depth+1)
		}
		return out
	case schema.TypeRefKindNamed:
		named := st.inputType(t.Named, path)
		if named == nil {
			return nil
		}
		if named.Kind == schema.TypeKindInputObject {
			return st.coerceInputObjectValue(named, value, path, depth)
		}
		return st.coerceLeafValue(named, value, path)
	}
	panic("unreachable")
}

func (st *state) coerceLeafValue(named *schema.Type, value any, path *Path) any {
	var (
		out any
		err error
	)
	switch {
	case named.ParseValue != nil:
		out, err = named.ParseValue(value)
	case named.Kind == schema.TypeKindEnum:
		out, err = schema.ParseEnumValue(named, value)
	default:
		return value
	}
	if err != nil {
		msg := fmt.Sprintf("Expected type %q. %s", named.Name, err.Error())
		if s, ok := value.(string); ok && named.Kind == schema.TypeKindEnum {
			msg += st.didYouMean(s, enumValueNames(named))
		}
		st.addError(ScalarParseFailure, path, value, err, msg)
		return nil
	}
	return out
}

func (st *state) coerceInputObjectValue(named *schema.Type, value any, path *Path, depth int) any {
	fields, ok := asObject(value)
	if !ok {
		st.addError(StructuralMismatch, path, value, nil,
			fmt.Sprintf("Expected type %q to be an object.", named.Name))
		return nil
	}

	out := make(map[string]any, len(named.InputFields))
	for _, f := range named.InputFields {
		fieldPath := path.WithKey(f.Name)
		fv, ok := fields[f.Name]
		if !ok || IsUnset(fv) {
			st.applyDefault(named, f, out, fieldPath, depth)
			continue
		}
		out[f.Name] = st.coerceValue(fv, f.Type, fieldPath, depth+1)
	}

	var present []string
	for _, name := range sortedKeys(fields) {
		if IsUnset(fields[name]) {
			continue
		}
		present = append(present, name)
		if named.InputField(name) == nil {
			st.unknownField(named, name, fields[name], path)
		}
	}

	if named.OneOf {
		switch {
		case len(present) != 1:
			st.addError(OneOfViolation, path, value, nil, oneOfCountMessage(named))
		case isNullish(fields[present[0]]):
			st.addError(OneOfViolation, path.WithKey(present[0]), nil, nil, oneOfNullMessage(named, present[0]))
		}
	}
	return out
}

// applyDefault fills in an absent field. OneOf types have no defaults and
// no required fields; the selection check covers them.
func (st *state) applyDefault(named *schema.Type, f *schema.InputValue, out map[string]any, path *Path, depth int) {
	if named.OneOf {
		return
	}
	if f.DefaultValue != nil {
		out[f.Name] = st.coerceLiteral(f.DefaultValue, f.Type, path, depth+1)
		return
	}
	if f.Type.IsNonNull() {
		st.addError(MissingRequiredField, path, nil, nil,
			fmt.Sprintf("Field %q of required type %q was not provided.", f.Name, f.Type.String()))
	}
}

func (st *state) unknownField(named *schema.Type, name string, value any, path *Path) {
	msg := fmt.Sprintf("Field %q is not defined by type %q.", name, named.Name)
	msg += st.didYouMean(name, inputFieldNames(named))
	st.addError(UnknownField, path.WithKey(name), value, nil, msg)
}

func nonNullMessage(t *schema.TypeRef) string {
	return fmt.Sprintf("Expected non-nullable type %q not to be null.", t.String())
}

func oneOfCountMessage(named *schema.Type) string {
	return fmt.Sprintf("Exactly one key must be specified for OneOf type %q.", named.Name)
}

func oneOfNullMessage(named *schema.Type, field string) string {
	return fmt.Sprintf("Field %q for OneOf type %q must be non-null.", field, named.Name)
}

func inputFieldNames(t *schema.Type) []string {
	names := make([]string, len(t.InputFields))
	for i, f := range t.InputFields {
		names[i] = f.Name
	}
	return names
}

func enumValueNames(t *schema.Type) []string {
	names := make([]string, len(t.EnumValues))
	for i, v := range t.EnumValues {
		names[i] = v.Name
	}
	return names
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
