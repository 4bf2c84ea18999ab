package coerce

import (
	"errors"
	"fmt"

	language "github.com/hanpama/gqlcoerce/internal/language"
	schema "github.com/hanpama/gqlcoerce/internal/schema"
)

// VariableSignature is a resolved variable definition.
type VariableSignature struct {
	Name         string
	Type         *schema.TypeRef
	DefaultValue *language.Value
}

// VariableSource pairs a signature with the coerced value supplied for it.
// Value is Unset when no value was supplied; the default, if any, applies.
type VariableSource struct {
	Signature *VariableSignature
	Value     any
}

// VariableValues is one variable scope. Sources records what was supplied;
// Coerced holds the effective values with defaults applied and omits
// variables that ended up without a value.
type VariableValues struct {
	Sources map[string]*VariableSource
	Coerced map[string]any
}

func NewVariableValues() *VariableValues {
	return &VariableValues{
		Sources: make(map[string]*VariableSource),
		Coerced: make(map[string]any),
	}
}

// Add records an already coerced value. Defaults are not applied.
func (v *VariableValues) Add(sig *VariableSignature, value any) *VariableValues {
	v.Sources[sig.Name] = &VariableSource{Signature: sig, Value: value}
	if !IsUnset(value) {
		v.Coerced[sig.Name] = value
	}
	return v
}

func (v *VariableValues) declares(name string) bool {
	if v == nil {
		return false
	}
	if _, ok := v.Sources[name]; ok {
		return true
	}
	_, ok := v.Coerced[name]
	return ok
}

// variableScope picks the fragment scope when it declares name, otherwise
// the operation scope. nil means neither declares it.
func variableScope(name string, vars, fragmentVars *VariableValues) *VariableValues {
	switch {
	case fragmentVars.declares(name):
		return fragmentVars
	case vars.declares(name):
		return vars
	}
	return nil
}

// CoerceVariableValues coerces the inputs supplied for an operation's
// variable definitions. Inputs may be keyed with or without the leading
// "$". All problems are collected; on failure the returned error is Errors.
func CoerceVariableValues(
	s *schema.Schema,
	defs language.VariableDefinitionList,
	inputs map[string]any,
	opts ...Option,
) (*VariableValues, error) {
	c := NewCoercer(s, opts...)
	out := NewVariableValues()
	var errs Errors

	for _, def := range defs {
		name := def.Variable
		t := schema.TypeFromAST(s, def.Type)
		if t == nil {
			errs = append(errs, &Error{
				Kind:    SchemaAstMismatch,
				Path:    language.Path{language.PathName(name)},
				Message: fmt.Sprintf("Variable \"$%s\" expected value of type %q which is not defined by the schema.", name, def.Type.String()),
			})
			continue
		}
		if !s.Type(t.GetNamedType()).IsInput() {
			errs = append(errs, &Error{
				Kind:    StructuralMismatch,
				Path:    language.Path{language.PathName(name)},
				Message: fmt.Sprintf("Variable \"$%s\" expected value of type %q which cannot be used as an input type.", name, def.Type.String()),
			})
			continue
		}
		sig := &VariableSignature{Name: name, Type: t, DefaultValue: def.DefaultValue}

		val, ok := inputs[name]
		if !ok {
			val, ok = inputs["$"+name]
		}
		if !ok || IsUnset(val) {
			out.Sources[name] = &VariableSource{Signature: sig, Value: Unset}
			switch {
			case def.DefaultValue != nil:
				cv, err := c.CoerceLiteral(def.DefaultValue, t, nil, nil)
				if err != nil {
					if !collect(&errs, err, name, fmt.Sprintf("Variable \"$%s\" has invalid default value: ", name)) {
						return nil, err
					}
					continue
				}
				out.Coerced[name] = cv
			case t.IsNonNull():
				errs = append(errs, &Error{
					Kind:    NonNullViolation,
					Path:    language.Path{language.PathName(name)},
					Message: fmt.Sprintf("Variable \"$%s\" of required type %q was not provided.", name, t.String()),
				})
			}
			continue
		}

		if isNullish(val) && t.IsNonNull() {
			errs = append(errs, &Error{
				Kind:    NonNullViolation,
				Path:    language.Path{language.PathName(name)},
				Message: fmt.Sprintf("Variable \"$%s\" of non-null type %q must not be null.", name, t.String()),
			})
			continue
		}
		cv, err := c.CoerceValue(val, t)
		if err != nil {
			if !collect(&errs, err, name, fmt.Sprintf("Variable \"$%s\" got invalid value %s; ", name, schema.Inspect(val))) {
				return nil, err
			}
			continue
		}
		out.Sources[name] = &VariableSource{Signature: sig, Value: cv}
		out.Coerced[name] = cv
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// collect appends the errors of a nested coercion, relocated under name. It
// reports false when err is not a list of data errors.
func collect(errs *Errors, err error, name, prefix string) bool {
	var nested Errors
	if !errors.As(err, &nested) {
		return false
	}
	for _, e := range nested {
		*errs = append(*errs, e.withPrefix(name, prefix))
	}
	return true
}
