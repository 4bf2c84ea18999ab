package coerce

import (
	"errors"
	"fmt"

	language "github.com/hanpama/gqlcoerce/internal/language"
	schema "github.com/hanpama/gqlcoerce/internal/schema"
)

// CoerceLiteral coerces a literal to the given input type. Variables are
// resolved from fragmentVars when it declares them, otherwise from vars.
// Variable values are expected to be coerced already, as returned by
// CoerceVariableValues.
func (c *Coercer) CoerceLiteral(lit *language.Value, t *schema.TypeRef, vars, fragmentVars *VariableValues) (any, error) {
	st := c.newState(vars, fragmentVars)
	out := st.coerceLiteral(lit, t, nil, 0)
	return st.result(out)
}

func (st *state) coerceLiteral(lit *language.Value, t *schema.TypeRef, path *Path, depth int) any {
	if st.misuse != nil || st.tooDeep(depth, path, lit) {
		return nil
	}

	// A variable without a value reads as null here; object fields drop it
	// before recursing.
	if lit == nil || lit.Kind == language.Variable {
		var (
			v  any
			ok bool
		)
		if lit != nil {
			v, ok = st.lookupVariable(lit.Raw)
		}
		if (!ok || isNullish(v)) && t.IsNonNull() {
			st.addError(NonNullViolation, path, lit, nil, nonNullMessage(t))
			return nil
		}
		return v
	}

	if t.Kind == schema.TypeRefKindNonNull {
		if lit.Kind == language.NullValue {
			st.addError(NonNullViolation, path, lit, nil, nonNullMessage(t))
			return nil
		}
		return st.coerceLiteral(lit, t.OfType, path, depth)
	}
	if lit.Kind == language.NullValue {
		return nil
	}

	switch t.Kind {
	case schema.TypeRefKindList:
		if lit.Kind != language.ListValue {
			return []any{st.coerceLiteral(lit, t.OfType, path, depth+1)}
		}
		out := make([]any, len(lit.Children))
		for i, item := range lit.Children {
			out[i] = st.coerceLiteral(item.Value, t.OfType, path.WithIndex(i), depth+1)
		}
		return out
	case schema.TypeRefKindNamed:
		named := st.inputType(t.Named, path)
		if named == nil {
			return nil
		}
		if named.Kind == schema.TypeKindInputObject {
			return st.coerceInputObjectLiteral(named, lit, path, depth)
		}
		return st.coerceLeafLiteral(named, lit, path, depth)
	}
	panic("unreachable")
}

func (st *state) coerceLeafLiteral(named *schema.Type, lit *language.Value, path *Path, depth int) any {
	// Composite literals go through substitution even without variables so
	// that the depth bound applies to them as well.
	if hasVariables(lit) || lit.Kind == language.ListValue || lit.Kind == language.ObjectValue {
		replaced, ok, err := st.c.replaceVariables(lit, st.vars, st.fragmentVars, depth)
		if errors.Is(err, ErrMaxDepth) {
			st.depthExceeded(path, lit, err)
			return nil
		}
		if err != nil {
			st.addError(ScalarParseFailure, path, lit, err,
				fmt.Sprintf("Expected value of type %q, found %s; %s", named.Name, lit.String(), err.Error()))
			return nil
		}
		if !ok {
			return nil
		}
		lit = replaced
	}

	var (
		out any
		err error
	)
	switch {
	case named.ParseLiteral != nil:
		out, err = named.ParseLiteral(lit)
	case named.Kind == schema.TypeKindEnum:
		out, err = schema.ParseEnumLiteral(named, lit)
	default:
		return ValueFromASTUntyped(lit, nil)
	}
	if err != nil {
		msg := fmt.Sprintf("Expected value of type %q, found %s; %s", named.Name, lit.String(), err.Error())
		if named.Kind == schema.TypeKindEnum && (lit.Kind == language.EnumValue || lit.Kind == language.StringValue) {
			msg += st.didYouMean(lit.Raw, enumValueNames(named))
		}
		st.addError(ScalarParseFailure, path, lit, err, msg)
		return nil
	}
	return out
}

func (st *state) coerceInputObjectLiteral(named *schema.Type, lit *language.Value, path *Path, depth int) any {
	if lit.Kind != language.ObjectValue {
		st.addError(StructuralMismatch, path, lit, nil,
			fmt.Sprintf("Expected type %q to be an object, found %s.", named.Name, lit.String()))
		return nil
	}

	// Repeated names: the last one wins.
	var names []string
	nodes := make(map[string]*language.Value, len(lit.Children))
	for _, child := range lit.Children {
		if _, seen := nodes[child.Name]; !seen {
			names = append(names, child.Name)
		}
		nodes[child.Name] = child.Value
	}
	present := func(name string) bool {
		v, ok := nodes[name]
		if !ok {
			return false
		}
		if v.Kind == language.Variable {
			_, ok = st.lookupVariable(v.Raw)
		}
		return ok
	}

	out := make(map[string]any, len(named.InputFields))
	for _, f := range named.InputFields {
		fieldPath := path.WithKey(f.Name)
		if !present(f.Name) {
			st.applyDefault(named, f, out, fieldPath, depth)
			continue
		}
		out[f.Name] = st.coerceLiteral(nodes[f.Name], f.Type, fieldPath, depth+1)
	}

	var selected []string
	for _, name := range names {
		if !present(name) {
			continue
		}
		selected = append(selected, name)
		if named.InputField(name) == nil {
			st.unknownField(named, name, nodes[name], path)
		}
	}

	if named.OneOf {
		switch {
		case len(selected) != 1:
			st.addError(OneOfViolation, path, lit, nil, oneOfCountMessage(named))
		case st.isNullLiteral(nodes[selected[0]]):
			st.addError(OneOfViolation, path.WithKey(selected[0]), nodes[selected[0]], nil, oneOfNullMessage(named, selected[0]))
		}
	}
	return out
}

// isNullLiteral reports a null literal or a variable holding null.
func (st *state) isNullLiteral(lit *language.Value) bool {
	switch lit.Kind {
	case language.NullValue:
		return true
	case language.Variable:
		v, _ := st.lookupVariable(lit.Raw)
		return isNullish(v)
	}
	return false
}

func (st *state) lookupVariable(name string) (any, bool) {
	scope := variableScope(name, st.vars, st.fragmentVars)
	if scope == nil {
		return nil, false
	}
	v, ok := scope.Coerced[name]
	if !ok || IsUnset(v) {
		return nil, false
	}
	return v, true
}

func hasVariables(lit *language.Value) bool {
	if lit == nil {
		return false
	}
	if lit.Kind == language.Variable {
		return true
	}
	for _, c := range lit.Children {
		if hasVariables(c.Value) {
			return true
		}
	}
	return false
}
