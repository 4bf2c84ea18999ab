package coerce

import (
	"fmt"

	language "github.com/hanpama/gqlcoerce/internal/language"
)

// ReplaceVariables returns a copy of lit with every variable replaced by a
// literal. A variable declared in neither scope becomes null. A declared
// variable without a value becomes its default literal, or is left out: an
// object field bound to it is dropped, a list item becomes null, and a bare
// variable at the root yields nil. lit itself is not modified.
//
// Nesting beyond Options.MaxDepth, or a variable value that cannot be
// printed as a literal of its declared type, fails the whole call. The
// depth error wraps ErrMaxDepth.
func (c *Coercer) ReplaceVariables(lit *language.Value, vars, fragmentVars *VariableValues) (*language.Value, error) {
	out, ok, err := c.replaceVariables(lit, vars, fragmentVars, 0)
	if err != nil || !ok {
		return nil, err
	}
	return out, nil
}

// replaceVariables reports false for a variable that has neither a value
// nor a default.
func (c *Coercer) replaceVariables(lit *language.Value, vars, fragmentVars *VariableValues, depth int) (*language.Value, bool, error) {
	if lit == nil {
		return nil, false, nil
	}
	if depth > c.opts.MaxDepth {
		return nil, false, ErrMaxDepth
	}

	switch lit.Kind {
	case language.Variable:
		scope := variableScope(lit.Raw, vars, fragmentVars)
		if scope == nil {
			return nullAt(lit), true, nil
		}
		src := scope.Sources[lit.Raw]
		if src == nil {
			// Declared through Coerced only, so there is no type to print
			// the value with.
			v, err := untypedToLiteral(scope.Coerced[lit.Raw], depth, c.opts.MaxDepth)
			if err != nil {
				return nil, false, fmt.Errorf("variable \"$%s\": %w", lit.Raw, err)
			}
			return v, true, nil
		}
		if IsUnset(src.Value) {
			if src.Signature.DefaultValue != nil {
				return src.Signature.DefaultValue, true, nil
			}
			return nil, false, nil
		}
		v, err := c.valueToLiteral(src.Value, src.Signature.Type, depth)
		if err != nil {
			return nil, false, fmt.Errorf("variable \"$%s\": %w", lit.Raw, err)
		}
		if v == nil {
			return nullAt(lit), true, nil
		}
		return v, true, nil

	case language.ListValue:
		out := &language.Value{Kind: lit.Kind, Position: lit.Position, Children: make(language.ChildValueList, len(lit.Children))}
		for i, item := range lit.Children {
			v, ok, err := c.replaceVariables(item.Value, vars, fragmentVars, depth+1)
			if err != nil {
				return nil, false, fmt.Errorf("index %d: %w", i, err)
			}
			if !ok {
				v = nullAt(item.Value)
			}
			out.Children[i] = &language.ChildValue{Name: item.Name, Value: v, Position: item.Position}
		}
		return out, true, nil

	case language.ObjectValue:
		out := &language.Value{Kind: lit.Kind, Position: lit.Position, Children: make(language.ChildValueList, 0, len(lit.Children))}
		for _, field := range lit.Children {
			v, ok, err := c.replaceVariables(field.Value, vars, fragmentVars, depth+1)
			if err != nil {
				return nil, false, fmt.Errorf("field %q: %w", field.Name, err)
			}
			if !ok {
				continue
			}
			out.Children = append(out.Children, &language.ChildValue{Name: field.Name, Value: v, Position: field.Position})
		}
		return out, true, nil
	}
	return lit, true, nil
}

func nullAt(lit *language.Value) *language.Value {
	null := language.NewNullValue()
	if lit != nil {
		null.Position = lit.Position
	}
	return null
}
