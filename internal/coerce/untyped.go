package coerce

import (
	"strconv"

	language "github.com/hanpama/gqlcoerce/internal/language"
)

// ValueFromASTUntyped converts a literal to a runtime value without a type.
// Variables are looked up in variables; a missing or unset entry yields
// Unset. Integer overflow is not an error here: the saturated value from
// strconv is kept and range checks are left to typed coercion.
func ValueFromASTUntyped(lit *language.Value, variables map[string]any) any {
	if lit == nil {
		return nil
	}
	switch lit.Kind {
	case language.NullValue:
		return nil
	case language.IntValue:
		iv, _ := strconv.Atoi(lit.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(lit.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue, language.EnumValue:
		return lit.Raw
	case language.BooleanValue:
		return lit.Raw == "true"
	case language.ListValue:
		out := make([]any, len(lit.Children))
		for i, c := range lit.Children {
			out[i] = ValueFromASTUntyped(c.Value, variables)
		}
		return out
	case language.ObjectValue:
		out := make(map[string]any, len(lit.Children))
		for _, f := range lit.Children {
			out[f.Name] = ValueFromASTUntyped(f.Value, variables)
		}
		return out
	case language.Variable:
		if v, ok := variables[lit.Raw]; ok {
			return v
		}
		return Unset
	}
	panic("unreachable")
}
