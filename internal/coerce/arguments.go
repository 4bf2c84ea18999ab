package coerce

import (
	"fmt"

	language "github.com/hanpama/gqlcoerce/internal/language"
	schema "github.com/hanpama/gqlcoerce/internal/schema"
)

// CoerceArgumentValues coerces the arguments written on a field or
// directive against their definitions. Arguments that are not defined are
// ignored; rejecting them is left to document validation.
func CoerceArgumentValues(
	s *schema.Schema,
	defs []*schema.InputValue,
	args language.ArgumentList,
	vars *VariableValues,
	opts ...Option,
) (map[string]any, error) {
	c := NewCoercer(s, opts...)
	lookup := c.newState(vars, nil)
	coerced := make(map[string]any, len(defs))
	var errs Errors

	for _, def := range defs {
		name := def.Name
		arg := args.ForName(name)

		var unsetVariable string
		missing := arg == nil || arg.Value == nil
		if !missing && arg.Value.Kind == language.Variable {
			if _, ok := lookup.lookupVariable(arg.Value.Raw); !ok {
				missing = true
				unsetVariable = arg.Value.Raw
			}
		}

		if missing {
			switch {
			case def.DefaultValue != nil:
				cv, err := c.CoerceLiteral(def.DefaultValue, def.Type, nil, nil)
				if err != nil {
					if !collect(&errs, err, name, fmt.Sprintf("Argument %q has invalid default value: ", name)) {
						return nil, err
					}
					continue
				}
				coerced[name] = cv
			case def.Type.IsNonNull() && unsetVariable != "":
				errs = append(errs, &Error{
					Kind:    MissingRequiredField,
					Path:    language.Path{language.PathName(name)},
					Message: fmt.Sprintf("Argument %q of required type %q was provided the variable \"$%s\" which was not provided a runtime value.", name, def.Type.String(), unsetVariable),
				})
			case def.Type.IsNonNull():
				errs = append(errs, &Error{
					Kind:    MissingRequiredField,
					Path:    language.Path{language.PathName(name)},
					Message: fmt.Sprintf("Argument %q of required type %q was not provided.", name, def.Type.String()),
				})
			}
			continue
		}

		cv, err := c.CoerceLiteral(arg.Value, def.Type, vars, nil)
		if err != nil {
			if !collect(&errs, err, name, fmt.Sprintf("Argument %q has invalid value %s; ", name, arg.Value.String())) {
				return nil, err
			}
			continue
		}
		coerced[name] = cv
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return coerced, nil
}
