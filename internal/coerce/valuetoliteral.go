package coerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"

	language "github.com/hanpama/gqlcoerce/internal/language"
	schema "github.com/hanpama/gqlcoerce/internal/schema"
)

var ErrMaxDepth = errors.New("coerce: maximum input depth exceeded")

// ValueToLiteral converts a coerced value of type t back to a literal. An
// Unset value has no literal form: the result is nil with a nil error.
func (c *Coercer) ValueToLiteral(value any, t *schema.TypeRef) (*language.Value, error) {
	return c.valueToLiteral(value, t, 0)
}

func (c *Coercer) valueToLiteral(value any, t *schema.TypeRef, depth int) (*language.Value, error) {
	if depth > c.opts.MaxDepth {
		return nil, ErrMaxDepth
	}
	if IsUnset(value) {
		return nil, nil
	}
	if t.Kind == schema.TypeRefKindNonNull {
		if isNullish(value) {
			return nil, fmt.Errorf("coerce: null cannot be represented as non-null type %q", t.String())
		}
		return c.valueToLiteral(value, t.OfType, depth)
	}
	if isNullish(value) {
		return language.NewNullValue(), nil
	}

	switch t.Kind {
	case schema.TypeRefKindList:
		items, ok := asList(value)
		if !ok {
			return c.valueToLiteral(value, t.OfType, depth+1)
		}
		children := make([]*language.Value, len(items))
		for i, item := range items {
			lit, err := c.valueToLiteral(item, t.OfType, depth+1)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			if lit == nil {
				lit = language.NewNullValue()
			}
			children[i] = lit
		}
		return language.NewListValue(children...), nil
	case schema.TypeRefKindNamed:
		named := c.schema.Type(t.Named)
		switch {
		case named == nil:
			return nil, &InputTypeError{TypeName: t.Named}
		case named.Kind == schema.TypeKindInputObject:
			return c.inputObjectToLiteral(named, value, depth)
		case named.ValueToLiteral != nil:
			return named.ValueToLiteral(value)
		case named.Kind == schema.TypeKindEnum:
			name, err := schema.ParseEnumValue(named, value)
			if err != nil {
				return nil, err
			}
			return language.NewValue(language.EnumValue, name.(string)), nil
		case named.Kind == schema.TypeKindScalar:
			return untypedToLiteral(value, depth, c.opts.MaxDepth)
		default:
			return nil, &InputTypeError{TypeName: named.Name, Kind: named.Kind}
		}
	}
	panic("unreachable")
}

// inputObjectToLiteral emits declared fields in declaration order. Keys the
// type does not declare are not emitted.
func (c *Coercer) inputObjectToLiteral(named *schema.Type, value any, depth int) (*language.Value, error) {
	fields, ok := asObject(value)
	if !ok {
		return nil, fmt.Errorf("coerce: input type %q expects an object, got %s", named.Name, schema.Inspect(value))
	}
	obj := language.NewObjectValue()
	for _, f := range named.InputFields {
		fv, ok := fields[f.Name]
		if !ok {
			continue
		}
		lit, err := c.valueToLiteral(fv, f.Type, depth+1)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		if lit == nil {
			continue
		}
		obj.Children = append(obj.Children, &language.ChildValue{Name: f.Name, Value: lit})
	}
	return obj, nil
}

// untypedToLiteral is the literal form of values of scalars that define no
// conversion of their own. Map keys are emitted in sorted order.
func untypedToLiteral(value any, depth, maxDepth int) (*language.Value, error) {
	if depth > maxDepth {
		return nil, ErrMaxDepth
	}
	if isNullish(value) {
		return language.NewNullValue(), nil
	}
	switch v := value.(type) {
	case bool:
		return language.NewValue(language.BooleanValue, strconv.FormatBool(v)), nil
	case string:
		return language.NewValue(language.StringValue, v), nil
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return language.NewValue(language.IntValue, v.String()), nil
		}
		if _, err := v.Float64(); err == nil {
			return language.NewValue(language.FloatValue, v.String()), nil
		}
		return nil, fmt.Errorf("coerce: invalid number %q", v.String())
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return language.NewValue(language.IntValue, strconv.FormatInt(rv.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return language.NewValue(language.IntValue, strconv.FormatUint(rv.Uint(), 10)), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("coerce: %v has no literal form", f)
		}
		return language.NewValue(language.FloatValue, schema.FormatFloat(f)), nil
	}

	if items, ok := asList(value); ok {
		children := make([]*language.Value, len(items))
		for i, item := range items {
			if IsUnset(item) {
				children[i] = language.NewNullValue()
				continue
			}
			lit, err := untypedToLiteral(item, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			children[i] = lit
		}
		return language.NewListValue(children...), nil
	}
	if fields, ok := asObject(value); ok {
		obj := language.NewObjectValue()
		for _, name := range sortedKeys(fields) {
			if IsUnset(fields[name]) {
				continue
			}
			lit, err := untypedToLiteral(fields[name], depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			obj.Children = append(obj.Children, &language.ChildValue{Name: name, Value: lit})
		}
		return obj, nil
	}
	return nil, fmt.Errorf("coerce: %T has no literal form", value)
}
