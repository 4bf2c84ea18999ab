package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	language "github.com/hanpama/gqlcoerce/internal/language"
)

var stringType = &Type{
	Name:           "String",
	Kind:           TypeKindScalar,
	Description:    "The `String` scalar type represents textual data, represented as UTF-8 character sequences.",
	ParseValue:     parseStringValue,
	ParseLiteral:   parseStringLiteral,
	ValueToLiteral: stringToLiteral,
}

var intType = &Type{
	Name:           "Int",
	Kind:           TypeKindScalar,
	Description:    "The `Int` scalar type represents non-fractional signed whole numeric values.",
	ParseValue:     parseIntValue,
	ParseLiteral:   parseIntLiteral,
	ValueToLiteral: intToLiteral,
}

var floatType = &Type{
	Name:           "Float",
	Kind:           TypeKindScalar,
	Description:    "The `Float` scalar type represents signed double-precision fractional values.",
	ParseValue:     parseFloatValue,
	ParseLiteral:   parseFloatLiteral,
	ValueToLiteral: floatToLiteral,
}

var booleanType = &Type{
	Name:           "Boolean",
	Kind:           TypeKindScalar,
	Description:    "The `Boolean` scalar type represents `true` or `false`.",
	ParseValue:     parseBooleanValue,
	ParseLiteral:   parseBooleanLiteral,
	ValueToLiteral: booleanToLiteral,
}

var idType = &Type{
	Name:           "ID",
	Kind:           TypeKindScalar,
	Description:    "The `ID` scalar type represents a unique identifier, often used to refetch an object or as a key for caching.",
	ParseValue:     parseIDValue,
	ParseLiteral:   parseIDLiteral,
	ValueToLiteral: idToLiteral,
}

var includeDirective = &Directive{
	Name:        "include",
	Description: "Directs the executor to include this field or fragment only when the `if` argument is true.",
	Arguments: []*InputValue{
		{
			Name:        "if",
			Description: "Included when true.",
			Type:        &TypeRef{Kind: TypeRefKindNonNull, OfType: &TypeRef{Kind: TypeRefKindNamed, Named: "Boolean"}},
		},
	},
	Locations:    []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
	IsRepeatable: false,
}

var skipDirective = &Directive{
	Name:        "skip",
	Description: "Directs the executor to skip this field or fragment when the `if` argument is true.",
	Arguments: []*InputValue{
		{
			Name:        "if",
			Description: "Skipped when true.",
			Type:        &TypeRef{Kind: TypeRefKindNonNull, OfType: &TypeRef{Kind: TypeRefKindNamed, Named: "Boolean"}},
		},
	},
	Locations:    []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
	IsRepeatable: false,
}

// IsBuiltinScalar reports whether name is one of the specified scalars.
func IsBuiltinScalar(name string) bool {
	switch name {
	case "String", "Int", "Float", "Boolean", "ID":
		return true
	}
	return false
}

// ----- Int -----

func parseIntValue(value any) (any, error) {
	n, ok := asInteger(value)
	if !ok {
		return nil, fmt.Errorf("Int cannot represent non-integer value: %s", Inspect(value))
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %s", Inspect(value))
	}
	return int(n), nil
}

func parseIntLiteral(lit *language.Value) (any, error) {
	if lit.Kind != language.IntValue {
		return nil, fmt.Errorf("Int cannot represent non-integer value: %s", lit.String())
	}
	n, err := strconv.ParseInt(lit.Raw, 10, 64)
	if err != nil || n > math.MaxInt32 || n < math.MinInt32 {
		return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %s", lit.Raw)
	}
	return int(n), nil
}

func intToLiteral(value any) (*language.Value, error) {
	n, err := parseIntValue(value)
	if err != nil {
		return nil, err
	}
	return language.NewValue(language.IntValue, strconv.Itoa(n.(int))), nil
}

// ----- Float -----

func parseFloatValue(value any) (any, error) {
	f, ok := asFloat(value)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("Float cannot represent non numeric value: %s", Inspect(value))
	}
	return f, nil
}

func parseFloatLiteral(lit *language.Value) (any, error) {
	if lit.Kind != language.FloatValue && lit.Kind != language.IntValue {
		return nil, fmt.Errorf("Float cannot represent non numeric value: %s", lit.String())
	}
	f, err := strconv.ParseFloat(lit.Raw, 64)
	if err != nil {
		return nil, fmt.Errorf("Float cannot represent non numeric value: %s", lit.Raw)
	}
	return f, nil
}

func floatToLiteral(value any) (*language.Value, error) {
	f, err := parseFloatValue(value)
	if err != nil {
		return nil, err
	}
	return language.NewValue(language.FloatValue, FormatFloat(f.(float64))), nil
}

// FormatFloat prints f so that it lexes as a float literal: integral
// values keep a ".0" suffix.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// ----- String -----

func parseStringValue(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("String cannot represent a non string value: %s", Inspect(value))
	}
	return s, nil
}

func parseStringLiteral(lit *language.Value) (any, error) {
	if lit.Kind != language.StringValue && lit.Kind != language.BlockValue {
		return nil, fmt.Errorf("String cannot represent a non string value: %s", lit.String())
	}
	return lit.Raw, nil
}

func stringToLiteral(value any) (*language.Value, error) {
	s, err := parseStringValue(value)
	if err != nil {
		return nil, err
	}
	return language.NewValue(language.StringValue, s.(string)), nil
}

// ----- Boolean -----

func parseBooleanValue(value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %s", Inspect(value))
	}
	return b, nil
}

func parseBooleanLiteral(lit *language.Value) (any, error) {
	if lit.Kind != language.BooleanValue {
		return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %s", lit.String())
	}
	return lit.Raw == "true", nil
}

func booleanToLiteral(value any) (*language.Value, error) {
	b, err := parseBooleanValue(value)
	if err != nil {
		return nil, err
	}
	return language.NewValue(language.BooleanValue, strconv.FormatBool(b.(bool))), nil
}

// ----- ID -----

func parseIDValue(value any) (any, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	if n, ok := asInteger(value); ok {
		return strconv.FormatInt(n, 10), nil
	}
	return nil, fmt.Errorf("ID cannot represent value: %s", Inspect(value))
}

func parseIDLiteral(lit *language.Value) (any, error) {
	switch lit.Kind {
	case language.StringValue, language.BlockValue, language.IntValue:
		return lit.Raw, nil
	}
	return nil, fmt.Errorf("ID cannot represent a non-string and non-integer value: %s", lit.String())
}

// idToLiteral prints integer-looking IDs as Int literals, whether the value
// was an integer or a string such as "42". "007" stays a string.
func idToLiteral(value any) (*language.Value, error) {
	s, err := parseIDValue(value)
	if err != nil {
		return nil, err
	}
	if isIntegerString(s.(string)) {
		return language.NewValue(language.IntValue, s.(string)), nil
	}
	return language.NewValue(language.StringValue, s.(string)), nil
}

func isIntegerString(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ----- Enum -----

// ParseEnumValue validates a raw enum value: it must be the name of one of
// the enum's values.
func ParseEnumValue(t *Type, value any) (any, error) {
	name, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("Enum %q cannot represent non-string value: %s", t.Name, Inspect(value))
	}
	if t.EnumValue(name) == nil {
		return nil, fmt.Errorf("Value %q does not exist in %q enum.", name, t.Name)
	}
	return name, nil
}

// ParseEnumLiteral validates an enum literal against the enum's values.
func ParseEnumLiteral(t *Type, lit *language.Value) (any, error) {
	if lit.Kind != language.EnumValue {
		return nil, fmt.Errorf("Enum %q cannot represent non-enum value: %s", t.Name, lit.String())
	}
	if t.EnumValue(lit.Raw) == nil {
		return nil, fmt.Errorf("Value %q does not exist in %q enum.", lit.Raw, t.Name)
	}
	return lit.Raw, nil
}

// ----- numeric helpers -----

func asInteger(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), v <= math.MaxInt64
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), v <= math.MaxInt64
	case float32:
		return floatToInteger(float64(v))
	case float64:
		return floatToInteger(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil {
			return floatToInteger(f)
		}
	}
	return 0, false
}

func floatToInteger(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	if n, ok := asInteger(value); ok {
		return float64(n), true
	}
	return 0, false
}

// Inspect renders a runtime value for error messages.
func Inspect(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}
