package schema

import language "github.com/hanpama/gqlcoerce/internal/language"

// TypeFromAST resolves a type reference literal against the schema. It
// returns nil when any named type in the reference is unknown; the caller
// decides whether that is fatal.
func TypeFromAST(s *Schema, t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		inner := TypeFromAST(s, &language.Type{NamedType: t.NamedType, Elem: t.Elem})
		if inner == nil {
			return nil
		}
		return NonNullType(inner)
	}
	if t.Elem != nil {
		inner := TypeFromAST(s, t.Elem)
		if inner == nil {
			return nil
		}
		return ListType(inner)
	}
	if s.Type(t.NamedType) == nil {
		return nil
	}
	return NamedType(t.NamedType)
}

// typeRefFromAST converts a type reference without consulting a schema.
// The builder uses it while the type registry is still being filled.
func typeRefFromAST(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return NonNullType(typeRefFromAST(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return NamedType(t.NamedType)
	}
	if t.Elem != nil {
		return ListType(typeRefFromAST(t.Elem))
	}
	return nil
}
