package schema

// IsEqualType reports whether two type references denote the same type.
func IsEqualType(a, b *TypeRef) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch {
	case a.Kind == TypeRefKindNonNull && b.Kind == TypeRefKindNonNull:
		return IsEqualType(a.OfType, b.OfType)
	case a.Kind == TypeRefKindList && b.Kind == TypeRefKindList:
		return IsEqualType(a.OfType, b.OfType)
	case a.Kind != b.Kind:
		return false
	}
	return a.Named == b.Named
}

// IsTypeSubTypeOf reports whether maybeSub can be used where superType is
// expected. Non-Null is covariant only upward: T! is a subtype of T but not
// the other way round.
func IsTypeSubTypeOf(s *Schema, maybeSub, superType *TypeRef) bool {
	if IsEqualType(maybeSub, superType) {
		return true
	}
	if maybeSub == nil || superType == nil {
		return false
	}

	if superType.Kind == TypeRefKindNonNull {
		if maybeSub.Kind == TypeRefKindNonNull {
			return IsTypeSubTypeOf(s, maybeSub.OfType, superType.OfType)
		}
		return false
	}
	if maybeSub.Kind == TypeRefKindNonNull {
		return IsTypeSubTypeOf(s, maybeSub.Nullable(), superType)
	}

	if superType.Kind == TypeRefKindList {
		if maybeSub.Kind == TypeRefKindList {
			return IsTypeSubTypeOf(s, maybeSub.OfType, superType.OfType)
		}
		return false
	}
	if maybeSub.Kind == TypeRefKindList {
		return false
	}

	superNamed := s.Type(superType.Named)
	subNamed := s.Type(maybeSub.Named)
	if superNamed == nil || subNamed == nil {
		return false
	}
	return superNamed.IsAbstract() &&
		(subNamed.Kind == TypeKindObject || subNamed.Kind == TypeKindInterface) &&
		s.IsSubType(superNamed, subNamed)
}

// DoTypesOverlap reports whether some concrete object type could satisfy
// both a and b. Commutative.
func DoTypesOverlap(s *Schema, a, b *Type) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b || a.Name == b.Name {
		return true
	}
	if !a.IsComposite() || !b.IsComposite() {
		return false
	}

	if a.IsAbstract() {
		if b.IsAbstract() {
			for _, t := range s.PossibleTypes(a) {
				if s.IsSubType(b, t) {
					return true
				}
			}
			return false
		}
		return s.IsSubType(a, b)
	}
	if b.IsAbstract() {
		return s.IsSubType(b, a)
	}
	return false
}

// IsSubType reports whether maybeSub is a member of the union or an
// implementation of the interface abstract.
func (s *Schema) IsSubType(abstract, maybeSub *Type) bool {
	if abstract == nil || maybeSub == nil {
		return false
	}
	switch abstract.Kind {
	case TypeKindUnion:
		return maybeSub.Kind == TypeKindObject && containsName(abstract.PossibleTypes, maybeSub.Name)
	case TypeKindInterface:
		if maybeSub.Kind != TypeKindObject && maybeSub.Kind != TypeKindInterface {
			return false
		}
		return containsName(maybeSub.Interfaces, abstract.Name) ||
			containsName(abstract.PossibleTypes, maybeSub.Name)
	default:
		return false
	}
}

// PossibleTypes lists the concrete object types of an abstract type in
// declaration order. Names missing from the schema are skipped.
func (s *Schema) PossibleTypes(abstract *Type) []*Type {
	if !abstract.IsAbstract() {
		return nil
	}
	out := make([]*Type, 0, len(abstract.PossibleTypes))
	for _, name := range abstract.PossibleTypes {
		if t := s.Type(name); t != nil {
			out = append(out, t)
		}
	}
	return out
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
