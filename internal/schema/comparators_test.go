package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsEqualType(t *testing.T) {
	types := []*TypeRef{
		NamedType("Int"),
		NamedType("String"),
		NonNullType(NamedType("Int")),
		ListType(NamedType("Int")),
		ListType(NonNullType(NamedType("Int"))),
		NonNullType(ListType(NamedType("Int"))),
	}
	for i, a := range types {
		require.True(t, IsEqualType(a, a), "reflexive: %s", a)
		for j, b := range types {
			require.Equal(t, IsEqualType(a, b), IsEqualType(b, a), "symmetric: %s %s", a, b)
			require.Equal(t, i == j, IsEqualType(a, b), "%s == %s", a, b)
		}
	}

	require.True(t, IsEqualType(ListType(NamedType("Int")), ListType(NamedType("Int"))), "structural equality")
}

func TestIsTypeSubTypeOf(t *testing.T) {
	s := mustBuildTestSchema(t)
	named := NamedType

	for _, tc := range []struct {
		name  string
		sub   *TypeRef
		super *TypeRef
		want  bool
	}{
		{"same", named("Int"), named("Int"), true},
		{"non-null to nullable", NonNullType(named("Int")), named("Int"), true},
		{"nullable to non-null", named("Int"), NonNullType(named("Int")), false},
		{"different scalars", named("Int"), named("Float"), false},
		{"object implements interface", named("User"), named("Node"), true},
		{"interface implements interface", named("Named"), named("Node"), true},
		{"interface to object", named("Node"), named("User"), false},
		{"union member", named("Post"), named("SearchResult"), true},
		{"not a union member", named("Comment"), named("SearchResult"), false},
		{"list covariance", ListType(named("User")), ListType(named("Node")), true},
		{"non-null list to nullable list", NonNullType(ListType(NonNullType(named("User")))), ListType(named("Node")), true},
		{"item to list", named("User"), ListType(named("User")), false},
		{"list to item", ListType(named("User")), named("User"), false},
		{"unknown type", named("Missing"), named("Node"), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, IsTypeSubTypeOf(s, tc.sub, tc.super))
		})
	}

	for _, ref := range []*TypeRef{named("User"), ListType(named("Node")), NonNullType(named("Int"))} {
		require.True(t, IsTypeSubTypeOf(s, ref, ref), "reflexive: %s", ref)
	}
}

func TestDoTypesOverlap(t *testing.T) {
	s := mustBuildTestSchema(t)

	for _, tc := range []struct {
		a, b string
		want bool
	}{
		{"User", "User", true},
		{"Node", "Node", true},
		{"User", "Post", false},
		{"User", "Comment", false},
		{"User", "Node", true},
		{"Comment", "Node", false},
		{"Node", "SearchResult", true},
		{"SearchResult", "Content", true},
		{"Content", "Node", true},
		{"Named", "Content", false},
		{"Color", "Color", true},
		{"Color", "Node", false},
		{"Filter", "SearchResult", false},
		{"String", "ID", false},
	} {
		a, b := s.Type(tc.a), s.Type(tc.b)
		require.Equal(t, tc.want, DoTypesOverlap(s, a, b), "%s overlaps %s", tc.a, tc.b)
		require.Equal(t, tc.want, DoTypesOverlap(s, b, a), "%s overlaps %s", tc.b, tc.a)
	}
}

func TestPossibleTypes(t *testing.T) {
	s := mustBuildTestSchema(t)
	var names []string
	for _, pt := range s.PossibleTypes(s.Type("Content")) {
		names = append(names, pt.Name)
	}
	require.Equal(t, []string{"Post", "Comment"}, names)
	require.Nil(t, s.PossibleTypes(s.Type("User")))
}

func TestTypeKindPredicates(t *testing.T) {
	s := mustBuildTestSchema(t)

	for _, tc := range []struct {
		name                   string
		composite, leaf, input bool
	}{
		{"User", true, false, false},
		{"Node", true, false, false},
		{"SearchResult", true, false, false},
		{"Color", false, true, true},
		{"Int", false, true, true},
		{"Filter", false, false, true},
	} {
		typ := s.Type(tc.name)
		require.Equal(t, tc.composite, typ.IsComposite(), "%s composite", tc.name)
		require.Equal(t, tc.leaf, typ.IsLeaf(), "%s leaf", tc.name)
		require.Equal(t, tc.input, typ.IsInput(), "%s input", tc.name)
	}
	require.False(t, (*Type)(nil).IsComposite())
}

func TestTypeRef_Nullable(t *testing.T) {
	named := NamedType("Int")
	list := ListType(NonNullType(named))

	require.Same(t, named, NonNullType(named).Nullable())
	require.Same(t, list, list.Nullable())
	require.Same(t, list, NonNullType(list).Nullable())
	require.Equal(t, "[Int!]", NonNullType(list).Nullable().String())
}
