package language

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseVariableDefinitions parses a parenthesized variable definition list
// such as `($id: ID!, $first: Int = 10)`.
func ParseVariableDefinitions(source string) (VariableDefinitionList, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "variables", Input: "query " + source + " { __typename }"})
	if err != nil {
		return nil, err
	}
	if len(doc.Operations) != 1 {
		return nil, fmt.Errorf("expected variable definitions, got %q", source)
	}
	return doc.Operations[0].VariableDefinitions, nil
}

// ParseType parses a type reference such as `[String!]!`.
func ParseType(source string) (*Type, error) {
	defs, err := ParseVariableDefinitions("($v: " + source + ")")
	if err != nil {
		return nil, err
	}
	if len(defs) != 1 || defs[0].Type == nil {
		return nil, fmt.Errorf("expected a single type reference, got %q", source)
	}
	return defs[0].Type, nil
}

// ParseValue parses a value literal. Variables are allowed.
func ParseValue(source string) (*Value, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "value", Input: "{ f(v: " + source + ") }"})
	if err != nil {
		return nil, err
	}
	if len(doc.Operations) != 1 || len(doc.Operations[0].SelectionSet) != 1 {
		return nil, fmt.Errorf("expected a single value, got %q", source)
	}
	field, ok := doc.Operations[0].SelectionSet[0].(*Field)
	if !ok || len(field.Arguments) != 1 {
		return nil, fmt.Errorf("expected a single value, got %q", source)
	}
	return field.Arguments[0].Value, nil
}
