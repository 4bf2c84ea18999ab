package schema

import (
	"fmt"
	"sort"

	language "github.com/hanpama/gqlcoerce/internal/language"
)

// ValidationError lists the problems found while building a schema.
type ValidationError []string

func (e ValidationError) Error() string {
	msg := "violations found:\n"
	for _, v := range e {
		msg += "- " + v + "\n"
	}
	return msg
}

type builder struct {
	schema     *Schema
	doc        *language.SchemaDocument
	violations ValidationError
}

// BuildFromSDL parses SDL string and returns the corresponding Schema.
func BuildFromSDL(sdl string) (*Schema, error) {
	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, err
	}
	return BuildFromDocument(doc)
}

// BuildFromDocument builds a schema from a parsed SDL document. Extensions
// are merged into their base definitions and interface possible types are
// derived from the object types that implement them. Only the structural
// checks the coercion engine relies on are performed.
func BuildFromDocument(doc *language.SchemaDocument) (*Schema, error) {
	b := &builder{schema: NewSchema(""), doc: doc}

	b.populateDefinitions()
	b.populateExtensions()
	b.populateRootTypes()
	b.populateDirectives()
	b.populateImplementations()
	b.validateReferences()

	if len(b.violations) > 0 {
		return nil, b.violations
	}
	return b.schema, nil
}

func (b *builder) addViolation(format string, args ...any) {
	b.violations = append(b.violations, fmt.Sprintf(format, args...))
}

func (b *builder) populateDefinitions() {
	for _, def := range b.doc.Definitions {
		if IsBuiltinScalar(def.Name) && def.Kind == language.Scalar {
			continue
		}
		if _, ok := b.schema.Types[def.Name]; ok {
			b.addViolation("Type %q is already defined", def.Name)
			continue
		}
		t := NewType(def.Name, buildTypeKind(def.Kind), def.Description)
		b.applyDefinition(t, def)
		b.schema.AddType(t)
	}
}

func (b *builder) populateExtensions() {
	for _, ext := range b.doc.Extensions {
		if IsBuiltinScalar(ext.Name) {
			continue
		}
		t := b.schema.Types[ext.Name]
		if t == nil {
			b.addViolation("definition %q not found for extension", ext.Name)
			continue
		}
		if t.Kind != buildTypeKind(ext.Kind) {
			b.addViolation("Cannot extend %s %q as %s", t.Kind, ext.Name, buildTypeKind(ext.Kind))
			continue
		}
		b.applyDefinition(t, ext)
	}
}

func (b *builder) applyDefinition(t *Type, def *language.Definition) {
	switch def.Kind {
	case language.Object, language.Interface:
		for _, name := range def.Interfaces {
			t.AddInterface(name)
		}
		for _, f := range def.Fields {
			t.AddField(buildField(f))
		}
	case language.Union:
		for _, name := range def.Types {
			t.AddPossibleType(name)
		}
	case language.Enum:
		for _, v := range def.EnumValues {
			ev := NewEnumValue(v.Name, v.Description)
			if reason, ok := deprecationReason(v.Directives); ok {
				ev.Deprecate(reason)
			}
			t.AddEnumValue(ev)
		}
	case language.InputObject:
		if def.Directives.ForName("oneOf") != nil {
			t.SetOneOf(true)
		}
		for _, f := range def.Fields {
			t.AddInputField(buildInputField(f))
		}
	case language.Scalar:
		if d := def.Directives.ForName("specifiedBy"); d != nil {
			if url := d.Arguments.ForName("url"); url != nil && url.Value != nil {
				t.SetSpecifiedByURL(url.Value.Raw)
			}
		}
	default:
		panic("unreachable")
	}
}

func (b *builder) populateRootTypes() {
	for _, def := range b.doc.Schema {
		for _, op := range def.OperationTypes {
			switch op.Operation {
			case language.Query:
				b.schema.SetQueryType(op.Type)
			case language.Mutation:
				b.schema.SetMutationType(op.Type)
			case language.Subscription:
				b.schema.SetSubscriptionType(op.Type)
			}
		}
	}
	if len(b.doc.Schema) > 0 {
		return
	}
	if b.schema.Types["Query"] != nil {
		b.schema.SetQueryType("Query")
	}
	if b.schema.Types["Mutation"] != nil {
		b.schema.SetMutationType("Mutation")
	}
	if b.schema.Types["Subscription"] != nil {
		b.schema.SetSubscriptionType("Subscription")
	}
}

func (b *builder) populateDirectives() {
	for _, dir := range b.doc.Directives {
		d := NewDirective(dir.Name, dir.Description).SetRepeatable(dir.IsRepeatable)
		for _, loc := range dir.Locations {
			d.Locations = append(d.Locations, string(loc))
		}
		for _, arg := range dir.Arguments {
			d.AddArgument(buildArgument(arg))
		}
		b.schema.AddDirective(d)
	}
}

// populateImplementations records every object as a possible type of the
// interfaces it implements and checks union members.
func (b *builder) populateImplementations() {
	visit := func(def *language.Definition) {
		switch def.Kind {
		case language.Object:
			for _, name := range def.Interfaces {
				iface := b.schema.Types[name]
				if iface == nil {
					b.addViolation("Interface %q not found for object %q", name, def.Name)
					continue
				}
				if iface.Kind != TypeKindInterface {
					b.addViolation("Type %q is not an interface", name)
					continue
				}
				if !containsName(iface.PossibleTypes, def.Name) {
					iface.AddPossibleType(def.Name)
				}
			}
		case language.Interface:
			for _, name := range def.Interfaces {
				if iface := b.schema.Types[name]; iface == nil || iface.Kind != TypeKindInterface {
					b.addViolation("Type %q is not an interface", name)
				}
			}
		case language.Union:
			for _, name := range def.Types {
				member := b.schema.Types[name]
				if member == nil {
					b.addViolation("Type %q not found for union %q", name, def.Name)
					continue
				}
				if member.Kind != TypeKindObject {
					b.addViolation("Union member %q must be an Object type, but got %s", name, member.Kind)
				}
			}
		}
	}
	for _, def := range b.doc.Definitions {
		visit(def)
	}
	for _, def := range b.doc.Extensions {
		visit(def)
	}
}

func (b *builder) validateReferences() {
	check := func(ref *TypeRef, where string, input bool) {
		name := ref.GetNamedType()
		t := b.schema.Types[name]
		switch {
		case t == nil:
			b.addViolation("Type %q not found in definitions (%s)", name, where)
		case input && !t.IsInput():
			b.addViolation("Type %q is not an input type (%s)", name, where)
		case !input && t.Kind == TypeKindInputObject:
			b.addViolation("Type %q is not an output type (%s)", name, where)
		}
	}
	names := make([]string, 0, len(b.schema.Types))
	for name := range b.schema.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := b.schema.Types[name]
		for _, f := range t.Fields {
			check(f.Type, t.Name+"."+f.Name, false)
			for _, arg := range f.Arguments {
				check(arg.Type, t.Name+"."+f.Name+"("+arg.Name+":)", true)
			}
		}
		for _, f := range t.InputFields {
			check(f.Type, t.Name+"."+f.Name, true)
		}
	}
	for _, d := range b.schema.Directives {
		for _, arg := range d.Arguments {
			check(arg.Type, "@"+d.Name+"("+arg.Name+":)", true)
		}
	}
}

func buildTypeKind(kind language.DefinitionKind) TypeKind {
	switch kind {
	case language.Scalar:
		return TypeKindScalar
	case language.Object:
		return TypeKindObject
	case language.Interface:
		return TypeKindInterface
	case language.Union:
		return TypeKindUnion
	case language.Enum:
		return TypeKindEnum
	case language.InputObject:
		return TypeKindInputObject
	}
	panic("unreachable")
}

func buildField(def *language.FieldDefinition) *Field {
	f := NewField(def.Name, def.Description, typeRefFromAST(def.Type))
	if reason, ok := deprecationReason(def.Directives); ok {
		f.Deprecate(reason)
	}
	for _, arg := range def.Arguments {
		f.AddArgument(buildArgument(arg))
	}
	return f
}

func buildArgument(def *language.ArgumentDefinition) *InputValue {
	in := NewInputValue(def.Name, def.Description, typeRefFromAST(def.Type)).SetDefault(def.DefaultValue)
	if reason, ok := deprecationReason(def.Directives); ok {
		in.Deprecate(reason)
	}
	return in
}

func buildInputField(def *language.FieldDefinition) *InputValue {
	in := NewInputValue(def.Name, def.Description, typeRefFromAST(def.Type)).SetDefault(def.DefaultValue)
	if reason, ok := deprecationReason(def.Directives); ok {
		in.Deprecate(reason)
	}
	return in
}

func deprecationReason(directives language.DirectiveList) (string, bool) {
	d := directives.ForName("deprecated")
	if d == nil {
		return "", false
	}
	if reason := d.Arguments.ForName("reason"); reason != nil && reason.Value != nil {
		return reason.Value.Raw, true
	}
	return "", true
}
