package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"github.com/hanpama/gqlcoerce/internal/coerce"
	"github.com/hanpama/gqlcoerce/internal/eventbus"
	"github.com/hanpama/gqlcoerce/internal/events"
	"github.com/hanpama/gqlcoerce/internal/language"
	"github.com/hanpama/gqlcoerce/internal/otel"
	"github.com/hanpama/gqlcoerce/internal/reqid"
	"github.com/hanpama/gqlcoerce/internal/schema"
)

const rootUsage = `gqlcoerce: GraphQL input coercion tools

USAGE:
  gqlcoerce <command> [flags]

COMMANDS:
  coerce           Coerce a JSON/YAML value or a GraphQL literal against an input type
  substitute       Replace variables in a GraphQL literal
  help             Show help for any command
`

const coerceUsage = `coerce FLAGS:
  -schema <file>          GraphQL SDL file (required)
  -type <type>            Input type reference, e.g. "[Int!]!" (required)
  -value <json>           Raw input value as JSON
  -value-file <file>      Raw input value from a YAML or JSON file
  -literal <graphql>      GraphQL literal, e.g. "{a: 1}"
                          Exactly one of -value, -value-file, -literal is required.
  -vars <defs>            Variable definitions for -literal, e.g. "($x: Int = 1)"
  -var-values <json>      Variable values for -vars as a JSON object
  -format json|proto      Output encoding of the coerced value (default: json)
  -max-depth N            Maximum input nesting depth (default: 64)
  -no-suggest             Do not suggest names for unknown fields
  -otel.endpoint <addr>   OTLP collector endpoint
  -otel.service <name>    OpenTelemetry service name (default: gqlcoerce)
`

const substituteUsage = `substitute FLAGS:
  -schema <file>          GraphQL SDL file (required)
  -literal <graphql>      GraphQL literal with variables (required)
  -vars <defs>            Variable definitions, e.g. "($x: Int = 1)"
  -var-values <json>      Variable values as a JSON object
  -max-depth N            Maximum input nesting depth (default: 64)
  -otel.endpoint <addr>   OTLP collector endpoint
  -otel.service <name>    OpenTelemetry service name (default: gqlcoerce)
`

// errInvalidInput is returned after the coercion errors have been printed.
var errInvalidInput = errors.New("input is invalid")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := args[0]
	cmdArgs := args[1:]
	switch cmd {
	case "coerce":
		return cmdCoerce(cmdArgs, stdout, stderr)
	case "substitute":
		return cmdSubstitute(cmdArgs, stdout, stderr)
	case "help":
		return cmdHelp(cmdArgs, stdout)
	default:
		fmt.Fprint(stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, rootUsage)
		return nil
	}
	switch args[0] {
	case "coerce":
		fmt.Fprint(stdout, coerceUsage)
	case "substitute":
		fmt.Fprint(stdout, substituteUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

// commonFlags are shared by every command that reads a schema.
type commonFlags struct {
	schemaFile   string
	vars         string
	varValues    string
	maxDepth     int
	noSuggest    bool
	otelEndpoint string
	otelService  string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	c.maxDepth = coerce.DefaultMaxDepth
	c.otelService = "gqlcoerce"
	fs.StringVar(&c.schemaFile, "schema", "", "GraphQL SDL file")
	fs.StringVar(&c.vars, "vars", "", "Variable definitions")
	fs.StringVar(&c.varValues, "var-values", "", "Variable values as JSON")
	fs.IntVar(&c.maxDepth, "max-depth", c.maxDepth, "Maximum input nesting depth")
	fs.StringVar(&c.otelEndpoint, "otel.endpoint", "", "OTLP collector endpoint")
	fs.StringVar(&c.otelService, "otel.service", c.otelService, "OpenTelemetry service name")
}

func (c *commonFlags) options() []coerce.Option {
	opts := []coerce.Option{coerce.WithMaxDepth(c.maxDepth)}
	if c.noSuggest {
		opts = append(opts, coerce.WithSuggestions(nil))
	}
	return opts
}

// setup wires the event bus and tracing for one command invocation.
func (c *commonFlags) setup() (context.Context, func(), error) {
	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(c.otelEndpoint, c.otelService)
	if err != nil {
		return nil, nil, fmt.Errorf("otel setup: %w", err)
	}
	if c.otelEndpoint != "" {
		log.Printf("exporting traces to %s", c.otelEndpoint)
	}
	ctx, _ := reqid.NewContext(context.Background())
	return ctx, func() {
		_ = shutdown(context.Background())
		eventbus.Use(nil)
	}, nil
}

func loadSchema(ctx context.Context, path string) (*schema.Schema, error) {
	eventbus.Publish(ctx, events.SchemaLoadStart{Source: path})
	start := time.Now()
	s, err := func() (*schema.Schema, error) {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		doc, err := language.ParseSchema(path, string(src))
		if err != nil {
			return nil, err
		}
		return schema.BuildFromDocument(doc)
	}()
	finish := events.SchemaLoadFinish{Source: path, Err: err, Duration: time.Since(start)}
	if s != nil {
		finish.Types = len(s.Types)
	}
	eventbus.Publish(ctx, finish)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return s, nil
}

// loadVariables coerces -var-values against -vars. Without -vars there are
// no variables.
func (c *commonFlags) loadVariables(s *schema.Schema) (*coerce.VariableValues, error) {
	if c.vars == "" {
		if c.varValues != "" {
			return nil, fmt.Errorf("-var-values requires -vars")
		}
		return nil, nil
	}
	defs, err := language.ParseVariableDefinitions(c.vars)
	if err != nil {
		return nil, fmt.Errorf("parse -vars: %w", err)
	}
	inputs := map[string]any{}
	if c.varValues != "" {
		if err := decodeJSON(c.varValues, &inputs); err != nil {
			return nil, fmt.Errorf("parse -var-values: %w", err)
		}
	}
	return coerce.CoerceVariableValues(s, defs, inputs, c.options()...)
}

func cmdCoerce(args []string, stdout, stderr io.Writer) error {
	var (
		common    commonFlags
		typeSrc   string
		value     string
		valueFile string
		literal   string
		format    = "json"
	)
	fs := flag.NewFlagSet("coerce", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	common.register(fs)
	fs.BoolVar(&common.noSuggest, "no-suggest", false, "Do not suggest names for unknown fields")
	fs.StringVar(&typeSrc, "type", "", "Input type reference")
	fs.StringVar(&value, "value", "", "Raw input value as JSON")
	fs.StringVar(&valueFile, "value-file", "", "Raw input value from a YAML or JSON file")
	fs.StringVar(&literal, "literal", "", "GraphQL literal")
	fs.StringVar(&format, "format", format, "Output encoding: json or proto")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(stderr, coerceUsage)
		return err
	}
	if common.schemaFile == "" || typeSrc == "" {
		fmt.Fprint(stderr, coerceUsage)
		return fmt.Errorf("-schema and -type are required")
	}
	inputs := 0
	input := ""
	for name, v := range map[string]string{"value": value, "value-file": valueFile, "literal": literal} {
		if v != "" {
			inputs++
			input = name
		}
	}
	if inputs != 1 {
		fmt.Fprint(stderr, coerceUsage)
		return fmt.Errorf("exactly one of -value, -value-file, -literal is required")
	}
	if format != "json" && format != "proto" {
		return fmt.Errorf("unknown format %q", format)
	}

	ctx, done, err := common.setup()
	if err != nil {
		return err
	}
	defer done()

	s, err := loadSchema(ctx, common.schemaFile)
	if err != nil {
		return err
	}
	typeRef, err := language.ParseType(typeSrc)
	if err != nil {
		return fmt.Errorf("parse -type: %w", err)
	}
	t := schema.TypeFromAST(s, typeRef)
	if t == nil {
		return fmt.Errorf("type %s is not defined by the schema", typeSrc)
	}

	eventbus.Publish(ctx, events.CoercionStart{Command: "coerce", Type: t.String(), Input: input})
	start := time.Now()
	out, err := coerceInput(s, t, &common, value, valueFile, literal)
	finish := events.CoercionFinish{Command: "coerce", Type: t.String(), Duration: time.Since(start)}
	var errs coerce.Errors
	switch {
	case errors.As(err, &errs):
		for _, k := range errs.Kinds() {
			finish.ErrorKinds = append(finish.ErrorKinds, string(k))
		}
	case err != nil:
		finish.Err = err
	}
	eventbus.Publish(ctx, finish)

	if errs != nil {
		return printErrors(stdout, errs)
	}
	if err != nil {
		return err
	}
	return printValue(stdout, out, format)
}

func coerceInput(s *schema.Schema, t *schema.TypeRef, common *commonFlags, value, valueFile, literal string) (any, error) {
	c := coerce.NewCoercer(s, common.options()...)
	switch {
	case value != "":
		var v any
		if err := decodeJSON(value, &v); err != nil {
			return nil, fmt.Errorf("parse -value: %w", err)
		}
		return c.CoerceValue(v, t)
	case valueFile != "":
		src, err := os.ReadFile(valueFile)
		if err != nil {
			return nil, err
		}
		var v any
		if err := yaml.Unmarshal(src, &v); err != nil {
			return nil, fmt.Errorf("parse %s: %w", valueFile, err)
		}
		return c.CoerceValue(v, t)
	}
	lit, err := language.ParseValue(literal)
	if err != nil {
		return nil, fmt.Errorf("parse -literal: %w", err)
	}
	vars, err := common.loadVariables(s)
	if err != nil {
		return nil, err
	}
	return c.CoerceLiteral(lit, t, vars, nil)
}

func cmdSubstitute(args []string, stdout, stderr io.Writer) error {
	var (
		common  commonFlags
		literal string
	)
	fs := flag.NewFlagSet("substitute", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	common.register(fs)
	fs.StringVar(&literal, "literal", "", "GraphQL literal with variables")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(stderr, substituteUsage)
		return err
	}
	if common.schemaFile == "" || literal == "" {
		fmt.Fprint(stderr, substituteUsage)
		return fmt.Errorf("-schema and -literal are required")
	}

	ctx, done, err := common.setup()
	if err != nil {
		return err
	}
	defer done()

	s, err := loadSchema(ctx, common.schemaFile)
	if err != nil {
		return err
	}
	lit, err := language.ParseValue(literal)
	if err != nil {
		return fmt.Errorf("parse -literal: %w", err)
	}

	eventbus.Publish(ctx, events.CoercionStart{Command: "substitute", Input: "literal"})
	start := time.Now()
	vars, err := common.loadVariables(s)
	finish := events.CoercionFinish{Command: "substitute", Duration: time.Since(start)}
	var errs coerce.Errors
	if errors.As(err, &errs) {
		for _, k := range errs.Kinds() {
			finish.ErrorKinds = append(finish.ErrorKinds, string(k))
		}
	} else {
		finish.Err = err
	}

	var out *language.Value
	if err == nil {
		out, err = coerce.NewCoercer(s, common.options()...).ReplaceVariables(lit, vars, nil)
		finish.Err = err
		finish.Duration = time.Since(start)
	}
	eventbus.Publish(ctx, finish)

	if errs != nil {
		return printErrors(stdout, errs)
	}
	if err != nil {
		return fmt.Errorf("substitute: %w", err)
	}
	if out != nil {
		fmt.Fprintln(stdout, out.String())
	}
	return nil
}

func decodeJSON(src string, v any) error {
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	return dec.Decode(v)
}

func printErrors(w io.Writer, errs coerce.Errors) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"errors": errs.GQLErrors()}); err != nil {
		return err
	}
	return fmt.Errorf("%w: %d errors", errInvalidInput, len(errs))
}

func printValue(w io.Writer, v any, format string) error {
	if format == "proto" {
		pv, err := structpb.NewValue(normalize(v))
		if err != nil {
			return fmt.Errorf("encode proto: %w", err)
		}
		b, err := protojson.Marshal(pv)
		if err != nil {
			return fmt.Errorf("encode proto: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// normalize converts decoded numbers to types structpb accepts.
func normalize(v any) any {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		f, _ := v.Float64()
		return f
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = normalize(item)
		}
		return out
	}
	return v
}
