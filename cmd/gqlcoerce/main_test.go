package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanpama/gqlcoerce/internal/coerce"
)

const testSDL = `
enum Color { RED GREEN }
input Filter { color: Color = RED, limit: Int! }
type Query { search(filter: Filter): String }
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestHelp(t *testing.T) {
	out, _, err := runCLI(t, "help", "coerce")
	require.NoError(t, err)
	require.Contains(t, out, "coerce FLAGS")

	_, _, err = runCLI(t, "help", "nope")
	require.Error(t, err)

	_, stderr, err := runCLI(t)
	require.Error(t, err)
	require.Contains(t, stderr, "USAGE")
}

func TestCoerceValue(t *testing.T) {
	sdl := writeFile(t, "schema.graphql", testSDL)

	out, _, err := runCLI(t, "coerce", "-schema", sdl, "-type", "[Filter!]", "-value", `{"limit": 3}`)
	require.NoError(t, err)
	require.JSONEq(t, `[{"color": "RED", "limit": 3}]`, out)
}

func TestCoerceValueFile(t *testing.T) {
	sdl := writeFile(t, "schema.graphql", testSDL)
	file := writeFile(t, "value.yaml", "color: GREEN\nlimit: 2\n")

	out, _, err := runCLI(t, "coerce", "-schema", sdl, "-type", "Filter", "-value-file", file, "-format", "proto")
	require.NoError(t, err)
	require.JSONEq(t, `{"color": "GREEN", "limit": 2}`, out)
}

func TestCoerceLiteralWithVariables(t *testing.T) {
	sdl := writeFile(t, "schema.graphql", testSDL)

	out, _, err := runCLI(t, "coerce", "-schema", sdl, "-type", "Filter",
		"-literal", "{limit: $n, color: $c}", "-vars", "($n: Int!, $c: Color)", "-var-values", `{"n": 5}`)
	require.NoError(t, err)
	require.JSONEq(t, `{"color": "RED", "limit": 5}`, out)
}

func TestCoerceErrors(t *testing.T) {
	sdl := writeFile(t, "schema.graphql", testSDL)

	out, _, err := runCLI(t, "coerce", "-schema", sdl, "-type", "Filter", "-value", `{"colour": "RED"}`)
	require.ErrorIs(t, err, errInvalidInput)

	var body struct {
		Errors []struct {
			Message    string         `json:"message"`
			Path       []any          `json:"path"`
			Extensions map[string]any `json:"extensions"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	require.Len(t, body.Errors, 2)
	require.Equal(t, "MISSING_REQUIRED_FIELD", body.Errors[0].Extensions["code"])
	require.Equal(t, []any{"limit"}, body.Errors[0].Path)
	require.Equal(t, `Field "colour" is not defined by type "Filter". Did you mean "color"?`, body.Errors[1].Message)

	out, _, err = runCLI(t, "coerce", "-schema", sdl, "-type", "Filter", "-no-suggest", "-value", `{"colour": "RED", "limit": 1}`)
	require.ErrorIs(t, err, errInvalidInput)
	require.Contains(t, out, `"Field \"colour\" is not defined by type \"Filter\"."`)
}

func TestCoerceFlagErrors(t *testing.T) {
	sdl := writeFile(t, "schema.graphql", testSDL)

	for _, args := range [][]string{
		{"coerce", "-type", "Int", "-value", "1"},
		{"coerce", "-schema", sdl, "-type", "Int"},
		{"coerce", "-schema", sdl, "-type", "Int", "-value", "1", "-literal", "1"},
		{"coerce", "-schema", sdl, "-type", "Missing", "-value", "1"},
		{"coerce", "-schema", sdl, "-type", "Int", "-value", "1", "-format", "xml"},
		{"coerce", "-schema", filepath.Join(t.TempDir(), "none.graphql"), "-type", "Int", "-value", "1"},
	} {
		_, _, err := runCLI(t, args...)
		require.Error(t, err, "%v", args)
	}
}

func TestSubstitute(t *testing.T) {
	sdl := writeFile(t, "schema.graphql", testSDL)

	out, _, err := runCLI(t, "substitute", "-schema", sdl,
		"-literal", "[$f]", "-vars", "($f: Filter, $u: Int)", "-var-values", `{"f": {"limit": 1}}`)
	require.NoError(t, err)
	require.Contains(t, out, "RED")

	out, _, err = runCLI(t, "substitute", "-schema", sdl, "-literal", "$u", "-vars", "($u: Int)")
	require.NoError(t, err)
	require.Empty(t, out, "an unset variable has no value")

	_, _, err = runCLI(t, "substitute", "-schema", sdl, "-literal", "$f", "-vars", "($f: Filter!)")
	require.ErrorIs(t, err, errInvalidInput)
	out, _, err = runCLI(t, "substitute", "-schema", sdl, "-max-depth", "1", "-literal", "[[[1]]]")
	require.ErrorIs(t, err, coerce.ErrMaxDepth)
	require.Empty(t, out)
}
