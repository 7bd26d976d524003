/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package convert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/confetti/parser"
)

func mustParse(t *testing.T, src string) map[string]any {
	t.Helper()
	doc, err := parser.Parse([]byte(src), parser.Default())
	require.NoError(t, err)
	return Tree(doc)
}

func TestTreeScalars(t *testing.T) {
	tree := mustParse(t, "host localhost;\nports 80 443;\nverbose;")

	assert.Equal(t, "localhost", tree["host"])
	assert.Equal(t, []any{"80", "443"}, tree["ports"])
	assert.Nil(t, tree["verbose"])
	assert.Contains(t, tree, "verbose")
}

func TestTreeBlocks(t *testing.T) {
	tree := mustParse(t, "server proxy {\n  host localhost;\n}")

	server, ok := tree["server"].(map[string]any)
	require.True(t, ok, "expected server to be a map, got %T", tree["server"])
	assert.Equal(t, []any{"proxy"}, server[ArgsKey])
	assert.Equal(t, "localhost", server["host"])
}

func TestTreeRepeatedNames(t *testing.T) {
	tree := mustParse(t, "upstream a;\nupstream b;\nupstream c;")
	assert.Equal(t, []any{"a", "b", "c"}, tree["upstream"])
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{
		"":     FormatJSON,
		"json": FormatJSON,
		"yaml": FormatYAML,
		"YML":  FormatYAML,
	} {
		got, err := ParseFormat(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("toml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestFormatDocumentJSON(t *testing.T) {
	doc, err := parser.Parse([]byte("server {\n  port 8080;\n}"), parser.Default())
	require.NoError(t, err)

	out, err := FormatDocument(doc, Options{Format: FormatJSON})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, map[string]any{"server": map[string]any{"port": "8080"}}, decoded)
}

func TestFormatDocumentYAML(t *testing.T) {
	doc, err := parser.Parse([]byte("host localhost;"), parser.Default())
	require.NoError(t, err)

	out, err := FormatDocument(doc, Options{Format: FormatYAML})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "localhost", decoded["host"])
}
