package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<header></header><main id="main"></main><aside class="sidebar"></aside>`

const testLayout = `ui:
  side: aside.sidebar
regions:
  main: "#main"
  sidebar:
    el: "@ui.side"
    type: region
  gone: "#nowhere"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	layout := writeFile(t, dir, "layout.yaml", testLayout)
	page := writeFile(t, dir, "page.html", testPage)

	out, err := run(t, "resolve", "--layout", layout, page)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Regexp(t, `^NAME\s+TYPE\s+TARGET\s+ELEMENT$`, lines[0])
	assert.Regexp(t, `^gone\s+region\s+#nowhere\s+\(missing\)$`, lines[1])
	assert.Regexp(t, `^main\s+region\s+#main\s+main#main$`, lines[2])
	assert.Regexp(t, `^sidebar\s+region\s+@ui\.side\s+aside\.sidebar$`, lines[3])
}

func TestResolve_RequiresLayout(t *testing.T) {
	dir := t.TempDir()
	page := writeFile(t, dir, "page.html", testPage)

	_, err := run(t, "resolve", page)
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	layout := writeFile(t, dir, "layout.yaml", testLayout)

	for _, sensitive := range []bool{false, true} {
		encodeArgs := []string{"encode", "--key", "cli-test-key", "--layout", layout}
		decodeArgs := []string{"decode", "--key", "cli-test-key"}
		if sensitive {
			encodeArgs = append(encodeArgs, "--sensitive")
			decodeArgs = append(decodeArgs, "--sensitive")
		}

		out, err := run(t, encodeArgs...)
		require.NoError(t, err)
		token := strings.TrimSpace(out)
		require.NotEmpty(t, token)

		out, err = run(t, append(decodeArgs, token)...)
		require.NoError(t, err)
		assert.Contains(t, out, "regions:")
		assert.Contains(t, out, "#main")
		assert.Contains(t, out, "type: region")
		assert.NotContains(t, out, "ui:")
	}
}

func TestEncode_KeyFromEnv(t *testing.T) {
	dir := t.TempDir()
	layout := writeFile(t, dir, "layout.yaml", testLayout)

	t.Setenv("HXREGION_KEY", "")
	_, err := run(t, "encode", "--layout", layout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HXREGION_KEY")

	t.Setenv("HXREGION_KEY", "env-key")
	out, err := run(t, "encode", "--layout", layout)
	require.NoError(t, err)
	token := strings.TrimSpace(out)

	_, err = run(t, "decode", "--key", "wrong-key", token)
	assert.Error(t, err)

	_, err = run(t, "decode", token)
	assert.NoError(t, err)
}

func TestEncode_KeyFromConfig(t *testing.T) {
	dir := t.TempDir()
	layout := writeFile(t, dir, "layout.yaml", testLayout)
	cfg := writeFile(t, dir, "hxregion.yaml", "key: file-key\n")

	_, err := run(t, "encode", "--config", cfg, "--layout", layout)
	assert.NoError(t, err)
}

func TestReadLayoutFile_Empty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "layout.yaml", "ui:\n  side: aside\n")

	_, err := readLayoutFile(path)
	assert.Error(t, err)
}
