package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{"type":"doc","content":[
	{"type":"heading","attrs":{"level":1},"content":[{"type":"text","text":"Title"}]},
	{"type":"paragraph","content":[{"type":"text","text":"plain "},{"type":"text","text":"bold","marks":[{"type":"bold"}]}]}]}`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runRender(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRenderCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRenderHTMLFormat(t *testing.T) {
	path := writeSample(t, sampleDoc)
	out, err := runRender(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<p>plain <b>bold</b></p>")
}

func TestRenderTextFormat(t *testing.T) {
	path := writeSample(t, sampleDoc)
	out, err := runRender(t, path, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Title\n")
	assert.Contains(t, out, "plain bold\n")
	assert.NotContains(t, out, "<h1>")
}

func TestRenderMarkdownFormat(t *testing.T) {
	path := writeSample(t, sampleDoc)
	out, err := runRender(t, path, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Title")
	assert.Contains(t, out, "**bold**")
}

func TestRenderSanitize(t *testing.T) {
	doc := `{"type":"doc","content":[{"type":"paragraph","content":[
		{"type":"text","text":"click","marks":[{"type":"link","attrs":{"href":"javascript:alert(1)"}}]}]}]}`
	path := writeSample(t, doc)

	out, err := runRender(t, path, "--sanitize")
	require.NoError(t, err)
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "click")
}

func TestRenderUnknownFormat(t *testing.T) {
	path := writeSample(t, sampleDoc)
	_, err := runRender(t, path, "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestRenderDecodeError(t *testing.T) {
	path := writeSample(t, `{"content":[]}`)
	_, err := runRender(t, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing type")
}

func TestRenderToFile(t *testing.T) {
	path := writeSample(t, sampleDoc)
	outPath := filepath.Join(t.TempDir(), "out.html")

	_, err := runRender(t, path, "--output", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Title</h1>")
}

func TestRenderMissingFile(t *testing.T) {
	_, err := runRender(t, filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
