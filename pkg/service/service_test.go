package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repromptsquest/repmt/pkg/export"
	"github.com/repromptsquest/repmt/pkg/models"
	"github.com/repromptsquest/repmt/pkg/scanner"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := &Config{
		DataDir:    filepath.Join(t.TempDir(), "data"),
		Format:     export.FormatMarkdown,
		PromptType: models.PromptTypeDocumentation,
	}
	svc, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func newTestRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"main.py":          "import os\n\ndef main():\n    pass\n",
		"pkg/__init__.py":  "",
		"pkg/util.py":      "import json\n\ndef helper():\n    return 1\n",
		"README.md":        "# Demo\n",
		".git/config":      "",
		"venv/pyvenv.cfg":  "home = /usr\n",
		"venv/lib/site.py": "",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestSelectFiles(t *testing.T) {
	svc := newTestService(t)
	root := newTestRepo(t)

	paths, nodes, err := svc.SelectFiles(root, nil, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"main.py", "pkg/__init__.py", "pkg/util.py", "README.md"}, paths)
	for _, p := range paths {
		assert.Contains(t, nodes, p)
	}
}

func TestSelectFilesWithGlobs(t *testing.T) {
	svc := newTestService(t)
	root := newTestRepo(t)

	paths, _, err := svc.SelectFiles(root, []string{"**/*.py", "*.py"}, []string{"**/__init__.py"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"main.py", "pkg/util.py"}, paths)
}

func TestSelectFilesInvalidRoot(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.SelectFiles(filepath.Join(t.TempDir(), "missing"), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, scanner.ErrPathNotFound)
}

func TestGenerateAndExportRecordsHistory(t *testing.T) {
	svc := newTestService(t)
	root := newTestRepo(t)

	paths, nodes, err := svc.SelectFiles(root, []string{"*.py", "**/*.py"}, nil)
	require.NoError(t, err)

	sel := &models.Selection{Root: root, Paths: paths, PromptType: models.PromptTypeDocumentation}
	p, err := svc.Generate(sel, nodes)
	require.NoError(t, err)

	assert.Equal(t, len(paths), p.FileCount)
	assert.Contains(t, p.Text, "def main():")
	assert.Contains(t, p.Text, "def helper():")

	outPath := filepath.Join(t.TempDir(), "prompt.md")
	require.NoError(t, svc.Export(p, export.Options{Format: export.FormatMarkdown, OutputPath: outPath}))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, p.Text, string(data))

	require.NotNil(t, svc.History)
	entries, err := svc.History.Recent(5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, outPath, entries[0].Destination)
	assert.Equal(t, p.FileCount, entries[0].FileCount)
}

func TestAggregateImports(t *testing.T) {
	svc := newTestService(t)
	root := newTestRepo(t)

	imports, err := svc.AggregateImports(root, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"json", "os"}, imports)
}

func TestTemplateOverridesLoaded(t *testing.T) {
	tmplPath := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(tmplPath, []byte("templates:\n  documentation:\n    preamble: Custom.\n"), 0644))

	cfg := &Config{
		DataDir:       filepath.Join(t.TempDir(), "data"),
		TemplatesFile: tmplPath,
	}
	svc, err := New(cfg, nil)
	require.NoError(t, err)
	defer svc.Close()

	tmpl, err := svc.Registry.Get(models.PromptTypeDocumentation)
	require.NoError(t, err)
	assert.Equal(t, "Custom.", tmpl.Preamble)
}

func TestMaxPromptLengthFlowsThrough(t *testing.T) {
	cfg := &Config{MaxPromptLength: 50}
	svc, err := New(cfg, nil)
	require.NoError(t, err)
	defer svc.Close()

	root := t.TempDir()
	long := strings.Repeat("z", 500)
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.txt"), []byte(long), 0644))

	paths, nodes, err := svc.SelectFiles(root, nil, nil)
	require.NoError(t, err)

	sel := &models.Selection{Root: root, Paths: paths, PromptType: models.PromptTypeDocumentation}
	p, err := svc.Generate(sel, nodes)
	require.NoError(t, err)
	assert.Contains(t, p.Text, "... (truncated)")
}
