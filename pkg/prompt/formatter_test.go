package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/repromptsquest/repmt/pkg/analyzer"
	"github.com/repromptsquest/repmt/pkg/models"
)

func fileNode(t *testing.T, dir, rel, content string) *models.FileNode {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	return &models.FileNode{
		Path:       path,
		RelPath:    rel,
		Name:       filepath.Base(path),
		Kind:       models.KindFile,
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
	}
}

func newFormatter() *Formatter {
	return NewFormatter(NewRegistry(), analyzer.New(nil), nil)
}

func TestFormatDocumentation(t *testing.T) {
	tmpDir := t.TempDir()
	a := fileNode(t, tmpDir, "a.py", "def alpha():\n    return 1\n")
	b := fileNode(t, tmpDir, "b.py", "def beta():\n    return 2\n")
	nodes := map[string]*models.FileNode{"a.py": a, "b.py": b}

	sel := &models.Selection{
		Root:       tmpDir,
		Paths:      []string{"a.py", "b.py"},
		PromptType: models.PromptTypeDocumentation,
	}

	f := newFormatter()
	p, err := f.Format(sel, nodes)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	if p.FileCount != 2 {
		t.Errorf("expected 2 files, got %d", p.FileCount)
	}
	for _, want := range []string{
		"## File: a.py",
		"def alpha():",
		"## File: b.py",
		"def beta():",
	} {
		if !strings.Contains(p.Text, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// Selection order is output order.
	if strings.Index(p.Text, "a.py") > strings.Index(p.Text, "b.py") {
		t.Error("expected a.py before b.py")
	}
	// Each file appears exactly once.
	if strings.Count(p.Text, "## File: a.py") != 1 {
		t.Error("expected a.py block exactly once")
	}
	if len(p.FailedFiles()) != 0 {
		t.Errorf("unexpected failures: %v", p.FailedFiles())
	}
}

func TestFormatReversedSelectionOrder(t *testing.T) {
	tmpDir := t.TempDir()
	a := fileNode(t, tmpDir, "a.py", "A = 1\n")
	b := fileNode(t, tmpDir, "b.py", "B = 2\n")
	nodes := map[string]*models.FileNode{"a.py": a, "b.py": b}

	sel := &models.Selection{
		Root:       tmpDir,
		Paths:      []string{"b.py", "a.py"},
		PromptType: models.PromptTypeDocumentation,
	}

	p, err := newFormatter().Format(sel, nodes)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if strings.Index(p.Text, "## File: b.py") > strings.Index(p.Text, "## File: a.py") {
		t.Error("expected b.py before a.py when selected first")
	}
}

func TestFormatUnknownPromptType(t *testing.T) {
	sel := &models.Selection{PromptType: "nope", Paths: []string{"a.py"}}
	_, err := newFormatter().Format(sel, map[string]*models.FileNode{})
	if err == nil {
		t.Fatal("expected error for unknown prompt type")
	}
}

func TestFormatRejectsOutOfTreePath(t *testing.T) {
	sel := &models.Selection{
		Paths:      []string{"../../etc/passwd"},
		PromptType: models.PromptTypeDocumentation,
	}
	_, err := newFormatter().Format(sel, map[string]*models.FileNode{})
	if err == nil {
		t.Fatal("expected error for path outside the scanned tree")
	}
}

func TestFormatEmbedsReadErrors(t *testing.T) {
	tmpDir := t.TempDir()
	a := fileNode(t, tmpDir, "a.py", "A = 1\n")
	gone := fileNode(t, tmpDir, "gone.py", "B = 2\n")
	if err := os.Remove(gone.Path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	nodes := map[string]*models.FileNode{"a.py": a, "gone.py": gone}

	sel := &models.Selection{
		Root:       tmpDir,
		Paths:      []string{"a.py", "gone.py"},
		PromptType: models.PromptTypeDocumentation,
	}

	p, err := newFormatter().Format(sel, nodes)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	// The readable file still made it in full.
	if !strings.Contains(p.Text, "A = 1") {
		t.Error("readable file content missing")
	}
	if !strings.Contains(p.Text, "Error reading file:") {
		t.Error("expected embedded read error note")
	}
	failed := p.FailedFiles()
	if len(failed) != 1 || failed[0].RelPath != "gone.py" {
		t.Errorf("expected gone.py in failure reports, got %v", failed)
	}
}

func TestFormatTruncatesLongContent(t *testing.T) {
	tmpDir := t.TempDir()
	long := strings.Repeat("x", 500)
	a := fileNode(t, tmpDir, "big.txt", long)
	nodes := map[string]*models.FileNode{"big.txt": a}

	f := newFormatter()
	f.MaxChars = 100

	sel := &models.Selection{
		Root:       tmpDir,
		Paths:      []string{"big.txt"},
		PromptType: models.PromptTypeDocumentation,
	}
	p, err := f.Format(sel, nodes)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(p.Text, "... (truncated)") {
		t.Error("expected truncation marker")
	}
	if strings.Contains(p.Text, strings.Repeat("x", 101)) {
		t.Error("content not truncated at limit")
	}
}

func TestFormatIncludesTreeSection(t *testing.T) {
	tmpDir := t.TempDir()
	a := fileNode(t, tmpDir, "pkg/mod.py", "M = 1\n")
	nodes := map[string]*models.FileNode{"pkg/mod.py": a}

	sel := &models.Selection{
		Root:       tmpDir,
		Paths:      []string{"pkg/mod.py"},
		PromptType: models.PromptTypeOnboarding,
	}
	p, err := newFormatter().Format(sel, nodes)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(p.Text, "## Directory Structure") {
		t.Error("expected directory structure section")
	}
	if !strings.Contains(p.Text, "pkg/") {
		t.Error("expected pkg/ in the rendered tree")
	}
	if p.CreatedAt.IsZero() || time.Since(p.CreatedAt) > time.Minute {
		t.Error("expected a fresh creation timestamp")
	}
}
