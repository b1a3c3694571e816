package analyzer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/repromptsquest/repmt/pkg/models"
)

func nodeFor(t *testing.T, path string) *models.FileNode {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	rel := filepath.Base(path)
	return &models.FileNode{
		Path:       path,
		RelPath:    rel,
		Name:       rel,
		Kind:       models.KindFile,
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestSummarizeKeepsLeadingLines(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, "line")
	}
	path := writeTemp(t, "notes.txt", strings.Join(lines, "\n"))

	a := New(nil)
	res := a.Analyze(nodeFor(t, path))
	if res.Note != "" {
		t.Fatalf("unexpected note: %s", res.Note)
	}
	got := strings.Count(res.Summary, "line")
	if got != SummaryLines {
		t.Errorf("expected %d lines in summary, got %d", SummaryLines, got)
	}
}

func TestAnalyzeTooLarge(t *testing.T) {
	path := writeTemp(t, "big.txt", strings.Repeat("x", 100))

	a := New(nil)
	a.MaxFileSize = 10
	res := a.Analyze(nodeFor(t, path))
	if res.Note != TooLargeNote {
		t.Errorf("expected too-large note, got %+v", res)
	}
}

func TestAnalyzeCachesBySizeAndMtime(t *testing.T) {
	path := writeTemp(t, "a.txt", "hello\n")
	node := nodeFor(t, path)

	a := New(nil)
	first := a.Analyze(node)
	second := a.Analyze(node)
	if first != second {
		t.Error("expected cached result pointer on identical node")
	}
}

func TestReadContentHonorsSizeCap(t *testing.T) {
	path := writeTemp(t, "big.txt", strings.Repeat("x", 100))
	node := nodeFor(t, path)

	a := New(nil)
	a.MaxFileSize = 10
	content, note := a.ReadContent(node)
	if content != "" || note != TooLargeNote {
		t.Errorf("expected size cap note, got content=%q note=%q", content, note)
	}
}

func TestReadContentMissingFile(t *testing.T) {
	path := writeTemp(t, "gone.txt", "bye\n")
	node := nodeFor(t, path)
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	a := New(nil)
	content, note := a.ReadContent(node)
	if content != "" || !strings.HasPrefix(note, "Error reading file:") {
		t.Errorf("expected read error note, got content=%q note=%q", content, note)
	}
}

func TestAnalyzePython(t *testing.T) {
	source := `import os
import sys as system
from collections import OrderedDict
from . import sibling

class Greeter:
    def greet(self):
        return "hi"

def main():
    pass
`
	path := writeTemp(t, "app.py", source)

	a := New(nil)
	res := a.Analyze(nodeFor(t, path))
	if res.Python == nil {
		t.Fatalf("expected python analysis, got %+v", res)
	}
	if res.Python.Err != "" {
		t.Fatalf("unexpected analysis error: %s", res.Python.Err)
	}

	wantFuncs := map[string]bool{"greet": true, "main": true}
	for _, fn := range res.Python.Functions {
		delete(wantFuncs, fn)
	}
	if len(wantFuncs) != 0 {
		t.Errorf("missing functions %v in %v", wantFuncs, res.Python.Functions)
	}

	if len(res.Python.Classes) != 1 || res.Python.Classes[0] != "Greeter" {
		t.Errorf("unexpected classes: %v", res.Python.Classes)
	}

	wantImports := map[string]bool{"os": true, "sys": true, "collections": true}
	for _, imp := range res.Python.Imports {
		if !wantImports[imp] {
			t.Errorf("unexpected import %q", imp)
		}
		delete(wantImports, imp)
	}
	if len(wantImports) != 0 {
		t.Errorf("missing imports: %v", wantImports)
	}
}

func TestAggregateImports(t *testing.T) {
	results := []*Result{
		{Python: &PythonAnalysis{Imports: []string{"os", "sys"}}},
		{Python: &PythonAnalysis{Imports: []string{"os", "json"}}},
		{Summary: "not python"},
	}

	got := AggregateImports(results)
	want := []string{"json", "os", "sys"}
	if len(got) != len(want) {
		t.Fatalf("AggregateImports() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AggregateImports()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTrim(t *testing.T) {
	if got := Trim("short", 100); got != "short" {
		t.Errorf("Trim should not touch short text, got %q", got)
	}
	got := Trim(strings.Repeat("a", 50), 10)
	if !strings.HasPrefix(got, strings.Repeat("a", 10)) || !strings.HasSuffix(got, "... (truncated)") {
		t.Errorf("unexpected trim result: %q", got)
	}
	if len(got) >= 50 {
		t.Errorf("trimmed text should be shorter than input")
	}
}
