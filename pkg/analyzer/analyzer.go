package analyzer

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/repromptsquest/repmt/pkg/models"
)

const (
	// MaxFileSize is the cap above which file contents are never read.
	MaxFileSize = 100_000

	// SummaryLines is how many leading lines a non-Python summary keeps.
	SummaryLines = 20

	// DefaultMaxChars caps the length of any single summary or content
	// block. Longer text is trimmed with a truncation marker.
	DefaultMaxChars = 10000

	cacheSize = 1024
)

// TooLargeNote is embedded in place of content for oversized files.
const TooLargeNote = "File too large to process."

// Result is the analysis outcome for a single file. Exactly one of
// Python, Summary or Note is meaningful, depending on the file kind.
type Result struct {
	RelPath string          `json:"rel_path"`
	Python  *PythonAnalysis `json:"python,omitempty"`
	Summary string          `json:"summary,omitempty"`
	Note    string          `json:"note,omitempty"` // size cap or read failure
}

// PythonAnalysis holds the symbols extracted from a Python source file.
type PythonAnalysis struct {
	Functions []string `json:"functions"`
	Classes   []string `json:"classes"`
	Imports   []string `json:"imports"`
	Err       string   `json:"error,omitempty"`
}

// Analyzer inspects repository files: Python sources get a tree-sitter
// symbol extraction, everything else a head-of-file summary. Results are
// cached by path, size and mtime so repeated TUI previews are free.
type Analyzer struct {
	MaxFileSize int64
	MaxChars    int

	cache *lru.Cache[string, *Result]
	log   *logrus.Logger
}

// New creates an analyzer with the default limits.
func New(log *logrus.Logger) *Analyzer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	cache, _ := lru.New[string, *Result](cacheSize)
	return &Analyzer{
		MaxFileSize: MaxFileSize,
		MaxChars:    DefaultMaxChars,
		cache:       cache,
		log:         log,
	}
}

// Analyze inspects a single file node.
func (a *Analyzer) Analyze(node *models.FileNode) *Result {
	key := fmt.Sprintf("%s|%d|%d", node.Path, node.Size, node.ModifiedAt.UnixNano())
	if cached, ok := a.cache.Get(key); ok {
		return cached
	}

	res := a.analyze(node)
	a.cache.Add(key, res)
	return res
}

func (a *Analyzer) analyze(node *models.FileNode) *Result {
	res := &Result{RelPath: node.RelPath}

	if node.Size > a.MaxFileSize {
		res.Note = TooLargeNote
		return res
	}

	if node.IsPython() {
		res.Python = AnalyzePythonFile(node.Path)
		return res
	}

	summary, err := a.summarize(node.Path)
	if err != nil {
		res.Note = fmt.Sprintf("Error reading file: %v", err)
		return res
	}
	res.Summary = summary
	return res
}

// summarize reads up to SummaryLines leading lines of a file.
func (a *Analyzer) summarize(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for len(lines) < SummaryLines && sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), " \t\r"))
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return Trim(strings.Join(lines, "\n"), a.MaxChars), nil
}

// ReadContent returns the full contents of a file for prompt assembly,
// honoring the size cap. The second return value is a note to embed in
// place of content when the file cannot be included verbatim.
func (a *Analyzer) ReadContent(node *models.FileNode) (string, string) {
	if node.Size > a.MaxFileSize {
		return "", TooLargeNote
	}
	data, err := os.ReadFile(node.Path)
	if err != nil {
		a.log.WithError(err).Warnf("cannot read %s", node.RelPath)
		return "", fmt.Sprintf("Error reading file: %v", err)
	}
	return string(data), ""
}

// AggregateImports returns the sorted, deduplicated union of Python
// imports across all results.
func AggregateImports(results []*Result) []string {
	seen := make(map[string]bool)
	for _, r := range results {
		if r.Python == nil {
			continue
		}
		for _, imp := range r.Python.Imports {
			seen[imp] = true
		}
	}
	out := make([]string, 0, len(seen))
	for imp := range seen {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}

// Trim caps text at max characters, appending a truncation marker when
// anything was cut.
func Trim(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	return text[:max] + "\n\n... (truncated)"
}
