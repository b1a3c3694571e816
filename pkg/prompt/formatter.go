package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/repromptsquest/repmt/pkg/analyzer"
	"github.com/repromptsquest/repmt/pkg/models"
)

// Formatter assembles a Selection's files into a GeneratedPrompt.
type Formatter struct {
	Registry *Registry
	Analyzer *analyzer.Analyzer

	// MaxChars caps each content block; 0 means analyzer.DefaultMaxChars.
	MaxChars int

	log *logrus.Logger
}

// NewFormatter creates a formatter using the given template registry and
// analyzer.
func NewFormatter(reg *Registry, an *analyzer.Analyzer, log *logrus.Logger) *Formatter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Formatter{
		Registry: reg,
		Analyzer: an,
		MaxChars: analyzer.DefaultMaxChars,
		log:      log,
	}
}

// Format builds the prompt for a selection. nodes indexes the scanned
// tree by relative path; every selected path must resolve through it,
// which enforces the "selected paths live under the scanned root"
// invariant. Unreadable files are embedded as error notes and surfaced in
// the prompt's reports; the whole operation only fails on an unknown
// prompt type or an out-of-tree path.
func (f *Formatter) Format(sel *models.Selection, nodes map[string]*models.FileNode) (*models.GeneratedPrompt, error) {
	tmpl, err := f.Registry.Get(sel.PromptType)
	if err != nil {
		return nil, err
	}

	ordered := make([]*models.FileNode, 0, len(sel.Paths))
	for _, rel := range sel.Paths {
		node, ok := nodes[rel]
		if !ok || node.IsDir() {
			return nil, fmt.Errorf("selected path %q is not a file under the scanned root", rel)
		}
		ordered = append(ordered, node)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", tmpl.Title)
	if tmpl.Preamble != "" {
		b.WriteString(tmpl.Preamble)
		b.WriteString("\n\n")
	}

	if tmpl.IncludeTree && len(sel.Paths) > 0 {
		b.WriteString("## Directory Structure\n\n```\n")
		b.WriteString(RenderTree(sel.Paths))
		b.WriteString("\n```\n\n")
	}

	var results []*analyzer.Result
	if tmpl.IncludeImports || tmpl.SummaryOnly {
		for _, node := range ordered {
			results = append(results, f.Analyzer.Analyze(node))
		}
	}

	if tmpl.IncludeImports {
		if imports := analyzer.AggregateImports(results); len(imports) > 0 {
			b.WriteString("## Imported Modules\n\n")
			for _, imp := range imports {
				fmt.Fprintf(&b, "- %s\n", imp)
			}
			b.WriteString("\n")
		}
	}

	reports := make([]models.FileReport, 0, len(ordered))
	for i, node := range ordered {
		fmt.Fprintf(&b, tmpl.FileHeader, node.RelPath)
		b.WriteString("\n\n")

		var block string
		report := models.FileReport{RelPath: node.RelPath}

		if tmpl.SummaryOnly {
			block = f.renderSummary(results[i])
			if note := results[i].Note; note != "" {
				report.Skipped = true
				report.Error = note
			}
		} else {
			content, note := f.Analyzer.ReadContent(node)
			if note != "" {
				block = note
				report.Skipped = true
				report.Error = note
			} else {
				block = Trim(content, f.maxChars())
			}
		}

		report.Bytes = len(block)
		reports = append(reports, report)

		b.WriteString("```\n")
		b.WriteString(strings.TrimRight(block, "\n"))
		b.WriteString("\n```\n\n")
	}

	text := strings.TrimRight(b.String(), "\n") + "\n"
	return &models.GeneratedPrompt{
		Text:       text,
		PromptType: sel.PromptType,
		Root:       sel.Root,
		FileCount:  len(ordered),
		ByteSize:   len(text),
		CreatedAt:  time.Now(),
		Reports:    reports,
	}, nil
}

// renderSummary formats an analysis result as a compact text block.
func (f *Formatter) renderSummary(res *analyzer.Result) string {
	if res.Note != "" {
		return res.Note
	}
	if res.Python != nil {
		var b strings.Builder
		if res.Python.Err != "" {
			return res.Python.Err
		}
		writeSymbolList(&b, "Functions", res.Python.Functions)
		writeSymbolList(&b, "Classes", res.Python.Classes)
		writeSymbolList(&b, "Imports", res.Python.Imports)
		if b.Len() == 0 {
			return "(no top-level symbols)"
		}
		return strings.TrimRight(b.String(), "\n")
	}
	return res.Summary
}

func writeSymbolList(b *strings.Builder, label string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(names, ", "))
}

// Trim caps text at max characters, appending a truncation marker.
func Trim(text string, max int) string {
	return analyzer.Trim(text, max)
}

func (f *Formatter) maxChars() int {
	if f.MaxChars > 0 {
		return f.MaxChars
	}
	return analyzer.DefaultMaxChars
}
