package browser

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/repromptsquest/repmt/pkg/analyzer"
	"github.com/repromptsquest/repmt/pkg/export"
	"github.com/repromptsquest/repmt/pkg/models"
	"github.com/repromptsquest/repmt/pkg/service"
)

type scanLoadedMsg struct {
	tree  *models.FileNode
	nodes map[string]*models.FileNode
	err   error
}

type exportDoneMsg struct {
	prompt      *models.GeneratedPrompt
	destination string
	err         error
}

type previewLoadedMsg struct {
	relPath string
	text    string
}

func scanCmd(svc *service.Service, root string) tea.Cmd {
	return func() tea.Msg {
		tree, err := svc.Scan(root)
		if err != nil {
			return scanLoadedMsg{err: err}
		}
		return scanLoadedMsg{tree: tree, nodes: service.IndexTree(tree)}
	}
}

func exportCmd(svc *service.Service, sel *models.Selection, nodes map[string]*models.FileNode, opts export.Options) tea.Cmd {
	return func() tea.Msg {
		p, err := svc.Generate(sel, nodes)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		if err := svc.Export(p, opts); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{prompt: p, destination: opts.Destination()}
	}
}

func previewCmd(svc *service.Service, node *models.FileNode) tea.Cmd {
	return func() tea.Msg {
		res := svc.Analyzer.Analyze(node)
		return previewLoadedMsg{relPath: node.RelPath, text: renderPreview(res)}
	}
}

// renderPreview formats an analysis result for the preview pane.
func renderPreview(res *analyzer.Result) string {
	if res.Note != "" {
		return res.Note
	}
	if res.Python != nil {
		if res.Python.Err != "" {
			return res.Python.Err
		}
		var b strings.Builder
		writeSymbols(&b, "Functions", res.Python.Functions)
		writeSymbols(&b, "Classes", res.Python.Classes)
		writeSymbols(&b, "Imports", res.Python.Imports)
		if b.Len() == 0 {
			return "(no top-level symbols)"
		}
		return strings.TrimRight(b.String(), "\n")
	}
	return res.Summary
}

func writeSymbols(b *strings.Builder, label string, names []string) {
	if len(names) == 0 {
		return
	}
	b.WriteString(label + ":\n")
	for _, n := range names {
		b.WriteString("  " + n + "\n")
	}
}
