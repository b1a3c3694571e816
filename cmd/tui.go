package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/repromptsquest/repmt/internal/tui/browser"
	"github.com/repromptsquest/repmt/pkg/export"
	"github.com/repromptsquest/repmt/pkg/scanner"
	"github.com/repromptsquest/repmt/pkg/service"
)

// RunBrowser launches the interactive file selection TUI on root.
// It returns whether a prompt was exported during the session, so the
// caller can trigger temporary-mode cleanup.
func RunBrowser(svc *service.Service, log *logrus.Logger, root, outputPath string, tempMode bool) (bool, error) {
	// Check for TTY
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false, fmt.Errorf("interactive mode requires a terminal; use 'repmt generate' for scripted runs")
	}

	// Scanning happens inside the TUI, but fail on a bad root before
	// taking over the screen.
	if _, err := scanner.New(root); err != nil {
		return false, err
	}

	opts := export.Options{
		Format:     svc.Config.Format,
		OutputPath: outputPath,
	}
	if opts.OutputPath == "" {
		opts.OutputPath = defaultOutputPath(opts.Format)
	}

	model := browser.New(svc, root, opts)
	model.TempMode = tempMode

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("error running TUI: %w", err)
	}

	fm, ok := final.(browser.Model)
	if !ok {
		return false, nil
	}
	if fm.Err() != nil {
		return false, fm.Err()
	}
	if fm.Exported {
		log.Debugf("session exported a prompt to %s", opts.Destination())
	}
	return fm.Exported, nil
}

func defaultOutputPath(format export.Format) string {
	switch format {
	case export.FormatHTML:
		return "repmt-prompt.html"
	case export.FormatJSON:
		return "repmt-prompt.json"
	case export.FormatText:
		return "repmt-prompt.txt"
	default:
		return "repmt-prompt.md"
	}
}
