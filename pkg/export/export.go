package export

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"

	"github.com/repromptsquest/repmt/pkg/models"
)

// Options selects the rendering format and destination for an export.
// When OutputPath is empty and Clipboard is false, the rendered prompt is
// written to Writer (stdout by default).
type Options struct {
	Format     Format
	OutputPath string
	Clipboard  bool
	Writer     io.Writer
}

// Destination describes where an export ended up, for status messages and
// history records.
func (o Options) Destination() string {
	switch {
	case o.Clipboard:
		return "clipboard"
	case o.OutputPath != "":
		return o.OutputPath
	default:
		return "stdout"
	}
}

// Exporter writes rendered prompts to files, the clipboard or a stream.
type Exporter struct {
	log *logrus.Logger
}

// New creates an exporter.
func New(log *logrus.Logger) *Exporter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Exporter{log: log}
}

// Export renders the prompt and delivers it to the configured
// destination.
func (e *Exporter) Export(p *models.GeneratedPrompt, opts Options) error {
	if opts.Format == "" {
		opts.Format = FormatMarkdown
	}
	rendered, err := Render(p, opts.Format)
	if err != nil {
		return err
	}

	switch {
	case opts.Clipboard:
		if err := clipboard.WriteAll(rendered); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	case opts.OutputPath != "":
		if err := os.WriteFile(opts.OutputPath, []byte(rendered), 0644); err != nil {
			return fmt.Errorf("write %s: %w", opts.OutputPath, err)
		}
	default:
		w := opts.Writer
		if w == nil {
			w = os.Stdout
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return fmt.Errorf("write prompt: %w", err)
		}
	}

	e.log.WithFields(logrus.Fields{
		"format":      opts.Format,
		"destination": opts.Destination(),
		"files":       p.FileCount,
		"bytes":       p.ByteSize,
	}).Debug("prompt exported")
	return nil
}
