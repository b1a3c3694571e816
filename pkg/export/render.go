package export

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/repromptsquest/repmt/pkg/models"
)

// Format is an output rendering format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatText     Format = "text"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatMarkdown, FormatHTML, FormatJSON, FormatText}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (supported: markdown, html, json, text)", name)
}

// Render serializes a generated prompt in the requested format.
func Render(p *models.GeneratedPrompt, format Format) (string, error) {
	switch format {
	case FormatMarkdown, FormatText:
		return p.Text, nil
	case FormatJSON:
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal prompt: %w", err)
		}
		return string(data) + "\n", nil
	case FormatHTML:
		return renderHTML(p), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func renderHTML(p *models.GeneratedPrompt) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s prompt</title>\n", html.EscapeString(string(p.PromptType)))
	b.WriteString("</head>\n<body>\n<pre>\n")
	b.WriteString(html.EscapeString(p.Text))
	b.WriteString("</pre>\n</body>\n</html>\n")
	return b.String()
}

// Preview renders the prompt's markdown for terminal display via glamour.
// Falls back to the raw text when rendering fails.
func Preview(p *models.GeneratedPrompt, width int) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return p.Text
	}
	out, err := renderer.Render(p.Text)
	if err != nil {
		return p.Text
	}
	return out
}
