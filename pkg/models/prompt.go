package models

import "time"

// FileReport records the per-file outcome of a prompt generation.
type FileReport struct {
	RelPath string `json:"rel_path"`
	Bytes   int    `json:"bytes"`
	Skipped bool   `json:"skipped,omitempty"` // size cap or unreadable
	Error   string `json:"error,omitempty"`
}

// GeneratedPrompt is the final assembled prompt. It is immutable once
// produced; export consumes it as-is.
type GeneratedPrompt struct {
	Text       string       `json:"text"`
	PromptType PromptType   `json:"prompt_type"`
	Root       string       `json:"root"`
	FileCount  int          `json:"file_count"`
	ByteSize   int          `json:"byte_size"`
	CreatedAt  time.Time    `json:"created_at"`
	Reports    []FileReport `json:"reports,omitempty"`
}

// FailedFiles returns the reports for files that could not be included
// verbatim (read errors or size cap).
func (p *GeneratedPrompt) FailedFiles() []FileReport {
	var out []FileReport
	for _, r := range p.Reports {
		if r.Skipped || r.Error != "" {
			out = append(out, r)
		}
	}
	return out
}
