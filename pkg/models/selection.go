package models

import "fmt"

// PromptType names a built-in prompt template.
type PromptType string

const (
	PromptTypeDocumentation PromptType = "documentation"
	PromptTypeGPTContext    PromptType = "gpt-context"
	PromptTypeArchitecture  PromptType = "architecture-summary"
	PromptTypeOnboarding    PromptType = "onboarding"
)

// PromptTypes lists the built-in prompt types in picker order.
var PromptTypes = []PromptType{
	PromptTypeDocumentation,
	PromptTypeGPTContext,
	PromptTypeArchitecture,
	PromptTypeOnboarding,
}

// ErrUnknownPromptType is returned when a prompt type has no template.
var ErrUnknownPromptType = fmt.Errorf("unknown prompt type")

// Selection captures the user's intent for one prompt generation: which
// files, in which order, assembled with which template.
type Selection struct {
	Root       string     `json:"root"`  // scan root the paths are relative to
	Paths      []string   `json:"paths"` // relative paths, selection order
	PromptType PromptType `json:"prompt_type"`
}

// Contains reports whether relPath is part of the selection.
func (s *Selection) Contains(relPath string) bool {
	for _, p := range s.Paths {
		if p == relPath {
			return true
		}
	}
	return false
}
