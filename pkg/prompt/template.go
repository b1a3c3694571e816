package prompt

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/repromptsquest/repmt/pkg/models"
)

// Template controls how a selection's files are assembled into a prompt.
type Template struct {
	Name           models.PromptType `yaml:"-"`
	Title          string            `yaml:"title"`
	Preamble       string            `yaml:"preamble"`
	FileHeader     string            `yaml:"file_header"` // format string, receives the relative path
	IncludeTree    bool              `yaml:"include_tree"`
	IncludeImports bool              `yaml:"include_imports"`
	SummaryOnly    bool              `yaml:"summary_only"` // emit analysis summaries instead of full content
}

var titleCaser = cases.Title(language.English)

// displayName turns a prompt type into a heading, e.g.
// "architecture-summary" -> "Architecture Summary".
func displayName(pt models.PromptType) string {
	return titleCaser.String(strings.ReplaceAll(string(pt), "-", " "))
}

// builtinTemplates maps each prompt type to its default template.
func builtinTemplates() map[models.PromptType]*Template {
	return map[models.PromptType]*Template{
		models.PromptTypeDocumentation: {
			Name:       models.PromptTypeDocumentation,
			Title:      "Project Documentation",
			Preamble:   "Write reference documentation for the files below. Document public functions and classes, their parameters and behavior.",
			FileHeader: "## File: %s",
		},
		models.PromptTypeGPTContext: {
			Name:           models.PromptTypeGPTContext,
			Title:          "Repository Context",
			Preamble:       "The following files are the relevant context for this repository. Use them to answer questions about the codebase.",
			FileHeader:     "## File: %s",
			IncludeTree:    true,
			IncludeImports: true,
		},
		models.PromptTypeArchitecture: {
			Name:           models.PromptTypeArchitecture,
			Title:          displayName(models.PromptTypeArchitecture),
			Preamble:       "Summarize the architecture of this project: major components, how they depend on each other, and the flow of data between them.",
			FileHeader:     "## Module: %s",
			IncludeTree:    true,
			IncludeImports: true,
			SummaryOnly:    true,
		},
		models.PromptTypeOnboarding: {
			Name:        models.PromptTypeOnboarding,
			Title:       "Onboarding Guide",
			Preamble:    "Write an onboarding guide for a developer new to this project. Explain what each file does and where to start reading.",
			FileHeader:  "## File: %s",
			IncludeTree: true,
		},
	}
}

// Registry resolves prompt types to templates. User overrides from a YAML
// file are merged over the built-ins.
type Registry struct {
	templates map[models.PromptType]*Template
}

// NewRegistry returns a registry with the built-in templates.
func NewRegistry() *Registry {
	return &Registry{templates: builtinTemplates()}
}

// templateFile mirrors the on-disk override format:
//
//	templates:
//	  documentation:
//	    preamble: ...
//	    file_header: "### %s"
type templateFile struct {
	Templates map[string]*Template `yaml:"templates"`
}

// LoadOverrides merges templates from a YAML file. A missing file is not
// an error; a malformed one is.
func (r *Registry) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read templates: %w", err)
	}

	var tf templateFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("parse templates %s: %w", path, err)
	}

	for name, tmpl := range tf.Templates {
		pt := models.PromptType(name)
		tmpl.Name = pt
		if tmpl.Title == "" {
			tmpl.Title = displayName(pt)
		}
		if tmpl.FileHeader == "" {
			tmpl.FileHeader = "## File: %s"
		}
		if err := validateFileHeader(tmpl.FileHeader); err != nil {
			return fmt.Errorf("template %q: %w", name, err)
		}
		r.templates[pt] = tmpl
	}
	return nil
}

// validateFileHeader ensures a header is a format string with exactly one
// %s verb and nothing else, since it is fed to fmt with the file path.
func validateFileHeader(header string) error {
	rest := strings.ReplaceAll(header, "%%", "")
	if strings.Count(rest, "%s") != 1 || strings.Count(rest, "%") != 1 {
		return fmt.Errorf("file_header %q must contain exactly one %%s", header)
	}
	return nil
}

// Get resolves a prompt type.
func (r *Registry) Get(pt models.PromptType) (*Template, error) {
	tmpl, ok := r.templates[pt]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownPromptType, pt)
	}
	return tmpl, nil
}

// Types returns the registered prompt types, built-ins first in their
// picker order, then custom ones sorted by name.
func (r *Registry) Types() []models.PromptType {
	var out []models.PromptType
	seen := make(map[models.PromptType]bool)
	for _, pt := range models.PromptTypes {
		if _, ok := r.templates[pt]; ok {
			out = append(out, pt)
			seen[pt] = true
		}
	}
	var custom []string
	for pt := range r.templates {
		if !seen[pt] {
			custom = append(custom, string(pt))
		}
	}
	sort.Strings(custom)
	for _, name := range custom {
		out = append(out, models.PromptType(name))
	}
	return out
}
