package analyzer

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// pythonQuery captures function names, class names and imported module
// names. Relative imports (`from . import x`) carry no module name and are
// deliberately not captured.
const pythonQuery = `
(function_definition name: (identifier) @function.name)
(class_definition name: (identifier) @class.name)
(import_statement name: (dotted_name) @import.module)
(import_statement name: (aliased_import name: (dotted_name) @import.module))
(import_from_statement module_name: (dotted_name) @import.module)
`

// AnalyzePythonFile extracts functions, classes and imports from a Python
// source file. Failures are recorded in the result rather than returned,
// so one broken file never aborts a repository scan.
func AnalyzePythonFile(path string) *PythonAnalysis {
	analysis := &PythonAnalysis{
		Functions: []string{},
		Classes:   []string{},
		Imports:   []string{},
	}

	source, err := os.ReadFile(path)
	if err != nil {
		analysis.Err = fmt.Sprintf("Error analyzing file: %v", err)
		return analysis
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		analysis.Err = fmt.Sprintf("Error analyzing file: %v", err)
		return analysis
	}

	query, err := sitter.NewQuery([]byte(pythonQuery), python.GetLanguage())
	if err != nil {
		analysis.Err = fmt.Sprintf("Error analyzing file: %v", err)
		return analysis
	}

	qc := sitter.NewQueryCursor()
	qc.Exec(query, tree.RootNode())

	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			name := query.CaptureNameForId(c.Index)
			content := c.Node.Content(source)
			switch name {
			case "function.name":
				analysis.Functions = append(analysis.Functions, content)
			case "class.name":
				analysis.Classes = append(analysis.Classes, content)
			case "import.module":
				analysis.Imports = append(analysis.Imports, content)
			}
		}
	}

	return analysis
}
