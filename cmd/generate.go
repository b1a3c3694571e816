package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repromptsquest/repmt/pkg/export"
	"github.com/repromptsquest/repmt/pkg/models"
	"github.com/repromptsquest/repmt/pkg/service"
)

// NewGenerateCmd creates the `repmt generate` command, the
// non-interactive counterpart of the TUI: filter, format, export, done.
func NewGenerateCmd(svc **service.Service) *cobra.Command {
	var (
		promptType string
		include    []string
		exclude    []string
		format     string
		outputPath string
		toClip     bool
	)

	cmd := &cobra.Command{
		Use:   "generate [path]",
		Short: "Generate a prompt without the interactive UI",
		Long: `Scan a repository, select files by glob patterns and write the
assembled prompt to a file, the clipboard or stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			pt := s.Config.PromptType
			if promptType != "" {
				pt = models.PromptType(promptType)
			}
			f := s.Config.Format
			if format != "" {
				parsed, err := export.ParseFormat(format)
				if err != nil {
					return err
				}
				f = parsed
			}

			inc := include
			if len(inc) == 0 {
				inc = s.Config.Include
			}
			exc := exclude
			if len(exc) == 0 {
				exc = s.Config.Exclude
			}

			paths, nodes, err := s.SelectFiles(root, inc, exc)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no files matched under %s", root)
			}

			sel := &models.Selection{Root: root, Paths: paths, PromptType: pt}
			p, err := s.Generate(sel, nodes)
			if err != nil {
				return err
			}

			opts := export.Options{
				Format:     f,
				OutputPath: outputPath,
				Clipboard:  toClip,
				Writer:     cmd.OutOrStdout(),
			}
			if err := s.Export(p, opts); err != nil {
				return err
			}

			if opts.Destination() != "stdout" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d files (%d bytes) to %s\n",
					p.FileCount, p.ByteSize, opts.Destination())
			}
			for _, r := range p.FailedFiles() {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", r.RelPath, r.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&promptType, "type", "t", "", "Prompt type (documentation, gpt-context, architecture-summary, onboarding)")
	cmd.Flags().StringArrayVarP(&include, "include", "i", nil, "Include glob pattern (repeatable)")
	cmd.Flags().StringArrayVarP(&exclude, "exclude", "x", nil, "Exclude glob pattern (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (markdown, html, json, text)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the prompt to a file instead of stdout")
	cmd.Flags().BoolVarP(&toClip, "clipboard", "c", false, "Copy the prompt to the clipboard")

	return cmd
}
