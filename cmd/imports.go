package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repromptsquest/repmt/pkg/service"
)

// NewImportsCmd creates the `repmt imports` command, which prints the
// deduplicated Python imports found across the repository.
func NewImportsCmd(svc **service.Service) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "imports [path]",
		Short: "List the Python modules imported across a repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			imports, err := s.AggregateImports(root, s.Config.Include, s.Config.Exclude)
			if err != nil {
				return err
			}

			if jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(imports)
			}
			for _, imp := range imports {
				fmt.Fprintln(cmd.OutOrStdout(), imp)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
