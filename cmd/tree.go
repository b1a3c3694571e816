package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repromptsquest/repmt/pkg/prompt"
	"github.com/repromptsquest/repmt/pkg/service"
)

// NewTreeCmd creates the `repmt tree` command.
func NewTreeCmd(svc **service.Service) *cobra.Command {
	var (
		include []string
		exclude []string
	)

	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Print the filtered directory tree of a repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			paths, _, err := s.SelectFiles(root, include, exclude)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt.RenderTree(paths))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&include, "include", "i", nil, "Include glob pattern (repeatable)")
	cmd.Flags().StringArrayVarP(&exclude, "exclude", "x", nil, "Exclude glob pattern (repeatable)")

	return cmd
}
