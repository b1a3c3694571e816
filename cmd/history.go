package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repromptsquest/repmt/pkg/service"
)

// NewHistoryCmd creates the `repmt history` command.
func NewHistoryCmd(svc **service.Service) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently generated prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if s.History == nil {
				return fmt.Errorf("history store is not available")
			}

			entries, err := s.History.Recent(limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No prompts recorded yet.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-20s  %-8s  %3d files  %7d bytes  %s\n",
					e.CreatedAt.Format("2006-01-02 15:04"),
					e.PromptType, e.Format, e.FileCount, e.ByteSize, e.Destination)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded history",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if s.History == nil {
				return fmt.Errorf("history store is not available")
			}
			if err := s.History.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	})

	return cmd
}
