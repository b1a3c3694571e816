package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/repromptsquest/repmt/cmd/config"
	"github.com/repromptsquest/repmt/internal/selfremove"
)

// NewUninstallCmd creates the `repmt uninstall` command. Temporary mode
// runs the same removal automatically after a successful export.
func NewUninstallCmd(log **logrus.Logger) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the repmt binary and its config and data directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := selfremove.Resolve(config.ConfigDir(), viper.GetString("data_dir"))
			if err != nil {
				return err
			}

			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "This removes:\n  %s\n  %s\n  %s\nProceed? [y/N] ",
					paths.Executable, paths.ConfigDir, paths.DataDir)
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := selfremove.Run(paths, *log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "repmt removed.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
