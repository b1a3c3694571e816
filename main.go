package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/repromptsquest/repmt/cmd"
	"github.com/repromptsquest/repmt/cmd/config"
	"github.com/repromptsquest/repmt/internal/selfremove"
	"github.com/repromptsquest/repmt/pkg/service"
)

var (
	svc    *service.Service
	logger *logrus.Logger
)

func main() {
	var (
		tempPath   string
		outputPath string
	)

	rootCmd := &cobra.Command{
		Use:   "repmt [path]",
		Short: "Turn a repository into a structured prompt",
		Long: `repmt scans a repository, lets you pick files and a prompt type in an
interactive terminal UI, and assembles the selection into a single
structured prompt for LLM or documentation use.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			tempMode := tempPath != ""
			if tempMode {
				root = tempPath
			}

			exported, err := cmd.RunBrowser(svc, logger, root, outputPath, tempMode)
			if err != nil {
				return err
			}

			// Temporary mode: one successful export, then the tool
			// removes itself from the environment.
			if tempMode && exported {
				paths, err := selfremove.Resolve(config.ConfigDir(), viper.GetString("data_dir"))
				if err != nil {
					logger.WithError(err).Warn("temp mode cleanup skipped")
					return nil
				}
				if err := selfremove.Run(paths, logger); err != nil {
					logger.WithError(err).Warn("temp mode cleanup incomplete")
				}
			}
			return nil
		},
	}

	config.AddGlobalFlags(rootCmd)
	rootCmd.Flags().StringVar(&tempPath, "temp", "", "Run once against the given path, then uninstall repmt")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Export destination file (default repmt-prompt.<format>)")

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		config.InitConfig()
		logger = config.NewLogger()

		s, err := config.InitService(logger)
		if err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}
		svc = s
		return nil
	}

	rootCmd.AddCommand(
		cmd.NewGenerateCmd(&svc),
		cmd.NewTreeCmd(&svc),
		cmd.NewImportsCmd(&svc),
		cmd.NewHistoryCmd(&svc),
		cmd.NewVersionCmd(),
		cmd.NewUninstallCmd(&logger),
	)

	err := rootCmd.Execute()
	if svc != nil {
		svc.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
