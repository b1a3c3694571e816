package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/repromptsquest/repmt/pkg/export"
	"github.com/repromptsquest/repmt/pkg/models"
	"github.com/repromptsquest/repmt/pkg/service"
)

var (
	cfgFile string
	Verbose bool
)

// ConfigDir returns the repmt config directory.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "repmt")
}

// InitConfig loads .env, the YAML config file and REPMT_* environment
// variables, in that order of increasing precedence.
func InitConfig() {
	// A local .env can carry settings during development.
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configDir := filepath.Join(home, ".config", "repmt")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("REPMT")

	// Set defaults
	viper.SetDefault("data_dir", filepath.Join(home, ".local", "share", "repmt"))
	viper.SetDefault("format", string(export.FormatMarkdown))
	viper.SetDefault("prompt_type", string(models.PromptTypeGPTContext))
	viper.SetDefault("max_prompt_length", 10000)
	viper.SetDefault("max_file_size", 100_000)
	viper.SetDefault("templates_file", filepath.Join(ConfigDir(), "templates.yaml"))

	// A missing config file is fine; defaults and env cover everything.
	_ = viper.ReadInConfig()
}

// NewLogger builds the process logger honoring --verbose.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// InitService constructs the service from the resolved configuration.
func InitService(log *logrus.Logger) (*service.Service, error) {
	cfg := &service.Config{
		DataDir:         viper.GetString("data_dir"),
		Format:          export.Format(viper.GetString("format")),
		PromptType:      models.PromptType(viper.GetString("prompt_type")),
		MaxPromptLength: viper.GetInt("max_prompt_length"),
		MaxFileSize:     viper.GetInt64("max_file_size"),
		Include:         viper.GetStringSlice("include"),
		Exclude:         viper.GetStringSlice("exclude"),
		TemplatesFile:   viper.GetString("templates_file"),
	}
	return service.New(cfg, log)
}

// AddGlobalFlags registers persistent flags shared by every subcommand.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/repmt/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Enable debug logging")
}
