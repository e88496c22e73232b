package main

import (
	"pylens/internal/config"
	"pylens/internal/logging"
	"pylens/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pylens",
	Short: "pylens - Python source analysis",
	Long: `pylens is a syntactic analysis tool for Python source code. It classifies
declarations, extracts call and attribute relationships, derives quantitative
metrics and produces textual insights, for a single file or a whole repository.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("pylens version {{.Version}}\n")
}

// loadConfig reads configuration from the current directory's .pylens/
// folder, falling back to defaults.
func loadConfig() *config.Config {
	cfg, err := config.Load(".")
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// loggerFromConfig creates a logger matching the configured format and level
func loggerFromConfig(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})
}
