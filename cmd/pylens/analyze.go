package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pylens/internal/analyzer"
	"pylens/internal/config"
	"pylens/internal/history"
	"pylens/internal/logging"
)

var (
	analyzeFormat string
	analyzeSave   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.py>",
	Short: "Analyze a single Python source file",
	Long: `Analyze one Python file: declarations, imports, syntactic call and
attribute relationships, metrics and insights.

Examples:
  pylens analyze app/models.py
  pylens analyze app/models.py --format yaml
  pylens analyze app/models.py --save`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "human", "Output format: json, yaml, or human")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the report to the analysis history")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := loggerFromConfig(cfg)

	engine := analyzer.New()
	result, err := engine.AnalyzeFile(cmd.Context(), args[0])
	if err != nil {
		if aerr, ok := err.(*analyzer.Error); ok {
			return fmt.Errorf("%s: %s", aerr.Kind, aerr.Message)
		}
		return err
	}

	if analyzeSave {
		if err := saveReport(cfg, logger, history.KindFile, args[0], result); err != nil {
			logger.Warn("Failed to save report", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	output, err := FormatResponse(result, OutputFormat(analyzeFormat))
	if err != nil {
		return err
	}

	fmt.Println(output)
	return nil
}

// saveReport persists a finished report in the history store when
// history is enabled in the configuration.
func saveReport(cfg *config.Config, logger *logging.Logger, kind, path string, result interface{}) error {
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled in configuration")
	}

	store, err := history.Open(cfg.History.DBPath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}

	id, err := store.Save(kind, path, payload)
	if err != nil {
		return err
	}

	logger.Info("Report saved", map[string]interface{}{
		"id":   id,
		"kind": kind,
	})
	return nil
}
