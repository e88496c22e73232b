package main

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"pylens/internal/analyzer"
	"pylens/internal/history"
	"pylens/internal/scanconfig"
)

var (
	scanFormat string
	scanSave   bool
	scanIgnore []string
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Analyze every Python file under a directory",
	Long: `Walk a directory tree, analyze every .py file and aggregate module
names, functions and calls. Files with syntax errors are skipped.

Scan tuning can be declared in <dir>/.pylens/scan.toml:

  roots = ["src", "tools"]
  ignore = ["generated"]

Examples:
  pylens scan .
  pylens scan ./src --ignore fixtures --format json
  pylens scan . --save`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanFormat, "format", "human", "Output format: json, yaml, or human")
	scanCmd.Flags().BoolVar(&scanSave, "save", false, "Save the report to the analysis history")
	scanCmd.Flags().StringSliceVar(&scanIgnore, "ignore", nil, "Extra directory names to skip")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := loggerFromConfig(cfg)
	root := args[0]

	manifest, err := scanconfig.Load(root)
	if err != nil {
		return fmt.Errorf("failed to read scan manifest: %w", err)
	}

	ignore := cfg.Scan.IgnoreDirs
	if ignore == nil {
		ignore = analyzer.DefaultIgnoreDirs
	}
	ignore = manifest.MergeIgnore(ignore)
	ignore = append(ignore, scanIgnore...)

	engine := analyzer.New()
	opts := analyzer.ScanOptions{
		IgnoreDirs:  ignore,
		MaxFileSize: cfg.Scan.MaxFileSize,
	}

	var result *analyzer.RepoResult
	if len(manifest.Roots) == 0 {
		result, err = engine.AnalyzeRepository(cmd.Context(), root, opts)
		if err != nil {
			return scanError(err)
		}
	} else {
		// Scan each declared root separately and re-anchor module
		// paths at the repository root.
		result = &analyzer.RepoResult{
			Modules:   make([]string, 0),
			Functions: make([]analyzer.RepoFunction, 0),
			Calls:     make([]analyzer.RepoCall, 0),
		}
		for _, sub := range manifest.Roots {
			part, err := engine.AnalyzeRepository(cmd.Context(), filepath.Join(root, sub), opts)
			if err != nil {
				return scanError(err)
			}
			for _, mod := range part.Modules {
				result.Modules = append(result.Modules, path.Join(sub, mod))
			}
			for _, fn := range part.Functions {
				fn.Module = path.Join(sub, fn.Module)
				result.Functions = append(result.Functions, fn)
			}
			result.Calls = append(result.Calls, part.Calls...)
		}
	}

	logger.Info("Scan completed", map[string]interface{}{
		"root":      root,
		"modules":   len(result.Modules),
		"functions": len(result.Functions),
		"calls":     len(result.Calls),
	})

	if scanSave {
		if err := saveReport(cfg, logger, history.KindRepo, root, result); err != nil {
			logger.Warn("Failed to save report", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	output, err := FormatResponse(result, OutputFormat(scanFormat))
	if err != nil {
		return err
	}

	fmt.Println(output)
	return nil
}

func scanError(err error) error {
	if aerr, ok := err.(*analyzer.Error); ok {
		return fmt.Errorf("%s: %s", aerr.Kind, aerr.Message)
	}
	return err
}
