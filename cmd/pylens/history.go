package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pylens/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved analysis reports",
	Long: `List and show analysis reports saved with --save.

Examples:
  pylens history list
  pylens history list --limit 5
  pylens history show 4f8c2a1e-...`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the stored JSON report",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)

	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of entries to list")
}

func openHistory() (*history.Store, error) {
	cfg := loadConfig()
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled in configuration")
	}
	return history.Open(cfg.History.DBPath, loggerFromConfig(cfg))
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(historyLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No saved reports.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %-4s  %s  %s\n", e.ID, e.Kind, e.CreatedAt.Format("2006-01-02 15:04:05"), e.Path)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Println(string(entry.Result))
	return nil
}
