// Package main provides the CLI entry point for sheetchat.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/workbook"
)

var (
	configPath string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetchat",
		Short: "Chat with a spreadsheet selection",
		Long: `sheetchat interprets free-text requests about a range of an xlsx workbook.
Sums, pivot tables, charts and formulas are written back to the workbook;
other questions are answered by the configured completion service.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newChatCmd(), newAnalyzeCmd(), newPivotCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*sheetchat.Config, error) {
	if configPath == "" {
		cfg := sheetchat.DefaultConfig()
		return &cfg, nil
	}
	return sheetchat.LoadConfig(configPath)
}

func newLogger(cfg *sheetchat.Config) *slog.Logger {
	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openWorkbook opens inputPath with the selection set to rangeRef, or left
// to table detection when rangeRef is empty. Writes go to outputPath, or
// back to inputPath.
func openWorkbook(inputPath, rangeRef, outputPath string, logger *slog.Logger) (*workbook.Workbook, error) {
	opts := []workbook.Option{workbook.WithLogger(logger)}
	if outputPath != "" {
		opts = append(opts, workbook.WithOutput(outputPath))
	}

	wb, err := workbook.Open(inputPath, opts...)
	if err != nil {
		return nil, err
	}
	if rangeRef != "" {
		if err := wb.SetSelection(rangeRef); err != nil {
			wb.Close()
			return nil, fmt.Errorf("invalid --range: %w", err)
		}
	}
	return wb, nil
}
