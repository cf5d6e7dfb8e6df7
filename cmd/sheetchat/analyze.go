package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/infer"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/output"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		rangeRef   string
		outputPath string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [input.xlsx]",
		Short: "Print the column analysis of a selection as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			wb, err := openWorkbook(args[0], rangeRef, "", newLogger(cfg))
			if err != nil {
				return err
			}
			defer wb.Close()

			snap, err := wb.Selection(cmd.Context())
			if err != nil {
				return fmt.Errorf("read selection: %w", err)
			}
			if snap == nil {
				return fmt.Errorf("no table found in %s; pass --range", args[0])
			}

			report := infer.Analyze(snap)
			report.BookName = wb.Name()

			jsonData, err := output.ToJSON(report, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}

	cmd.Flags().StringVarP(&rangeRef, "range", "r", "", "Selection, e.g. Sheet1!A1:C10 (default: detected table)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	return cmd
}
