package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/executor"
)

func newPivotCmd() *cobra.Command {
	var (
		rangeRef   string
		outputPath string
		fields     executor.PivotFields
	)

	cmd := &cobra.Command{
		Use:   "pivot [input.xlsx]",
		Short: "Build a pivot table from a selection",
		Long: `pivot builds a pivot table from the selection. Fields are matched against
the header row; without any, text columns become rows and numeric columns
are summed. If the pivot cannot be built the data is copied as a table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			wb, err := openWorkbook(args[0], rangeRef, outputPath, logger)
			if err != nil {
				return err
			}
			defer wb.Close()

			snap, err := wb.Selection(cmd.Context())
			if err != nil {
				return fmt.Errorf("read selection: %w", err)
			}

			exec := executor.New(wb,
				executor.WithLogger(logger),
				executor.WithPivotSheet(cfg.PivotSheet),
			)
			msg, err := exec.CreatePivotTable(cmd.Context(), snap, fields)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&rangeRef, "range", "r", "", "Selection, e.g. Sheet1!A1:C10 (default: detected table)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Save changes to this file (default: the input file)")
	cmd.Flags().StringSliceVar(&fields.Rows, "rows", nil, "Row fields")
	cmd.Flags().StringSliceVar(&fields.Columns, "cols", nil, "Column fields")
	cmd.Flags().StringSliceVar(&fields.Values, "values", nil, "Value fields, summed")
	cmd.Flags().StringVar(&fields.DestSheet, "dest", "", "Destination sheet (default: PivotTable)")

	return cmd
}
