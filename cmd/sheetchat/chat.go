package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/completion"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/executor"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/output"
)

func newChatCmd() *cobra.Command {
	var (
		rangeRef    string
		outputPath  string
		messages    []string
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "chat [input.xlsx]",
		Short: "Start a conversation about a workbook selection",
		Long: `chat reads requests from --message flags, or interactively from stdin when
none are given, and applies them to the selection. Without --range the table
region of the active sheet is selected.`,
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

			reg := prometheus.NewRegistry()
			exec := executor.New(wb,
				executor.WithLogger(logger),
				executor.WithMetrics(executor.NewMetrics(reg)),
				executor.WithPivotSheet(cfg.PivotSheet),
				executor.WithSummarySheet(cfg.SummarySheet),
				executor.WithVerifyWrites(cfg.ShouldVerifyWrites()),
			)
			client := completion.New(cfg.Completion.ClientConfig(os.Getenv), completion.WithLogger(logger))
			conv := sheetchat.NewConversation(wb, exec, client,
				sheetchat.WithLogger(logger),
				sheetchat.WithHistoryLimit(cfg.HistoryLimit),
				sheetchat.WithGreeting(cfg.Greeting),
				sheetchat.WithChartTitle(cfg.ChartTitle),
			)
			logger.Debug("conversation started", "session", conv.ID(), "workbook", wb.Name())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			if err := output.WriteMessages(out, conv.History()); err != nil {
				return err
			}

			if len(messages) > 0 {
				err = runMessages(ctx, conv, messages, out)
			} else {
				err = runInteractive(ctx, conv, cmd.InOrStdin(), out)
			}
			if err != nil {
				return err
			}

			if showMetrics {
				return writeMetrics(reg, cmd.ErrOrStderr())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&rangeRef, "range", "r", "", "Selection, e.g. Sheet1!A1:C10 (default: detected table)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Save changes to this file (default: the input file)")
	cmd.Flags().StringArrayVarP(&messages, "message", "m", nil, "Message to send; repeat for several turns")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print action metrics to stderr on exit")

	return cmd
}

func runMessages(ctx context.Context, conv *sheetchat.Conversation, messages []string, out io.Writer) error {
	for _, text := range messages {
		msgs, err := conv.Submit(ctx, text)
		if errors.Is(err, sheetchat.ErrEmptyInput) {
			continue
		}
		if err != nil {
			return err
		}
		if err := output.WriteMessages(out, msgs[1:]); err != nil {
			return err
		}
	}
	return nil
}

func runInteractive(ctx context.Context, conv *sheetchat.Conversation, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "exit" || text == "quit" {
			return nil
		}
		msgs, err := conv.Submit(ctx, text)
		if errors.Is(err, sheetchat.ErrEmptyInput) {
			continue
		}
		if err != nil {
			return err
		}
		if err := output.WriteMessages(out, msgs[1:]); err != nil {
			return err
		}
	}
}

// writeMetrics prints every gathered family in the Prometheus text format.
func writeMetrics(reg *prometheus.Registry, w io.Writer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
