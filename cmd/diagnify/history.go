package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/IT-FEST-2025/diagnify/internal/health"
	"github.com/IT-FEST-2025/diagnify/internal/history"
	"github.com/IT-FEST-2025/diagnify/internal/tracker"
)

type historyFlags struct {
	owner       string
	historyPath string
	format      string
}

func newHistoryCmd(e *env) *cobra.Command {
	f := &historyFlags{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the recorded daily scores for the last week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), f, e, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.owner, "owner", defaultOwner, "History owner")
	flags.StringVar(&f.historyPath, "history", "", "JSON history file (default: configured history store)")
	flags.StringVar(&f.format, "format", "text", "Output format: text or json")

	return cmd
}

func runHistory(ctx context.Context, f *historyFlags, e *env, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if f.format != "text" && f.format != "json" {
		return exitError(3, "unknown format: %s", f.format)
	}

	opts := e.cfg.HistoryOptions()
	if f.historyPath != "" {
		opts.Driver = "file"
		opts.Path = f.historyPath
	}
	store, err := history.Open(opts)
	if err != nil {
		return exitError(3, "failed to open history: %v", err)
	}
	defer store.Close()

	svc := &tracker.Service{Store: store, Logger: e.logger}
	entries, err := svc.History(ctx, f.owner)
	if err != nil {
		return exitError(3, "failed to read history: %v", err)
	}

	if f.format == "json" {
		if entries == nil {
			entries = []history.Entry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintf(stdout, "No scores recorded for %s.\n", f.owner)
		return nil
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSCORE\tBAND\tTREND")
	for _, en := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", en.Date, en.Score, health.BandFor(en.Score).Label, strings.Repeat("#", en.Score/5))
	}
	return tw.Flush()
}
