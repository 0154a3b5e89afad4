package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/IT-FEST-2025/diagnify/internal/advice"
	"github.com/IT-FEST-2025/diagnify/internal/health"
)

type adviceFlags struct {
	catalog string
	list    bool
}

func newAdviceCmd(e *env) *cobra.Command {
	f := &adviceFlags{}

	cmd := &cobra.Command{
		Use:   "advice [category]",
		Short: "Print tips from an advice catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := ""
			if len(args) == 1 {
				category = args[0]
			}
			return runAdvice(category, f, e, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.catalog, "catalog", "", "Catalog name (default: configured catalog)")
	flags.BoolVar(&f.list, "list", false, "List available catalogs")

	return cmd
}

func runAdvice(category string, f *adviceFlags, e *env, stdout io.Writer) error {
	if f.list {
		names, err := advice.List()
		if err != nil {
			return fmt.Errorf("failed to list catalogs: %w", err)
		}
		for _, n := range names {
			fmt.Fprintln(stdout, n)
		}
		return nil
	}

	name := f.catalog
	if name == "" {
		name = e.cfg.Advice.Catalog
	}
	c, err := advice.LoadBuiltin(name)
	if err != nil {
		return exitError(3, "failed to load catalog: %v", err)
	}

	if category == "" {
		fmt.Fprint(stdout, advice.Format(c))
		return nil
	}

	cat := health.Category(category)
	if !cat.Valid() {
		return exitError(3, "unknown category: %s", category)
	}
	entry, ok := c.Entry(cat)
	if !ok {
		return exitError(3, "catalog %s has no advice for %s", c.Name, cat)
	}
	fmt.Fprintf(stdout, "%s [%s]\n", entry.Title, cat)
	fmt.Fprintf(stdout, "%s\n", health.Advisory(cat))
	for _, tip := range entry.Tips {
		fmt.Fprintf(stdout, "  - %s\n", tip)
	}
	return nil
}
