package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/IT-FEST-2025/diagnify/internal/advice"
	"github.com/IT-FEST-2025/diagnify/internal/analytics"
	"github.com/IT-FEST-2025/diagnify/internal/history"
	"github.com/IT-FEST-2025/diagnify/internal/render"
	"github.com/IT-FEST-2025/diagnify/internal/schema"
	"github.com/IT-FEST-2025/diagnify/internal/survey"
	"github.com/IT-FEST-2025/diagnify/internal/tracker"
)

const defaultOwner = "local"

type scoreFlags struct {
	format           string
	out              string
	owner            string
	historyPath      string
	analyticsURL     string
	offline          bool
	requireAnalytics bool
	failUnder        int
	catalog          string
	date             string

	// client replaces the resolved analytics client when set.
	client analytics.Client
	// now replaces the clock when set.
	now func() time.Time
}

func newScoreCmd(e *env) *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score <survey-file>",
		Short: "Score a questionnaire and record the day's overall score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), args[0], f, e, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "json", "Output format: json or md")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.owner, "owner", defaultOwner, "History owner")
	flags.StringVar(&f.historyPath, "history", "", "JSON history file (default: configured history store)")
	flags.StringVar(&f.analyticsURL, "analytics-url", "", "Analytics service base URL (default: $"+analytics.EnvURL+")")
	flags.BoolVar(&f.offline, "offline", false, "Skip the analytics service and use fallback recommendations")
	flags.BoolVar(&f.requireAnalytics, "require-analytics", false, "Fail if the analytics service cannot supply recommendations")
	flags.IntVar(&f.failUnder, "fail-under", 0, "Exit non-zero if the overall score is below this value")
	flags.StringVar(&f.catalog, "catalog", "", "Advice catalog name (default: configured catalog)")
	flags.StringVar(&f.date, "date", "", "Record the score under this date (YYYY-MM-DD, default: today)")

	return cmd
}

func runScore(ctx context.Context, surveyPath string, f *scoreFlags, e *env, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := e.logger.Sugar()

	if f.format != "json" && f.format != "md" {
		return exitError(3, "unknown format: %s", f.format)
	}
	if f.failUnder < 0 || f.failUnder > 100 {
		return exitError(3, "--fail-under must be between 0 and 100, got %d", f.failUnder)
	}
	if f.offline && f.requireAnalytics {
		return exitError(3, "--offline and --require-analytics are mutually exclusive")
	}

	// 1. Load survey
	log.Debugf("Loading survey: %s", surveyPath)
	sf, err := survey.Load(surveyPath)
	if err != nil {
		return exitError(3, "failed to load survey: %v", err)
	}

	// 2. Resolve submission date
	var at time.Time
	if f.date != "" {
		at, err = time.ParseInLocation(history.DateLayout, f.date, time.Local)
		if err != nil {
			return exitError(3, "invalid --date %q: want YYYY-MM-DD", f.date)
		}
	}

	// 3. Load advice catalog
	catalogName := f.catalog
	if catalogName == "" {
		catalogName = e.cfg.Advice.Catalog
	}
	log.Debugf("Loading catalog: %s", catalogName)
	catalog, err := advice.LoadBuiltin(catalogName)
	if err != nil {
		return exitError(3, "failed to load catalog: %v", err)
	}

	// 4. Open history store
	opts := e.cfg.HistoryOptions()
	if f.historyPath != "" {
		opts.Driver = "file"
		opts.Path = f.historyPath
	}
	log.Debugf("Opening history store: %s", opts.Driver)
	store, err := history.Open(opts)
	if err != nil {
		return exitError(3, "failed to open history: %v", err)
	}
	defer store.Close()

	// 5. Resolve analytics client
	client, err := resolveAnalytics(f, e)
	if err != nil {
		return err
	}
	if client != nil {
		log.Debugf("Using analytics client: %s", client.Name())
	} else {
		log.Debug("No analytics client, using fallback recommendations")
	}

	// 6. Score
	svc := &tracker.Service{
		Store:            store,
		Analytics:        client,
		Catalog:          catalog,
		Logger:           e.logger,
		Version:          version,
		RequireAnalytics: f.requireAnalytics,
		Now:              f.now,
	}
	rep, err := svc.Submit(ctx, tracker.Submission{
		Owner:      f.owner,
		Answers:    sf.Answers,
		SurveyFile: filepath.Base(sf.FilePath),
		SurveyHash: sf.Hash,
		At:         at,
	})
	if err != nil {
		if errors.Is(err, tracker.ErrAnalyticsUnavailable) {
			return exitError(4, "%v", err)
		}
		return fmt.Errorf("failed to score survey: %w", err)
	}
	log.Debugf("Scored %s: overall %d (%s), %d substitutions",
		rep.Date, rep.Overall, rep.Band.Label, len(rep.Substitutions))

	// 7. Validate
	if errs := schema.Validate(rep, opts.Capacity); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Schema validation errors:")
		for _, ve := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", ve)
		}
		return exitError(5, "report failed schema validation")
	}
	log.Debug("Validation passed")

	// 8. Output
	var output string
	switch f.format {
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = string(data) + "\n"
	case "md":
		output = render.Markdown(rep)
	}

	if f.out != "" {
		log.Debugf("Writing output to %s", f.out)
		if err := os.WriteFile(f.out, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprint(stdout, output)
	}

	// 9. Exit code based on --fail-under
	if f.failUnder > 0 && rep.Overall < f.failUnder {
		return exitError(2, "overall score %d is below %d", rep.Overall, f.failUnder)
	}

	return nil
}

func resolveAnalytics(f *scoreFlags, e *env) (analytics.Client, error) {
	if f.offline {
		return nil, nil
	}
	if f.client != nil {
		return f.client, nil
	}
	url := f.analyticsURL
	if url == "" {
		url = e.cfg.Analytics.URL
	}
	client, err := analytics.Resolve(url, e.cfg.Analytics.Token, e.cfg.Analytics.Timeout)
	if errors.Is(err, analytics.ErrNotConfigured) {
		if f.requireAnalytics {
			return nil, exitError(4, "no analytics service configured (--require-analytics)")
		}
		e.logger.Debug("analytics not configured", zap.Error(err))
		return nil, nil
	}
	if err != nil {
		return nil, exitError(3, "analytics configuration error: %v", err)
	}
	return client, nil
}
