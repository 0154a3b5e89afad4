package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/IT-FEST-2025/diagnify/internal/advice"
	"github.com/IT-FEST-2025/diagnify/internal/analytics"
	"github.com/IT-FEST-2025/diagnify/internal/health"
	"github.com/IT-FEST-2025/diagnify/internal/history"
	"github.com/IT-FEST-2025/diagnify/internal/report"
	"github.com/IT-FEST-2025/diagnify/internal/schema"
	"github.com/IT-FEST-2025/diagnify/internal/survey"
	"github.com/IT-FEST-2025/diagnify/internal/tracker"
)

// skipUnlessIntegration skips the test unless DIAGNIFY_INTEGRATION=1.
func skipUnlessIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("DIAGNIFY_INTEGRATION") != "1" {
		t.Skip("skipping integration test (set DIAGNIFY_INTEGRATION=1 to run)")
	}
}

// loadTestSurvey loads a survey from testdata.
func loadTestSurvey(t *testing.T, name string) *survey.File {
	t.Helper()
	sf, err := survey.Load(filepath.Join(projectRoot(), "testdata", "surveys", name))
	if err != nil {
		t.Fatalf("load survey: %v", err)
	}
	return sf
}

func loadCatalog(t *testing.T) *advice.Catalog {
	t.Helper()
	c, err := advice.LoadBuiltin("en")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

// submitWeek records one submission per day for days consecutive days
// ending at end and returns the last report.
func submitWeek(t *testing.T, svc *tracker.Service, owner string, sf *survey.File, end time.Time, days int) *report.Report {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var last *report.Report
	for i := days - 1; i >= 0; i-- {
		rep, err := svc.Submit(ctx, tracker.Submission{
			Owner:      owner,
			Answers:    sf.Answers,
			SurveyFile: filepath.Base(sf.FilePath),
			SurveyHash: sf.Hash,
			At:         end.AddDate(0, 0, -i),
		})
		if err != nil {
			t.Fatalf("submit day -%d: %v", i, err)
		}
		last = rep
	}
	return last
}

func checkWeek(t *testing.T, rep *report.Report, end time.Time) {
	t.Helper()
	if errs := schema.Validate(rep, history.DefaultCapacity); len(errs) > 0 {
		for _, e := range errs {
			t.Errorf("validation error: %s", e)
		}
	}
	if len(rep.History) != history.DefaultCapacity {
		t.Fatalf("history has %d entries, want %d", len(rep.History), history.DefaultCapacity)
	}
	if got, want := rep.History[len(rep.History)-1].Date, end.Format(history.DateLayout); got != want {
		t.Errorf("newest entry date = %s, want %s", got, want)
	}
	for _, e := range rep.History {
		if e.Score != rep.Overall {
			t.Errorf("entry %s score = %d, want %d", e.Date, e.Score, rep.Overall)
		}
	}
}

func TestIntegrationFileHistoryWeek(t *testing.T) {
	store, err := history.NewFileStore(filepath.Join(t.TempDir(), "history.json"), 0)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	svc := &tracker.Service{Store: store, Catalog: loadCatalog(t), Version: "integration"}
	end := time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)
	rep := submitWeek(t, svc, "file-owner", loadTestSurvey(t, "sedentary.yaml"), end, 10)
	checkWeek(t, rep, end)

	if rep.RecommendationSource != health.SourceFallback {
		t.Errorf("source = %s, want fallback", rep.RecommendationSource)
	}
	for _, r := range rep.Recommendations {
		if len(r.Tips) == 0 {
			t.Errorf("recommendation for %s has no catalog tips", r.Category)
		}
	}
}

func TestIntegrationPostgresHistory(t *testing.T) {
	skipUnlessIntegration(t)
	dsn := os.Getenv("DIAGNIFY_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("DIAGNIFY_POSTGRES_DSN not set")
	}

	store, err := history.Open(history.Options{Driver: "postgres", DSN: dsn})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer store.Close()

	svc := &tracker.Service{Store: store, Catalog: loadCatalog(t), Version: "integration"}
	end := time.Now().UTC()
	owner := "it-" + uuid.NewString()
	rep := submitWeek(t, svc, owner, loadTestSurvey(t, "healthy.yaml"), end, 9)
	checkWeek(t, rep, end)
}

func TestIntegrationAnalyticsService(t *testing.T) {
	skipUnlessIntegration(t)
	client, err := analytics.Resolve("", "", 30*time.Second)
	if errors.Is(err, analytics.ErrNotConfigured) {
		t.Skipf("%s not set", analytics.EnvURL)
	}
	if err != nil {
		t.Fatalf("resolve analytics: %v", err)
	}

	svc := &tracker.Service{
		Store:            history.NewMemoryStore(0),
		Analytics:        client,
		Catalog:          loadCatalog(t),
		Version:          "integration",
		RequireAnalytics: true,
	}
	end := time.Now().UTC()
	rep := submitWeek(t, svc, "it-"+uuid.NewString(), loadTestSurvey(t, "sedentary.yaml"), end, 1)

	if rep.RecommendationSource != health.SourceServer {
		t.Errorf("source = %s, want server", rep.RecommendationSource)
	}
	if errs := schema.Validate(rep, 0); len(errs) > 0 {
		for _, e := range errs {
			t.Errorf("validation error: %s", e)
		}
	}
	t.Logf("analytics returned %d recommendations", len(rep.Recommendations))
}
