package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/IT-FEST-2025/diagnify/internal/health"
	"github.com/IT-FEST-2025/diagnify/internal/report"
	"github.com/IT-FEST-2025/diagnify/internal/schema"
	"github.com/IT-FEST-2025/diagnify/internal/survey"
)

func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filename))
}

// golden is the deterministic part of a report.
type golden struct {
	Response             health.Response             `json:"response"`
	Substitutions        []survey.Substitution       `json:"substitutions,omitempty"`
	Categories           []health.CategoryScore      `json:"categories"`
	Overall              int                         `json:"overall"`
	Band                 health.Band                 `json:"band"`
	Recommendations      []health.Recommendation     `json:"recommendations"`
	RecommendationSource health.RecommendationSource `json:"recommendation_source"`
}

func TestGoldenSurveys(t *testing.T) {
	root := projectRoot()
	surveys, err := filepath.Glob(filepath.Join(root, "testdata", "surveys", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(surveys) == 0 {
		t.Fatal("no golden surveys found")
	}

	for _, path := range surveys {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		t.Run(name, func(t *testing.T) {
			goldenData, err := os.ReadFile(filepath.Join(root, "testdata", "golden", name+".json"))
			if err != nil {
				t.Fatalf("failed to read golden file: %v", err)
			}
			var want golden
			if err := json.Unmarshal(goldenData, &want); err != nil {
				t.Fatalf("failed to parse golden JSON: %v", err)
			}

			sf, err := survey.Load(path)
			if err != nil {
				t.Fatalf("failed to load survey: %v", err)
			}
			resp, subs := survey.Sanitize(sf.Answers)
			a := health.Evaluate(resp)
			recs, source := health.SelectRecommendations(nil, a.Categories)

			got := golden{
				Response:             resp,
				Substitutions:        subs,
				Categories:           a.Categories,
				Overall:              a.Overall,
				Band:                 a.Band,
				Recommendations:      recs,
				RecommendationSource: source,
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("golden mismatch (-want +got):\n%s", diff)
			}

			// The assembled report must pass schema validation
			rep := &report.Report{
				Tool:                 report.Tool,
				Version:              "golden",
				Input:                report.Input{Owner: "golden", SurveyFile: filepath.Base(path), SurveyHash: sf.Hash},
				Date:                 "2025-07-03",
				Response:             resp,
				Substitutions:        subs,
				Categories:           a.Categories,
				Overall:              a.Overall,
				Band:                 a.Band,
				Recommendations:      recs,
				RecommendationSource: source,
			}
			for _, e := range schema.Validate(rep, 0) {
				t.Errorf("validation error: %s", e)
			}

			// The fallback list agrees with the plain-text rule table
			texts := health.FallbackRecommendations(a.Categories)
			if len(texts) != len(recs) {
				t.Fatalf("fallback text count %d != recommendation count %d", len(texts), len(recs))
			}
			for i := range texts {
				if texts[i] != recs[i].Message {
					t.Errorf("recommendation[%d] = %q, want %q", i, recs[i].Message, texts[i])
				}
			}
		})
	}
}

func TestGoldenJSONStable(t *testing.T) {
	sf, err := survey.Load(filepath.Join(projectRoot(), "testdata", "surveys", "sedentary.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	resp, _ := survey.Sanitize(sf.Answers)
	a1 := health.Evaluate(resp)
	a2 := health.Evaluate(resp)

	data1, err := json.MarshalIndent(a1, "", "  ")
	if err != nil {
		t.Fatalf("first marshal failed: %v", err)
	}
	data2, err := json.MarshalIndent(a2, "", "  ")
	if err != nil {
		t.Fatalf("second marshal failed: %v", err)
	}
	if string(data1) != string(data2) {
		t.Error("evaluating the same response twice produced different output")
	}
}
