package render

import (
	"strings"
	"testing"

	"github.com/IT-FEST-2025/diagnify/internal/health"
	"github.com/IT-FEST-2025/diagnify/internal/history"
	"github.com/IT-FEST-2025/diagnify/internal/report"
	"github.com/IT-FEST-2025/diagnify/internal/survey"
)

func sampleReport() *report.Report {
	scores := []health.CategoryScore{
		{Category: health.CategoryPhysicalActivity, Score: 40, Status: health.StatusNeedsImprovement},
		{Category: health.CategorySleep, Score: 100, Status: health.StatusOptimal},
		{Category: health.CategoryHydration, Score: 60, Status: health.StatusNeedsImprovement},
		{Category: health.CategoryMentalHealth, Score: 80, Status: health.StatusGood},
		{Category: health.CategoryJunkFood, Score: 100, Status: health.StatusExcellent},
		{Category: health.CategoryScreenTime, Score: 70, Status: health.StatusModerate},
		{Category: health.CategoryBloodPressure, Score: 100, Status: health.StatusOptimal},
	}
	overall := health.OverallScore(scores)
	return &report.Report{
		Tool:       report.Tool,
		Version:    "1.0",
		Input:      report.Input{Owner: "user-1"},
		Date:       "2025-07-02",
		Categories: scores,
		Overall:    overall,
		Band:       health.BandFor(overall),
		Recommendations: []health.Recommendation{
			{Category: health.CategoryPhysicalActivity, Message: health.Advisory(health.CategoryPhysicalActivity), Tips: []string{"Take the stairs."}},
			{Category: health.CategoryHydration, Message: health.Advisory(health.CategoryHydration)},
		},
		RecommendationSource: health.SourceFallback,
		History: []history.Entry{
			{Date: "2025-07-01", Score: 50},
			{Date: "2025-07-02", Score: overall},
		},
		Substitutions: []survey.Substitution{
			{Field: "systolicBP", Reason: survey.ReasonMissing, Used: "120"},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleReport())

	checks := []string{
		"# Diagnify Health Report",
		"**Owner:** user-1",
		"**Overall Score:** 79 / 100 (Good)",
		"## Category Scores",
		"| Physical Activity | 40 | Needs Improvement |",
		"| Blood Pressure | 100 | Optimal |",
		"## Recommendations (fallback)",
		"- **Physical Activity:** ",
		"  - Take the stairs.",
		"## Weekly Trend",
		"2025-07-01  50 ##########\n",
		"## Substituted Answers",
		"`systolicBP` (missing): used 120",
	}
	for _, want := range checks {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownPositiveMessage(t *testing.T) {
	r := &report.Report{
		Overall:              95,
		Band:                 health.BandFor(95),
		Recommendations:      []health.Recommendation{{Message: health.PositiveMessage}},
		RecommendationSource: health.SourceFallback,
	}
	md := Markdown(r)
	if !strings.Contains(md, "- "+health.PositiveMessage+"\n") {
		t.Error("expected uncategorized positive message")
	}
	if strings.Contains(md, "## Weekly Trend") {
		t.Error("trend section should be omitted without history")
	}
	if strings.Contains(md, "## Substituted Answers") {
		t.Error("substitutions section should be omitted when empty")
	}
}

func TestMarkdownNoRecommendations(t *testing.T) {
	md := Markdown(&report.Report{})
	if !strings.Contains(md, "No recommendations.") {
		t.Error("expected 'No recommendations.' for empty report")
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{-5, 0},
		{0, 0},
		{50, 10},
		{100, 20},
		{150, 20},
	}
	for _, tt := range tests {
		if got := len(bar(tt.score)); got != tt.want {
			t.Errorf("bar(%d) length = %d, want %d", tt.score, got, tt.want)
		}
	}
}
