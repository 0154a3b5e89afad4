// Package render produces Markdown output from an assessment report.
package render

import (
	"fmt"
	"strings"

	"github.com/IT-FEST-2025/diagnify/internal/report"
)

// trend bar width at a score of 100
const barWidth = 20

// Markdown renders a report as a Markdown document.
func Markdown(r *report.Report) string {
	var b strings.Builder

	// Summary
	b.WriteString("# Diagnify Health Report\n\n")
	if r.Input.Owner != "" {
		fmt.Fprintf(&b, "**Owner:** %s\n", r.Input.Owner)
	}
	if r.Date != "" {
		fmt.Fprintf(&b, "**Date:** %s\n", r.Date)
	}
	fmt.Fprintf(&b, "**Overall Score:** %d / 100 (%s)\n\n", r.Overall, r.Band.Label)

	// Category scores
	if len(r.Categories) > 0 {
		b.WriteString("## Category Scores\n\n")
		b.WriteString("| Category | Score | Status |\n")
		b.WriteString("|---|---:|---|\n")
		for _, cs := range r.Categories {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", cs.Category.Label(), cs.Score, cs.Status)
		}
		b.WriteString("\n")
	}

	// Recommendations
	fmt.Fprintf(&b, "## Recommendations (%s)\n\n", r.RecommendationSource)
	if len(r.Recommendations) == 0 {
		b.WriteString("No recommendations.\n\n")
	}
	for _, rec := range r.Recommendations {
		if rec.Category != "" {
			fmt.Fprintf(&b, "- **%s:** %s\n", rec.Category.Label(), rec.Message)
		} else {
			fmt.Fprintf(&b, "- %s\n", rec.Message)
		}
		for _, tip := range rec.Tips {
			fmt.Fprintf(&b, "  - %s\n", tip)
		}
	}
	if len(r.Recommendations) > 0 {
		b.WriteString("\n")
	}

	// Weekly trend
	if len(r.History) > 0 {
		b.WriteString("## Weekly Trend\n\n")
		b.WriteString("```\n")
		for _, e := range r.History {
			fmt.Fprintf(&b, "%s %3d %s\n", e.Date, e.Score, bar(e.Score))
		}
		b.WriteString("```\n\n")
	}

	// Substituted answers
	if len(r.Substitutions) > 0 {
		b.WriteString("## Substituted Answers\n\n")
		for _, s := range r.Substitutions {
			fmt.Fprintf(&b, "- `%s` (%s): used %s\n", s.Field, s.Reason, s.Used)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func bar(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	n := (score*barWidth + 50) / 100
	return strings.Repeat("#", n)
}
