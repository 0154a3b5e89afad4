// Package schema validates assessment reports against the Diagnify output schema.
package schema

import (
	"fmt"
	"time"

	"github.com/IT-FEST-2025/diagnify/internal/health"
	"github.com/IT-FEST-2025/diagnify/internal/history"
	"github.com/IT-FEST-2025/diagnify/internal/report"
)

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Report for structural validity and internal consistency.
// historyCapacity bounds the history length (0 uses the default).
func Validate(r *report.Report, historyCapacity int) []ValidationError {
	var errs []ValidationError

	if r.Tool == "" {
		errs = append(errs, ValidationError{"tool", "required"})
	}
	if r.Version == "" {
		errs = append(errs, ValidationError{"version", "required"})
	}
	if r.Input.Owner == "" {
		errs = append(errs, ValidationError{"input.owner", "required"})
	}
	if r.Date != "" {
		if _, err := time.Parse(history.DateLayout, r.Date); err != nil {
			errs = append(errs, ValidationError{"date", fmt.Sprintf("invalid date %q", r.Date)})
		}
	}

	// Categories must be complete and in scoring order
	if len(r.Categories) != len(health.Categories) {
		errs = append(errs, ValidationError{"categories", fmt.Sprintf("expected %d categories, got %d", len(health.Categories), len(r.Categories))})
	}
	for i, cs := range r.Categories {
		prefix := fmt.Sprintf("categories[%d]", i)
		if i < len(health.Categories) && cs.Category != health.Categories[i] {
			errs = append(errs, ValidationError{prefix + ".category", fmt.Sprintf("expected %q, got %q", health.Categories[i], cs.Category)})
		}
		if !cs.Category.Valid() {
			errs = append(errs, ValidationError{prefix + ".category", fmt.Sprintf("invalid: %q", cs.Category)})
			continue
		}
		if cs.Score < 0 || cs.Score > 100 {
			errs = append(errs, ValidationError{prefix + ".score", fmt.Sprintf("%d out of range 0..100", cs.Score)})
		}
		if !cs.Status.ValidFor(cs.Category) {
			errs = append(errs, ValidationError{prefix + ".status", fmt.Sprintf("%q is not a %s status", cs.Status, cs.Category)})
		}
	}

	// Verify overall and band consistency
	expected := health.OverallScore(r.Categories)
	if r.Overall != expected {
		errs = append(errs, ValidationError{"overall", fmt.Sprintf("overall %d does not match computed %d", r.Overall, expected)})
	}
	if r.Band != health.BandFor(r.Overall) {
		errs = append(errs, ValidationError{"band", fmt.Sprintf("band %q does not contain overall %d", r.Band.Label, r.Overall)})
	}

	// Validate recommendations
	if len(r.Recommendations) == 0 {
		errs = append(errs, ValidationError{"recommendations", "at least one recommendation required"})
	}
	if !r.RecommendationSource.Valid() {
		errs = append(errs, ValidationError{"recommendation_source", fmt.Sprintf("invalid: %q", r.RecommendationSource)})
	}
	for i, rec := range r.Recommendations {
		prefix := fmt.Sprintf("recommendations[%d]", i)
		if rec.Message == "" {
			errs = append(errs, ValidationError{prefix + ".message", "required"})
		}
		if rec.Category != "" && !rec.Category.Valid() {
			errs = append(errs, ValidationError{prefix + ".category", fmt.Sprintf("invalid: %q", rec.Category)})
		}
	}

	// Validate history
	if historyCapacity <= 0 {
		historyCapacity = history.DefaultCapacity
	}
	if len(r.History) > historyCapacity {
		errs = append(errs, ValidationError{"history", fmt.Sprintf("%d entries exceeds capacity %d", len(r.History), historyCapacity)})
	}
	prev := ""
	for i, e := range r.History {
		prefix := fmt.Sprintf("history[%d]", i)
		if err := e.Validate(); err != nil {
			errs = append(errs, ValidationError{prefix, err.Error()})
			continue
		}
		if prev != "" && e.Date <= prev {
			errs = append(errs, ValidationError{prefix + ".date", fmt.Sprintf("%s is not after %s", e.Date, prev)})
		}
		prev = e.Date
	}

	return errs
}

