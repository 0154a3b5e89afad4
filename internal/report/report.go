// Package report defines the top-level output of a health assessment.
package report

import (
	"github.com/IT-FEST-2025/diagnify/internal/health"
	"github.com/IT-FEST-2025/diagnify/internal/history"
	"github.com/IT-FEST-2025/diagnify/internal/survey"
)

// Tool is the value of Report.Tool.
const Tool = "diagnify"

// Report is the top-level output object.
type Report struct {
	Tool                 string                      `json:"tool"`
	Version              string                      `json:"version"`
	ID                   string                      `json:"id"`
	Input                Input                       `json:"input"`
	Date                 string                      `json:"date"`
	Response             health.Response             `json:"response"`
	Substitutions        []survey.Substitution       `json:"substitutions,omitempty"`
	Categories           []health.CategoryScore      `json:"categories"`
	Overall              int                         `json:"overall"`
	Band                 health.Band                 `json:"band"`
	Recommendations      []health.Recommendation     `json:"recommendations"`
	RecommendationSource health.RecommendationSource `json:"recommendation_source"`
	History              []history.Entry             `json:"history,omitempty"`
}

// Input describes where the answers came from.
type Input struct {
	Owner      string `json:"owner"`
	SurveyFile string `json:"survey_file,omitempty"`
	SurveyHash string `json:"survey_hash,omitempty"`
}

// CategoryScore returns the score recorded for c.
func (r *Report) CategoryScore(c health.Category) (health.CategoryScore, bool) {
	for _, cs := range r.Categories {
		if cs.Category == c {
			return cs, true
		}
	}
	return health.CategoryScore{}, false
}
