// Package tracker turns a survey submission into a scored report and records
// the day's overall score in the owner's weekly history.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/IT-FEST-2025/diagnify/internal/advice"
	"github.com/IT-FEST-2025/diagnify/internal/analytics"
	"github.com/IT-FEST-2025/diagnify/internal/apperr"
	"github.com/IT-FEST-2025/diagnify/internal/health"
	"github.com/IT-FEST-2025/diagnify/internal/history"
	"github.com/IT-FEST-2025/diagnify/internal/report"
	"github.com/IT-FEST-2025/diagnify/internal/survey"
)

// ErrAnalyticsUnavailable is returned by Submit when RequireAnalytics is set
// and the analytics service could not supply recommendations. The HTTP layer
// reports it as 503.
var ErrAnalyticsUnavailable = apperr.ErrAnalytics

var errNoRecommendations = errors.New("no recommendations returned")

var errOwnerRequired = apperr.ErrValidation.WithMessage("owner is required")

// Submission is one completed questionnaire.
type Submission struct {
	Owner      string
	Answers    survey.Raw
	SurveyFile string
	SurveyHash string
	// At is the submission time; zero means now.
	At time.Time
}

// Service scores submissions. Store and Analytics may be nil; without a store
// no history is kept and without analytics the fallback rules apply.
type Service struct {
	Store            history.Store
	Analytics        analytics.Client
	Catalog          *advice.Catalog
	Logger           *zap.Logger
	Version          string
	RequireAnalytics bool
	Now              func() time.Time
}

// Submit scores s, records the overall score and returns the report.
func (svc *Service) Submit(ctx context.Context, s Submission) (*report.Report, error) {
	owner := strings.TrimSpace(s.Owner)
	if owner == "" {
		return nil, errOwnerRequired
	}
	at := s.At
	if at.IsZero() {
		at = svc.now()
	}
	log := svc.logger().With(zap.String("owner", owner))

	resp, subs := survey.Sanitize(s.Answers)
	for _, sub := range subs {
		log.Debug("answer substituted",
			zap.String("field", sub.Field),
			zap.String("reason", sub.Reason),
			zap.String("used", sub.Used))
	}

	assessment := health.Evaluate(resp)
	date := at.Format(history.DateLayout)

	serverRecs, err := svc.fetchRecommendations(ctx, analytics.Request{
		Owner:      owner,
		Date:       date,
		Response:   resp,
		Categories: assessment.Categories,
		Overall:    assessment.Overall,
	})
	if err != nil {
		if svc.RequireAnalytics {
			return nil, ErrAnalyticsUnavailable.WithError(err)
		}
		log.Warn("analytics unavailable, using fallback recommendations", zap.Error(err))
	}
	recs, source := health.SelectRecommendations(serverRecs, assessment.Categories)
	if source == health.SourceFallback && svc.RequireAnalytics {
		return nil, ErrAnalyticsUnavailable.WithError(errNoRecommendations)
	}
	recs = svc.Catalog.Attach(recs)

	var entries []history.Entry
	if svc.Store != nil {
		if err := svc.Store.Append(ctx, owner, history.NewEntry(at, assessment.Overall)); err != nil {
			return nil, apperr.ErrStorage.WithError(fmt.Errorf("tracker.Submit: %w", err))
		}
		entries, err = svc.Store.Recent(ctx, owner)
		if err != nil {
			return nil, apperr.ErrStorage.WithError(fmt.Errorf("tracker.Submit: %w", err))
		}
	}

	log.Info("assessment scored",
		zap.String("date", date),
		zap.Int("overall", assessment.Overall),
		zap.String("band", assessment.Band.Label),
		zap.String("recommendation_source", string(source)),
		zap.Int("substitutions", len(subs)))

	return &report.Report{
		Tool:    report.Tool,
		Version: svc.version(),
		ID:      uuid.NewString(),
		Input: report.Input{
			Owner:      owner,
			SurveyFile: s.SurveyFile,
			SurveyHash: s.SurveyHash,
		},
		Date:                 date,
		Response:             resp,
		Substitutions:        subs,
		Categories:           assessment.Categories,
		Overall:              assessment.Overall,
		Band:                 assessment.Band,
		Recommendations:      recs,
		RecommendationSource: source,
		History:              entries,
	}, nil
}

// History returns the owner's recent daily scores, oldest first.
func (svc *Service) History(ctx context.Context, owner string) ([]history.Entry, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, errOwnerRequired
	}
	if svc.Store == nil {
		return nil, nil
	}
	entries, err := svc.Store.Recent(ctx, owner)
	if err != nil {
		return nil, apperr.ErrStorage.WithError(fmt.Errorf("tracker.History: %w", err))
	}
	return entries, nil
}

func (svc *Service) fetchRecommendations(ctx context.Context, req analytics.Request) ([]health.Recommendation, error) {
	if svc.Analytics == nil {
		return nil, nil
	}
	recs, err := svc.Analytics.Recommend(ctx, req)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (svc *Service) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}

func (svc *Service) logger() *zap.Logger {
	if svc.Logger != nil {
		return svc.Logger
	}
	return zap.NewNop()
}

func (svc *Service) version() string {
	if svc.Version != "" {
		return svc.Version
	}
	return "dev"
}
