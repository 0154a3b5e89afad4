// Package server exposes the tracker over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/IT-FEST-2025/diagnify/internal/advice"
	"github.com/IT-FEST-2025/diagnify/internal/apperr"
	"github.com/IT-FEST-2025/diagnify/internal/health"
	"github.com/IT-FEST-2025/diagnify/internal/history"
	"github.com/IT-FEST-2025/diagnify/internal/survey"
	"github.com/IT-FEST-2025/diagnify/internal/tracker"
)

const requestIDHeader = "X-Request-ID"

type Handler struct {
	Tracker *tracker.Service
	Catalog *advice.Catalog
	Logger  *zap.Logger
}

func NewHandler(svc *tracker.Service, catalog *advice.Catalog, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Tracker: svc, Catalog: catalog, Logger: logger}
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(h.Logger))

	router.GET("/healthz", h.Healthz)

	api := router.Group("/api")
	{
		owner := api.Group("/health-tracker/:owner")
		{
			owner.POST("/assessments", h.SubmitAssessment)
			owner.GET("/history", h.GetHistory)
		}
		api.GET("/advice/:category", h.GetAdvice)
	}
	return router
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SubmitAssessment scores the posted answers. An optional ?date=YYYY-MM-DD
// records the score under that day instead of today.
func (h *Handler) SubmitAssessment(c *gin.Context) {
	var answers survey.Raw
	if err := c.ShouldBindJSON(&answers); err != nil {
		h.respondError(c, apperr.ErrBadRequest.WithMessage("request body must be a JSON survey").WithError(err))
		return
	}

	sub := tracker.Submission{Owner: c.Param("owner"), Answers: answers}
	if date := c.Query("date"); date != "" {
		at, err := time.Parse(history.DateLayout, date)
		if err != nil {
			h.respondError(c, apperr.ErrValidation.WithMessage("date must be YYYY-MM-DD").WithError(err))
			return
		}
		sub.At = at
	}

	rep, err := h.Tracker.Submit(c.Request.Context(), sub)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rep)
}

func (h *Handler) GetHistory(c *gin.Context) {
	owner := c.Param("owner")
	entries, err := h.Tracker.History(c.Request.Context(), owner)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{
		"owner":   owner,
		"entries": entries,
	})
}

func (h *Handler) GetAdvice(c *gin.Context) {
	category := health.Category(c.Param("category"))
	if !category.Valid() {
		h.respondError(c, apperr.ErrValidation.WithMessage("unknown category").WithDetails(map[string]any{
			"category": string(category),
		}))
		return
	}
	entry, ok := h.Catalog.Entry(category)
	if !ok {
		h.respondError(c, apperr.ErrNotFound.WithMessage("no advice for category"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"label":    category.Label(),
		"title":    entry.Title,
		"tips":     entry.Tips,
		"advisory": health.Advisory(category),
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := apperr.FromError(err)
	fields := []zap.Field{
		zap.String("code", appErr.Code),
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString(requestIDHeader)),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}
	if appErr.StatusCode >= http.StatusInternalServerError {
		h.Logger.Error("request_error", fields...)
	} else {
		h.Logger.Warn("request_error", fields...)
	}

	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{"error": body})
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDHeader)))
	}
}
