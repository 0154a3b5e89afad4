// Package app wires the HTTP service together with fx.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/IT-FEST-2025/diagnify/internal/advice"
	"github.com/IT-FEST-2025/diagnify/internal/analytics"
	"github.com/IT-FEST-2025/diagnify/internal/config"
	"github.com/IT-FEST-2025/diagnify/internal/history"
	"github.com/IT-FEST-2025/diagnify/internal/redact"
	"github.com/IT-FEST-2025/diagnify/internal/server"
	"github.com/IT-FEST-2025/diagnify/internal/tracker"
)

// Version is the build version reported in every assessment.
type Version string

var HistoryModule = fx.Module("history",
	fx.Provide(newHistoryStore),
)

var AnalyticsModule = fx.Module("analytics",
	fx.Provide(newAnalyticsClient),
)

var AdviceModule = fx.Module("advice",
	fx.Provide(newCatalog),
)

var TrackerModule = fx.Module("tracker",
	fx.Provide(newTracker),
)

var ServerModule = fx.Module("server",
	fx.Provide(
		server.NewHandler,
		server.NewRouter,
		newHTTPServer,
	),
	fx.Invoke(func(*http.Server) {}),
)

// Options assembles the full application from an already loaded config and
// logger.
func Options(cfg *config.Config, logger *zap.Logger, version string) fx.Option {
	return fx.Options(
		fx.Supply(cfg, logger, Version(version)),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		HistoryModule,
		AnalyticsModule,
		AdviceModule,
		TrackerModule,
		ServerModule,
	)
}

func newHistoryStore(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (history.Store, error) {
	store, err := history.Open(cfg.HistoryOptions())
	if err != nil {
		return nil, errors.New("open history: " + redact.Redact(err.Error()))
	}
	logger.Info("history store opened",
		zap.String("driver", cfg.History.Driver),
		zap.String("dsn", redact.Redact(cfg.History.DSN)),
		zap.Int("capacity", cfg.History.Capacity))
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
	return store, nil
}

func newAnalyticsClient(cfg *config.Config, logger *zap.Logger) (analytics.Client, error) {
	client, err := analytics.Resolve(cfg.Analytics.URL, cfg.Analytics.Token, cfg.Analytics.Timeout)
	if errors.Is(err, analytics.ErrNotConfigured) {
		logger.Info("analytics service not configured, using fallback recommendations")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newCatalog(cfg *config.Config) (*advice.Catalog, error) {
	return advice.LoadBuiltin(cfg.Advice.Catalog)
}

func newTracker(store history.Store, client analytics.Client, catalog *advice.Catalog, logger *zap.Logger, version Version) *tracker.Service {
	return &tracker.Service{
		Store:     store,
		Analytics: client,
		Catalog:   catalog,
		Logger:    logger,
		Version:   string(version),
	}
}

func newHTTPServer(lc fx.Lifecycle, cfg *config.Config, router *gin.Engine, logger *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("server listening", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("server shutting down")
			ctx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
	return srv
}
