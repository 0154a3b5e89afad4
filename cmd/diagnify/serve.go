package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/IT-FEST-2025/diagnify/internal/app"
)

const lifecycleTimeout = 15 * time.Second

func newServeCmd(e *env) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the health tracker HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				e.cfg.Server.Addr = addr
			}
			return runServe(e)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: configured server.addr)")
	return cmd
}

func runServe(e *env) error {
	if !e.verbose && !e.cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	fxApp := fx.New(app.Options(e.cfg, e.logger, version))
	if err := fxApp.Err(); err != nil {
		return exitError(3, "failed to build application: %v", err)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), lifecycleTimeout)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		return exitError(3, "failed to start: %v", err)
	}

	sig := <-fxApp.Wait()
	e.logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	stopCtx, cancelStop := context.WithTimeout(context.Background(), lifecycleTimeout)
	defer cancelStop()
	return fxApp.Stop(stopCtx)
}
