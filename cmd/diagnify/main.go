package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/IT-FEST-2025/diagnify/internal/config"
)

var version = "0.1.0"

// env is the state shared by all subcommands once the root pre-run has
// loaded configuration and built the logger.
type env struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger

	// buildLogger defaults to newLogger.
	buildLogger func(config.LogConfig, bool) (*zap.Logger, error)
}

func main() {
	e := &env{}
	root := newRootCmd(e)

	if err := execute(e, root); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "diagnify",
		Short:         "Score daily health questionnaires and track the weekly trend",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&e.configPath, "config", "", "Config file path (YAML)")
	flags.BoolVar(&e.verbose, "verbose", false, "Log processing steps at debug level")

	root.AddCommand(
		newScoreCmd(e),
		newHistoryCmd(e),
		newAdviceCmd(e),
		newServeCmd(e),
	)
	return root
}

// execute runs root and flushes the logger whether or not the command failed.
func execute(e *env, root *cobra.Command) error {
	defer e.sync()
	return root.Execute()
}

func (e *env) sync() {
	if e.logger != nil {
		_ = e.logger.Sync()
	}
}

func (e *env) init() error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return exitError(3, "failed to load config: %v", err)
	}
	build := e.buildLogger
	if build == nil {
		build = newLogger
	}
	logger, err := build(cfg.Log, e.verbose)
	if err != nil {
		return exitError(3, "failed to initialize logger: %v", err)
	}
	e.cfg = cfg
	e.logger = logger
	return nil
}

func newLogger(lc config.LogConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}
