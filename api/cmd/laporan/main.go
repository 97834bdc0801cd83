package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"laporan-harian/api/internal/cli"
	"laporan-harian/api/internal/config"
	"laporan-harian/api/internal/gemini"
	"laporan-harian/api/internal/logging"
	"laporan-harian/api/internal/report"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closer.Close()

	var opts []gemini.Option
	if cfg.GeminiTemperature != nil {
		opts = append(opts, gemini.WithTemperature(*cfg.GeminiTemperature))
	}
	engine := gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, opts...)
	log.WithField("model", engine.GetModel()).Debug("gemini engine ready")

	app := &cli.App{
		Config:   cfg,
		Reporter: report.NewWriter(engine, log),
		Log:      log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
