package main

import (
	"context"

	"lifedemo/internal/config"
	"lifedemo/internal/pkg/logger"
	"lifedemo/internal/server"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	boot := logger.NewDefault()

	// Load configuration (LIFEDEMO_CONFIG file, then environment)
	cfg, err := config.Load("")
	if err != nil {
		boot.LogFatal("invalid configuration", err)
	}

	log := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		AddSource:   cfg.Log.Source,
		ServiceName: "lifedemo-api",
	})
	log.Info("starting lifedemo API",
		"version", version,
		"outputs_dir", cfg.Render.OutputsDir,
		"output_ttl", cfg.Render.OutputTTL.String(),
		"share_provider", cfg.Share.Provider,
	)

	ctx := context.Background()

	app, err := server.Build(ctx, cfg, log, version)
	if err != nil {
		log.LogFatal("failed to build service", err)
	}

	if err := app.Run(ctx); err != nil {
		log.LogFatal("server stopped with error", err)
	}
}
