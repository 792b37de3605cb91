// Package server assembles the render service from its configuration and runs it.
package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"lifedemo/internal/config"
	"lifedemo/internal/httpapi"
	"lifedemo/internal/httpapi/handlers"
	"lifedemo/internal/pkg/errors"
	"lifedemo/internal/pkg/logger"
	"lifedemo/internal/pkg/shutdown"
	"lifedemo/internal/ports"
	"lifedemo/internal/render"
	"lifedemo/internal/share"
)

// App is a fully wired service that has not started listening yet.
type App struct {
	Config    config.Config
	Processor *render.Processor
	Samples   *render.SampleStore
	Janitor   *render.Janitor
	Share     ports.ShareProvider
	Handler   http.Handler
	log       *logger.Logger
}

// Build wires the render pipeline and HTTP routes.
func Build(ctx context.Context, cfg config.Config, log *logger.Logger, version string) (*App, error) {
	if log == nil {
		log = logger.NewDefault()
	}
	rc := cfg.Render

	for _, dir := range []string{rc.AssetsDir, rc.OutputsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeConfig, "server.build", "create directory").
				WithField("dir", dir)
		}
	}

	sp, err := share.NewProvider(ctx, cfg.Share)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfig, "server.build", "init share provider")
	}
	if sp != nil {
		log.Info("share provider initialized", "provider", sp.Provider())
	} else {
		log.Info("sharing disabled")
	}

	samples := render.NewSampleStore(rc.AssetsDir, rc.SampleURL, nil, log)
	janitor := render.NewJanitor(log)
	proc := render.New(render.Deps{
		Sample:       samples,
		Runner:       render.NewFFmpeg(rc.FFmpegPath),
		Janitor:      janitor,
		Share:        sp,
		OutputsDir:   rc.OutputsDir,
		FontFile:     rc.FontFile,
		OutputTTL:    rc.OutputTTL.Duration,
		Timeout:      rc.Timeout.Duration,
		ShareTimeout: cfg.Share.Timeout.Duration,
		Log:          log,
	})

	router := httpapi.NewRouter(httpapi.Deps{
		Handlers: handlers.Deps{
			Renderer:   proc,
			Share:      sp,
			Janitor:    janitor,
			AssetsDir:  rc.AssetsDir,
			OutputsDir: rc.OutputsDir,
			FFmpegPath: rc.FFmpegPath,
			Version:    version,
		},
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Log:            log,
	})

	return &App{
		Config:    cfg,
		Processor: proc,
		Samples:   samples,
		Janitor:   janitor,
		Share:     sp,
		Handler:   router,
		log:       log,
	}, nil
}

// Run listens on the configured port until ctx is done or a stop signal arrives.
// Outputs left by a previous process are swept before the listener opens.
func (a *App) Run(ctx context.Context) error {
	log := a.log
	cfg := a.Config

	if _, _, err := a.Janitor.Sweep(cfg.Render.OutputsDir, cfg.Render.OutputTTL.Duration, time.Now()); err != nil {
		log.Warn("failed to sweep outputs", "dir", cfg.Render.OutputsDir, "error", err.Error())
	}

	ln, err := net.Listen("tcp", "0.0.0.0:"+cfg.Server.Port)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "server.run", "listen")
	}

	// A render may hold its response for the whole render plus the share upload.
	writeTimeout := cfg.Render.Timeout.Duration + cfg.Share.Timeout.Duration + 30*time.Second
	srv := &http.Server{
		Handler:      a.Handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  120 * time.Second,
	}

	mgr := shutdown.NewManager(log, cfg.Server.ShutdownTimeout.Duration)
	mgr.RegisterSimple("janitor", a.Janitor.Stop)
	mgr.Register("http-server", func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return srv.Shutdown(ctx)
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err, ok := <-serveErr; ok {
			log.Error("HTTP server failed", "error", err.Error())
			cancel()
		}
	}()

	return mgr.Wait(waitCtx)
}
