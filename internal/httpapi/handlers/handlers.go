package handlers

import (
	"context"

	"lifedemo/internal/pkg/logger"
	"lifedemo/internal/ports"
	"lifedemo/internal/render"
)

// Renderer runs one render per call.
type Renderer interface {
	Render(ctx context.Context, req render.RenderRequest) (*render.Result, error)
}

type Deps struct {
	Renderer   Renderer
	Share      ports.ShareProvider
	Janitor    *render.Janitor
	AssetsDir  string
	OutputsDir string
	FFmpegPath string
	Version    string
	Log        *logger.Logger
}

type Handler struct {
	renderer   Renderer
	share      ports.ShareProvider
	janitor    *render.Janitor
	assetsDir  string
	outputsDir string
	ffmpegPath string
	version    string
	log        *logger.Logger
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	version := d.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		renderer:   d.Renderer,
		share:      d.Share,
		janitor:    d.Janitor,
		assetsDir:  d.AssetsDir,
		outputsDir: d.OutputsDir,
		ffmpegPath: d.FFmpegPath,
		version:    version,
		log:        log.WithComponent("http"),
	}
}
