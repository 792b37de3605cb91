// Package render turns the cached sample clip into a captioned portrait video.
package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lifedemo/internal/metrics"
	"lifedemo/internal/pkg/errors"
	"lifedemo/internal/pkg/logger"
	"lifedemo/internal/ports"
)

// DownloadPrefix is the URL path outputs are served under.
const DownloadPrefix = "/download/"

// SampleSource provides the local path of the source clip.
type SampleSource interface {
	Ensure(ctx context.Context) (string, error)
}

// Deps wires a Processor.
type Deps struct {
	Sample       SampleSource
	Runner       Runner
	Janitor      *Janitor
	Share        ports.ShareProvider // nil disables sharing
	OutputsDir   string
	FontFile     string
	OutputTTL    time.Duration
	Timeout      time.Duration
	ShareTimeout time.Duration
	Overlay      *Overlay
	Log          *logger.Logger
	Now          func() time.Time
}

// RenderRequest carries what the caller knows about itself.
type RenderRequest struct {
	// BaseURL is "<scheme>://<host>" as seen by the client.
	BaseURL string
}

// Result describes one finished render.
type Result struct {
	ID               string
	OutputPath       string
	LocalURL         string
	AbsoluteLocalURL string
	// TempURL is empty when no share link could be obtained.
	TempURL string
	// TempURLExpiresAt is zero when the share host reports no expiry.
	TempURLExpiresAt time.Time
}

// Processor runs one render per call. Calls are independent of each other.
type Processor struct {
	sample       SampleSource
	runner       Runner
	janitor      *Janitor
	share        ports.ShareProvider
	outputsDir   string
	fontParam    string
	ttl          time.Duration
	timeout      time.Duration
	shareTimeout time.Duration
	overlay      Overlay
	log          *logger.Logger
	now          func() time.Time
}

// New builds a Processor.
func New(d Deps) *Processor {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	log = log.WithComponent("render")

	font := strings.TrimSpace(d.FontFile)
	if font == "" {
		font = SelectFont(goos, nil)
	}

	overlay := DefaultOverlay()
	if d.Overlay != nil {
		overlay = *d.Overlay
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	janitor := d.Janitor
	if janitor == nil {
		janitor = NewJanitor(log)
	}
	ttl := d.OutputTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &Processor{
		sample:       d.Sample,
		runner:       d.Runner,
		janitor:      janitor,
		share:        d.Share,
		outputsDir:   d.OutputsDir,
		fontParam:    FontParam(font),
		ttl:          ttl,
		timeout:      d.Timeout,
		shareTimeout: d.ShareTimeout,
		overlay:      overlay,
		log:          log,
		now:          now,
	}
}

// Render produces a new output. Sample and ffmpeg failures are returned; a failed
// share upload only leaves Result.TempURL empty.
func (p *Processor) Render(ctx context.Context, req RenderRequest) (*Result, error) {
	start := p.now()
	metrics.RenderJobsInProgress.Inc()
	defer metrics.RenderJobsInProgress.Dec()

	input, err := p.sample.Ensure(ctx)
	if err != nil {
		metrics.RenderJobsTotal.WithLabelValues("sample_failed").Inc()
		return nil, errors.Wrap(err, "render.sample", "sample unavailable")
	}

	id := NewJobID(start)
	ctx = logger.ContextWithJobID(ctx, id)
	log := p.log.FromContext(ctx)

	if err := os.MkdirAll(p.outputsDir, 0o755); err != nil {
		metrics.RenderJobsTotal.WithLabelValues("failed").Inc()
		return nil, errors.WrapWithCode(err, errors.CodeRender, "render.output", "create outputs dir")
	}
	name := id + ".mp4"
	outPath := filepath.Join(p.outputsDir, name)

	log.Info("starting render", "input", input, "output", outPath)
	if err := p.run(ctx, input, outPath); err != nil {
		if rmErr := os.Remove(outPath); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn("failed to remove partial output", "path", outPath, "error", rmErr.Error())
		}
		metrics.RenderJobsTotal.WithLabelValues("failed").Inc()
		log.Error("render failed", "error", err.Error())
		return nil, errors.WrapWithCode(err, errors.CodeRender, "render.ffmpeg", "render failed").
			WithField("job_id", id)
	}

	res := &Result{
		ID:         id,
		OutputPath: outPath,
		LocalURL:   DownloadPrefix + name,
	}
	res.AbsoluteLocalURL = strings.TrimRight(req.BaseURL, "/") + res.LocalURL
	shared := p.shareOutput(ctx, outPath, name)
	res.TempURL = shared.URL
	res.TempURLExpiresAt = shared.ExpiresAt

	p.janitor.Schedule(outPath, p.ttl)

	metrics.RenderJobsTotal.WithLabelValues("ok").Inc()
	log.Info("render completed",
		"duration_ms", p.now().Sub(start).Milliseconds(),
		"shared", res.TempURL != "",
	)
	return res, nil
}

func (p *Processor) run(ctx context.Context, input, output string) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	err := p.runner.Run(ctx, BuildArgs(p.overlay, input, output, p.fontParam))
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	if !present(output) {
		return errors.New(errors.CodeRender, "ffmpeg produced no output")
	}
	return nil
}

// shareOutput uploads the output and returns its link. Any failure yields a zero ShareOutput.
func (p *Processor) shareOutput(ctx context.Context, path, name string) ports.ShareOutput {
	if p.share == nil {
		return ports.ShareOutput{}
	}
	log := p.log.FromContext(ctx)
	provider := p.share.Provider()

	if p.shareTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.shareTimeout)
		defer cancel()
	}

	var size int64
	if st, err := os.Stat(path); err == nil {
		size = st.Size()
	}

	out, err := p.share.Share(ctx, ports.ShareInput{
		LocalPath:   path,
		Name:        name,
		ContentType: "video/mp4",
		Size:        size,
	})
	if err != nil {
		metrics.ShareUploadsTotal.WithLabelValues(provider, "error").Inc()
		log.Warn("share upload failed", "provider", provider, "error", err.Error())
		return ports.ShareOutput{}
	}
	if out.URL == "" {
		metrics.ShareUploadsTotal.WithLabelValues(provider, "error").Inc()
		log.Warn("share upload returned no link", "provider", provider)
		return ports.ShareOutput{}
	}

	metrics.ShareUploadsTotal.WithLabelValues(provider, "ok").Inc()
	args := []any{"provider", provider, "url", out.URL}
	if !out.ExpiresAt.IsZero() {
		args = append(args, "expires_at", out.ExpiresAt.UTC().Format(time.RFC3339))
	}
	log.Debug("output shared", args...)
	return out
}
