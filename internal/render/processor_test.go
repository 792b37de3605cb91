package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lifedemo/internal/pkg/errors"
	"lifedemo/internal/pkg/logger"
	"lifedemo/internal/ports"
)

type staticSample struct {
	path string
	err  error
}

func (s staticSample) Ensure(context.Context) (string, error) { return s.path, s.err }

// fakeRunner writes the output file (last argument) unless told to fail.
type fakeRunner struct {
	fail    bool
	partial bool
	args    []string
}

func (f *fakeRunner) Run(_ context.Context, args []string) error {
	f.args = args
	out := args[len(args)-1]
	if f.partial {
		_ = os.WriteFile(out, []byte("half"), 0o644)
	}
	if f.fail {
		return fmt.Errorf("ffmpeg exited with code 1: boom")
	}
	return os.WriteFile(out, []byte("video"), 0o644)
}

type fakeShare struct {
	url     string
	expires time.Time
	err     error
	got     ports.ShareInput
}

func (f *fakeShare) Provider() string { return "fake" }

func (f *fakeShare) Share(_ context.Context, in ports.ShareInput) (ports.ShareOutput, error) {
	f.got = in
	return ports.ShareOutput{URL: f.url, ExpiresAt: f.expires}, f.err
}

func newTestProcessor(t *testing.T, runner Runner, share ports.ShareProvider, ttl time.Duration) (*Processor, string) {
	t.Helper()
	outputs := filepath.Join(t.TempDir(), "outputs")
	j := NewJanitor(logger.Discard())
	t.Cleanup(j.Stop)

	p := New(Deps{
		Sample:     staticSample{path: "/assets/sample.mp4"},
		Runner:     runner,
		Janitor:    j,
		Share:      share,
		OutputsDir: outputs,
		FontFile:   "/fonts/test.ttf",
		OutputTTL:  ttl,
		Log:        logger.Discard(),
	})
	return p, outputs
}

func TestRenderSuccess(t *testing.T) {
	runner := &fakeRunner{}
	share := &fakeShare{url: "https://file.io/abc"}
	p, outputs := newTestProcessor(t, runner, share, time.Minute)

	res, err := p.Render(context.Background(), RenderRequest{BaseURL: "http://localhost:5000/"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !jobIDPatternAny.MatchString(res.ID) {
		t.Errorf("unexpected id %q", res.ID)
	}
	if res.OutputPath != filepath.Join(outputs, res.ID+".mp4") {
		t.Errorf("unexpected output path %s", res.OutputPath)
	}
	if res.LocalURL != "/download/"+res.ID+".mp4" {
		t.Errorf("unexpected local url %s", res.LocalURL)
	}
	if res.AbsoluteLocalURL != "http://localhost:5000"+res.LocalURL {
		t.Errorf("unexpected absolute url %s", res.AbsoluteLocalURL)
	}
	if res.TempURL != "https://file.io/abc" {
		t.Errorf("unexpected temp url %s", res.TempURL)
	}
	if share.got.Name != res.ID+".mp4" || share.got.ContentType != "video/mp4" || share.got.Size != 5 {
		t.Errorf("unexpected share input %+v", share.got)
	}
	if runner.args[4] != "/assets/sample.mp4" {
		t.Errorf("expected sample as input, got %v", runner.args)
	}
	if !strings.Contains(strings.Join(runner.args, " "), "fontfile='/fonts/test.ttf':") {
		t.Error("expected configured font file in filter graph")
	}
	if p.janitor.Pending() != 1 {
		t.Errorf("expected output scheduled for cleanup, got %d", p.janitor.Pending())
	}
}

func TestRenderCarriesShareExpiry(t *testing.T) {
	expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	p, _ := newTestProcessor(t, &fakeRunner{}, &fakeShare{url: "https://file.io/abc", expires: expires}, time.Minute)

	res, err := p.Render(context.Background(), RenderRequest{BaseURL: "http://localhost:5000"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !res.TempURLExpiresAt.Equal(expires) {
		t.Errorf("expected expiry %s, got %s", expires, res.TempURLExpiresAt)
	}
}

func TestRenderShareFailureIsSwallowed(t *testing.T) {
	p, _ := newTestProcessor(t, &fakeRunner{}, &fakeShare{err: fmt.Errorf("dial tcp: connection refused")}, time.Minute)

	res, err := p.Render(context.Background(), RenderRequest{BaseURL: "http://h"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.TempURL != "" {
		t.Errorf("expected empty temp url, got %q", res.TempURL)
	}
	if _, err := os.Stat(res.OutputPath); err != nil {
		t.Errorf("expected output kept: %v", err)
	}
}

func TestRenderWithoutShareProvider(t *testing.T) {
	p, _ := newTestProcessor(t, &fakeRunner{}, nil, time.Minute)

	res, err := p.Render(context.Background(), RenderRequest{BaseURL: "http://h"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.TempURL != "" {
		t.Errorf("expected empty temp url, got %q", res.TempURL)
	}
}

func TestRenderRunnerFailureRemovesPartialOutput(t *testing.T) {
	p, outputs := newTestProcessor(t, &fakeRunner{fail: true, partial: true}, &fakeShare{url: "x"}, time.Minute)

	_, err := p.Render(context.Background(), RenderRequest{BaseURL: "http://h"})
	if !errors.IsCode(err, errors.CodeRender) {
		t.Fatalf("expected render error, got %v", err)
	}
	if !strings.Contains(err.Error(), "ffmpeg exited with code 1") {
		t.Errorf("expected tool error in message, got %v", err)
	}

	entries, _ := os.ReadDir(outputs)
	if len(entries) != 0 {
		t.Errorf("expected no output left, found %d files", len(entries))
	}
	if p.janitor.Pending() != 0 {
		t.Error("expected nothing scheduled after a failure")
	}
}

func TestRenderSampleFailure(t *testing.T) {
	runner := &fakeRunner{}
	p, _ := newTestProcessor(t, runner, nil, time.Minute)
	p.sample = staticSample{err: errors.New(errors.CodeSampleFetch, "sample host returned 503")}

	_, err := p.Render(context.Background(), RenderRequest{})
	if !errors.IsCode(err, errors.CodeSampleFetch) {
		t.Fatalf("expected sample fetch error, got %v", err)
	}
	if runner.args != nil {
		t.Error("expected ffmpeg not to run without a sample")
	}
}

func TestRenderOutputExpires(t *testing.T) {
	p, _ := newTestProcessor(t, &fakeRunner{}, nil, 50*time.Millisecond)

	res, err := p.Render(context.Background(), RenderRequest{BaseURL: "http://h"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	waitGone(t, res.OutputPath, 2*time.Second)
}
