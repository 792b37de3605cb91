package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"

	"lifedemo/internal/pkg/errors"
)

// stderrTail bounds how much ffmpeg output ends up in an error message.
const stderrTail = 2048

// Runner runs the media tool with the given arguments.
type Runner interface {
	Run(ctx context.Context, args []string) error
}

// FFmpeg runs a local ffmpeg binary.
type FFmpeg struct {
	Path string
}

// NewFFmpeg returns a runner for path, defaulting to "ffmpeg" on PATH.
func NewFFmpeg(path string) *FFmpeg {
	if strings.TrimSpace(path) == "" {
		path = "ffmpeg"
	}
	return &FFmpeg{Path: path}
}

// Run spawns ffmpeg and waits for it. A non-zero exit is reported with the tail of stderr.
func (f *FFmpeg) Run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, f.Path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return errors.WrapWithCode(ctxErr, errors.CodeTimeout, "render.ffmpeg", "ffmpeg did not finish in time")
		}
		return errors.WrapWithCode(ctxErr, errors.CodeCanceled, "render.ffmpeg", "ffmpeg canceled")
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("ffmpeg exited with code %d: %s", exitErr.ExitCode(), tail(stderr.String(), stderrTail))
	}
	return fmt.Errorf("start ffmpeg: %w", err)
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	start := len(s) - n
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}
