package render

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"lifedemo/internal/pkg/errors"
)

// stubFFmpeg writes a shell script standing in for ffmpeg.
func stubFFmpeg(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestFFmpegRunSuccess(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.mp4")
	// Last argument is the output path.
	bin := stubFFmpeg(t, `for last; do :; done; echo video > "$last"`)

	if err := NewFFmpeg(bin).Run(context.Background(), []string{"-y", out}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected output written: %v", err)
	}
}

func TestFFmpegRunExitCode(t *testing.T) {
	bin := stubFFmpeg(t, `echo "Invalid filtergraph" >&2; exit 3`)

	err := NewFFmpeg(bin).Run(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "ffmpeg exited with code 3:") || !strings.Contains(msg, "Invalid filtergraph") {
		t.Errorf("unexpected error %q", msg)
	}
}

func TestFFmpegRunMissingBinary(t *testing.T) {
	err := NewFFmpeg(filepath.Join(t.TempDir(), "nope")).Run(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "start ffmpeg") {
		t.Fatalf("expected start error, got %v", err)
	}
}

func TestFFmpegRunTimeout(t *testing.T) {
	bin := stubFFmpeg(t, `exec sleep 5`)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := NewFFmpeg(bin).Run(ctx, nil)
	if !errors.IsCode(err, errors.CodeTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestFFmpegRunCanceled(t *testing.T) {
	bin := stubFFmpeg(t, `exec sleep 5`)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	err := NewFFmpeg(bin).Run(ctx, nil)
	if !errors.IsCode(err, errors.CodeCanceled) {
		t.Fatalf("expected canceled error, got %v", err)
	}
	if strings.Contains(err.Error(), "in time") {
		t.Errorf("cancellation reported as timeout: %v", err)
	}
}

func TestTail(t *testing.T) {
	if got := tail("  abcdef \n", 3); got != "def" {
		t.Errorf("expected def, got %q", got)
	}
	if got := tail("ab", 3); got != "ab" {
		t.Errorf("expected ab, got %q", got)
	}

	// "é" is two bytes; a 3-byte tail of "aéé" must not start mid-rune.
	got := tail("aéé", 3)
	if !utf8.ValidString(got) {
		t.Errorf("tail split a rune: %q", got)
	}
	if got != "é" {
		t.Errorf("expected é, got %q", got)
	}
}
