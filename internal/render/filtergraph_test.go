package render

import (
	"strings"
	"testing"
)

func TestBuildArgs(t *testing.T) {
	args := BuildArgs(DefaultOverlay(), "in.mp4", "out.mp4", "font='Arial':")

	want := []string{
		"-y", "-t", "10", "-i", "in.mp4", "-filter_complex", "<graph>",
		"-map", "[final]", "-map", "0:a?", "-c:v", "libx264", "-preset", "veryfast",
		"-crf", "23", "-c:a", "aac", "-shortest", "out.mp4",
	}
	if len(args) != len(want) {
		t.Fatalf("expected %d args, got %d: %v", len(want), len(args), args)
	}
	for i := range want {
		if want[i] == "<graph>" {
			continue
		}
		if args[i] != want[i] {
			t.Errorf("arg %d: expected %q, got %q", i, want[i], args[i])
		}
	}
}

func TestFilterGraph(t *testing.T) {
	graph := DefaultOverlay().FilterGraph("fontfile='/fonts/a.ttf':")

	want := "[0:v]scale=1080:1920:force_original_aspect_ratio=decrease,pad=1080:1920:(ow-iw)/2:(oh-ih)/2:color=black[base];" +
		"color=c=black@0.0:s=1080x1920,format=rgba[ct];" +
		"[ct]drawtext=text='Life Demo':fontfile='/fonts/a.ttf':fontcolor=yellow:fontsize=160:bordercolor=black:borderw=10:x=(w-tw)/2:y=(h-th)/2[txt];" +
		"[txt]rotate=45*PI/180:ow=rotw(iw):oh=roth(ih):c=none[rot];" +
		"[base][rot]overlay=(W-w)/2:(H-h)/2:format=auto,format=yuv420p[final]"
	if graph != want {
		t.Errorf("unexpected graph:\n got %s\nwant %s", graph, want)
	}
}

func TestFilterGraphUsesOverlaySettings(t *testing.T) {
	o := DefaultOverlay()
	o.Text = "Other"
	o.AngleDeg = 30

	graph := o.FilterGraph("font='Arial':")
	for _, part := range []string{"text='Other':font='Arial':", "rotate=30*PI/180"} {
		if !strings.Contains(graph, part) {
			t.Errorf("expected graph to contain %q, got %s", part, graph)
		}
	}
}
