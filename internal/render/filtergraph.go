package render

import (
	"fmt"
	"strconv"
)

// Overlay describes the fixed caption composition.
type Overlay struct {
	Text        string
	Width       int
	Height      int
	Seconds     int
	FontSize    int
	FontColor   string
	BorderColor string
	BorderWidth int
	AngleDeg    int
	CRF         int
	Preset      string
}

// DefaultOverlay is the "Life Demo" caption on a 1080x1920 portrait canvas.
func DefaultOverlay() Overlay {
	return Overlay{
		Text:        "Life Demo",
		Width:       1080,
		Height:      1920,
		Seconds:     10,
		FontSize:    160,
		FontColor:   "yellow",
		BorderColor: "black",
		BorderWidth: 10,
		AngleDeg:    45,
		CRF:         23,
		Preset:      "veryfast",
	}
}

// FilterGraph returns the filter_complex value. fontParam comes from FontParam
// and already carries its trailing ':'.
//
// The source is letterboxed onto the canvas as [base]. The caption is drawn on a
// transparent canvas, rotated without clipping its corners and overlaid centered.
func (o Overlay) FilterGraph(fontParam string) string {
	return fmt.Sprintf(
		"[0:v]scale=%[1]d:%[2]d:force_original_aspect_ratio=decrease,pad=%[1]d:%[2]d:(ow-iw)/2:(oh-ih)/2:color=black[base];"+
			"color=c=black@0.0:s=%[1]dx%[2]d,format=rgba[ct];"+
			"[ct]drawtext=text='%[3]s':%[4]sfontcolor=%[5]s:fontsize=%[6]d:bordercolor=%[7]s:borderw=%[8]d:x=(w-tw)/2:y=(h-th)/2[txt];"+
			"[txt]rotate=%[9]d*PI/180:ow=rotw(iw):oh=roth(ih):c=none[rot];"+
			"[base][rot]overlay=(W-w)/2:(H-h)/2:format=auto,format=yuv420p[final]",
		o.Width, o.Height,
		o.Text, fontParam, o.FontColor, o.FontSize, o.BorderColor, o.BorderWidth,
		o.AngleDeg,
	)
}

// BuildArgs returns the ffmpeg argument list rendering input into output.
func BuildArgs(o Overlay, input, output, fontParam string) []string {
	return []string{
		"-y",
		"-t", strconv.Itoa(o.Seconds),
		"-i", input,
		"-filter_complex", o.FilterGraph(fontParam),
		"-map", "[final]",
		"-map", "0:a?",
		"-c:v", "libx264",
		"-preset", o.Preset,
		"-crf", strconv.Itoa(o.CRF),
		"-c:a", "aac",
		"-shortest",
		output,
	}
}
