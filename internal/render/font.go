package render

import (
	"os"
	"runtime"
	"strings"
)

// goos picks the candidate list; tests override it.
var goos = runtime.GOOS

// fontCandidates lists platform font files tried in order.
var fontCandidates = map[string][]string{
	"windows": {
		"C:/Windows/Fonts/arial.ttf",
		"C:/Windows/Fonts/ARIAL.TTF",
		"C:/Windows/Fonts/segoeui.ttf",
	},
	"darwin": {
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"/Library/Fonts/Arial.ttf",
		"/System/Library/Fonts/Supplemental/Helvetica.ttc",
	},
	"linux": {
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/freefont/FreeSans.ttf",
	},
}

// fallbackFont is handed to drawtext by name when no font file is found.
const fallbackFont = "Arial"

// SelectFont returns the first candidate for goos that exists, or "".
// A nil exists uses os.Stat.
func SelectFont(goos string, exists func(string) bool) string {
	if exists == nil {
		exists = fileExists
	}
	for _, candidate := range fontCandidates[goos] {
		if exists(candidate) {
			return candidate
		}
	}
	return ""
}

// FontParam renders the drawtext font option, including its trailing ':'.
func FontParam(fontFile string) string {
	if fontFile == "" {
		return "font='" + fallbackFont + "':"
	}
	return "fontfile='" + strings.ReplaceAll(fontFile, `\`, "/") + "':"
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
