package render

import "testing"

func TestSelectFont(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		existing []string
		want     string
	}{
		{"windows first candidate", "windows", []string{"C:/Windows/Fonts/arial.ttf", "C:/Windows/Fonts/segoeui.ttf"}, "C:/Windows/Fonts/arial.ttf"},
		{"windows later candidate", "windows", []string{"C:/Windows/Fonts/segoeui.ttf"}, "C:/Windows/Fonts/segoeui.ttf"},
		{"darwin", "darwin", []string{"/Library/Fonts/Arial.ttf"}, "/Library/Fonts/Arial.ttf"},
		{"linux", "linux", []string{"/usr/share/fonts/truetype/freefont/FreeSans.ttf"}, "/usr/share/fonts/truetype/freefont/FreeSans.ttf"},
		{"none found", "linux", nil, ""},
		{"unknown platform", "plan9", []string{"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := make(map[string]bool)
			for _, p := range tt.existing {
				set[p] = true
			}
			got := SelectFont(tt.goos, func(p string) bool { return set[p] })
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFontParam(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "font='Arial':"},
		{"/usr/share/fonts/a.ttf", "fontfile='/usr/share/fonts/a.ttf':"},
		{`C:\Windows\Fonts\arial.ttf`, "fontfile='C:/Windows/Fonts/arial.ttf':"},
	}

	for _, tt := range tests {
		if got := FontParam(tt.in); got != tt.want {
			t.Errorf("FontParam(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
