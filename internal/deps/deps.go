// Package deps reports whether the external tools and directories the service needs are usable.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Requirement defines an external binary the render pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// RenderRequirements lists the binaries used to render, with ffmpeg resolved from ffmpegPath.
func RenderRequirements(ffmpegPath string) []Requirement {
	if strings.TrimSpace(ffmpegPath) == "" {
		ffmpegPath = "ffmpeg"
	}
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpegPath, Description: "Burns the caption into the sample clip"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Path = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// CheckWritableDir creates dir when missing and verifies a file can be written in it.
func CheckWritableDir(name, dir string) Status {
	status := Status{Name: name, Command: dir}
	if strings.TrimSpace(dir) == "" {
		status.Detail = "directory not configured"
		return status
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		status.Detail = err.Error()
		return status
	}
	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		status.Detail = err.Error()
		return status
	}
	probe.Close()
	_ = os.Remove(probe.Name())

	if abs, err := filepath.Abs(dir); err == nil {
		status.Path = abs
	}
	status.Available = true
	return status
}

// Missing returns the required statuses that are not available.
func Missing(statuses []Status) []Status {
	var out []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			out = append(out, s)
		}
	}
	return out
}
