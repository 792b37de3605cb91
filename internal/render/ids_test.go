package render

import (
	"regexp"
	"testing"
	"time"
)

var jobIDPattern = regexp.MustCompile(`^1700000000123-[0-9a-z]{6}$`)

var jobIDPatternAny = regexp.MustCompile(`^[0-9]{13}-[0-9a-z]{6}$`)

func TestNewJobID(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := NewJobID(now)
		if !jobIDPattern.MatchString(id) {
			t.Fatalf("unexpected id format %q", id)
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		t.Error("expected random suffixes to differ")
	}
}
