package render

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"lifedemo/internal/metrics"
	"lifedemo/internal/pkg/logger"
)

// Janitor deletes rendered outputs once their time to live runs out.
// Each output has its own timer; nothing coordinates them.
type Janitor struct {
	log     *logger.Logger
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewJanitor creates an idle janitor.
func NewJanitor(log *logger.Logger) *Janitor {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Janitor{
		log:    log.WithComponent("janitor"),
		timers: make(map[string]*time.Timer),
	}
}

// Schedule removes path after ttl. Scheduling the same path again restarts its timer.
func (j *Janitor) Schedule(path string, ttl time.Duration) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.stopped {
		return
	}

	if t, ok := j.timers[path]; ok {
		t.Stop()
	} else {
		metrics.OutputsPending.Inc()
	}
	j.timers[path] = time.AfterFunc(ttl, func() { j.expire(path) })
}

func (j *Janitor) expire(path string) {
	j.mu.Lock()
	if _, ok := j.timers[path]; !ok {
		j.mu.Unlock()
		return
	}
	delete(j.timers, path)
	j.mu.Unlock()

	metrics.OutputsPending.Dec()
	j.remove(path, "expired")
}

func (j *Janitor) remove(path, reason string) {
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			j.log.Warn("failed to delete output", "path", path, "error", err.Error())
		}
		return
	}
	metrics.OutputsDeletedTotal.WithLabelValues(reason).Inc()
	j.log.Debug("output deleted", "path", path, "reason", reason)
}

// Pending reports how many outputs are waiting for deletion.
func (j *Janitor) Pending() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.timers)
}

// Sweep handles outputs left in dir by a previous process: files older than ttl
// are deleted now, younger ones are scheduled for the rest of their lifetime.
func (j *Janitor) Sweep(dir string, ttl time.Duration, now time.Time) (removed, scheduled int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mp4") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		age := now.Sub(info.ModTime())
		if age >= ttl {
			j.remove(path, "stale")
			removed++
			continue
		}
		j.Schedule(path, ttl-age)
		scheduled++
	}

	j.log.Info("outputs swept", "dir", dir, "removed", removed, "scheduled", scheduled)
	return removed, scheduled, nil
}

// Stop cancels pending timers. Their files stay on disk for the next Sweep.
func (j *Janitor) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.stopped = true
	for path, t := range j.timers {
		t.Stop()
		metrics.OutputsPending.Dec()
		delete(j.timers, path)
	}
}
