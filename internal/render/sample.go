package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/singleflight"

	"lifedemo/internal/metrics"
	"lifedemo/internal/pkg/errors"
	"lifedemo/internal/pkg/logger"
)

// SampleFile is the cached source clip name inside the assets directory.
const SampleFile = "sample.mp4"

// sampleFetchTimeout bounds the shared download, which outlives any single caller.
const sampleFetchTimeout = 2 * time.Minute

// SampleStore keeps one downloaded copy of the sample clip on disk.
type SampleStore struct {
	dir    string
	url    string
	client *http.Client
	log    *logger.Logger
	group  singleflight.Group
}

// NewSampleStore creates a store fetching url into dir. A nil client uses a 2 minute timeout.
func NewSampleStore(dir, url string, client *http.Client, log *logger.Logger) *SampleStore {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &SampleStore{
		dir:    dir,
		url:    url,
		client: client,
		log:    log.WithComponent("sample"),
	}
}

// Path is where the sample lives once fetched.
func (s *SampleStore) Path() string {
	return filepath.Join(s.dir, SampleFile)
}

// Ensure returns the local sample path, downloading it on first use.
// Concurrent callers share one download; other processes are kept out by a lock file.
// A caller whose ctx ends stops waiting, but the download carries on for the others.
func (s *SampleStore) Ensure(ctx context.Context) (string, error) {
	path := s.Path()
	if present(path) {
		metrics.SampleFetchesTotal.WithLabelValues("hit").Inc()
		return path, nil
	}

	ch := s.group.DoChan(path, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sampleFetchTimeout)
		defer cancel()
		return nil, s.fetch(fetchCtx, path)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			metrics.SampleFetchesTotal.WithLabelValues("error").Inc()
			return "", res.Err
		}
		return path, nil
	case <-ctx.Done():
		metrics.SampleFetchesTotal.WithLabelValues("error").Inc()
		return "", errors.WrapWithCode(ctx.Err(), errors.CodeSampleFetch, "render.sample", "wait for sample")
	}
}

func (s *SampleStore) fetch(ctx context.Context, path string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.WrapWithCode(err, errors.CodeSampleFetch, "render.sample", "create assets dir")
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, 200*time.Millisecond)
	if err != nil || !locked {
		if err == nil {
			err = fmt.Errorf("lock %s not acquired", lock.Path())
		}
		return errors.WrapWithCode(err, errors.CodeSampleFetch, "render.sample", "lock sample")
	}
	defer lock.Unlock()

	// Another process may have finished while we waited for the lock.
	if present(path) {
		metrics.SampleFetchesTotal.WithLabelValues("hit").Inc()
		return nil
	}

	start := time.Now()
	s.log.Info("downloading sample", "url", s.url, "path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeSampleFetch, "render.sample", "build sample request")
	}
	res, err := s.client.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeSampleFetch, "render.sample", "download sample")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return errors.Newf(errors.CodeSampleFetch, "sample host returned %d", res.StatusCode).
			WithField("url", s.url)
	}

	tmp, err := os.CreateTemp(s.dir, "sample-*.part")
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeSampleFetch, "render.sample", "create temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	n, err := io.Copy(tmp, res.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeSampleFetch, "render.sample", "write sample")
	}
	if n == 0 {
		return errors.New(errors.CodeSampleFetch, "sample host returned an empty body")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.WrapWithCode(err, errors.CodeSampleFetch, "render.sample", "move sample into place")
	}

	metrics.SampleFetchesTotal.WithLabelValues("downloaded").Inc()
	s.log.Info("sample downloaded", "bytes", n, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func present(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular() && st.Size() > 0
}
