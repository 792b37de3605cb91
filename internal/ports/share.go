package ports

import (
	"context"
	"time"
)

type ShareInput struct {
	// LocalPath is the rendered file on disk.
	LocalPath string
	// Name is the file name presented to the host (e.g. "<id>.mp4").
	Name        string
	ContentType string
	Size        int64
}

type ShareOutput struct {
	// URL is a link anyone can open without credentials.
	URL string
	// ExpiresAt is zero when the host does not report an expiry.
	ExpiresAt time.Time
}

// ShareProvider uploads a rendered file somewhere reachable from outside
// (file.io, Google Drive, an S3 bucket) and returns a link to it.
type ShareProvider interface {
	Provider() string
	Share(ctx context.Context, in ShareInput) (ShareOutput, error)
}
