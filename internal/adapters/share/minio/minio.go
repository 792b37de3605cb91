package minio

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"

	"lifedemo/internal/ports"
)

// Client implements ports.ShareProvider on an S3-compatible bucket.
// Objects are private; the returned link is a presigned GET valid for expiry.
type Client struct {
	mc     *minio.Client
	bucket string
	prefix string
	expiry time.Duration
}

func NewClient(mc *minio.Client, bucket string, expiry time.Duration) *Client {
	if expiry <= 0 {
		expiry = 10 * time.Minute
	}
	return &Client{mc: mc, bucket: bucket, prefix: "renders/", expiry: expiry}
}

func (c *Client) Provider() string { return "minio" }

func (c *Client) Share(ctx context.Context, in ports.ShareInput) (ports.ShareOutput, error) {
	name := in.Name
	if name == "" {
		name = filepath.Base(in.LocalPath)
	}
	key := c.prefix + name

	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := c.mc.FPutObject(ctx, c.bucket, key, in.LocalPath, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return ports.ShareOutput{}, fmt.Errorf("minio upload failed: %w", err)
	}

	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", name))

	u, err := c.mc.PresignedGetObject(ctx, c.bucket, key, c.expiry, params)
	if err != nil {
		return ports.ShareOutput{}, fmt.Errorf("minio presign failed: %w", err)
	}
	return ports.ShareOutput{
		URL:       u.String(),
		ExpiresAt: time.Now().UTC().Add(c.expiry),
	}, nil
}
