package fileio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"lifedemo/internal/ports"
)

// Client implements ports.ShareProvider against the file.io upload API.
// file.io links are single-download and expire on the host's schedule.
type Client struct {
	url  string
	http *http.Client
}

func New(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Client{url: url, http: httpClient}
}

func (c *Client) Provider() string { return "fileio" }

type uploadResponse struct {
	Success bool   `json:"success"`
	Link    string `json:"link"`
	Expires string `json:"expires"`
}

func (c *Client) Share(ctx context.Context, in ports.ShareInput) (ports.ShareOutput, error) {
	f, err := os.Open(in.LocalPath)
	if err != nil {
		return ports.ShareOutput{}, err
	}
	defer f.Close()

	name := in.Name
	if name == "" {
		name = filepath.Base(in.LocalPath)
	}

	// Stream the multipart body instead of buffering the whole video.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", name)
		if err == nil {
			_, err = io.Copy(part, f)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, pr)
	if err != nil {
		pr.Close()
		return ports.ShareOutput{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := c.http.Do(req)
	if err != nil {
		return ports.ShareOutput{}, fmt.Errorf("fileio upload failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return ports.ShareOutput{}, fmt.Errorf("fileio http %d", res.StatusCode)
	}

	var body uploadResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return ports.ShareOutput{}, fmt.Errorf("fileio decode response: %w", err)
	}
	if body.Link == "" {
		return ports.ShareOutput{}, fmt.Errorf("fileio response has no link")
	}

	out := ports.ShareOutput{URL: body.Link}
	if t, err := time.Parse(time.RFC3339, body.Expires); err == nil {
		out.ExpiresAt = t
	}
	return out, nil
}
