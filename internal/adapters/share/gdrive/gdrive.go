package gdrive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"lifedemo/internal/ports"
)

// Client implements ports.ShareProvider backed by Google Drive.
// Each render is uploaded as a new file and opened to "anyone with the link".
type Client struct {
	srv      *drive.Service
	folderID string
}

func NewClient(srv *drive.Service, folderID string) *Client {
	return &Client{srv: srv, folderID: folderID}
}

func (c *Client) Provider() string { return "gdrive" }

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

	file := &drive.File{Name: name}
	if c.folderID != "" {
		file.Parents = []string{c.folderID}
	}

	call := c.srv.Files.Create(file).Fields("id", "webContentLink", "webViewLink")
	if in.ContentType != "" {
		call = call.Media(f, googleapi.ContentType(in.ContentType))
	} else {
		call = call.Media(f)
	}

	created, err := call.Context(ctx).Do()
	if err != nil {
		return ports.ShareOutput{}, fmt.Errorf("gdrive upload failed: %w", err)
	}

	perm := &drive.Permission{Type: "anyone", Role: "reader"}
	if _, err := c.srv.Permissions.Create(created.Id, perm).Context(ctx).Do(); err != nil {
		return ports.ShareOutput{}, fmt.Errorf("gdrive share permission failed: %w", err)
	}

	link := created.WebContentLink
	if link == "" {
		link = created.WebViewLink
	}
	if link == "" {
		return ports.ShareOutput{}, fmt.Errorf("gdrive returned no link for file %s", created.Id)
	}
	return ports.ShareOutput{URL: link}, nil
}
