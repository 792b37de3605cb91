package share

import (
	"context"
	"fmt"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"lifedemo/internal/adapters/share/fileio"
	"lifedemo/internal/adapters/share/gdrive"
	minioshare "lifedemo/internal/adapters/share/minio"
	"lifedemo/internal/config"
	"lifedemo/internal/ports"
)

// NewProvider builds the configured share provider. It returns a nil provider
// when sharing is disabled ("none").
func NewProvider(ctx context.Context, cfg config.Share) (ports.ShareProvider, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil

	case "fileio":
		return fileio.New(cfg.FileIO.URL, &http.Client{Timeout: cfg.Timeout.Duration}), nil

	case "gdrive":
		return newGDriveProvider(ctx, cfg.GDrive)

	case "minio":
		return newMinIOProvider(cfg.MinIO)

	default:
		return nil, fmt.Errorf("unknown share provider: %s", cfg.Provider)
	}
}

func newGDriveProvider(ctx context.Context, g config.GDrive) (ports.ShareProvider, error) {
	conf := OAuthConfig(g.ClientID, g.ClientSecret, "")

	tok := &oauth2.Token{RefreshToken: g.RefreshToken}
	httpClient := conf.Client(ctx, tok)

	srv, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}

	return gdrive.NewClient(srv, g.FolderID), nil
}

func newMinIOProvider(m config.MinIO) (ports.ShareProvider, error) {
	mc, err := minio.New(m.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(m.AccessKey, m.SecretKey, ""),
		Secure: m.UseSSL,
		Region: m.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connection: %w", err)
	}
	return minioshare.NewClient(mc, m.Bucket, m.URLExpiry.Duration), nil
}

// OAuthConfig is the Drive OAuth client shared by the provider and the
// gdrive-auth helper. Only the per-file scope is requested.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{drive.DriveFileScope},
		RedirectURL:  redirectURL,
	}
}
