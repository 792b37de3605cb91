package share

import (
	"context"
	"strings"
	"testing"
	"time"

	"lifedemo/internal/config"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Share
		provider string
		wantNil  bool
		wantErr  bool
	}{
		{name: "none", cfg: config.Share{Provider: "none"}, wantNil: true},
		{name: "empty", cfg: config.Share{}, wantNil: true},
		{name: "fileio", cfg: config.Share{Provider: "fileio", FileIO: config.FileIO{URL: "https://file.io"}}, provider: "fileio"},
		{
			name: "minio",
			cfg: config.Share{Provider: "minio", MinIO: config.MinIO{
				Endpoint: "localhost:9000", Bucket: "renders", AccessKey: "a", SecretKey: "b",
				URLExpiry: config.Duration{Duration: time.Minute},
			}},
			provider: "minio",
		},
		{
			name: "gdrive",
			cfg: config.Share{Provider: "gdrive", GDrive: config.GDrive{
				ClientID: "id", ClientSecret: "secret", RefreshToken: "refresh",
			}},
			provider: "gdrive",
		},
		{name: "unknown", cfg: config.Share{Provider: "dropbox"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if p != nil {
					t.Fatalf("expected nil provider, got %s", p.Provider())
				}
				return
			}
			if p.Provider() != tt.provider {
				t.Errorf("expected provider %s, got %s", tt.provider, p.Provider())
			}
		})
	}
}

func TestOAuthConfigRequestsFileScopeOnly(t *testing.T) {
	conf := OAuthConfig("id", "secret", "http://127.0.0.1:1234/callback")
	if len(conf.Scopes) != 1 || !strings.HasSuffix(conf.Scopes[0], "/drive.file") {
		t.Errorf("unexpected scopes %v", conf.Scopes)
	}
	if conf.RedirectURL != "http://127.0.0.1:1234/callback" {
		t.Errorf("unexpected redirect %s", conf.RedirectURL)
	}
}
