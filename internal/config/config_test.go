package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lifedemo/internal/pkg/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LIFEDEMO_CONFIG", "PORT", "ASSETS_DIR", "OUTPUTS_DIR", "SAMPLE_URL", "FFMPEG_PATH",
		"FONT_FILE", "OUTPUT_TTL", "RENDER_TIMEOUT", "SHARE_PROVIDER", "SHARE_TIMEOUT",
		"CORS_ALLOWED_ORIGINS", "MINIO_ENDPOINT", "MINIO_BUCKET", "MINIO_USE_SSL",
		"GDRIVE_CLIENT_ID", "GDRIVE_CLIENT_SECRET", "GDRIVE_REFRESH_TOKEN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "5000" {
		t.Errorf("expected port 5000, got %s", cfg.Server.Port)
	}
	if cfg.Render.OutputTTL.Duration != 10*time.Minute {
		t.Errorf("expected 10m ttl, got %s", cfg.Render.OutputTTL)
	}
	if cfg.Render.SampleURL != DefaultSampleURL {
		t.Errorf("unexpected sample url %s", cfg.Render.SampleURL)
	}
	if cfg.Share.Provider != "fileio" {
		t.Errorf("expected fileio provider, got %s", cfg.Share.Provider)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "lifedemo.toml")
	content := `
[server]
port = "7000"

[render]
outputs_dir = "/tmp/renders"
output_ttl = "2m"

[share]
provider = "none"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected env to override file port, got %s", cfg.Server.Port)
	}
	if cfg.Render.OutputsDir != "/tmp/renders" {
		t.Errorf("expected outputs dir from file, got %s", cfg.Render.OutputsDir)
	}
	if cfg.Render.OutputTTL.Duration != 2*time.Minute {
		t.Errorf("expected 2m ttl from file, got %s", cfg.Render.OutputTTL)
	}
	if cfg.Share.Provider != "none" {
		t.Errorf("expected provider none, got %s", cfg.Share.Provider)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 2 || cfg.Server.CORSAllowedOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", cfg.Server.CORSAllowedOrigins)
	}
}

func TestLoadUsesConfigEnvVar(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "c.toml")
	if err := os.WriteFile(path, []byte("[render]\nffmpeg_path = \"/opt/ffmpeg\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LIFEDEMO_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.FFmpegPath != "/opt/ffmpeg" {
		t.Errorf("expected ffmpeg path from LIFEDEMO_CONFIG file, got %s", cfg.Render.FFmpegPath)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		key  string
	}{
		{"bad port", map[string]string{"PORT": "http"}, "PORT"},
		{"bad ttl", map[string]string{"OUTPUT_TTL": "soon"}, "OUTPUT_TTL"},
		{"negative ttl", map[string]string{"OUTPUT_TTL": "-1m"}, "OUTPUT_TTL"},
		{"unknown provider", map[string]string{"SHARE_PROVIDER": "dropbox"}, "SHARE_PROVIDER"},
		{"minio without bucket", map[string]string{"SHARE_PROVIDER": "minio", "MINIO_ENDPOINT": "localhost:9000"}, "MINIO_BUCKET"},
		{"gdrive without token", map[string]string{"SHARE_PROVIDER": "gdrive", "GDRIVE_CLIENT_ID": "id"}, "GDRIVE_REFRESH_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsCode(err, errors.CodeConfig) {
				t.Fatalf("expected config error, got %v", err)
			}
			if got := errors.GetFields(err)["key"]; got != tt.key {
				t.Errorf("expected key %s, got %v", tt.key, got)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.IsCode(err, errors.CodeConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestLoadEmptyProviderDisablesSharing(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "lifedemo.toml")
	if err := os.WriteFile(path, []byte("[share]\nprovider = \"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Share.Provider != "" {
		t.Errorf("expected empty provider, got %q", cfg.Share.Provider)
	}
}
