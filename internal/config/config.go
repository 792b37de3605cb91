// Package config loads render-service settings from defaults, an optional TOML
// file, and the environment, in that order of precedence (environment wins).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"lifedemo/internal/pkg/errors"
)

// DefaultSampleURL is the stock clip every render starts from.
const DefaultSampleURL = "https://www.w3schools.com/html/mov_bbb.mp4"

// Config is the full service configuration.
type Config struct {
	Server Server `toml:"server"`
	Render Render `toml:"render"`
	Share  Share  `toml:"share"`
	Log    Log    `toml:"log"`
}

// Server holds HTTP listener settings.
type Server struct {
	Port               string   `toml:"port"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
	ShutdownTimeout    Duration `toml:"shutdown_timeout"`
}

// Render holds the pipeline settings.
type Render struct {
	AssetsDir  string   `toml:"assets_dir"`
	OutputsDir string   `toml:"outputs_dir"`
	SampleURL  string   `toml:"sample_url"`
	FFmpegPath string   `toml:"ffmpeg_path"`
	FontFile   string   `toml:"font_file"`
	OutputTTL  Duration `toml:"output_ttl"`
	Timeout    Duration `toml:"timeout"`
}

// Share selects and configures the external link provider.
type Share struct {
	Provider string   `toml:"provider"`
	Timeout  Duration `toml:"timeout"`
	FileIO   FileIO   `toml:"fileio"`
	GDrive   GDrive   `toml:"gdrive"`
	MinIO    MinIO    `toml:"minio"`
}

// FileIO configures the file.io ephemeral host.
type FileIO struct {
	URL string `toml:"url"`
}

// GDrive configures Google Drive sharing through an OAuth refresh token.
type GDrive struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RefreshToken string `toml:"refresh_token"`
	FolderID     string `toml:"folder_id"`
}

// MinIO configures an S3-compatible bucket handing out presigned links.
type MinIO struct {
	Endpoint  string   `toml:"endpoint"`
	AccessKey string   `toml:"access_key"`
	SecretKey string   `toml:"secret_key"`
	Bucket    string   `toml:"bucket"`
	Region    string   `toml:"region"`
	UseSSL    bool     `toml:"use_ssl"`
	URLExpiry Duration `toml:"url_expiry"`
}

// Log mirrors logger.Config.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Source bool   `toml:"source"`
}

// Duration decodes TOML strings such as "10m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Port:               "5000",
			CORSAllowedOrigins: []string{"*"},
			ShutdownTimeout:    Duration{30 * time.Second},
		},
		Render: Render{
			AssetsDir:  "assets",
			OutputsDir: "outputs",
			SampleURL:  DefaultSampleURL,
			FFmpegPath: "ffmpeg",
			OutputTTL:  Duration{10 * time.Minute},
			Timeout:    Duration{5 * time.Minute},
		},
		Share: Share{
			Provider: "fileio",
			Timeout:  Duration{60 * time.Second},
			FileIO:   FileIO{URL: "https://file.io"},
			MinIO:    MinIO{URLExpiry: Duration{10 * time.Minute}},
		},
		Log: Log{Level: "info", Format: "json"},
	}
}

// Load builds the configuration. An empty path falls back to LIFEDEMO_CONFIG;
// when neither is set no file is read.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = strings.TrimSpace(os.Getenv("LIFEDEMO_CONFIG"))
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.WrapWithCode(err, errors.CodeConfig, "config.load", "read config file")
		}
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, errors.WrapWithCode(err, errors.CodeConfig, "config.load", "parse config file")
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return errors.Config("PORT", fmt.Sprintf("port must be numeric, got %q", c.Server.Port))
	}
	if strings.TrimSpace(c.Render.AssetsDir) == "" {
		return errors.Config("ASSETS_DIR", "assets dir is required")
	}
	if strings.TrimSpace(c.Render.OutputsDir) == "" {
		return errors.Config("OUTPUTS_DIR", "outputs dir is required")
	}
	if strings.TrimSpace(c.Render.SampleURL) == "" {
		return errors.Config("SAMPLE_URL", "sample url is required")
	}
	if c.Render.OutputTTL.Duration <= 0 {
		return errors.Config("OUTPUT_TTL", "output ttl must be positive")
	}

	switch c.Share.Provider {
	case "", "none", "fileio":
	case "gdrive":
		g := c.Share.GDrive
		if g.ClientID == "" || g.ClientSecret == "" || g.RefreshToken == "" {
			return errors.Config("GDRIVE_REFRESH_TOKEN", "gdrive share requires client id, client secret and refresh token")
		}
	case "minio":
		m := c.Share.MinIO
		if m.Endpoint == "" || m.Bucket == "" {
			return errors.Config("MINIO_BUCKET", "minio share requires endpoint and bucket")
		}
	default:
		return errors.Config("SHARE_PROVIDER", fmt.Sprintf("unknown share provider: %s", c.Share.Provider))
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	dur := func(key string, dst *Duration) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		if err := dst.UnmarshalText([]byte(v)); err != nil {
			return errors.Config(key, fmt.Sprintf("invalid duration %q", v))
		}
		return nil
	}

	str("PORT", &cfg.Server.Port)
	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok {
		if origins := splitCSV(v); len(origins) > 0 {
			cfg.Server.CORSAllowedOrigins = origins
		}
	}

	str("ASSETS_DIR", &cfg.Render.AssetsDir)
	str("OUTPUTS_DIR", &cfg.Render.OutputsDir)
	str("SAMPLE_URL", &cfg.Render.SampleURL)
	str("FFMPEG_PATH", &cfg.Render.FFmpegPath)
	str("FONT_FILE", &cfg.Render.FontFile)

	str("SHARE_PROVIDER", &cfg.Share.Provider)
	str("FILEIO_URL", &cfg.Share.FileIO.URL)
	str("GDRIVE_CLIENT_ID", &cfg.Share.GDrive.ClientID)
	str("GDRIVE_CLIENT_SECRET", &cfg.Share.GDrive.ClientSecret)
	str("GDRIVE_REFRESH_TOKEN", &cfg.Share.GDrive.RefreshToken)
	str("GDRIVE_FOLDER_ID", &cfg.Share.GDrive.FolderID)
	str("MINIO_ENDPOINT", &cfg.Share.MinIO.Endpoint)
	str("MINIO_ACCESS_KEY", &cfg.Share.MinIO.AccessKey)
	str("MINIO_SECRET_KEY", &cfg.Share.MinIO.SecretKey)
	str("MINIO_BUCKET", &cfg.Share.MinIO.Bucket)
	str("MINIO_REGION", &cfg.Share.MinIO.Region)
	if v, ok := lookup("MINIO_USE_SSL"); ok && v != "" {
		cfg.Share.MinIO.UseSSL = strings.EqualFold(strings.TrimSpace(v), "true")
	}

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	if v, ok := lookup("LOG_SOURCE"); ok && v != "" {
		cfg.Log.Source = strings.TrimSpace(v) == "true"
	}

	for key, dst := range map[string]*Duration{
		"OUTPUT_TTL":       &cfg.Render.OutputTTL,
		"RENDER_TIMEOUT":   &cfg.Render.Timeout,
		"SHARE_TIMEOUT":    &cfg.Share.Timeout,
		"MINIO_URL_EXPIRY": &cfg.Share.MinIO.URLExpiry,
		"SHUTDOWN_TIMEOUT": &cfg.Server.ShutdownTimeout,
	} {
		if err := dur(key, dst); err != nil {
			return err
		}
	}
	return nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
