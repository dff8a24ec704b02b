package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/matzehuels/filmframe/pkg/errors"
	"github.com/matzehuels/filmframe/pkg/fonts"
)

// Settings is the application configuration.
type Settings struct {
	Product   string `toml:"product" env:"FILMFRAME_PRODUCT" env-default:"FilmFrame" env-description:"Product name used in export file names"`
	OutputDir string `toml:"output_dir" env:"FILMFRAME_OUTPUT_DIR" env-default:"." env-description:"Directory exports are written to"`
	Style     string `toml:"style" env:"FILMFRAME_STYLE" env-description:"Default style file"`

	// Fonts maps a caption role (display, italic, sans, script, mono, wide)
	// to a TrueType file.
	Fonts map[string]string `toml:"fonts" env:"FILMFRAME_FONTS" env-description:"Font overrides as role:path pairs separated by commas"`

	Batch   BatchSettings   `toml:"batch"`
	Quality QualitySettings `toml:"quality"`
	Server  ServerSettings  `toml:"server"`
	Cache   CacheSettings   `toml:"cache"`
}

// BatchSettings configures the batch runner.
type BatchSettings struct {
	Delay time.Duration `toml:"delay" env:"FILMFRAME_BATCH_DELAY" env-default:"800ms" env-description:"Pause between two batch exports"`
}

// QualitySettings holds JPEG qualities in (0, 1].
type QualitySettings struct {
	Preview float64 `toml:"preview" env:"FILMFRAME_PREVIEW_QUALITY" env-default:"0.8" env-description:"JPEG quality of previews"`
	Export  float64 `toml:"export" env:"FILMFRAME_EXPORT_QUALITY" env-default:"0.95" env-description:"JPEG quality of saved exports"`
}

// ServerSettings configures the HTTP preview server.
type ServerSettings struct {
	Addr           string        `toml:"addr" env:"FILMFRAME_SERVER_ADDR" env-default:":8080" env-description:"Listen address"`
	ReadTimeout    time.Duration `toml:"read_timeout" env:"FILMFRAME_SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout   time.Duration `toml:"write_timeout" env:"FILMFRAME_SERVER_WRITE_TIMEOUT" env-default:"60s"`
	IdleTimeout    time.Duration `toml:"idle_timeout" env:"FILMFRAME_SERVER_IDLE_TIMEOUT" env-default:"120s"`
	MaxUploadBytes int64         `toml:"max_upload_bytes" env:"FILMFRAME_SERVER_MAX_UPLOAD" env-default:"33554432" env-description:"Largest accepted upload in bytes"`
}

// CacheSettings selects the cache backend.
type CacheSettings struct {
	Enabled       bool   `toml:"enabled" env:"FILMFRAME_CACHE" env-default:"true" env-description:"Enable palette and artifact caching"`
	Dir           string `toml:"dir" env:"FILMFRAME_CACHE_DIR" env-description:"File cache directory (default: user cache dir)"`
	RedisAddr     string `toml:"redis_addr" env:"FILMFRAME_REDIS_ADDR" env-description:"Redis address; enables the shared cache for the server"`
	RedisPassword string `toml:"redis_password" env:"FILMFRAME_REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db" env:"FILMFRAME_REDIS_DB" env-default:"0"`
	RedisPrefix   string `toml:"redis_prefix" env:"FILMFRAME_REDIS_PREFIX" env-default:"filmframe:"`
}

// LoadSettings reads settings from path (TOML) and the environment.
// Environment variables override the file. An empty path reads the
// environment only.
func LoadSettings(path string) (*Settings, error) {
	var s Settings
	var err error
	if path == "" {
		err = cleanenv.ReadEnv(&s)
	} else {
		err = cleanenv.ReadConfig(path, &s)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "load settings")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	if err := errors.ValidateProductName(s.Product); err != nil {
		return err
	}
	if s.Batch.Delay < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "batch delay must not be negative")
	}
	for _, q := range []struct {
		name string
		v    float64
	}{
		{"preview quality", s.Quality.Preview},
		{"export quality", s.Quality.Export},
	} {
		if q.v <= 0 || q.v > 1 {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be in (0, 1], got %g", q.name, q.v)
		}
	}
	if s.Server.MaxUploadBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max upload size must be positive")
	}
	for role := range s.Fonts {
		if _, err := fonts.ParseRole(role); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "fonts")
		}
	}
	return nil
}

// EnvHelp describes every supported environment variable.
func EnvHelp() (string, error) {
	header := "FilmFrame environment variables:"
	return cleanenv.GetDescription(&Settings{}, &header)
}
