// Package config loads frame styles and application settings.
//
// A style is a TOML file describing a [frame.RenderConfig]. Keys that are
// absent keep their default value, so a style only needs to name what it
// changes:
//
//	variant = "instant-film"
//	filter = "soft"
//
//	[effects]
//	grain = true
//
//	[caption]
//	camera = "Polaroid SX-70"
//
// Settings configure the application itself (product name, pacing, output
// directory, server and cache) and are read from an optional TOML file plus
// FILMFRAME_* environment variables.
package config

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/filmframe/pkg/errors"
	"github.com/matzehuels/filmframe/pkg/frame"
)

// LoadStyle reads the style file at path.
func LoadStyle(path string) (frame.RenderConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return frame.RenderConfig{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open style %s", path)
	}
	defer f.Close()
	return DecodeStyle(f)
}

// DecodeStyle decodes a TOML style on top of [frame.DefaultConfig] and
// validates the result. Unknown keys are rejected so typos do not silently
// fall back to defaults.
func DecodeStyle(r io.Reader) (frame.RenderConfig, error) {
	cfg := frame.DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return frame.RenderConfig{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse style")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return frame.RenderConfig{}, errors.New(errors.ErrCodeInvalidInput,
			"unknown style keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return frame.RenderConfig{}, err
	}
	return cfg, nil
}

// EncodeStyle writes cfg as TOML.
func EncodeStyle(w io.Writer, cfg frame.RenderConfig) error {
	return toml.NewEncoder(w).Encode(cfg)
}
