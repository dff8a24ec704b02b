package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 of data. Source photographs are identified
// by the hash of their encoded bytes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ConfigHash returns the hash of the JSON form of a render config.
func ConfigHash(cfg any) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("serialize config: %w", err)
	}
	return Hash(data), nil
}

// ArtifactKeyOpts are the inputs besides the source image that determine an
// encoded frame.
type ArtifactKeyOpts struct {
	// ConfigHash is a hash of the full render config.
	ConfigHash string
	Format     string
	Quality    float64
	// Fonts fingerprints caption font overrides; empty for builtin fonts.
	Fonts string
}

// Keyer generates cache keys.
type Keyer interface {
	// PaletteKey returns the key for the palette of a source image.
	PaletteKey(sourceHash string) string

	// ArtifactKey returns the key for an encoded frame.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PaletteKey returns "palette:<sourceHash>".
func (DefaultKeyer) PaletteKey(sourceHash string) string {
	return "palette:" + sourceHash
}

// ArtifactKey returns "artifact:<hash>" where the hash covers the source
// hash and every option.
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%g", sourceHash, opts.ConfigHash, opts.Format, opts.Quality)
	if opts.Fonts != "" {
		fmt.Fprintf(h, "\x00%s", opts.Fonts)
	}
	return "artifact:" + hex.EncodeToString(h.Sum(nil))
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}
