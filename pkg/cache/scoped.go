package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one cache backend without seeing each other's entries.
//
// Example usage:
//
//	// Keys for the preview server
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "filmframe:server:")
//
//	// Keys for the CLI
//	cliKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PaletteKey generates a prefixed key for palette caching.
func (k *ScopedKeyer) PaletteKey(sourceHash string) string {
	return k.prefix + k.inner.PaletteKey(sourceHash)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, opts)
}
