package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/filmframe/pkg/buildinfo"
	"github.com/matzehuels/filmframe/pkg/cache"
	"github.com/matzehuels/filmframe/pkg/config"
	"github.com/matzehuels/filmframe/pkg/frame"
	"github.com/matzehuels/filmframe/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "filmframe"

	// settingsFile is the settings file name inside the config directory.
	settingsFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger   *log.Logger
	Settings *config.Settings

	// settingsPath is the --config flag value.
	settingsPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "FilmFrame frames photographs in analog film styles",
		Long:         `FilmFrame composites photographs into gallery, instant-film, film-negative and cinema frames with captions, color palettes and film effects.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadSettings()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.settingsPath, "config", "", "settings file (default: "+filepath.Join("$XDG_CONFIG_HOME", appName, settingsFile)+")")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.variantsCommand())
	root.AddCommand(c.styleCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Settings
// =============================================================================

// loadSettings reads settings from --config, or the default settings file
// when it exists, plus the environment.
func (c *CLI) loadSettings() error {
	path := c.settingsPath
	if path == "" {
		if p, err := settingsPath(); err == nil {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	s, err := config.LoadSettings(path)
	if err != nil {
		return err
	}
	if path != "" {
		c.Logger.Debug("loaded settings", "path", path)
	}
	c.Settings = s
	return nil
}

// settings returns the loaded settings, loading them on first use.
func (c *CLI) settings() *config.Settings {
	if c.Settings == nil {
		if err := c.loadSettings(); err != nil {
			c.Logger.Warn("using default settings", "error", err)
			c.Settings = &config.Settings{}
		}
	}
	return c.Settings
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// useFonts installs the font overrides from the settings and style flags
// on the runner's compositor.
func (c *CLI) useFonts(r *pipeline.Runner, style *styleFlags) error {
	set, err := style.fontSet(c.settings())
	if err != nil {
		return err
	}
	if fp := set.Fingerprint(); fp != "" {
		c.Logger.Debug("using font overrides", "fonts", fp)
	}
	r.Compositor = frame.NewCompositor(c.Logger)
	r.Compositor.Fonts = set
	return nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	s := c.settings()
	if noCache || !s.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if dir := c.settings().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/filmframe/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// settingsPath returns the default settings file (~/.config/filmframe/config.toml).
func settingsPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, settingsFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, settingsFile), nil
}
