package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/filmframe/pkg/config"
)

func TestDefaultDirs(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name  string
		env   string
		value string
		fn    func() (string, error)
		want  string
	}{
		{"cache default", "XDG_CACHE_HOME", "", cacheDir, filepath.Join(home, ".cache", appName)},
		{"cache xdg", "XDG_CACHE_HOME", "/tmp/xdg-cache", cacheDir, filepath.Join("/tmp/xdg-cache", appName)},
		{"settings default", "XDG_CONFIG_HOME", "", settingsPath, filepath.Join(home, ".config", appName, settingsFile)},
		{"settings xdg", "XDG_CONFIG_HOME", "/tmp/xdg-config", settingsPath, filepath.Join("/tmp/xdg-config", appName, settingsFile)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCLICacheDirFromSettings(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	c := New(io.Discard, LogInfo)
	c.Settings = &config.Settings{}
	if got, _ := c.cacheDir(); got != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("cacheDir() without setting = %q", got)
	}

	c.Settings.Cache.Dir = "/srv/filmframe-cache"
	if got, _ := c.cacheDir(); got != "/srv/filmframe-cache" {
		t.Errorf("cacheDir() with setting = %q", got)
	}
}

func TestLoadSettingsFromConfigFlag(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("product = \"Roll\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	c.settingsPath = path
	if err := c.loadSettings(); err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if c.Settings.Product != "Roll" {
		t.Errorf("Product = %q, want Roll", c.Settings.Product)
	}
}
