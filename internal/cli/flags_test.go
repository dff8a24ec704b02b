package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"golang.org/x/image/font/gofont/gomonobold"

	"github.com/matzehuels/filmframe/pkg/config"
	"github.com/matzehuels/filmframe/pkg/errors"
	"github.com/matzehuels/filmframe/pkg/frame"
)

func parseStyleFlags(t *testing.T, args ...string) *styleFlags {
	t.Helper()
	var f styleFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return &f
}

func TestStyleFlagsOverrides(t *testing.T) {
	t.Run("unset flags keep nil", func(t *testing.T) {
		o := parseStyleFlags(t).overrides()
		if o != (config.Overrides{}) {
			t.Errorf("overrides = %+v, want zero", o)
		}
	})

	t.Run("set flags", func(t *testing.T) {
		o := parseStyleFlags(t, "--variant", "cinema-scope", "--grain", "--strength", "0.5", "--camera", "Pentax 67", "--seed", "7").overrides()
		if o.Variant == nil || *o.Variant != "cinema-scope" {
			t.Errorf("Variant = %v", o.Variant)
		}
		if o.Grain == nil || !*o.Grain {
			t.Errorf("Grain = %v", o.Grain)
		}
		if o.Strength == nil || *o.Strength != 0.5 {
			t.Errorf("Strength = %v", o.Strength)
		}
		if o.Camera == nil || *o.Camera != "Pentax 67" {
			t.Errorf("Camera = %v", o.Camera)
		}
		if o.Seed == nil || *o.Seed != 7 {
			t.Errorf("Seed = %v", o.Seed)
		}
		if o.Shadow != nil || o.Filter != nil || o.MarginScale != nil {
			t.Error("unset flags should stay nil")
		}
	})

	t.Run("explicit false", func(t *testing.T) {
		o := parseStyleFlags(t, "--caption=false").overrides()
		if o.Caption == nil || *o.Caption {
			t.Errorf("Caption = %v, want false", o.Caption)
		}
	})
}

func TestStyleFlagsResolve(t *testing.T) {
	dir := t.TempDir()
	style := filepath.Join(dir, "dark.toml")
	if err := os.WriteFile(style, []byte("variant = \"gallery-dark\"\n\n[effects]\nshadow = true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		settings *config.Settings
		variant  frame.Variant
		shadow   bool
		mode     frame.MarginMode
		wantErr  errors.Code
	}{
		{name: "builtin default", variant: frame.GalleryLight, mode: frame.MarginSimple},
		{name: "style flag", args: []string{"--style", style}, variant: frame.GalleryDark, shadow: true, mode: frame.MarginSimple},
		{name: "settings style", settings: &config.Settings{Style: style}, variant: frame.GalleryDark, shadow: true, mode: frame.MarginSimple},
		{name: "flag beats style", args: []string{"--style", style, "--variant", "instant-film", "--shadow=false"}, variant: frame.InstantFilm, mode: frame.MarginSimple},
		{name: "per-side margin", args: []string{"--margin-bottom", "20"}, variant: frame.GalleryLight, mode: frame.MarginAdvanced},
		{name: "bad variant", args: []string{"--variant", "sepia"}, wantErr: errors.ErrCodeInvalidVariant},
		{name: "missing style", args: []string{"--style", filepath.Join(dir, "nope.toml")}, wantErr: errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseStyleFlags(t, tt.args...).resolve(tt.settings)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if cfg.Variant != tt.variant {
				t.Errorf("Variant = %q, want %q", cfg.Variant, tt.variant)
			}
			if cfg.Effects.Shadow != tt.shadow {
				t.Errorf("Shadow = %v, want %v", cfg.Effects.Shadow, tt.shadow)
			}
			if cfg.Margins.Mode != tt.mode {
				t.Errorf("Margins.Mode = %q, want %q", cfg.Margins.Mode, tt.mode)
			}
		})
	}
}

func TestStyleFlagsFontSet(t *testing.T) {
	dir := t.TempDir()
	ttf := filepath.Join(dir, "slab.ttf")
	if err := os.WriteFile(ttf, gomonobold.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		settings map[string]string
		wantFP   bool
		wantErr  bool
	}{
		{"builtin only", nil, nil, false, false},
		{"flag", []string{"--font", "script=" + ttf}, nil, true, false},
		{"settings", nil, map[string]string{"display": ttf}, true, false},
		{"repeated flags", []string{"--font", "script=" + ttf, "--font", "italic=" + ttf}, nil, true, false},
		{"bad spec", []string{"--font", "script"}, nil, false, true},
		{"unknown role", []string{"--font", "gothic=" + ttf}, nil, false, true},
		{"missing file", []string{"--font", "mono=" + filepath.Join(dir, "nope.ttf")}, nil, false, true},
		{"bad settings role", nil, map[string]string{"gothic": ttf}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parseStyleFlags(t, tt.args...)
			set, err := f.fontSet(&config.Settings{Fonts: tt.settings})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("fontSet: %v", err)
			}
			if got := set.Fingerprint() != ""; got != tt.wantFP {
				t.Errorf("has overrides = %v, want %v", got, tt.wantFP)
			}
		})
	}
}
