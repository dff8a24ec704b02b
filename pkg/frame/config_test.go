package frame

import (
	"math"
	"testing"

	"github.com/matzehuels/filmframe/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Variant != GalleryLight {
		t.Errorf("Variant = %q, want gallery-light", cfg.Variant)
	}
	if !cfg.Margins.Simple() || cfg.Margins.Scale != 10 {
		t.Errorf("Margins = %+v, want simple 10%%", cfg.Margins)
	}
	if cfg.Filter != FilterNone {
		t.Errorf("Filter = %q, want none", cfg.Filter)
	}
	if (cfg.Effects != Effects{}) {
		t.Errorf("Effects = %+v, want all off", cfg.Effects)
	}
	if !cfg.Caption.Visible || cfg.Caption.Camera == "" {
		t.Errorf("Caption = %+v, want visible default text", cfg.Caption)
	}
	if cfg.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", cfg.Seed, DefaultSeed)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestRenderConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*RenderConfig)
		code   errors.Code
	}{
		{"valid", func(*RenderConfig) {}, ""},
		{"empty filter means none", func(c *RenderConfig) { c.Filter = "" }, ""},
		{"unknown variant", func(c *RenderConfig) { c.Variant = "sepia" }, errors.ErrCodeInvalidVariant},
		{"unknown filter", func(c *RenderConfig) { c.Filter = "glow" }, errors.ErrCodeInvalidFilter},
		{"negative scale", func(c *RenderConfig) { c.Margins.Scale = -1 }, errors.ErrCodeInvalidMargin},
		{"scale too large", func(c *RenderConfig) { c.Margins.Scale = 51 }, errors.ErrCodeInvalidMargin},
		{"advanced side too large", func(c *RenderConfig) {
			c.Margins = MarginSpec{Mode: MarginAdvanced, Top: 10, Bottom: 80}
		}, errors.ErrCodeInvalidMargin},
		{"advanced ignores scale", func(c *RenderConfig) {
			c.Margins = MarginSpec{Mode: MarginAdvanced, Scale: 99, Top: 1}
		}, ""},
		{"unknown margin mode", func(c *RenderConfig) { c.Margins.Mode = "auto" }, errors.ErrCodeInvalidMargin},
		{"strength above one", func(c *RenderConfig) { c.FilterStrength = 1.5 }, errors.ErrCodeInvalidInput},
		{"negative radius", func(c *RenderConfig) { c.FilterRadius = -2 }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range Variants() {
		got, err := ParseVariant(string(v))
		if err != nil || got != v {
			t.Errorf("ParseVariant(%q) = %q, %v", v, got, err)
		}
	}
	if _, err := ParseVariant("polaroid"); !errors.Is(err, errors.ErrCodeInvalidVariant) {
		t.Errorf("ParseVariant(polaroid) error = %v", err)
	}
}

func TestPresetForFallback(t *testing.T) {
	p := PresetFor("unknown")
	if p.Family != FamilyGallery || p.Background != RGB(255, 255, 255) {
		t.Errorf("fallback preset = %+v, want white gallery", p)
	}
	for _, v := range Variants() {
		if PresetFor(v).Variant != v {
			t.Errorf("PresetFor(%q) has wrong variant", v)
		}
	}
}

func TestResolveFilter(t *testing.T) {
	tests := []struct {
		filter   Filter
		strength float64
		radius   float64
		long     int
		blend    BlendMode
		opacity  float64
		px       float64
	}{
		// radius base = radius * long / 1000
		{FilterSoft, 0.4, 10, 1000, BlendSoftLight, 0.4, 10},
		{FilterSoft, 0.4, 0.5, 1000, BlendSoftLight, 0.4, 1},
		{FilterBlackMist, 0.5, 10, 2000, BlendLighten, 0.4, 10},
		{FilterBlackMist, 0.5, 1, 1000, BlendLighten, 0.4, 1},
		{FilterDreamy, 0.5, 10, 1000, BlendScreen, 0.5, 20},
		{FilterDreamy, 0.5, 0.2, 1000, BlendScreen, 0.5, 2},
	}
	for _, tt := range tests {
		p, ok := ResolveFilter(tt.filter, tt.strength, tt.radius, tt.long/2, tt.long)
		if !ok {
			t.Fatalf("ResolveFilter(%s) not ok", tt.filter)
		}
		if p.Blend != tt.blend {
			t.Errorf("%s: blend = %s, want %s", tt.filter, p.Blend, tt.blend)
		}
		if math.Abs(p.Opacity-tt.opacity) > 1e-9 {
			t.Errorf("%s: opacity = %g, want %g", tt.filter, p.Opacity, tt.opacity)
		}
		if math.Abs(p.Radius-tt.px) > 1e-9 {
			t.Errorf("%s: radius = %g, want %g", tt.filter, p.Radius, tt.px)
		}
	}

	if _, ok := ResolveFilter(FilterNone, 1, 10, 100, 100); ok {
		t.Error("FilterNone should not resolve")
	}
}

func TestParseFilter(t *testing.T) {
	for _, f := range Filters() {
		if got, err := ParseFilter(string(f)); err != nil || got != f {
			t.Errorf("ParseFilter(%q) = %q, %v", f, got, err)
		}
	}
	if got, _ := ParseFilter(""); got != FilterNone {
		t.Errorf("ParseFilter(\"\") = %q, want none", got)
	}
	if _, err := ParseFilter("sepia"); !errors.Is(err, errors.ErrCodeInvalidFilter) {
		t.Errorf("ParseFilter(sepia) error = %v", err)
	}
}

func TestColorHex(t *testing.T) {
	c := RGB(255, 128, 1)
	if c.Hex() != "#ff8001" {
		t.Errorf("Hex() = %s", c.Hex())
	}
	got, err := ParseHex("#FF8001")
	if err != nil || got != c {
		t.Errorf("ParseHex = %v, %v", got, err)
	}
	for _, bad := range []string{"", "#fff", "zzzzzz", "#1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) expected error", bad)
		}
	}
}
