package frame

import (
	"github.com/matzehuels/filmframe/pkg/errors"
)

// MarginMode selects how margin percentages are interpreted.
type MarginMode string

const (
	// MarginSimple uses a single uniform percentage for every side.
	MarginSimple MarginMode = "simple"
	// MarginAdvanced uses four independent percentages.
	MarginAdvanced MarginMode = "advanced"
)

// Margin limits, in percent of the image's long edge.
const (
	MaxMarginPercent = 50.0
	MaxFilterRadius  = 100.0
	DefaultScale     = 10.0
	DefaultStrength  = 0.3
	DefaultRadius    = 10.0
	DefaultSeed      = uint64(42)
)

// MarginSpec describes the border around the image. All values are
// percentages of the image's long edge. Scale is used in simple mode,
// Top/Bottom/Left/Right in advanced mode.
type MarginSpec struct {
	Mode   MarginMode `toml:"mode" json:"mode"`
	Scale  float64    `toml:"scale" json:"scale"`
	Top    float64    `toml:"top" json:"top"`
	Bottom float64    `toml:"bottom" json:"bottom"`
	Left   float64    `toml:"left" json:"left"`
	Right  float64    `toml:"right" json:"right"`
}

// Simple reports whether the spec is interpreted in simple mode.
// An unset mode counts as simple.
func (m MarginSpec) Simple() bool {
	return m.Mode != MarginAdvanced
}

// Effects holds the boolean toggles of the optional pipeline stages.
type Effects struct {
	Shadow    bool `toml:"shadow" json:"shadow"`
	Grain     bool `toml:"grain" json:"grain"`
	LightLeak bool `toml:"light_leak" json:"light_leak"`
	DateStamp bool `toml:"date_stamp" json:"date_stamp"`
	Signature bool `toml:"signature" json:"signature"`
	Palette   bool `toml:"palette" json:"palette"`
}

// CaptionData is the free text printed in the frame.
type CaptionData struct {
	Camera    string `toml:"camera" json:"camera"`
	Lens      string `toml:"lens" json:"lens"`
	Settings  string `toml:"settings" json:"settings"`
	Date      string `toml:"date" json:"date"`
	StampDate string `toml:"stamp_date" json:"stamp_date"`
	Signature string `toml:"signature" json:"signature"`
	Visible   bool   `toml:"visible" json:"visible"`
}

// DefaultCaption returns the placeholder caption shown before the user
// enters their own metadata.
func DefaultCaption() CaptionData {
	return CaptionData{
		Camera:    "Leica M6",
		Lens:      "Summicron 35mm f/2",
		Settings:  "f/8 1/250s ISO 400",
		Date:      "2024.05.12",
		StampDate: "'24 05 12",
		Signature: "FilmFrame",
		Visible:   true,
	}
}

// RenderConfig is the immutable parameter bundle of a single render call.
// It is passed by value; the compositor never modifies it.
type RenderConfig struct {
	Variant        Variant     `toml:"variant" json:"variant"`
	Margins        MarginSpec  `toml:"margins" json:"margins"`
	Filter         Filter      `toml:"filter" json:"filter"`
	FilterStrength float64     `toml:"filter_strength" json:"filter_strength"`
	FilterRadius   float64     `toml:"filter_radius" json:"filter_radius"`
	Effects        Effects     `toml:"effects" json:"effects"`
	Caption        CaptionData `toml:"caption" json:"caption"`
	Seed           uint64      `toml:"seed" json:"seed"`
}

// DefaultConfig returns gallery-light with 10% simple margins, no filter,
// no optional effects and the default caption visible.
func DefaultConfig() RenderConfig {
	return RenderConfig{
		Variant:        GalleryLight,
		Margins:        MarginSpec{Mode: MarginSimple, Scale: DefaultScale},
		Filter:         FilterNone,
		FilterStrength: DefaultStrength,
		FilterRadius:   DefaultRadius,
		Caption:        DefaultCaption(),
		Seed:           DefaultSeed,
	}
}

// HasTextBand reports whether any element below the image (caption,
// palette or signature) is active.
func (c RenderConfig) HasTextBand() bool {
	return c.Caption.Visible || c.Effects.Palette || c.Effects.Signature
}

// WithVariant returns a copy of c using v.
func (c RenderConfig) WithVariant(v Variant) RenderConfig {
	c.Variant = v
	return c
}

// Validate checks that the configuration only uses known variants and
// filters and that every numeric value is in range.
func (c RenderConfig) Validate() error {
	if !c.Variant.Valid() {
		_, err := ParseVariant(string(c.Variant))
		return err
	}
	return c.validateValues()
}

// validateValues is Validate without the variant check. The compositor
// accepts unknown variants and draws them with the fallback preset.
func (c RenderConfig) validateValues() error {
	if c.Filter != "" && !c.Filter.Valid() {
		_, err := ParseFilter(string(c.Filter))
		return err
	}
	switch c.Margins.Mode {
	case "", MarginSimple:
		if err := errors.ValidatePercent("margin scale", c.Margins.Scale, MaxMarginPercent); err != nil {
			return err
		}
	case MarginAdvanced:
		sides := []struct {
			name string
			v    float64
		}{
			{"margin top", c.Margins.Top},
			{"margin bottom", c.Margins.Bottom},
			{"margin left", c.Margins.Left},
			{"margin right", c.Margins.Right},
		}
		for _, s := range sides {
			if err := errors.ValidatePercent(s.name, s.v, MaxMarginPercent); err != nil {
				return err
			}
		}
	default:
		return errors.New(errors.ErrCodeInvalidMargin,
			"invalid margin mode: %q (must be simple or advanced)", c.Margins.Mode)
	}
	if c.FilterStrength < 0 || c.FilterStrength > 1 {
		return errors.New(errors.ErrCodeInvalidInput,
			"filter strength must be between 0 and 1, got %g", c.FilterStrength)
	}
	if c.FilterRadius < 0 || c.FilterRadius > MaxFilterRadius {
		return errors.New(errors.ErrCodeInvalidInput,
			"filter radius must be between 0 and %g, got %g", MaxFilterRadius, c.FilterRadius)
	}
	return nil
}
