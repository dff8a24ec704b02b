package config

import (
	"github.com/matzehuels/filmframe/pkg/frame"
)

// Overrides are optional changes applied on top of a style, collected from
// command-line flags or form fields. Nil fields keep the style's value.
type Overrides struct {
	Variant *string

	// MarginScale selects simple mode. Any per-side value selects advanced
	// mode; sides left nil start from the style's uniform scale.
	MarginScale  *float64
	MarginTop    *float64
	MarginBottom *float64
	MarginLeft   *float64
	MarginRight  *float64

	Filter   *string
	Strength *float64
	Radius   *float64

	Shadow    *bool
	Grain     *bool
	LightLeak *bool
	DateStamp *bool
	Signature *bool
	Palette   *bool

	Caption       *bool
	Camera        *string
	Lens          *string
	Settings      *string
	Date          *string
	StampDate     *string
	SignatureText *string

	Seed *uint64
}

// Apply returns cfg with every non-nil override applied. The result is
// validated.
func (o Overrides) Apply(cfg frame.RenderConfig) (frame.RenderConfig, error) {
	if o.Variant != nil {
		v, err := frame.ParseVariant(*o.Variant)
		if err != nil {
			return cfg, err
		}
		cfg.Variant = v
	}
	if o.Filter != nil {
		f, err := frame.ParseFilter(*o.Filter)
		if err != nil {
			return cfg, err
		}
		cfg.Filter = f
	}

	o.applyMargins(&cfg.Margins)

	setFloat(&cfg.FilterStrength, o.Strength)
	setFloat(&cfg.FilterRadius, o.Radius)

	setBool(&cfg.Effects.Shadow, o.Shadow)
	setBool(&cfg.Effects.Grain, o.Grain)
	setBool(&cfg.Effects.LightLeak, o.LightLeak)
	setBool(&cfg.Effects.DateStamp, o.DateStamp)
	setBool(&cfg.Effects.Signature, o.Signature)
	setBool(&cfg.Effects.Palette, o.Palette)

	setBool(&cfg.Caption.Visible, o.Caption)
	setString(&cfg.Caption.Camera, o.Camera)
	setString(&cfg.Caption.Lens, o.Lens)
	setString(&cfg.Caption.Settings, o.Settings)
	setString(&cfg.Caption.Date, o.Date)
	setString(&cfg.Caption.StampDate, o.StampDate)
	setString(&cfg.Caption.Signature, o.SignatureText)

	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (o Overrides) applyMargins(m *frame.MarginSpec) {
	sides := []*float64{o.MarginTop, o.MarginBottom, o.MarginLeft, o.MarginRight}
	advanced := false
	for _, s := range sides {
		advanced = advanced || s != nil
	}

	if o.MarginScale != nil && !advanced {
		m.Mode = frame.MarginSimple
		m.Scale = *o.MarginScale
		return
	}
	if !advanced {
		return
	}

	if m.Simple() {
		scale := m.Scale
		if o.MarginScale != nil {
			scale = *o.MarginScale
		}
		m.Top, m.Bottom, m.Left, m.Right = scale, scale, scale, scale
	}
	m.Mode = frame.MarginAdvanced
	setFloat(&m.Top, o.MarginTop)
	setFloat(&m.Bottom, o.MarginBottom)
	setFloat(&m.Left, o.MarginLeft)
	setFloat(&m.Right, o.MarginRight)
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
