package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/filmframe/pkg/config"
	"github.com/matzehuels/filmframe/pkg/fonts"
	"github.com/matzehuels/filmframe/pkg/frame"
)

// styleFlags holds the flags shared by every command that renders. Only
// flags the user actually set override the style file.
type styleFlags struct {
	style string

	variant    string
	margin     float64
	marginTop  float64
	marginBot  float64
	marginLeft float64
	marginRgt  float64

	filter   string
	strength float64
	radius   float64

	shadow    bool
	grain     bool
	lightLeak bool
	stamp     bool
	signature bool
	palette   bool

	caption       bool
	camera        string
	lens          string
	settings      string
	date          string
	stampDate     string
	signatureText string

	seed uint64

	fonts []string

	fs *pflag.FlagSet
}

// register adds the style flags to fs.
func (f *styleFlags) register(fs *pflag.FlagSet) {
	def := frame.DefaultConfig()
	f.fs = fs

	fs.StringVar(&f.style, "style", "", "style file (TOML)")
	fs.StringVar(&f.variant, "variant", string(def.Variant), "frame variant: gallery-light, gallery-dark, instant-film, film-negative, cinema-scope")
	fs.Float64Var(&f.margin, "margin", def.Margins.Scale, "uniform margin in percent of the long edge")
	fs.Float64Var(&f.marginTop, "margin-top", 0, "top margin in percent (enables per-side margins)")
	fs.Float64Var(&f.marginBot, "margin-bottom", 0, "bottom margin in percent (enables per-side margins)")
	fs.Float64Var(&f.marginLeft, "margin-left", 0, "left margin in percent (enables per-side margins)")
	fs.Float64Var(&f.marginRgt, "margin-right", 0, "right margin in percent (enables per-side margins)")

	fs.StringVar(&f.filter, "filter", string(def.Filter), "diffusion filter: none, soft, black-mist, dreamy")
	fs.Float64Var(&f.strength, "strength", def.FilterStrength, "filter strength (0-1)")
	fs.Float64Var(&f.radius, "radius", def.FilterRadius, "filter radius (0-100)")

	fs.BoolVar(&f.shadow, "shadow", false, "drop shadow under the photograph")
	fs.BoolVar(&f.grain, "grain", false, "film grain over the frame")
	fs.BoolVar(&f.lightLeak, "light-leak", false, "warm light leak in the top-left corner")
	fs.BoolVar(&f.stamp, "stamp", false, "orange date stamp in the photograph")
	fs.BoolVar(&f.signature, "signature", false, "handwritten signature")
	fs.BoolVar(&f.palette, "palette", false, "color palette swatches")

	fs.BoolVar(&f.caption, "caption", def.Caption.Visible, "print the caption")
	fs.StringVar(&f.camera, "camera", def.Caption.Camera, "caption camera")
	fs.StringVar(&f.lens, "lens", def.Caption.Lens, "caption lens")
	fs.StringVar(&f.settings, "settings", def.Caption.Settings, "caption exposure settings")
	fs.StringVar(&f.date, "date", def.Caption.Date, "caption date")
	fs.StringVar(&f.stampDate, "stamp-date", def.Caption.StampDate, "date stamp text")
	fs.StringVar(&f.signatureText, "signature-text", def.Caption.Signature, "signature text")

	fs.Uint64Var(&f.seed, "seed", def.Seed, "random seed for film grain")
	fs.StringArrayVar(&f.fonts, "font", nil, "font override as role=path (display, italic, sans, script, mono, wide); repeatable")
}

// overrides returns the set flags as style overrides.
func (f *styleFlags) overrides() config.Overrides {
	var o config.Overrides
	if f.changed("variant") {
		o.Variant = &f.variant
	}
	if f.changed("margin") {
		o.MarginScale = &f.margin
	}
	floats := []struct {
		name string
		dst  **float64
		v    *float64
	}{
		{"margin-top", &o.MarginTop, &f.marginTop},
		{"margin-bottom", &o.MarginBottom, &f.marginBot},
		{"margin-left", &o.MarginLeft, &f.marginLeft},
		{"margin-right", &o.MarginRight, &f.marginRgt},
		{"strength", &o.Strength, &f.strength},
		{"radius", &o.Radius, &f.radius},
	}
	for _, x := range floats {
		if f.changed(x.name) {
			*x.dst = x.v
		}
	}
	if f.changed("filter") {
		o.Filter = &f.filter
	}

	bools := []struct {
		name string
		dst  **bool
		v    *bool
	}{
		{"shadow", &o.Shadow, &f.shadow},
		{"grain", &o.Grain, &f.grain},
		{"light-leak", &o.LightLeak, &f.lightLeak},
		{"stamp", &o.DateStamp, &f.stamp},
		{"signature", &o.Signature, &f.signature},
		{"palette", &o.Palette, &f.palette},
		{"caption", &o.Caption, &f.caption},
	}
	for _, x := range bools {
		if f.changed(x.name) {
			*x.dst = x.v
		}
	}

	strs := []struct {
		name string
		dst  **string
		v    *string
	}{
		{"camera", &o.Camera, &f.camera},
		{"lens", &o.Lens, &f.lens},
		{"settings", &o.Settings, &f.settings},
		{"date", &o.Date, &f.date},
		{"stamp-date", &o.StampDate, &f.stampDate},
		{"signature-text", &o.SignatureText, &f.signatureText},
	}
	for _, x := range strs {
		if f.changed(x.name) {
			*x.dst = x.v
		}
	}

	if f.changed("seed") {
		o.Seed = &f.seed
	}
	return o
}

func (f *styleFlags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// resolve loads the base style (--style, then the settings' default style,
// then the builtin default) and applies the set flags.
func (f *styleFlags) resolve(s *config.Settings) (frame.RenderConfig, error) {
	base := frame.DefaultConfig()
	path := f.style
	if path == "" && s != nil {
		path = s.Style
	}
	if path != "" {
		var err error
		if base, err = config.LoadStyle(path); err != nil {
			return frame.RenderConfig{}, err
		}
	}
	return f.overrides().Apply(base)
}

// fontSet builds the caption fonts from the settings' [fonts] table, then
// the --font flags, so a flag wins over the settings for the same role.
func (f *styleFlags) fontSet(s *config.Settings) (*fonts.Set, error) {
	set := fonts.NewSet()
	if s != nil {
		if err := set.LoadFiles(s.Fonts); err != nil {
			return nil, err
		}
	}
	for _, spec := range f.fonts {
		role, path, err := fonts.ParseSpec(spec)
		if err != nil {
			return nil, err
		}
		if err := set.LoadFile(role, path); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// registerCompletions adds value completion for the enum flags cmd has.
func registerCompletions(cmd *cobra.Command) {
	var variants, filters []string
	for _, v := range frame.Variants() {
		variants = append(variants, string(v))
	}
	for _, f := range frame.Filters() {
		filters = append(filters, string(f))
	}
	enums := map[string][]string{
		"variant": variants,
		"filter":  filters,
		"format":  {"jpeg", "png"},
	}
	for name, values := range enums {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
		}
	}
}
