package frame

import (
	"github.com/matzehuels/filmframe/pkg/errors"
)

// Variant names a layout/style preset.
type Variant string

// Supported layout variants.
const (
	GalleryLight Variant = "gallery-light"
	GalleryDark  Variant = "gallery-dark"
	InstantFilm  Variant = "instant-film"
	FilmNegative Variant = "film-negative"
	CinemaScope  Variant = "cinema-scope"
)

// Family groups variants that share canvas geometry and caption layout.
type Family int

const (
	FamilyGallery Family = iota
	FamilyInstant
	FamilyNegative
	FamilyCinema
)

func (f Family) String() string {
	switch f {
	case FamilyInstant:
		return "instant"
	case FamilyNegative:
		return "negative"
	case FamilyCinema:
		return "cinema"
	default:
		return "gallery"
	}
}

// Preset is the static styling attached to a variant.
type Preset struct {
	Variant    Variant
	Family     Family
	Background Color
	Text       Color
	Dark       bool // selects the light grain tint
}

// presets is the single source of truth for per-variant styling.
// Adding a variant is a table change; the pipeline branches on Family only.
var presets = map[Variant]Preset{
	GalleryLight: {Variant: GalleryLight, Family: FamilyGallery, Background: RGB(255, 255, 255), Text: RGB(34, 34, 34)},
	GalleryDark:  {Variant: GalleryDark, Family: FamilyGallery, Background: RGB(18, 18, 18), Text: RGB(232, 232, 232), Dark: true},
	InstantFilm:  {Variant: InstantFilm, Family: FamilyInstant, Background: RGB(250, 249, 245), Text: RGB(45, 45, 45)},
	FilmNegative: {Variant: FilmNegative, Family: FamilyNegative, Background: RGB(22, 20, 18), Text: RGB(238, 156, 60), Dark: true},
	CinemaScope:  {Variant: CinemaScope, Family: FamilyCinema, Background: RGB(0, 0, 0), Text: RGB(204, 204, 204), Dark: true},
}

// fallbackPreset is used for any variant outside the table.
var fallbackPreset = Preset{Family: FamilyGallery, Background: RGB(255, 255, 255), Text: RGB(34, 34, 34)}

// Variants returns all supported variants in display order.
func Variants() []Variant {
	return []Variant{GalleryLight, GalleryDark, InstantFilm, FilmNegative, CinemaScope}
}

// PresetFor returns the styling for v, falling back to a white gallery
// preset when v is unknown.
func PresetFor(v Variant) Preset {
	if p, ok := presets[v]; ok {
		return p
	}
	p := fallbackPreset
	p.Variant = v
	return p
}

// Valid reports whether v is one of the supported variants.
func (v Variant) Valid() bool {
	_, ok := presets[v]
	return ok
}

// ParseVariant validates s as a variant name.
func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if !v.Valid() {
		return "", errors.New(errors.ErrCodeInvalidVariant,
			"invalid variant: %q (must be one of: gallery-light, gallery-dark, instant-film, film-negative, cinema-scope)", s)
	}
	return v, nil
}
