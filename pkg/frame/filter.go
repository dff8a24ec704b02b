package frame

import (
	"fmt"

	"github.com/matzehuels/filmframe/pkg/errors"
)

// Filter names a diffusion recipe.
type Filter string

// Supported diffusion filters.
const (
	FilterNone      Filter = "none"
	FilterSoft      Filter = "soft"
	FilterBlackMist Filter = "black-mist"
	FilterDreamy    Filter = "dreamy"
)

// FilterSpec describes how a filter redraws the source image on top of itself.
type FilterSpec struct {
	Blend         BlendMode
	StrengthScale float64 // multiplier on the configured strength (opacity)
	RadiusScale   float64 // multiplier on the radius base value
	MinRadius     float64 // floor on the blur radius in pixels
}

var filterSpecs = map[Filter]FilterSpec{
	FilterSoft:      {Blend: BlendSoftLight, StrengthScale: 1.0, RadiusScale: 1.0, MinRadius: 1},
	FilterBlackMist: {Blend: BlendLighten, StrengthScale: 0.8, RadiusScale: 0.5, MinRadius: 1},
	FilterDreamy:    {Blend: BlendScreen, StrengthScale: 1.0, RadiusScale: 2.0, MinRadius: 2},
}

// Filters returns all filters in display order.
func Filters() []Filter {
	return []Filter{FilterNone, FilterSoft, FilterBlackMist, FilterDreamy}
}

// Spec returns the recipe for f. The boolean is false for FilterNone and
// unknown filters.
func (f Filter) Spec() (FilterSpec, bool) {
	s, ok := filterSpecs[f]
	return s, ok
}

// Valid reports whether f is a supported filter (including none).
func (f Filter) Valid() bool {
	if f == FilterNone {
		return true
	}
	_, ok := filterSpecs[f]
	return ok
}

// ParseFilter validates s as a filter name. The empty string means none.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterNone, nil
	}
	f := Filter(s)
	if !f.Valid() {
		return "", errors.New(errors.ErrCodeInvalidFilter,
			"invalid filter: %q (must be one of: none, soft, black-mist, dreamy)", s)
	}
	return f, nil
}

// radiusBaseReference is the canvas long edge at which the configured
// radius maps 1:1 to pixels.
const radiusBaseReference = 1000.0

// FilterParams are the resolved per-render filter values.
type FilterParams struct {
	Blend   BlendMode
	Opacity float64
	Radius  float64 // blur radius in pixels (Gaussian sigma)
}

// String implements fmt.Stringer.
func (p FilterParams) String() string {
	return fmt.Sprintf("%s opacity=%.3f radius=%.2fpx", p.Blend, p.Opacity, p.Radius)
}

// ResolveFilter computes the blend mode, opacity and blur radius of the
// second image pass. radius is the configured radius value; it is scaled
// to the canvas so the look is resolution independent.
func ResolveFilter(f Filter, strength, radius float64, canvasW, canvasH int) (FilterParams, bool) {
	spec, ok := f.Spec()
	if !ok {
		return FilterParams{}, false
	}
	base := radius * float64(max(canvasW, canvasH)) / radiusBaseReference
	return FilterParams{
		Blend:   spec.Blend,
		Opacity: clampUnit(strength * spec.StrengthScale),
		Radius:  max(spec.MinRadius, spec.RadiusScale*base),
	}, true
}
