package server

import (
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/filmframe/pkg/config"
	"github.com/matzehuels/filmframe/pkg/frame"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("variant", func(fl validator.FieldLevel) bool {
		return frame.Variant(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("filter", func(fl validator.FieldLevel) bool {
		return frame.Filter(fl.Field().String()).Valid()
	})
	return v
}

// newDecoder returns a form decoder for `form`-tagged request structs.
// Keys missing from the form leave their fields untouched, so pointer fields
// stay nil.
func newDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.SetTagName("form")
	return d
}

// overrides maps a validated request onto style overrides.
func (req RenderRequest) overrides() config.Overrides {
	return config.Overrides{
		Variant:       req.Variant,
		MarginScale:   req.Margin,
		MarginTop:     req.MarginTop,
		MarginBottom:  req.MarginBottom,
		MarginLeft:    req.MarginLeft,
		MarginRight:   req.MarginRight,
		Filter:        req.Filter,
		Strength:      req.Strength,
		Radius:        req.Radius,
		Shadow:        req.Shadow,
		Grain:         req.Grain,
		LightLeak:     req.LightLeak,
		DateStamp:     req.DateStamp,
		Signature:     req.Signature,
		Palette:       req.Palette,
		Caption:       req.Caption,
		Camera:        req.Camera,
		Lens:          req.Lens,
		Settings:      req.Settings,
		Date:          req.Date,
		StampDate:     req.StampDate,
		SignatureText: req.SignatureText,
		Seed:          req.Seed,
	}
}
