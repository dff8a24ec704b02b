package server

// RenderRequest holds the optional style fields of a render upload. Pointer
// fields are nil when the form omits them.
type RenderRequest struct {
	Variant      *string  `form:"variant" validate:"omitempty,variant"`
	Margin       *float64 `form:"margin" validate:"omitempty,min=0,max=50"`
	MarginTop    *float64 `form:"margin_top" validate:"omitempty,min=0,max=50"`
	MarginBottom *float64 `form:"margin_bottom" validate:"omitempty,min=0,max=50"`
	MarginLeft   *float64 `form:"margin_left" validate:"omitempty,min=0,max=50"`
	MarginRight  *float64 `form:"margin_right" validate:"omitempty,min=0,max=50"`

	Filter   *string  `form:"filter" validate:"omitempty,filter"`
	Strength *float64 `form:"strength" validate:"omitempty,min=0,max=1"`
	Radius   *float64 `form:"radius" validate:"omitempty,min=0,max=100"`

	Shadow    *bool `form:"shadow"`
	Grain     *bool `form:"grain"`
	LightLeak *bool `form:"light_leak"`
	DateStamp *bool `form:"date_stamp"`
	Signature *bool `form:"signature"`
	Palette   *bool `form:"palette"`

	Caption       *bool   `form:"caption"`
	Camera        *string `form:"camera" validate:"omitempty,max=120"`
	Lens          *string `form:"lens" validate:"omitempty,max=120"`
	Settings      *string `form:"settings" validate:"omitempty,max=120"`
	Date          *string `form:"date" validate:"omitempty,max=120"`
	StampDate     *string `form:"stamp_date" validate:"omitempty,max=32"`
	SignatureText *string `form:"signature_text" validate:"omitempty,max=120"`

	Seed *uint64 `form:"seed"`

	Format   string   `form:"format" validate:"omitempty,oneof=jpeg jpg png"`
	Quality  *float64 `form:"quality" validate:"omitempty,gt=0,lte=1"`
	Download bool     `form:"download"`
	Refresh  bool     `form:"refresh"`
}

type PaletteResponse struct {
	Colors []string `json:"colors"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Cached bool     `json:"cached"`
}

type VariantResponse struct {
	Name       string `json:"name"`
	Family     string `json:"family"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Dark       bool   `json:"dark"`
}

type FilterResponse struct {
	Name   string  `json:"name"`
	Blend  string  `json:"blend,omitempty"`
	Spread float64 `json:"spread,omitempty"`
}

type VariantsResponse struct {
	Variants []VariantResponse `json:"variants"`
	Filters  []FilterResponse  `json:"filters"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
