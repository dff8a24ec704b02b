// Package server implements the FilmFrame HTTP preview server.
//
// The server renders uploaded photographs through the shared pipeline
// runner, so palettes and encoded frames are cached across requests (and
// across instances when the runner uses a Redis cache).
//
// # Endpoints
//
//   - POST /api/render: multipart upload (field "file") plus style form fields; returns the framed image
//   - POST /api/palette: multipart upload; returns the sampled colors as JSON
//   - GET /api/variants: lists variants and filters
//   - GET /api/health: liveness check
package server

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/filmframe/pkg/export"
	"github.com/matzehuels/filmframe/pkg/frame"
	"github.com/matzehuels/filmframe/pkg/pipeline"
)

// DefaultMaxUploadBytes limits the size of an uploaded photograph.
const DefaultMaxUploadBytes = 32 << 20

// Options configures a Server.
type Options struct {
	// Style is the base configuration request fields are applied to.
	Style frame.RenderConfig

	// Product prefixes download file names.
	Product string

	// Quality is the JPEG quality of responses. Zero means preview quality.
	Quality float64

	MaxUploadBytes int64
}

// Server handles HTTP requests.
type Server struct {
	runner   *pipeline.Runner
	decoder  *form.Decoder
	validate *validator.Validate
	logger   *log.Logger
	opts     Options
}

// New returns a server rendering through runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Product == "" {
		opts.Product = export.DefaultProduct
	}
	if opts.Quality <= 0 {
		opts.Quality = export.PreviewQuality
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.Style.Variant == "" {
		opts.Style = frame.DefaultConfig()
	}
	return &Server{
		runner:   runner,
		decoder:  newDecoder(),
		validate: newValidator(),
		logger:   logger,
		opts:     opts,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recovery)
	r.Use(s.logging)

	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/palette", s.handlePalette)
		r.Get("/variants", s.handleVariants)
		r.Get("/health", s.handleHealth)
	})

	return r
}
