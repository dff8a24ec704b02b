package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/filmframe/pkg/buildinfo"
	"github.com/matzehuels/filmframe/pkg/errors"
	"github.com/matzehuels/filmframe/pkg/export"
	"github.com/matzehuels/filmframe/pkg/frame"
	"github.com/matzehuels/filmframe/pkg/pipeline"
)

// maxMemory is the part of a multipart form kept in memory.
const maxMemory = 8 << 20

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	var req RenderRequest
	if err := s.decoder.Decode(&req, r.Form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid form field", err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid render options", err)
		return
	}

	cfg, err := req.overrides().Apply(s.opts.Style)
	if err != nil {
		s.handlePipelineError(w, err)
		return
	}
	opts := pipeline.Options{
		Config:  cfg,
		Format:  export.Format(req.Format),
		Quality: s.opts.Quality,
		Refresh: req.Refresh,
	}
	if req.Quality != nil {
		opts.Quality = *req.Quality
	}

	result, err := s.runner.Execute(r.Context(), data, opts)
	if err != nil {
		s.handlePipelineError(w, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", result.Format.ContentType())
	h.Set("Content-Length", strconv.Itoa(len(result.Artifact)))
	h.Set("X-Canvas-Width", strconv.Itoa(result.Geometry.CanvasWidth))
	h.Set("X-Canvas-Height", strconv.Itoa(result.Geometry.CanvasHeight))
	h.Set("X-Entry-Id", result.Entry.ID)
	h.Set("X-Cache", cacheStatus(result.CacheInfo.ArtifactHit))
	if req.Download {
		name := export.ExportName(s.opts.Product, time.Now(), result.Format)
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Artifact); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	entry, hit, err := s.runner.LoadEntry(r.Context(), data)
	if err != nil {
		s.handlePipelineError(w, err)
		return
	}
	colors := make([]string, len(entry.Palette))
	for i, c := range entry.Palette {
		colors[i] = c.Hex()
	}
	s.respondJSON(w, http.StatusOK, PaletteResponse{
		Colors: colors,
		Width:  entry.Width,
		Height: entry.Height,
		Cached: hit,
	})
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	var resp VariantsResponse
	for _, v := range frame.Variants() {
		p := frame.PresetFor(v)
		resp.Variants = append(resp.Variants, VariantResponse{
			Name:       string(v),
			Family:     p.Family.String(),
			Background: p.Background.Hex(),
			Text:       p.Text.Hex(),
			Dark:       p.Dark,
		})
	}
	for _, f := range frame.Filters() {
		fr := FilterResponse{Name: string(f)}
		if spec, ok := f.Spec(); ok {
			fr.Blend = string(spec.Blend)
			fr.Spread = spec.RadiusScale
		}
		resp.Filters = append(resp.Filters, fr)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: buildinfo.Version})
}

// readUpload parses the multipart form and returns the bytes of the "file"
// field. On failure it writes the error response and returns false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.ContentLength > s.opts.MaxUploadBytes {
		s.respondError(w, http.StatusRequestEntityTooLarge, "File too large", nil)
		return nil, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.respondError(w, http.StatusRequestEntityTooLarge, "File too large", nil)
			return nil, false
		}
		s.logger.Warn("failed to parse multipart form", "error", err)
		s.respondError(w, http.StatusBadRequest, "Invalid request format", nil)
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "File is required", nil)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("failed to read upload", "filename", header.Filename, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to read file", err)
		return nil, false
	}
	return data, true
}

func (s *Server) handlePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errors.ErrCodeDecode):
		s.respondError(w, http.StatusUnsupportedMediaType, "Unsupported or corrupt image", err)
	case errors.IsValidation(err):
		s.respondError(w, http.StatusBadRequest, errors.UserMessage(err), nil)
	default:
		s.logger.Error("render failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to render frame", nil)
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string, err error) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}
	if err != nil {
		response.Details = err.Error()
	}
	s.respondJSON(w, status, response)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
