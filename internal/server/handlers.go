package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/asciiforge/pkg/buildinfo"
	"github.com/matzehuels/asciiforge/pkg/composite"
	"github.com/matzehuels/asciiforge/pkg/errors"
	pio "github.com/matzehuels/asciiforge/pkg/io"
	"github.com/matzehuels/asciiforge/pkg/pipeline"
	"github.com/matzehuels/asciiforge/pkg/recipe"
)

// =============================================================================
// Request and Response Bodies
// =============================================================================

type shapeRequest struct {
	pipeline.ShapeRequest
	pipeline.Options
}

type composeRequest struct {
	composite.Recipe
	pipeline.Options
}

type recipeRequest struct {
	recipe.Recipe
	pipeline.Options
}

type renderResponse struct {
	ID         string        `json:"id"`
	Kind       string        `json:"kind"`
	Format     string        `json:"format"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Operations int           `json:"operations,omitempty"`
	Output     string        `json:"output"`
	Cached     cachedSection `json:"cached"`
}

type cachedSection struct {
	Grid     bool `json:"grid"`
	Artifact bool `json:"artifact"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleListShapes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"shapes": s.runner.Shapes.Names()})
}

func (s *Server) handleListDecorators(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"decorators": s.runner.Decorators.Names()})
}

func (s *Server) handleRenderShape(w http.ResponseWriter, r *http.Request) {
	var req shapeRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.runner.RenderShape(r.Context(), req.ShapeRequest, s.options(req.Options))
	s.respond(w, r, res, err)
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var req composeRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.runner.Compose(r.Context(), req.Recipe, s.options(req.Options))
	s.respond(w, r, res, err)
}

func (s *Server) handleExecuteRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.runner.ExecuteRecipe(r.Context(), &req.Recipe, s.options(req.Options))
	s.respond(w, r, res, err)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) options(o pipeline.Options) pipeline.Options {
	o.Logger = s.logger
	return o
}

// decode reads a strict JSON body into v, answering 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	if _, err := dec.Token(); err != io.EOF {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body: trailing data"))
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, res *pipeline.Result, err error) {
	if err != nil {
		if statusFor(err) >= http.StatusInternalServerError {
			s.logger.Error("render failed", "path", r.URL.Path, "err", err)
		}
		writeError(w, err)
		return
	}

	if raw, _ := strconv.ParseBool(r.URL.Query().Get("raw")); raw {
		w.Header().Set("Content-Type", contentType(res.Format))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Artifact)
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		ID:         res.ID,
		Kind:       res.Kind,
		Format:     res.Format,
		Width:      res.Stats.Width,
		Height:     res.Stats.Height,
		Operations: res.Stats.Operations,
		Output:     string(res.Artifact),
		Cached: cachedSection{
			Grid:     res.CacheInfo.GridHit,
			Artifact: res.CacheInfo.ArtifactHit,
		},
	})
}

func contentType(format string) string {
	switch format {
	case pio.FormatJSON:
		return "application/json"
	case pio.FormatSVG:
		return "image/svg+xml"
	}
	return "text/plain; charset=utf-8"
}

// statusFor maps an error code onto an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeConfiguration,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidAnchor,
		errors.ErrCodeInvalidRecipe,
		errors.ErrCodeUnknownDecorator,
		errors.ErrCodeUnknownShape:
		return http.StatusBadRequest
	case errors.ErrCodeSymbolNotFound,
		errors.ErrCodeOutputNotProduced,
		errors.ErrCodeUnsupportedOperation:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(err), errorResponse{Error: errorBody{
		Code:    string(code),
		Message: err.Error(),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
