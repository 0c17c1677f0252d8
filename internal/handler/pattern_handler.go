package handler

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/prettyknit/pattern-service/internal/document"
	"github.com/prettyknit/pattern-service/internal/domain"
	"github.com/prettyknit/pattern-service/internal/language"
	"github.com/prettyknit/pattern-service/internal/services/pattern"
	"github.com/prettyknit/pattern-service/pkg/logger"
)

const generateFailedMessage = "could not generate PDF files"

// ArchiveGenerator is the batch step behind POST /api/generate-pdfs
type ArchiveGenerator interface {
	GenerateArchive(ctx context.Context, p pattern.Pattern) (*pattern.Archive, error)
}

// PatternHandler handles pattern generation requests
type PatternHandler struct {
	generator ArchiveGenerator
	registry  *language.Registry
	maxBytes  int64
}

// NewPatternHandler creates a new pattern handler
func NewPatternHandler(generator ArchiveGenerator, registry *language.Registry, maxBytes int64) *PatternHandler {
	return &PatternHandler{
		generator: generator,
		registry:  registry,
		maxBytes:  maxBytes,
	}
}

// SetupPatternRoutes registers the pattern routes on the API router
func (h *PatternHandler) SetupPatternRoutes(router *mux.Router) {
	router.HandleFunc("/generate-pdfs", h.GeneratePDFs).Methods(http.MethodPost)
	router.HandleFunc("/languages", h.ListLanguages).Methods(http.MethodGet)
}

// GeneratePDFs godoc
// @Summary Translate a pattern and download one PDF per language
// @Tags patterns
// @Accept json
// @Produce application/zip
// @Param request body domain.GeneratePDFsRequest true "Pattern to translate"
// @Success 200 {file} binary "ZIP archive"
// @Failure 400 {object} domain.ErrorResponse "Invalid request"
// @Failure 413 {object} domain.ErrorResponse "Request body too large"
// @Failure 500 {object} domain.ErrorResponse "Generation failed"
// @Router /api/generate-pdfs [post]
func (h *PatternHandler) GeneratePDFs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	var req domain.GeneratePDFsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	img, err := document.DecodeImage(req.Image)
	if err != nil {
		logger.Warn(ctx, "rejected pattern image", zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid image: "+err.Error())
		return
	}

	archive, err := h.generator.GenerateArchive(ctx, pattern.Pattern{
		Title:     req.Title,
		Content:   req.Content,
		Image:     img,
		Languages: req.Languages,
	})
	if err != nil {
		if pattern.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error(ctx, "failed to generate pattern archive", zap.Error(err))
		writeError(w, http.StatusInternalServerError, generateFailedMessage)
		return
	}

	w.Header().Set("Content-Type", archive.ContentType)
	w.Header().Set("Content-Disposition", contentDisposition(archive.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(archive.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(archive.Data); err != nil {
		logger.Warn(ctx, "failed to write archive to client", zap.Error(err))
	}
}

// ListLanguages godoc
// @Summary List the languages a pattern can be published in
// @Tags patterns
// @Produce json
// @Success 200 {object} domain.LanguagesResponse
// @Router /api/languages [get]
func (h *PatternHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	all := h.registry.All()
	resp := domain.LanguagesResponse{Languages: make([]domain.LanguageInfo, 0, len(all))}
	for _, lang := range all {
		resp.Languages = append(resp.Languages, domain.LanguageInfo{
			Code:        lang.Code,
			Name:        lang.DisplayName,
			EnglishName: lang.EnglishName,
			Source:      h.registry.IsSource(lang.Code),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.HealthResponse{Status: "ok"})
}

// contentDisposition falls back to a plain ASCII name when the archive name
// cannot be encoded
func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return `attachment; filename="patterns.zip"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Base().Warn("failed to encode json response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, domain.ErrorResponse{Error: message})
}
