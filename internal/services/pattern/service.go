// Package pattern turns one authored pattern into a ZIP archive holding a
// translated PDF per requested language.
package pattern

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prettyknit/pattern-service/internal/document"
	"github.com/prettyknit/pattern-service/internal/language"
	"github.com/prettyknit/pattern-service/internal/translate"
	"github.com/prettyknit/pattern-service/pkg/logger"
)

// ArchiveContentType is the media type of the generated archive
const ArchiveContentType = "application/zip"

var (
	ErrMissingTitle    = errors.New("title is missing")
	ErrNoLanguages     = errors.New("no languages selected")
	ErrUnknownLanguage = errors.New("unknown language")
)

// IsValidationError reports whether err was caused by bad input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingTitle) ||
		errors.Is(err, ErrNoLanguages) ||
		errors.Is(err, ErrUnknownLanguage)
}

// Pattern is one authored pattern. Languages may be empty, meaning every
// language except the source.
type Pattern struct {
	Title     string
	Content   string
	Image     *document.Image
	Languages []string
}

// Archive is the finished download
type Archive struct {
	Filename    string
	ContentType string
	Data        []byte
	Files       []string
}

// Renderer turns one translated pattern into a document
type Renderer interface {
	Render(in document.Input) ([]byte, error)
}

// Service runs the translate → render → archive loop
type Service struct {
	registry   *language.Registry
	translator translate.Translator
	renderer   Renderer
	now        func() time.Time
}

// NewService creates the batch service
func NewService(registry *language.Registry, translator translate.Translator, renderer Renderer) *Service {
	return &Service{
		registry:   registry,
		translator: translator,
		renderer:   renderer,
		now:        time.Now,
	}
}

// ResolveLanguages validates the requested codes. No codes means all target
// languages. Duplicates are dropped, keeping the first occurrence.
func (s *Service) ResolveLanguages(codes []string) ([]language.Language, error) {
	if len(codes) == 0 {
		targets := s.registry.Targets()
		if len(targets) == 0 {
			return nil, ErrNoLanguages
		}
		return targets, nil
	}

	seen := make(map[string]bool, len(codes))
	resolved := make([]language.Language, 0, len(codes))
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true

		lang, ok := s.registry.Lookup(code)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
		}
		resolved = append(resolved, lang)
	}
	if len(resolved) == 0 {
		return nil, ErrNoLanguages
	}
	return resolved, nil
}

// GenerateArchive translates and renders the pattern once per language and
// zips the results. Languages are processed one after another; a language
// that fails is logged and left out of the archive, so the archive may hold
// fewer documents than requested, or none at all.
func (s *Service) GenerateArchive(ctx context.Context, p Pattern) (*Archive, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, ErrMissingTitle
	}

	languages, err := s.ResolveLanguages(p.Languages)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "generating pattern archive",
		zap.String("title", p.Title),
		zap.Int("languages", len(languages)),
		zap.Bool("has_image", p.Image != nil))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := make([]string, 0, len(languages))
	start := s.now()

	for _, lang := range languages {
		langCtx := logger.WithFields(ctx, zap.String("language", lang.Code))

		data, err := s.renderLanguage(langCtx, p, lang)
		if err != nil {
			logger.Error(langCtx, "failed to generate PDF, skipping language", zap.Error(err))
			continue
		}

		name := DocumentFilename(p.Title, lang.DisplayName)
		if err := addToArchive(zw, name, data, start); err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		files = append(files, name)
		logger.Info(langCtx, "PDF added to archive", zap.String("file", name), zap.Int("size_bytes", len(data)))
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	if len(files) == 0 {
		logger.Warn(ctx, "every language failed, returning an empty archive",
			zap.Int("languages", len(languages)))
	}
	logger.Info(ctx, "pattern archive ready",
		zap.Int("files", len(files)),
		zap.Int("skipped", len(languages)-len(files)),
		zap.Int("size_bytes", buf.Len()))

	return &Archive{
		Filename:    ArchiveFilename(p.Title),
		ContentType: ArchiveContentType,
		Data:        buf.Bytes(),
		Files:       files,
	}, nil
}

// renderLanguage translates title and content and renders the document.
// A panic in a collaborator counts as a failure of this language only.
func (s *Service) renderLanguage(ctx context.Context, p Pattern, lang language.Language) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while generating %s: %v", lang.Code, r)
		}
	}()

	title, err := s.translator.Translate(ctx, p.Title, lang.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to translate title: %w", err)
	}
	content, err := s.translator.Translate(ctx, p.Content, lang.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to translate content: %w", err)
	}

	data, err = s.renderer.Render(document.Input{
		Title:    title,
		Content:  content,
		Image:    p.Image,
		Language: lang,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return data, nil
}

func addToArchive(zw *zip.Writer, name string, data []byte, modified time.Time) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
