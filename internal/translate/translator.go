// Package translate turns Swedish pattern text into a target language,
// either through an LLM chat endpoint or through the glossary dictionary.
package translate

import (
	"context"
	"strings"
	"time"

	"github.com/prettyknit/pattern-service/internal/glossary"
	"github.com/prettyknit/pattern-service/internal/language"
)

// Translator translates text from the registry's source language into the
// target language code.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Cache stores successful LLM translations. Implementations must be safe for
// concurrent use; errors are reported to the caller, which ignores them.
type Cache interface {
	Get(ctx context.Context, targetLang, text string) (string, bool, error)
	Set(ctx context.Context, targetLang, text, translated string) error
}

// Settings selects and tunes the translator returned by New
type Settings struct {
	APIKey    string
	BaseURL   string
	Model     string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 = unlimited
}

// New returns the LLM translator when an API key is configured and the
// dictionary translator otherwise. The LLM translator falls back to the
// dictionary on every failure.
func New(ctx context.Context, s Settings, registry *language.Registry, g *glossary.Glossary, opts ...Option) (Translator, error) {
	dict := NewDictionary(registry, g)
	if strings.TrimSpace(s.APIKey) == "" {
		return dict, nil
	}

	chat, err := NewOpenAIChatModel(ctx, s)
	if err != nil {
		return nil, err
	}

	opts = append([]Option{WithRateLimit(s.RateLimit)}, opts...)
	return NewLLM(chat, registry, dict, opts...), nil
}

// passthrough reports whether text needs no translation at all
func passthrough(registry *language.Registry, text, targetLang string) bool {
	return registry.IsSource(targetLang) || strings.TrimSpace(text) == ""
}
