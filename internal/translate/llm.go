package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/prettyknit/pattern-service/internal/language"
	"github.com/prettyknit/pattern-service/pkg/logger"
)

// temperature keeps the output close to literal and repeatable
const temperature float32 = 0.1

var errEmptyResponse = errors.New("empty response from chat model")

// ChatGenerator is the part of an eino chat model the translator uses
type ChatGenerator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// LLM translates through a chat completion endpoint and falls back to the
// dictionary whenever the call fails.
type LLM struct {
	chat     ChatGenerator
	registry *language.Registry
	fallback Translator
	limiter  *rate.Limiter
	cache    Cache
}

// Option configures an LLM translator
type Option func(*LLM)

// WithRateLimit limits outgoing chat requests to rps per second. Zero or
// negative disables the limiter.
func WithRateLimit(rps float64) Option {
	return func(l *LLM) {
		if rps > 0 {
			l.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			l.limiter = nil
		}
	}
}

// WithCache looks translations up in c before calling the chat model and
// stores successful results in it.
func WithCache(c Cache) Option {
	return func(l *LLM) {
		l.cache = c
	}
}

// NewLLM wraps a chat model. fallback is used for every failed call.
func NewLLM(chat ChatGenerator, registry *language.Registry, fallback Translator, opts ...Option) *LLM {
	l := &LLM{
		chat:     chat,
		registry: registry,
		fallback: fallback,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewOpenAIChatModel creates the eino OpenAI chat model for s
func NewOpenAIChatModel(ctx context.Context, s Settings) (ChatGenerator, error) {
	cfg := &openai.ChatModelConfig{
		APIKey:  s.APIKey,
		Model:   s.Model,
		Timeout: s.Timeout,
	}
	if s.BaseURL != "" {
		cfg.BaseURL = s.BaseURL
	}

	chatModel, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return chatModel, nil
}

// Translate returns text unchanged for the source language and for blank
// text without calling the model. An empty model answer yields the original
// text; any error yields the dictionary translation.
func (l *LLM) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if passthrough(l.registry, text, targetLang) {
		return text, nil
	}

	target, ok := l.registry.Lookup(targetLang)
	if !ok {
		return l.fallback.Translate(ctx, text, targetLang)
	}

	if l.cache != nil {
		cached, hit, err := l.cache.Get(ctx, targetLang, text)
		if err != nil {
			logger.Warn(ctx, "translation cache lookup failed", zap.String("language", targetLang), zap.Error(err))
		} else if hit {
			logger.Debug(ctx, "translation cache hit", zap.String("language", targetLang))
			return cached, nil
		}
	}

	start := time.Now()
	translated, err := l.complete(ctx, text, target)
	if err != nil {
		if errors.Is(err, errEmptyResponse) {
			logger.Warn(ctx, "chat model returned no content, keeping original text",
				zap.String("language", targetLang))
			return text, nil
		}
		logger.Warn(ctx, "llm translation failed, falling back to dictionary",
			zap.String("language", targetLang),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))
		return l.fallback.Translate(ctx, text, targetLang)
	}

	logger.Debug(ctx, "llm translation done",
		zap.String("language", targetLang),
		zap.Int("source_chars", len(text)),
		zap.Int("translated_chars", len(translated)),
		zap.Duration("latency", time.Since(start)))

	if l.cache != nil {
		if err := l.cache.Set(ctx, targetLang, text, translated); err != nil {
			logger.Warn(ctx, "translation cache store failed", zap.String("language", targetLang), zap.Error(err))
		}
	}
	return translated, nil
}

func (l *LLM) complete(ctx context.Context, text string, target language.Language) (string, error) {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt(l.registry.Source().EnglishName, target.EnglishName)),
		schema.UserMessage(text),
	}

	resp, err := l.chat.Generate(ctx, messages, model.WithTemperature(temperature))
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", errEmptyResponse
	}
	return resp.Content, nil
}
