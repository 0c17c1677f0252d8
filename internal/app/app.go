// Package app assembles the pattern service from configuration. Both the
// HTTP server and patternctl start from here.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/prettyknit/pattern-service/internal/config"
	"github.com/prettyknit/pattern-service/internal/document"
	"github.com/prettyknit/pattern-service/internal/glossary"
	"github.com/prettyknit/pattern-service/internal/language"
	"github.com/prettyknit/pattern-service/internal/services/pattern"
	"github.com/prettyknit/pattern-service/internal/translate"
	"github.com/prettyknit/pattern-service/pkg/logger"
	"github.com/prettyknit/pattern-service/pkg/redis"
)

// App holds the long-lived collaborators of one process
type App struct {
	Config     *config.ServiceConfig
	Registry   *language.Registry
	Glossary   *glossary.Glossary
	Translator translate.Translator
	Service    *pattern.Service

	redis *redis.RedisService
}

// New builds the registry, glossary, translator, renderer and batch service.
// Redis is optional: a failed connection is logged and the service runs
// without a translation cache.
func New(ctx context.Context, cfg *config.ServiceConfig) (*App, error) {
	registry := language.Default()

	g, err := loadGlossary(cfg.GlossaryPath)
	if err != nil {
		return nil, err
	}
	logger.Base().Info("glossary loaded",
		zap.String("path", cfg.GlossaryPath),
		zap.Int("terms", g.Len()))

	a := &App{
		Config:   cfg,
		Registry: registry,
		Glossary: g,
	}

	var opts []translate.Option
	if cfg.LLMEnabled() && cfg.CacheEnabled() {
		redisSvc, err := redis.NewRedisService(&redis.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Base().Warn("failed to initialize redis service, running without translation cache", zap.Error(err))
		} else {
			a.redis = redisSvc
			opts = append(opts, translate.WithCache(redis.NewTranslationCache(redisSvc, cfg.TranslationCacheTTL,
				translate.CacheNamespace(cfg.OpenAIModel))))
			logger.Base().Info("translation cache enabled",
				zap.String("host", cfg.RedisHost),
				zap.String("namespace", translate.CacheNamespace(cfg.OpenAIModel)),
				zap.Duration("ttl", cfg.TranslationCacheTTL))
		}
	}

	translator, err := translate.New(ctx, translate.Settings{
		APIKey:    cfg.OpenAIAPIKey,
		BaseURL:   cfg.OpenAIBaseURL,
		Model:     cfg.OpenAIModel,
		Timeout:   cfg.LLMTimeout,
		RateLimit: cfg.LLMRateLimit,
	}, registry, g, opts...)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create translator: %w", err)
	}
	a.Translator = translator

	if cfg.LLMEnabled() {
		logger.Base().Info("llm translation enabled",
			zap.String("model", cfg.OpenAIModel),
			zap.String("base_url", cfg.OpenAIBaseURL),
			zap.Float64("requests_per_second", cfg.LLMRateLimit))
	} else {
		logger.Base().Info("no OPENAI_API_KEY configured, using glossary dictionary translation")
	}

	renderer := document.NewRenderer(document.Config{
		FontDir:    cfg.FontDir,
		FooterText: cfg.FooterText,
	})
	a.Service = pattern.NewService(registry, translator, renderer)

	return a, nil
}

// Close releases the Redis connection, if any
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	err := a.redis.Close()
	a.redis = nil
	return err
}

func loadGlossary(path string) (*glossary.Glossary, error) {
	if path == "" {
		return glossary.Default(), nil
	}
	g, err := glossary.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load glossary %s: %w", path, err)
	}
	return g, nil
}
