package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type KeyType string

const (
	TRANSLATION KeyType = "pattern_translation"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

var ErrKeyNotExist = redis.Nil

type RedisServiceInterface interface {
	GenerateKey(keyType KeyType, identifier string) string
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key string, value string, ttl time.Duration) error
	DelValue(ctx context.Context, key string) error
	Close() error
}

type RedisService struct {
	client *redis.Client
}

func NewRedisService(config *RedisConfig) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisService{
		client: client,
	}, nil
}

// GenerateKey generates a Redis key with the given key type and identifier
func (r *RedisService) GenerateKey(keyType KeyType, identifier string) string {
	return fmt.Sprintf("%s:%s", string(keyType), identifier)
}

// GetValue gets a value from Redis by key
func (r *RedisService) GetValue(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

// SetValue sets a value in Redis with TTL
func (r *RedisService) SetValue(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// DelValue deletes a value from Redis by key
func (r *RedisService) DelValue(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Close closes the underlying client
func (r *RedisService) Close() error {
	return r.client.Close()
}

// TranslationCache stores translated texts keyed by namespace, target
// language and a hash of the source text. Entries expire after ttl.
type TranslationCache struct {
	store     RedisServiceInterface
	ttl       time.Duration
	namespace string
}

// NewTranslationCache wraps a redis service as a translation cache. The
// namespace names whatever produced the translations (model and prompt), so
// entries written by a different producer are never read back.
func NewTranslationCache(store RedisServiceInterface, ttl time.Duration, namespace string) *TranslationCache {
	return &TranslationCache{store: store, ttl: ttl, namespace: namespace}
}

// Key returns the cache key for text translated into lang
func (c *TranslationCache) Key(lang, text string) string {
	sum := sha256.Sum256([]byte(text))
	return c.store.GenerateKey(TRANSLATION, c.namespace+":"+lang+":"+hex.EncodeToString(sum[:]))
}

// Get returns the cached translation; a miss is not an error
func (c *TranslationCache) Get(ctx context.Context, lang, text string) (string, bool, error) {
	val, err := c.store.GetValue(ctx, c.Key(lang, text))
	if err != nil {
		if errors.Is(err, ErrKeyNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get translation: %w", err)
	}
	return val, true, nil
}

// Set stores a translation
func (c *TranslationCache) Set(ctx context.Context, lang, text, translated string) error {
	if err := c.store.SetValue(ctx, c.Key(lang, text), translated, c.ttl); err != nil {
		return fmt.Errorf("failed to set translation: %w", err)
	}
	return nil
}
