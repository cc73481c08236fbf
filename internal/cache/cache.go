// Package cache stores generation responses in Redis, keyed on the full
// normalized request.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/resume-adapter/internal/types"
)

// KeyPrefix namespaces every key written by this package.
const KeyPrefix = "resume-adapter:generation:"

// Cache is a Redis-backed response cache.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisClient creates and verifies a Redis client connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}

// New wraps an existing client. A zero ttl stores entries without expiry.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Open connects to redisURL and returns a cache using it.
func Open(ctx context.Context, redisURL string, ttl time.Duration) (*Cache, error) {
	rdb, err := NewRedisClient(ctx, redisURL)
	if err != nil {
		return nil, err
	}
	return New(rdb, ttl), nil
}

// Get returns the cached response for key. A miss returns ok=false and no error.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.rdb.Get(ctx, KeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return value, true, nil
}

// Set stores a response under key.
func (c *Cache) Set(ctx context.Context, key, value string) error {
	if err := c.rdb.Set(ctx, KeyPrefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

// keyDirective is the normalized form of a directive inside a key.
type keyDirective struct {
	Label    string `json:"l"`
	Weight   int    `json:"w"`
	Category string `json:"c"`
}

type keyMaterial struct {
	Provider   string         `json:"p"`
	Model      string         `json:"m"`
	Source     string         `json:"s"`
	Job        string         `json:"j"`
	Language   string         `json:"lang"`
	Directives []keyDirective `json:"d"`
	Custom     []string       `json:"x"`
	Creativity string         `json:"t"`
}

// Key returns the hex SHA-256 of the normalized request tuple. Two requests
// share a key only when every field that reaches the prompt or the sampling
// parameters is equal.
func Key(provider, model string, req *types.GenerationRequest) string {
	material := keyMaterial{
		Provider:   provider,
		Model:      model,
		Source:     req.SourceText,
		Job:        strings.TrimSpace(req.JobDescription),
		Language:   string(req.TargetLanguage),
		Creativity: strconv.FormatFloat(req.Creativity, 'f', -1, 64),
	}
	for _, d := range req.Directives.Items() {
		material.Directives = append(material.Directives, keyDirective{
			Label:    d.Label,
			Weight:   int(d.Weight),
			Category: string(d.Category),
		})
	}
	for _, line := range req.CustomInstructions {
		if line = strings.TrimSpace(line); line != "" {
			material.Custom = append(material.Custom, line)
		}
	}

	// Marshalling a struct of strings and ints cannot fail.
	data, _ := json.Marshal(material)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
