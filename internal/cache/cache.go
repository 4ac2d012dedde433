package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ppiankov/legalyze/internal/model"
)

// KeyPrefix namespaces every legalyze cache key
const KeyPrefix = "legalyze:v1:"

// Cache defines the interface for caching
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// ContentHash returns the hex sha256 of document content
func ContentHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// Key builds the cache key for a content hash. variant separates reports
// produced with different optional facets.
func Key(contentHash, variant string) string {
	if variant == "" {
		return KeyPrefix + contentHash
	}
	return KeyPrefix + contentHash + ":" + variant
}

// New builds the backend named in cfg. A disabled cache returns Nop.
func New(cfg model.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		return Nop{}, nil
	}

	switch cfg.Backend {
	case "memory":
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute), nil
	case "disk":
		return NewDiskCache(cfg.Dir, cfg.DiskTTL), nil
	case "", "layered":
		return NewLayeredCache(NewMemoryCache(cfg.MemoryTTL, 10*time.Minute), NewDiskCache(cfg.Dir, cfg.DiskTTL)), nil
	case "redis":
		return NewRedisCache(NewRedisClient(cfg), cfg.DiskTTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Nop never stores anything
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool)               { return nil, false }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) Delete(context.Context, string) error                     { return nil }
func (Nop) Clear(context.Context) error                              { return nil }
