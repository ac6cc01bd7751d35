// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Dalfonso062004/gestion-productos/internal/feature/products/domain/entity"
	"github.com/Dalfonso062004/gestion-productos/internal/feature/products/usecase"
)

const (
	// DefaultTTL is used when the configured TTL is not positive.
	DefaultTTL = 5 * time.Minute
	// DefaultNamespace prefixes every key written by the product cache.
	DefaultNamespace = "products"
)

// CachingProductRepository decorates a ProductRepository with Redis caching of the
// per-owner product list. Single-product lookups go straight to the inner repository.
// Every write invalidates the owner's list. Redis failures never fail a request.
type CachingProductRepository struct {
	inner     usecase.ProductRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ProductRepository = (*CachingProductRepository)(nil)

// NewCachingProductRepository decorates a ProductRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "products".
// A nil rdb disables caching.
func NewCachingProductRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProductRepository, namespace string) *CachingProductRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CachingProductRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// ListByOwner returns the owner's products, checking the cache first.
func (c *CachingProductRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Product, error) {
	if c.rdb == nil {
		return c.inner.ListByOwner(ctx, ownerID)
	}

	key := c.listKey(ownerID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Product
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 破損したキャッシュを削除
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.Warn("product cache write failed", "key", key, "error", err)
		}
	}
	return out, nil
}

// FindByID is not cached.
func (c *CachingProductRepository) FindByID(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	return c.inner.FindByID(ctx, ownerID, id)
}

// Create stores the product and invalidates the owner's list.
func (c *CachingProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.OwnerID)
	return nil
}

// Update writes the product and invalidates the owner's list.
func (c *CachingProductRepository) Update(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Update(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.OwnerID)
	return nil
}

// Delete removes the product and invalidates the owner's list.
func (c *CachingProductRepository) Delete(ctx context.Context, ownerID, id string) error {
	if err := c.inner.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	c.invalidate(ctx, ownerID)
	return nil
}

// invalidate drops the owner's cached list. Failures are logged only.
func (c *CachingProductRepository) invalidate(ctx context.Context, ownerID string) {
	if c.rdb == nil {
		return
	}
	key := c.listKey(ownerID)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		slog.Warn("product cache invalidation failed", "key", key, "error", err)
	}
}

// listKey generates the cache key of an owner's product list.
func (c *CachingProductRepository) listKey(ownerID string) string {
	return c.namespace + ":owner:" + safe(ownerID)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
