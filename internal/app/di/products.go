// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	productadapters "github.com/Dalfonso062004/gestion-productos/internal/feature/products/adapters"
	"github.com/Dalfonso062004/gestion-productos/internal/feature/products/usecase"
	"github.com/Dalfonso062004/gestion-productos/internal/platform/cache"
)

// NewProductRepository creates a ProductRepository implementation.
// If Redis is available, the GORM repository is wrapped with the list cache.
// Otherwise, it is used directly.
func NewProductRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.ProductRepository {
	repo := productadapters.NewProductRepository(db)
	if rdb != nil {
		return cache.NewCachingProductRepository(rdb, ttl, repo, cache.DefaultNamespace)
	}
	return repo
}
