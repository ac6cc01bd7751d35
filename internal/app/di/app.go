package di

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Dalfonso062004/gestion-productos/internal/app/router"
	authadapters "github.com/Dalfonso062004/gestion-productos/internal/feature/auth/adapters"
	authhandler "github.com/Dalfonso062004/gestion-productos/internal/feature/auth/transport/handler"
	authusecase "github.com/Dalfonso062004/gestion-productos/internal/feature/auth/usecase"
	producthandler "github.com/Dalfonso062004/gestion-productos/internal/feature/products/transport/handler"
	productusecase "github.com/Dalfonso062004/gestion-productos/internal/feature/products/usecase"
	jwtmw "github.com/Dalfonso062004/gestion-productos/internal/platform/jwt"
)

// Deps are the process-wide resources the HTTP application is built from.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client // nil disables the product cache
	JWT      jwtmw.Config
	CacheTTL time.Duration
	Router   router.Config
}

// NewEngine wires repositories, usecases and handlers and returns the Gin engine.
func NewEngine(d Deps) (*gin.Engine, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	// Repository
	userRepo := authadapters.NewUserRepository(d.DB)
	productRepo := NewProductRepository(d.Redis, d.DB, d.CacheTTL)

	// Token service
	tokens := jwtmw.NewServiceFromConfig(d.JWT)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	productsUC := productusecase.NewProductsUsecase(productRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	productH := producthandler.NewProductHandler(productsUC)

	return router.NewRouter(d.Router, router.Handlers{
		Health:   sqlDB,
		Gate:     jwtmw.AuthRequired(tokens, userRepo),
		Auth:     authH,
		Products: productH,
	}), nil
}
