// Package router builds the Gin engine and its route table.
package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "github.com/Dalfonso062004/gestion-productos/internal/feature/auth/transport/handler"
	producthandler "github.com/Dalfonso062004/gestion-productos/internal/feature/products/transport/handler"
	"github.com/Dalfonso062004/gestion-productos/internal/platform/http/handler"
	"github.com/Dalfonso062004/gestion-productos/internal/platform/http/middleware"
)

// Config holds router-level settings.
type Config struct {
	// AllowedOrigins enables CORS for these origins. Empty disables CORS.
	AllowedOrigins []string
}

// LoadConfig reads CORS_ALLOWED_ORIGINS as a comma-separated list.
func LoadConfig() Config {
	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return Config{AllowedOrigins: origins}
}

// Handlers groups what the route table dispatches to.
type Handlers struct {
	Health   handler.Pinger
	Gate     gin.HandlerFunc
	Auth     *authhandler.AuthHandler
	Products *producthandler.ProductHandler
}

// NewRouter builds the engine with every route mounted.
func NewRouter(cfg Config, h Handlers) *gin.Engine {
	r := gin.Default()

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}
	// エラーレスポンスを {"mensaje": ...} に統一
	r.Use(middleware.ErrorHandler())
	r.NoRoute(middleware.NoRoute)

	// 認証不要
	// 導通確認用
	health := handler.Health(h.Health)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)
	// ログインページと静的ファイル
	handler.RegisterStatic(r)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		// 新規ユーザー登録
		authGroup.POST("/register", h.Auth.Register)
		// ログイン（JWT 発行）
		authGroup.POST("/login", h.Auth.Login)
		// 認証必須
		authGroup.GET("/perfil", h.Gate, h.Auth.Profile)
	}

	// 認証必須のルート
	products := api.Group("/products")
	products.Use(h.Gate)
	{
		products.GET("", h.Products.List)
		products.POST("", h.Products.Create)
		products.GET("/:id", h.Products.Get)
		products.PUT("/:id", h.Products.Update)
		products.DELETE("/:id", h.Products.Delete)
	}

	return r
}
