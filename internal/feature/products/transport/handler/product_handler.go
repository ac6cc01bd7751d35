// Package handler はproductsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/Dalfonso062004/gestion-productos/internal/feature/products/domain/entity"
	"github.com/Dalfonso062004/gestion-productos/internal/feature/products/transport/http/dto"
	"github.com/Dalfonso062004/gestion-productos/internal/feature/products/usecase"
	"github.com/Dalfonso062004/gestion-productos/internal/platform/http/request"
	jwtmw "github.com/Dalfonso062004/gestion-productos/internal/platform/jwt"
	"github.com/Dalfonso062004/gestion-productos/internal/shared/apperror"
)

// MsgProductDeleted is the body message of a successful delete.
const MsgProductDeleted = "Producto eliminado"

// ProductsUsecase は商品操作のユースケースを定義します。
type ProductsUsecase interface {
	List(ctx context.Context, ownerID string) ([]entity.Product, error)
	Get(ctx context.Context, ownerID, id string) (*entity.Product, error)
	Create(ctx context.Context, ownerID string, in usecase.ProductInput) (*entity.Product, error)
	Update(ctx context.Context, ownerID, id string, in usecase.ProductInput) (*entity.Product, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// ProductHandler は商品操作のHTTPリクエストを処理します。
// All routes run behind the auth gate; the owner always comes from the token.
type ProductHandler struct {
	products ProductsUsecase
}

// NewProductHandler はProductHandlerの新しいインスタンスを生成します。
func NewProductHandler(products ProductsUsecase) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	products, err := h.products.List(c.Request.Context(), owner)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductListRes(products))
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	id, ok := productID(c)
	if !ok {
		return
	}
	p, err := h.products.Get(c.Request.Context(), owner, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductRes(p))
}

// Create handles POST /api/products.
// - 400 when the name or the price is missing, or a value is negative
// - 201 with the stored product on success
func (h *ProductHandler) Create(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	var req dto.ProductReq
	if err := request.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	p, err := h.products.Create(c.Request.Context(), owner, req.ToInput())
	if err != nil {
		_ = c.Error(err)
		return
	}
	slog.Info("product created", "product_id", p.ID, "user_id", owner)
	c.JSON(http.StatusCreated, dto.NewProductRes(p))
}

// Update handles PUT /api/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	id, ok := productID(c)
	if !ok {
		return
	}
	var req dto.ProductReq
	if err := request.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	p, err := h.products.Update(c.Request.Context(), owner, id, req.ToInput())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductRes(p))
}

// Delete handles DELETE /api/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}
	id, ok := productID(c)
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), owner, id); err != nil {
		_ = c.Error(err)
		return
	}
	slog.Info("product deleted", "product_id", id, "user_id", owner)
	c.JSON(http.StatusOK, dto.MessageRes{Message: MsgProductDeleted})
}

// currentOwner returns the authenticated user ID set by the auth gate.
func currentOwner(c *gin.Context) (string, bool) {
	id, ok := jwtmw.CurrentUserID(c)
	if !ok {
		_ = c.Error(apperror.Unauthorized(jwtmw.MsgNoToken))
		return "", false
	}
	return id, true
}

// productID binds the :id path parameter. Anything that is not a UUID cannot name a
// stored product, so it is reported as not found rather than as a bad request.
func productID(c *gin.Context) (string, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		_ = c.Error(usecase.ErrProductNotFound)
		return "", false
	}
	return id.String(), true
}
