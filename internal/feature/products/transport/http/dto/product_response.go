package dto

import (
	"time"

	"github.com/Dalfonso062004/gestion-productos/internal/feature/products/domain/entity"
)

// ProductRes は商品のレスポンスDTOです。
type ProductRes struct {
	ID          string    `json:"_id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Price       float64   `json:"precio"`
	Stock       int       `json:"stock"`
	OwnerID     string    `json:"usuario"`       // 所有者のユーザーID
	CreatedAt   time.Time `json:"fechaCreacion"` // 作成日時
}

// MessageRes is a body carrying only a message, e.g. after a delete.
type MessageRes struct {
	Message string `json:"mensaje"`
}

// NewProductRes builds a ProductRes from a product.
func NewProductRes(p *entity.Product) ProductRes {
	return ProductRes{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
	}
}

// NewProductListRes builds the response for a product list; never null.
func NewProductListRes(products []entity.Product) []ProductRes {
	out := make([]ProductRes, 0, len(products))
	for i := range products {
		out = append(out, NewProductRes(&products[i]))
	}
	return out
}
