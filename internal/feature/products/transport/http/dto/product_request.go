package dto

import "github.com/Dalfonso062004/gestion-productos/internal/feature/products/usecase"

// ProductReq は商品の作成・更新リクエストのDTOです。
// 省略されたフィールドはnilのままになります。
type ProductReq struct {
	Name        *string  `json:"nombre"`
	Description *string  `json:"descripcion"`
	Price       *float64 `json:"precio"`
	Stock       *int     `json:"stock"`
}

// ToInput converts the request to the usecase input.
func (r ProductReq) ToInput() usecase.ProductInput {
	return usecase.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
	}
}
