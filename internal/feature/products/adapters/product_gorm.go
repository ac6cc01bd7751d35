// Package adapters はproductsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Dalfonso062004/gestion-productos/internal/feature/products/domain/entity"
	"github.com/Dalfonso062004/gestion-productos/internal/feature/products/usecase"
)

// productGorm はProductRepositoryインターフェースのGORM実装です。
// すべてのクエリは所有者IDで絞り込まれます。
type productGorm struct {
	db *gorm.DB
}

// productGormがProductRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ProductRepository = (*productGorm)(nil)

// NewProductRepository は指定されたgorm.DB接続でproductGormの新しいインスタンスを生成します。
func NewProductRepository(db *gorm.DB) *productGorm {
	return &productGorm{db: db}
}

// ListByOwner は所有者の商品を作成順に取得します。
func (r *productGorm) ListByOwner(ctx context.Context, ownerID string) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID は所有者の商品をIDで取得します。
// 他のユーザーの商品も存在しない商品と同じくusecase.ErrProductNotFoundを返します。
func (r *productGorm) FindByID(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	if id == "" || ownerID == "" {
		return nil, usecase.ErrProductNotFound
	}
	var p entity.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create は商品を追加し、IDを割り当てます。
func (r *productGorm) Create(ctx context.Context, p *entity.Product) error {
	if p == nil {
		return errors.New("product must not be nil")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

// Update は商品の変更可能なフィールドを書き込みます。所有者とcreated_atは変更しません。
func (r *productGorm) Update(ctx context.Context, p *entity.Product) error {
	if p == nil {
		return errors.New("product must not be nil")
	}
	// mapで渡してゼロ値（価格0、在庫0、空の説明）も更新対象にする
	res := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("id = ? AND owner_id = ?", p.ID, p.OwnerID).
		Updates(map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"stock":       p.Stock,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}

// Delete は所有者の商品を削除します。
func (r *productGorm) Delete(ctx context.Context, ownerID, id string) error {
	if id == "" || ownerID == "" {
		return usecase.ErrProductNotFound
	}
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&entity.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}
