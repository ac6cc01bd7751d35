package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dalfonso062004/gestion-productos/internal/feature/products/domain/entity"
)

// ProductRepository はproductエンティティの永続化層を抽象化します。
// Every lookup is scoped to an owner; a product owned by someone else reports ErrProductNotFound.
type ProductRepository interface {
	// ListByOwner returns the owner's products in creation order.
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Product, error)
	// FindByID returns the owner's product, or ErrProductNotFound.
	FindByID(ctx context.Context, ownerID, id string) (*entity.Product, error)
	// Create persists a new product and assigns its ID.
	Create(ctx context.Context, p *entity.Product) error
	// Update writes the mutable fields of an existing product.
	Update(ctx context.Context, p *entity.Product) error
	// Delete removes the owner's product, or returns ErrProductNotFound.
	Delete(ctx context.Context, ownerID, id string) error
}

// productsUsecase は商品管理のビジネスロジックを実装します。
type productsUsecase struct {
	repo ProductRepository
}

// NewProductsUsecase はproductsUsecaseの新しいインスタンスを生成します。
func NewProductsUsecase(repo ProductRepository) *productsUsecase {
	return &productsUsecase{repo: repo}
}

// List returns every product owned by ownerID.
func (u *productsUsecase) List(ctx context.Context, ownerID string) ([]entity.Product, error) {
	products, err := u.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

// Get returns the owner's product with the given ID.
func (u *productsUsecase) Get(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	p, err := u.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return p, nil
}

// Create validates the input and stores a new product owned by ownerID.
// Stock defaults to 0 when absent.
func (u *productsUsecase) Create(ctx context.Context, ownerID string, in ProductInput) (*entity.Product, error) {
	if err := validateForCreate(in); err != nil {
		return nil, err
	}

	p := &entity.Product{
		Name:    in.trimmedName(),
		Price:   *in.Price,
		OwnerID: ownerID,
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}

	if err := u.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

// Update applies the present fields of in to the owner's product.
// The name is replaced only when non-empty; description, price and stock whenever present.
func (u *productsUsecase) Update(ctx context.Context, ownerID, id string, in ProductInput) (*entity.Product, error) {
	p, err := u.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	if err := validateRanges(in); err != nil {
		return nil, err
	}

	if name := in.trimmedName(); name != "" {
		p.Name = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}

	if err := u.repo.Update(ctx, p); err != nil {
		return nil, mapLookupErr(err)
	}
	return p, nil
}

// Delete removes the owner's product with the given ID.
func (u *productsUsecase) Delete(ctx context.Context, ownerID, id string) error {
	if err := u.repo.Delete(ctx, ownerID, id); err != nil {
		return mapLookupErr(err)
	}
	return nil
}

// mapLookupErr keeps ErrProductNotFound as is and wraps anything else as a store failure.
func mapLookupErr(err error) error {
	if errors.Is(err, ErrProductNotFound) {
		return ErrProductNotFound
	}
	return fmt.Errorf("product store: %w", err)
}
