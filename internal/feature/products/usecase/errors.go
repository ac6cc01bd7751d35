// Package usecase implements the business logic for the products feature.
package usecase

import "github.com/Dalfonso062004/gestion-productos/internal/shared/apperror"

var (
	// ErrProductNotFound is returned for a missing product and for one owned by another user.
	ErrProductNotFound = apperror.NotFound("Producto no encontrado")

	// ErrMissingNameOrPrice is returned when a new product lacks a name or a price.
	ErrMissingNameOrPrice = apperror.Validation("Nombre y precio son obligatorios")

	// ErrNegativePrice is returned when a price below zero is supplied.
	ErrNegativePrice = apperror.Validation("El precio no puede ser negativo")

	// ErrNegativeStock is returned when a stock below zero is supplied.
	ErrNegativeStock = apperror.Validation("El stock no puede ser negativo")
)
