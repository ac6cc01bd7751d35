// Package usecase implements the business logic for the auth feature.
package usecase

import "github.com/Dalfonso062004/gestion-productos/internal/shared/apperror"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = apperror.NotFound("user not found")

	// ErrEmailAlreadyExists is returned when attempting to register an email that is already taken.
	ErrEmailAlreadyExists = apperror.New(apperror.KindDuplicate, "El usuario ya existe")

	// ErrMissingFields is returned when registration lacks name, email or password.
	ErrMissingFields = apperror.Validation("Por favor complete todos los campos")

	// ErrMissingCredentials is returned when login lacks email or password.
	ErrMissingCredentials = apperror.Validation("Email y contraseña son requeridos")

	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	// Both cases share this error so callers cannot tell which one failed.
	ErrInvalidCredentials = apperror.Unauthorized("Credenciales inválidas")
)
