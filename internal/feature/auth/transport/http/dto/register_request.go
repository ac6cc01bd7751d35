// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for POST /api/auth/register.
// Presence checks are done by the usecase so the error messages stay uniform.
type RegisterReq struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
