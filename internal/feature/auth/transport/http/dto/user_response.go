package dto

import (
	"time"

	"github.com/Dalfonso062004/gestion-productos/internal/feature/auth/domain/entity"
)

// AuthRes is returned by register and login: a user summary plus a bearer token.
type AuthRes struct {
	ID    string `json:"_id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// ProfileRes is the authenticated user's profile. The password hash is never included.
type ProfileRes struct {
	ID        string    `json:"_id"`
	Name      string    `json:"nombre"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAuthRes builds an AuthRes from a user and its token.
func NewAuthRes(u *entity.User, token string) AuthRes {
	return AuthRes{ID: u.ID, Name: u.Name, Email: u.Email, Token: token}
}

// NewProfileRes builds a ProfileRes from a user.
func NewProfileRes(u *entity.User) ProfileRes {
	return ProfileRes{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}
