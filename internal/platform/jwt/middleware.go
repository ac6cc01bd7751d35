package jwtmw

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dalfonso062004/gestion-productos/internal/feature/auth/domain/entity"
	"github.com/Dalfonso062004/gestion-productos/internal/shared/apperror"
)

const (
	// ContextUserID is the Gin context key holding the authenticated user ID.
	ContextUserID = "userID"
	// ContextUser is the Gin context key holding the authenticated *entity.User.
	ContextUser = "user"
)

// Messages returned by the gate.
const (
	MsgNoToken      = "No autorizado, no se proporcionó token"
	MsgInvalidToken = "No autorizado, token inválido"
	MsgUserNotFound = "No autorizado, usuario no encontrado"
)

// UserFinder resolves the identity carried by a verified token.
// A missing user must be reported with an apperror of KindNotFound.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// AuthRequired returns a Gin middleware that rejects requests without a valid
// bearer token and attaches the resolved user to the context.
// Rejections are recorded with c.Error and formatted by the error middleware.
func AuthRequired(verifier Verifier, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract the bearer token
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abort(c, apperror.Unauthorized(MsgNoToken))
			return
		}

		// 2. Verify signature and expiry
		userID, err := verifier.VerifyToken(tokenStr)
		if err != nil {
			abort(c, apperror.Unauthorized(MsgInvalidToken))
			return
		}

		// 3. Resolve the identity
		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindNotFound {
				abort(c, apperror.Unauthorized(MsgUserNotFound))
				return
			}
			abort(c, fmt.Errorf("resolve authenticated user: %w", err))
			return
		}

		// 4. Attach it for downstream handlers
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by AuthRequired.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok && u != nil
}

// CurrentUserID returns the user ID attached by AuthRequired.
func CurrentUserID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
