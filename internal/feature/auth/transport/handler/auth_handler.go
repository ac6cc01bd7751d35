// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dalfonso062004/gestion-productos/internal/feature/auth/domain/entity"
	"github.com/Dalfonso062004/gestion-productos/internal/feature/auth/transport/http/dto"
	"github.com/Dalfonso062004/gestion-productos/internal/platform/http/request"
	jwtmw "github.com/Dalfonso062004/gestion-productos/internal/platform/jwt"
	"github.com/Dalfonso062004/gestion-productos/internal/shared/apperror"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register creates a user and returns it with a token.
	Register(ctx context.Context, name, email, password string) (*entity.User, string, error)
	// Login authenticates a user and returns it with a token.
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	// Profile returns the user with the given ID.
	Profile(ctx context.Context, userID string) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// Errors are recorded with c.Error and rendered by the error middleware.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/auth/register.
// - 400 for missing fields, malformed JSON or an already registered email
// - 201 with the user summary and a token on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := request.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	user, token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		slog.Warn("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		_ = c.Error(err)
		return
	}
	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewAuthRes(user, token))
}

// Login handles POST /api/auth/login.
// - 400 when email or password is missing
// - 401 with one generic message for an unknown email or a wrong password
// - 200 with the user summary and a token on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := request.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		_ = c.Error(err)
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.NewAuthRes(user, token))
}

// Profile handles GET /api/auth/perfil. It must run behind the auth gate.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := jwtmw.CurrentUserID(c)
	if !ok {
		_ = c.Error(apperror.Unauthorized(jwtmw.MsgNoToken))
		return
	}
	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileRes(user))
}
