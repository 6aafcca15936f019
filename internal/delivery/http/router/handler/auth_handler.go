package handler

import (
	"log/slog"
	"net/http"

	"campusmart/internal/delivery/http/middleware"
	"campusmart/internal/delivery/http/response"
	domainerrors "campusmart/internal/domain/errors"
	"campusmart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for identity-related handlers.
type AuthHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.UserUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// Sync finds or creates the User record for the verified token. The client
// calls this once after sign-in; repeating it is harmless.
func (h *AuthHandler) Sync(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return domainerrors.ErrUnauthenticated
	}

	user, err := h.uc.UpsertFromClaims(c.Request().Context(), claims)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Account synced")
}

// GetUser returns a user by ID. Requires an authenticated caller but not
// any particular role; profiles are visible campus-wide.
func (h *AuthHandler) GetUser(c echo.Context) error {
	user, err := h.uc.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// Me returns the caller's own User record.
func (h *AuthHandler) Me(c echo.Context) error {
	id := middleware.IdentityFromContext(c)
	if id == nil {
		return domainerrors.ErrUnauthenticated
	}

	user, err := h.uc.GetUser(c.Request().Context(), id.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}
