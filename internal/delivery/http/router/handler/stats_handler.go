package handler

import (
	"log/slog"
	"net/http"

	"campusmart/internal/delivery/http/middleware"
	"campusmart/internal/delivery/http/response"
	"campusmart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StatsHandler holds dependencies for dashboard stats handlers.
type StatsHandler struct {
	uc     usecase.StatsUsecase
	logger *slog.Logger
}

// NewStatsHandler is the constructor for StatsHandler, injected by Fx.
func NewStatsHandler(uc usecase.StatsUsecase, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{uc: uc, logger: logger}
}

// Shop returns aggregates for the caller's shop dashboard.
func (h *StatsHandler) Shop(c echo.Context) error {
	stats, err := h.uc.ShopStats(c.Request().Context(), middleware.IdentityFromContext(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}

// Admin returns platform-wide aggregates.
func (h *StatsHandler) Admin(c echo.Context) error {
	stats, err := h.uc.AdminStats(c.Request().Context(), middleware.IdentityFromContext(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}
