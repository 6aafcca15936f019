package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"campusmart/internal/delivery/http/middleware"
	"campusmart/internal/delivery/http/response"
	"campusmart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ShopHandler holds dependencies for shop-related handlers.
type ShopHandler struct {
	uc     usecase.ShopUsecase
	logger *slog.Logger
}

// NewShopHandler is the constructor for ShopHandler, injected by Fx.
func NewShopHandler(uc usecase.ShopUsecase, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{uc: uc, logger: logger}
}

// Create opens a shop for the caller.
func (h *ShopHandler) Create(c echo.Context) error {
	var input usecase.CreateShopInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	shop, err := h.uc.CreateShop(c.Request().Context(), middleware.IdentityFromContext(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, shop, "Shop created, pending verification")
}

// List returns shops. The verified query parameter narrows the listing;
// storefront clients pass verified=true.
func (h *ShopHandler) List(c echo.Context) error {
	var verified *bool
	if raw := c.QueryParam("verified"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "verified must be a boolean")
		}
		verified = &parsed
	}

	shops, err := h.uc.ListShops(c.Request().Context(), verified)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shops, "")
}

// ListPending returns unverified shops awaiting admin review.
func (h *ShopHandler) ListPending(c echo.Context) error {
	shops, err := h.uc.ListPendingShops(c.Request().Context(), middleware.IdentityFromContext(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shops, "")
}

// GetOwn returns the caller's shop.
func (h *ShopHandler) GetOwn(c echo.Context) error {
	shop, err := h.uc.GetOwnShop(c.Request().Context(), middleware.IdentityFromContext(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shop, "")
}

// Get returns a shop by ID.
func (h *ShopHandler) Get(c echo.Context) error {
	shop, err := h.uc.GetShop(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shop, "")
}

// Update patches a shop. Owners edit their own details; the verified flag
// is admin-only.
func (h *ShopHandler) Update(c echo.Context) error {
	var input usecase.UpdateShopInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop patch")
	}

	shop, err := h.uc.UpdateShop(c.Request().Context(), middleware.IdentityFromContext(c), c.Param("id"), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shop, "Shop updated")
}
