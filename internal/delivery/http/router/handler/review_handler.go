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

// ReviewHandler holds dependencies for review handlers.
type ReviewHandler struct {
	uc     usecase.ReviewUsecase
	logger *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{uc: uc, logger: logger}
}

// ListForProduct returns all reviews of a product, newest first.
func (h *ReviewHandler) ListForProduct(c echo.Context) error {
	reviews, err := h.uc.ListForProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reviews, "")
}

// Create posts a review for a delivered order's product.
func (h *ReviewHandler) Create(c echo.Context) error {
	var input usecase.CreateReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	review, err := h.uc.Create(c.Request().Context(), middleware.IdentityFromContext(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, review, "Review posted")
}

// Delete removes a review.
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.IdentityFromContext(c), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Review deleted")
}
