package handler

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"

	"campusmart/config"
	"campusmart/internal/delivery/http/middleware"
	"campusmart/internal/delivery/http/response"
	"campusmart/internal/domain/entity"
	domainerrors "campusmart/internal/domain/errors"
	"campusmart/internal/domain/service"
	"campusmart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// defaultUploadMaxBytes caps payment screenshot uploads when no limit is
// configured.
const defaultUploadMaxBytes = 5 << 20

// OrderHandler holds dependencies for checkout and order handlers.
type OrderHandler struct {
	checkoutUC usecase.CheckoutUsecase
	orderUC    usecase.OrderUsecase
	fileStore  service.FileStore
	maxUpload  int64
	logger     *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(checkoutUC usecase.CheckoutUsecase, orderUC usecase.OrderUsecase, fileStore service.FileStore, cfg *config.Config, logger *slog.Logger) *OrderHandler {
	maxUpload := int64(defaultUploadMaxBytes)
	if cfg != nil && cfg.Uploads != nil && cfg.Uploads.MaxBytes > 0 {
		maxUpload = cfg.Uploads.MaxBytes
	}

	return &OrderHandler{
		checkoutUC: checkoutUC,
		orderUC:    orderUC,
		fileStore:  fileStore,
		maxUpload:  maxUpload,
		logger:     logger,
	}
}

// Checkout splits the cart into per-shop orders with payment instruments.
func (h *OrderHandler) Checkout(c echo.Context) error {
	var input usecase.CheckoutInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	output, err := h.checkoutUC.Checkout(c.Request().Context(), middleware.IdentityFromContext(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Orders placed")
}

// List returns the caller's role-scoped order listing.
func (h *OrderHandler) List(c echo.Context) error {
	status := entity.OrderStatus(c.QueryParam("status"))

	orders, err := h.orderUC.ListOrders(c.Request().Context(), middleware.IdentityFromContext(c), status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// Get returns an order visible to the caller.
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orderUC.GetOrder(c.Request().Context(), middleware.IdentityFromContext(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

// UpdateStatus advances the order lifecycle.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var input usecase.UpdateOrderStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	order, err := h.orderUC.UpdateStatus(c.Request().Context(), middleware.IdentityFromContext(c), c.Param("id"), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated")
}

// AttachPayment records payment evidence on the order. The client either
// uploads the screenshot as multipart form data, or sends a JSON body with
// a URL it already uploaded elsewhere.
func (h *OrderHandler) AttachPayment(c echo.Context) error {
	orderID := c.Param("id")

	if file, err := c.FormFile("screenshot"); err == nil {
		url, err := h.storeScreenshot(c, orderID, file)
		if err != nil {
			return err
		}

		order, err := h.orderUC.AttachPayment(c.Request().Context(), middleware.IdentityFromContext(c),
			orderID, &usecase.AttachPaymentInput{ScreenshotURL: url})
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, order, "Payment screenshot attached")
	}

	var input usecase.AttachPaymentInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	order, err := h.orderUC.AttachPayment(c.Request().Context(), middleware.IdentityFromContext(c), orderID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Payment screenshot attached")
}

// storeScreenshot streams the uploaded file into the blob store.
func (h *OrderHandler) storeScreenshot(c echo.Context, orderID string, file *multipart.FileHeader) (string, error) {
	if file.Size > h.maxUpload {
		return "", domainerrors.ErrValidation.WrapMessage("screenshot exceeds upload limit")
	}

	src, err := file.Open()
	if err != nil {
		return "", errors.Wrap(err, "failed to open uploaded screenshot")
	}
	defer src.Close()

	name := fmt.Sprintf("%s%s", orderID, path.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")

	url, err := h.fileStore.Upload(c.Request().Context(), "payment-screenshots", name, contentType, src)
	if err != nil {
		return "", errors.Wrap(err, "failed to store screenshot")
	}

	return url, nil
}
