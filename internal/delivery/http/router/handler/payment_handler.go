package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"campusmart/internal/delivery/http/response"
	"campusmart/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PaymentHandler serves the local QR render endpoint that payment
// instruments point their QR URL at.
type PaymentHandler struct {
	renderer service.QRRenderer
	logger   *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(renderer service.QRRenderer, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{renderer: renderer, logger: logger}
}

// RenderQR encodes the data query parameter as a QR PNG. Only UPI intent
// payloads are accepted so the endpoint cannot be abused as a generic QR
// generator.
func (h *PaymentHandler) RenderQR(c echo.Context) error {
	data := c.QueryParam("data")
	if data == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Missing data parameter")
	}
	if !strings.HasPrefix(data, "upi://pay?") {
		return response.BadRequest(c, "INVALID_INPUT", "Only UPI intent payloads are supported")
	}

	png, err := h.renderer.RenderPNG(data)
	if err != nil {
		return errors.Wrap(err, "failed to render QR code")
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
