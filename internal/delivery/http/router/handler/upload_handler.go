package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"path"

	"campusmart/config"
	"campusmart/internal/delivery/http/response"
	domainerrors "campusmart/internal/domain/errors"
	"campusmart/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UploadHandler serves general-purpose file uploads, used by shop owners
// for product and shop imagery.
type UploadHandler struct {
	fileStore service.FileStore
	maxUpload int64
	logger    *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler, injected by Fx.
func NewUploadHandler(fileStore service.FileStore, cfg *config.Config, logger *slog.Logger) *UploadHandler {
	maxUpload := int64(defaultUploadMaxBytes)
	if cfg != nil && cfg.Uploads != nil && cfg.Uploads.MaxBytes > 0 {
		maxUpload = cfg.Uploads.MaxBytes
	}

	return &UploadHandler{
		fileStore: fileStore,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// Upload streams a multipart file into the blob store and returns its
// public URL. Stored names are random; the original filename only
// contributes its extension.
func (h *UploadHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Multipart field 'file' is required")
	}
	if file.Size > h.maxUpload {
		return domainerrors.ErrValidation.WrapMessage("file exceeds upload limit")
	}

	src, err := file.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer src.Close()

	name := fmt.Sprintf("%s%s", uuid.NewString(), path.Ext(file.Filename))
	url, err := h.fileStore.Upload(c.Request().Context(), "uploads", name,
		file.Header.Get("Content-Type"), src)
	if err != nil {
		return errors.Wrap(err, "failed to store upload")
	}

	return response.Success(c, http.StatusCreated, map[string]string{"url": url}, "File uploaded")
}
