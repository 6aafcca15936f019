// Package qrcode renders payload text as QR PNG images.
package qrcode

import (
	"fmt"

	"campusmart/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

type qrRenderer struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewRenderer creates a new QR renderer instance. The error correction
// level follows the usual single-letter naming; unknown values fall back
// to Medium.
func NewRenderer(size int, errorCorrectionLevel string) service.QRRenderer {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = defaultSize
	}

	return &qrRenderer{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// RenderPNG encodes data, typically a UPI payment URL, into a QR code PNG.
func (s *qrRenderer) RenderPNG(data string) ([]byte, error) {
	if data == "" {
		return nil, fmt.Errorf("qr payload is empty")
	}

	qrCode, err := qrcode.New(data, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
