package service

// QRRenderer renders arbitrary payload text as a QR PNG image. It backs the
// local render endpoint that the UPI instrument's QR URL may point at.
type QRRenderer interface {
	// RenderPNG encodes data into a QR code PNG.
	RenderPNG(data string) ([]byte, error)
}
