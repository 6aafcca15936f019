package service

import (
	"context"
	"io"
)

// FileStore persists uploaded binary artifacts (product images, payment
// screenshots) and returns a publicly resolvable URL. The blob store is an
// external collaborator; the domain only ever sees URLs.
type FileStore interface {
	// Upload writes the content under folder with the given name and
	// content type, returning the public URL.
	Upload(ctx context.Context, folder, name, contentType string, content io.Reader) (string, error)
}
