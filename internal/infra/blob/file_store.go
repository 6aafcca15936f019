// Package blob stores uploaded binary artifacts through a gocloud bucket.
package blob

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"campusmart/config"
	"campusmart/internal/domain/lifecycle"
	"campusmart/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers registered for URL-based opening.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

// fileStore implements the FileStore interface on a gocloud bucket. The
// driver (local filesystem, GCS, in-memory) comes from the bucket URL.
type fileStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// Params holds dependencies for the file store, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and returns the file store.
func New(params Params) (service.FileStore, error) {
	cfg := params.Config.Uploads
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("uploads bucket URL is required")
	}

	openCtx, cancel := context.WithTimeout(params.Ctx, lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Upload bucket opened", slog.String("bucket", cfg.BucketURL))

	return &fileStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload writes the content under folder/name and returns the public URL
// the stored object resolves under.
func (s *fileStore) Upload(ctx context.Context, folder, name, contentType string, content io.Reader) (string, error) {
	key := path.Join(folder, name)

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to open writer for %s", key)
	}

	if _, err := io.Copy(writer, content); err != nil {
		writer.Close()

		return "", errors.Wrapf(err, "failed to write %s", key)
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to finalize %s", key)
	}

	return s.publicBaseURL + "/" + key, nil
}
