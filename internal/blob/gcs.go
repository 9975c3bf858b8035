package blob

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

// GCSStore implements BlobStore on a single Cloud Storage bucket. Download
// URLs are V4-signed and time-bound; when signing is unavailable (for
// example, running with a public bucket and no signing credentials) the
// public object URL is returned instead.
type GCSStore struct {
	client       *storage.Client
	bucket       string
	signedURLTTL time.Duration
}

var _ BlobStore = (*GCSStore)(nil)

func NewGCSStore(ctx context.Context, bucket string, signedURLTTL time.Duration) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket, signedURLTTL: signedURLTTL}, nil
}

func (s *GCSStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error {
	w := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("upload %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("upload %s: %w", objectPath, err)
	}
	return nil
}

func (s *GCSStore) DownloadURL(ctx context.Context, objectPath string) (string, error) {
	url, err := s.client.Bucket(s.bucket).SignedURL(objectPath, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(s.signedURLTTL),
		Scheme:  storage.SigningSchemeV4,
	})
	if err == nil {
		return url, nil
	}

	// Signing needs service-account credentials; fall back to the public
	// object URL so a readable bucket still serves imagery.
	attrs, attrErr := s.client.Bucket(s.bucket).Object(objectPath).Attrs(ctx)
	if attrErr != nil {
		return "", fmt.Errorf("download url %s: %w", objectPath, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, attrs.Name), nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
