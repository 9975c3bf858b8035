package blob

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// BlobStore is the contract for the object store holding product imagery.
// Upload writes the object under the given path; DownloadURL returns a
// fetchable URL for an already-uploaded object.
type BlobStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error
	DownloadURL(ctx context.Context, objectPath string) (string, error)
}

// MainImagePath builds the deterministic storage path for a product's main
// image: products/{productId}/main_{timestamp}.{ext}
func MainImagePath(productID, fileName string) string {
	return fmt.Sprintf("products/%s/main_%d.%s", productID, time.Now().UnixMilli(), FileExt(fileName))
}

// VariantImagePath builds the deterministic storage path for a color-variant
// image: products/{productId}/variants/variant_{variantId}_{timestamp}.{ext}
func VariantImagePath(productID, variantID, fileName string) string {
	return fmt.Sprintf("products/%s/variants/variant_%s_%d.%s", productID, variantID, time.Now().UnixMilli(), FileExt(fileName))
}

// FileExt returns the extension of an uploaded file name without the dot,
// defaulting to jpg when the name carries none.
func FileExt(fileName string) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	if ext == "" {
		return "jpg"
	}
	return strings.ToLower(ext)
}
