package adapter

import (
	"context"

	"seller-onboarding/internal/domain/model"
)

// Object storage folders used by the registration flow.
const (
	FolderShopImages    = "shop-images"
	FolderProductImages = "product-images"
)

// ImageUploader compresses an image payload, stores it publicly and returns its
// retrieval URL. Every call creates a new object; retries never overwrite.
type ImageUploader interface {
	Upload(ctx context.Context, img model.ImagePayload, folder string) (string, error)
}
