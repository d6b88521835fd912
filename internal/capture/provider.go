// Package capture turns an image source into the data URL payload the
// wizard stores.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"seller-onboarding/internal/domain/model"
)

var (
	ErrNotAnImage = errors.New("file is not an image")
	ErrTooLarge   = errors.New("image is too large")
)

// DefaultMaxBytes caps a single capture. A full registration carries up to
// 601 images, so each one must stay well under the server body limit.
const DefaultMaxBytes = 8 << 20

// Provider yields one image payload per call.
type Provider interface {
	Capture(ctx context.Context, source string) (model.ImagePayload, error)
}

// FileProvider reads the image from a local path.
type FileProvider struct {
	MaxBytes int64
}

var _ Provider = (*FileProvider)(nil)

func NewFileProvider(maxBytes int64) *FileProvider {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &FileProvider{MaxBytes: maxBytes}
}

func (p *FileProvider) Capture(ctx context.Context, path string) (model.ImagePayload, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("capture: empty path")
	}
	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	if fi.IsDir() {
		return "", fmt.Errorf("capture: %s is a directory", path)
	}
	if fi.Size() > p.MaxBytes {
		return "", fmt.Errorf("capture: %s: %w (%d bytes)", path, ErrTooLarge, fi.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	return Encode(data)
}

// Encode sniffs data and wraps it as a data URL. Only image types pass.
func Encode(data []byte) (model.ImagePayload, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotAnImage, mt.String())
	}
	return model.NewImagePayload(mt.String(), data), nil
}
