//go:build !integration

package storage

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"seller-onboarding/internal/config"
	"seller-onboarding/internal/domain/model"
	"seller-onboarding/internal/domain/ports/adapter"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// pngHeader returns a PNG signature and IHDR chunk declaring a w x h RGBA
// image with no pixel data behind it.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	chunk := make([]byte, 0, 17)
	chunk = append(chunk, "IHDR"...)
	chunk = binary.BigEndian.AppendUint32(chunk, w)
	chunk = binary.BigEndian.AppendUint32(chunk, h)
	chunk = append(chunk, 8, 6, 0, 0, 0)
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(chunk)-4))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestFitWithin(t *testing.T) {
	cases := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{800, 600, 1200, 800, 600},
		{2400, 1800, 1200, 1200, 900},
		{1000, 3000, 1200, 400, 1200},
		{1200, 1200, 1200, 1200, 1200},
		{5000, 2, 1200, 1200, 1},
	}
	for _, tc := range cases {
		gw, gh := fitWithin(tc.w, tc.h, tc.max)
		if gw != tc.wantW || gh != tc.wantH {
			t.Errorf("fitWithin(%d,%d,%d) = %d,%d want %d,%d", tc.w, tc.h, tc.max, gw, gh, tc.wantW, tc.wantH)
		}
	}
}

func TestCompress(t *testing.T) {
	t.Run("downscales large images into the box", func(t *testing.T) {
		out, err := Compress(pngBytes(t, 1600, 900), 1200, 80, 0)
		if err != nil {
			t.Fatalf("Compress failed: %v", err)
		}
		cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("output does not decode: %v", err)
		}
		if format != "jpeg" {
			t.Errorf("expected jpeg, got %s", format)
		}
		if cfg.Width != 1200 || cfg.Height != 675 {
			t.Errorf("unexpected size %dx%d", cfg.Width, cfg.Height)
		}
	})

	t.Run("never upscales", func(t *testing.T) {
		out, err := Compress(pngBytes(t, 64, 48), 1200, 80, 0)
		if err != nil {
			t.Fatalf("Compress failed: %v", err)
		}
		img, err := jpeg.Decode(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("output does not decode: %v", err)
		}
		if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
			t.Errorf("unexpected size %v", b)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := Compress([]byte("not an image"), 1200, 80, 0); !errors.Is(err, ErrUndecodableImage) {
			t.Errorf("expected ErrUndecodableImage, got %v", err)
		}
	})

	t.Run("refuses oversized headers before decoding", func(t *testing.T) {
		raw := pngHeader(30000, 30000)
		cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
		if err != nil {
			t.Fatalf("crafted header does not parse: %v", err)
		}
		if cfg.Width != 30000 || cfg.Height != 30000 {
			t.Fatalf("crafted header reads as %dx%d", cfg.Width, cfg.Height)
		}
		if _, err := Compress(raw, 1200, 80, 0); !errors.Is(err, ErrImageTooLarge) {
			t.Errorf("expected ErrImageTooLarge, got %v", err)
		}
	})

	t.Run("honours a custom pixel limit", func(t *testing.T) {
		raw := pngBytes(t, 100, 100)
		if _, err := Compress(raw, 1200, 80, 9999); !errors.Is(err, ErrImageTooLarge) {
			t.Errorf("expected ErrImageTooLarge, got %v", err)
		}
		if _, err := Compress(raw, 1200, 80, 10000); err != nil {
			t.Errorf("image at the limit rejected: %v", err)
		}
	})
}

type fakePutter struct {
	mu     sync.Mutex
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) Upload(ctx context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(in.Body); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, buf.Bytes())
	return &manager.UploadOutput{Key: in.Key}, nil
}

func testStorageConfig() config.StorageConfig {
	return config.StorageConfig{Region: "ap-south-1", Bucket: "sellers", MaxDimension: 1200, Quality: 80}
}

func TestS3Uploader_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a public jpeg and returns its url", func(t *testing.T) {
		put := &fakePutter{}
		u := newS3Uploader(put, testStorageConfig(), nil)

		url, err := u.Upload(ctx, model.NewImagePayload("image/png", pngBytes(t, 2000, 1000)), adapter.FolderProductImages)
		if err != nil {
			t.Fatalf("Upload failed: %v", err)
		}
		if len(put.inputs) != 1 {
			t.Fatalf("expected one put, got %d", len(put.inputs))
		}
		in := put.inputs[0]
		key := aws.ToString(in.Key)
		if !strings.HasPrefix(key, "product-images/") || !strings.HasSuffix(key, ".jpg") {
			t.Errorf("unexpected key %q", key)
		}
		if in.ACL != types.ObjectCannedACLPublicRead {
			t.Errorf("expected public-read acl, got %q", in.ACL)
		}
		if aws.ToString(in.ContentType) != "image/jpeg" {
			t.Errorf("unexpected content type %q", aws.ToString(in.ContentType))
		}
		if want := "https://sellers.s3.ap-south-1.amazonaws.com/" + key; url != want {
			t.Errorf("url = %q, want %q", url, want)
		}
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(put.bodies[0]))
		if err != nil {
			t.Fatalf("stored body is not jpeg: %v", err)
		}
		if cfg.Width > 1200 || cfg.Height > 1200 {
			t.Errorf("stored image exceeds bounds: %dx%d", cfg.Width, cfg.Height)
		}
	})

	t.Run("retries create distinct objects", func(t *testing.T) {
		put := &fakePutter{}
		u := newS3Uploader(put, testStorageConfig(), nil)
		p := model.NewImagePayload("image/png", pngBytes(t, 10, 10))

		a, err1 := u.Upload(ctx, p, adapter.FolderShopImages)
		b, err2 := u.Upload(ctx, p, adapter.FolderShopImages)
		if err1 != nil || err2 != nil {
			t.Fatalf("Upload failed: %v / %v", err1, err2)
		}
		if a == b {
			t.Errorf("expected distinct urls, got %q twice", a)
		}
	})

	t.Run("malformed payload never reaches storage", func(t *testing.T) {
		put := &fakePutter{}
		u := newS3Uploader(put, testStorageConfig(), nil)

		_, err := u.Upload(ctx, model.ImagePayload("data:image/png,rawbytes"), adapter.FolderShopImages)
		if !errors.Is(err, model.ErrMalformedImagePayload) {
			t.Errorf("expected ErrMalformedImagePayload, got %v", err)
		}
		if len(put.inputs) != 0 {
			t.Error("expected no put")
		}
	})

	t.Run("oversized image never reaches storage", func(t *testing.T) {
		put := &fakePutter{}
		u := newS3Uploader(put, testStorageConfig(), nil)

		_, err := u.Upload(ctx, model.NewImagePayload("image/png", pngHeader(20000, 20000)), adapter.FolderProductImages)
		if !errors.Is(err, ErrImageTooLarge) {
			t.Errorf("expected ErrImageTooLarge, got %v", err)
		}
		if len(put.inputs) != 0 {
			t.Error("expected no put")
		}
	})

	t.Run("storage errors are wrapped", func(t *testing.T) {
		boom := errors.New("AccessDenied")
		u := newS3Uploader(&fakePutter{err: boom}, testStorageConfig(), nil)

		_, err := u.Upload(ctx, model.NewImagePayload("image/png", pngBytes(t, 10, 10)), adapter.FolderShopImages)
		if !errors.Is(err, boom) {
			t.Errorf("expected wrapped storage error, got %v", err)
		}
	})
}

func TestNewS3Uploader_RequiresConfig(t *testing.T) {
	if _, err := NewS3Uploader(context.Background(), config.StorageConfig{Region: "ap-south-1"}, nil); err == nil {
		t.Error("expected error for missing bucket and credentials")
	}
}
