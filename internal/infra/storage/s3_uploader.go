package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"seller-onboarding/internal/config"
	"seller-onboarding/internal/domain/model"
	"seller-onboarding/internal/domain/ports/adapter"
	"seller-onboarding/internal/infra/logging"
	"seller-onboarding/internal/infra/metrics"
)

var _ adapter.ImageUploader = (*S3Uploader)(nil)

// objectPutter is the slice of manager.Uploader used here.
type objectPutter interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Uploader compresses image payloads and stores them as public objects.
type S3Uploader struct {
	put       objectPutter
	bucket    string
	region    string
	maxDim    int
	quality   int
	maxPixels int
	log       *zerolog.Logger
	newKey    func(folder string) string
}

// NewS3Uploader builds an uploader from static credentials.
func NewS3Uploader(ctx context.Context, cfg config.StorageConfig, logger *zerolog.Logger) (*S3Uploader, error) {
	if cfg.Region == "" || cfg.Bucket == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("storage: region, bucket and credentials are required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return newS3Uploader(manager.NewUploader(client), cfg, logger), nil
}

func newS3Uploader(put objectPutter, cfg config.StorageConfig, logger *zerolog.Logger) *S3Uploader {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &S3Uploader{
		put:       put,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		maxDim:    cfg.MaxDimension,
		quality:   cfg.Quality,
		maxPixels: cfg.MaxPixels,
		log:       logger,
		newKey:    objectKey,
	}
}

// Upload decodes, compresses and stores one image, returning its public URL.
// Every call writes a fresh object.
func (u *S3Uploader) Upload(ctx context.Context, img model.ImagePayload, folder string) (url string, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveImageUpload(folder, time.Since(start).Milliseconds(), err == nil)
	}()

	raw, err := img.Bytes()
	if err != nil {
		return "", err
	}
	out, err := Compress(raw, u.maxDim, u.quality, u.maxPixels)
	if err != nil {
		return "", err
	}

	key := u.newKey(folder)
	_, err = u.put.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(out),
		ContentType: aws.String(ContentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	metrics.AddImageBytes(folder, len(raw), len(out))
	logging.With(ctx, u.log).Debug().
		Str("key", key).
		Int("received_bytes", len(raw)).
		Int("stored_bytes", len(out)).
		Msg("image stored")
	return u.PublicURL(key), nil
}

// PublicURL is the virtual-hosted style URL of key.
func (u *S3Uploader) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}

// objectKey is <folder>/<ulid>.jpg; ULIDs sort by creation time.
func objectKey(folder string) string {
	return folder + "/" + ulid.Make().String() + ".jpg"
}
