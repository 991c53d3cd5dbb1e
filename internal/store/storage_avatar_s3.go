package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// objectPutter is the part of *s3.Client used by the avatar storage.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3AvatarStorage is the S3 implementation of [AvatarStorage].
type s3AvatarStorage struct {
	client    objectPutter
	bucket    string
	publicURL string
	logger    *logger.Logger
}

// NewS3AvatarStorage builds an [AvatarStorage] for the configured bucket.
// A custom endpoint (MinIO) switches the client to path-style addressing.
func NewS3AvatarStorage(ctx context.Context, cfg config.S3, log *logger.Logger) (AvatarStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3AvatarStorage").Msg("error loading AWS config")
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	log.Debug().Str("bucket", cfg.Bucket).Msg("creating S3 avatar storage")
	return newS3AvatarStorage(client, cfg, log), nil
}

func newS3AvatarStorage(client objectPutter, cfg config.S3, log *logger.Logger) *s3AvatarStorage {
	return &s3AvatarStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: avatarPublicURL(cfg),
		logger:    log,
	}
}

// Upload puts body under key and returns the public URL of the object.
func (s *s3AvatarStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*s3AvatarStorage.Upload").
			Str("key", key).
			Msg("error uploading avatar")
		return "", fmt.Errorf("%w: %w", ErrUploadingObject, err)
	}

	return s.publicURL + "/" + key, nil
}

// avatarPublicURL resolves the base URL objects of the bucket are served from.
func avatarPublicURL(cfg config.S3) string {
	switch {
	case cfg.PublicURL != "":
		return strings.TrimSuffix(cfg.PublicURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}
