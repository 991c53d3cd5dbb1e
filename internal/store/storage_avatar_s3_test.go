package store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3AvatarStorage_Upload(t *testing.T) {
	putter := &fakePutter{}
	storage := newS3AvatarStorage(putter, config.S3{
		Endpoint: "http://127.0.0.1:9000/",
		Bucket:   "avatars",
	}, logger.Nop())

	url, err := storage.Upload(context.Background(), "avatars/7", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9000/avatars/avatars/7", url)
	require.NotNil(t, putter.input)
	assert.Equal(t, "avatars", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "avatars/7", aws.ToString(putter.input.Key))
	assert.Equal(t, "image/png", aws.ToString(putter.input.ContentType))
	assert.Equal(t, "png-bytes", string(putter.body))
}

func TestS3AvatarStorage_UploadError(t *testing.T) {
	storage := newS3AvatarStorage(&fakePutter{err: errors.New("access denied")}, config.S3{Bucket: "avatars"}, logger.Nop())

	_, err := storage.Upload(context.Background(), "avatars/7", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUploadingObject)
}

func Test_avatarPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.S3
		want string
	}{
		{name: "explicit public url", cfg: config.S3{PublicURL: "https://cdn.example.com/", Endpoint: "http://minio:9000"}, want: "https://cdn.example.com"},
		{name: "custom endpoint", cfg: config.S3{Endpoint: "http://minio:9000", Bucket: "pics"}, want: "http://minio:9000/pics"},
		{name: "aws", cfg: config.S3{Bucket: "pics", Region: "eu-west-1"}, want: "https://pics.s3.eu-west-1.amazonaws.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, avatarPublicURL(tt.cfg))
		})
	}
}

func TestNewS3AvatarStorage_ClientOptions(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(_ context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		assert.NotNil(t, lo.Credentials)
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(_ aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	storage, err := NewS3AvatarStorage(context.Background(), config.S3{
		Endpoint:        "http://127.0.0.1:9000",
		Region:          "us-east-1",
		Bucket:          "avatars",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
	}, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, storage)

	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNewS3AvatarStorage_LoadError(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })

	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err := NewS3AvatarStorage(context.Background(), config.S3{Region: "us-east-1"}, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load-fail")
}
