package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config holds explicit construction parameters for the S3 backend.
// Credentials come from the default AWS chain; Endpoint and PathStyle
// support MinIO and other S3-compatible stores.
type S3Config struct {
	Bucket    string
	Region    string
	Key       string
	Endpoint  string
	PathStyle bool
}

// S3Backend persists the document snapshot as a single object.
type S3Backend struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Backend builds an S3 client for the configured bucket and key.
func NewS3Backend(ctx context.Context, cfg S3Config) (*S3Backend, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	if cfg.Key == "" {
		return nil, fmt.Errorf("s3 object key required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Backend{client: client, bucket: cfg.Bucket, key: cfg.Key}, nil
}

func (b *S3Backend) Load(ctx context.Context) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &b.bucket,
		Key:    &b.key,
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = out.Body.Close() }()
	return io.ReadAll(out.Body)
}

func (b *S3Backend) Save(ctx context.Context, data []byte) error {
	contentType := "application/json"
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &b.bucket,
		Key:         &b.key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	return err
}

func (b *S3Backend) Ping(ctx context.Context) error {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: &b.bucket})
	return err
}

func (b *S3Backend) Close() error { return nil }
