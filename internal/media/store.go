// Package media talks to the external blob store that keeps uploaded
// images. The rest of the system only ever sees the resulting URL.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/nmalet/blog-backend/internal/config"
)

// Store is the blob-hosting collaborator contract: write a blob, get a
// public URL back.
type Store interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// S3Store implements Store against any S3-compatible endpoint (AWS,
// MinIO, ...).
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Store(ctx context.Context, cfg config.Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &S3Store{
		client:  client,
		bucket:  cfg.S3Bucket,
		baseURL: strings.TrimRight(cfg.MediaBaseURL, "/"),
	}, nil
}

func storageKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("profile_pictures/%d/%d/%d/%s%s",
		d.Year(), d.Month(), d.Day(), uuid.NewString(), path.Ext(filename))
}

func (s *S3Store) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key := storageKey(filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.baseURL + "/" + key, nil
}
