// Package cloud wraps the AWS calls the run orchestration needs: log
// uploads to S3 and self-termination of the host instance.
package cloud

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// S3API is the slice of the S3 client the uploader uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader copies local files into a fixed bucket/prefix, keyed by the
// file's basename. There is no verification readback and no retry beyond
// what the SDK does on its own.
type Uploader struct {
	client S3API
	bucket string
	prefix string
	logger zerolog.Logger
}

func NewUploader(client S3API, bucket, prefix string, logger zerolog.Logger) *Uploader {
	return &Uploader{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger.With().Str("service", "s3_uploader").Logger(),
	}
}

func (u *Uploader) Upload(ctx context.Context, localPath string) error {
	key := path.Join(u.prefix, filepath.Base(localPath))

	logger := u.logger.With().
		Str("local_path", localPath).
		Str("s3_bucket", u.bucket).
		Str("s3_key", key).
		Logger()

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	logger.Info().Msg("uploading file")

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		logger.Error().Err(err).Msg("upload failed")
		return fmt.Errorf("failed to upload %s: %w", localPath, err)
	}

	return nil
}
