package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"job-board-backend/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const resumePrefix = "resumes/"

// ObjectAPI is the subset of *s3.Client the uploader needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Uploader stores resumes as objects under resumes/.
type S3Uploader struct {
	client  ObjectAPI
	bucket  string
	baseURL string
	timeout time.Duration
}

var _ domain.ResumeUploader = (*S3Uploader)(nil)

// NewS3Uploader builds an uploader. publicBaseURL, when empty, is derived
// from the provider endpoint and bucket.
func NewS3Uploader(client ObjectAPI, cfg S3ClientConfig, publicBaseURL string, timeout time.Duration) *S3Uploader {
	baseURL := strings.TrimRight(publicBaseURL, "/")
	if baseURL == "" {
		if endpoint := cfg.endpointURL(); endpoint != "" {
			baseURL = endpoint + "/" + cfg.Bucket
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	return &S3Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
		timeout: timeout,
	}
}

func (u *S3Uploader) Upload(ctx context.Context, file domain.ResumeFile) (*domain.Resume, error) {
	if len(file.Data) == 0 {
		return nil, errors.New("storage: empty resume")
	}

	ext := file.Extension
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(file.Filename))
	}
	key := resumePrefix + uuid.NewString() + ext

	ctx, cancel := u.withTimeout(ctx)
	defer cancel()

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file.Data),
		ContentLength: aws.Int64(int64(len(file.Data))),
		ContentType:   aws.String(file.ContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: put %s: %w", key, err)
	}

	return &domain.Resume{
		PublicID: key,
		URL:      u.baseURL + "/" + key,
	}, nil
}

func (u *S3Uploader) Delete(ctx context.Context, publicID string) error {
	ctx, cancel := u.withTimeout(ctx)
	defer cancel()

	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", publicID, err)
	}
	return nil
}

// Ping checks that the bucket is reachable.
func (u *S3Uploader) Ping(ctx context.Context) error {
	ctx, cancel := u.withTimeout(ctx)
	defer cancel()
	return CheckBucket(ctx, u.client, u.bucket)
}

func (u *S3Uploader) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, u.timeout)
}
