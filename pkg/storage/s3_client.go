package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Provider represents the S3-compatible storage provider
type S3Provider string

const (
	S3ProviderAWS    S3Provider = "aws"
	S3ProviderWasabi S3Provider = "wasabi"
	// S3ProviderCustom is any S3-compatible endpoint (MinIO, R2, ...).
	S3ProviderCustom S3Provider = "custom"
)

// S3ClientConfig holds configuration for S3-compatible storage
type S3ClientConfig struct {
	Provider        S3Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// Endpoint overrides the provider endpoint, e.g. "s3.ap-southeast-1.wasabisys.com".
	Endpoint string
}

// WasabiEndpoints maps regions to Wasabi endpoints
var WasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"us-east-2":      "s3.us-east-2.wasabisys.com",
	"us-west-1":      "s3.us-west-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "s3.eu-west-1.wasabisys.com",
	"eu-west-2":      "s3.eu-west-2.wasabisys.com",
	"ap-northeast-1": "s3.ap-northeast-1.wasabisys.com",
	"ap-northeast-2": "s3.ap-northeast-2.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
	"ap-southeast-2": "s3.ap-southeast-2.wasabisys.com",
}

// ParseProvider maps the S3_PROVIDER value to a provider, defaulting to AWS.
func ParseProvider(s string) S3Provider {
	switch S3Provider(strings.ToLower(strings.TrimSpace(s))) {
	case S3ProviderWasabi:
		return S3ProviderWasabi
	case S3ProviderCustom:
		return S3ProviderCustom
	default:
		return S3ProviderAWS
	}
}

// endpointURL returns the base endpoint for non-AWS providers, "" for AWS.
func (cfg S3ClientConfig) endpointURL() string {
	endpoint := cfg.Endpoint
	if cfg.Provider == S3ProviderWasabi && endpoint == "" {
		if e, ok := WasabiEndpoints[cfg.Region]; ok {
			endpoint = e
		} else {
			endpoint = "s3.ap-southeast-1.wasabisys.com"
		}
	}
	if endpoint == "" {
		return ""
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	return strings.TrimRight(endpoint, "/")
}

// NewS3Client creates an S3 client with the given config.
// Non-AWS providers get a base endpoint and path-style addressing.
func NewS3Client(ctx context.Context, cfg S3ClientConfig) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := cfg.endpointURL()
	if endpoint == "" {
		return s3.NewFromConfig(awsCfg), nil
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}

// CheckBucket tests the connection by listing at most one key.
func CheckBucket(ctx context.Context, client ObjectAPI, bucket string) error {
	_, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("failed to access bucket %s: %w", bucket, err)
	}
	return nil
}
