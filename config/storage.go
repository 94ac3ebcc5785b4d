package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config is the recipe image bucket and a client for it.
type S3Config struct {
	Client     *s3.Client
	BucketName string
	Region     string
	// PublicBaseURL prefixes object keys in image URLs. Empty means the
	// virtual-hosted AWS address of the bucket.
	PublicBaseURL string
}

// NewS3Config loads AWS credentials the default way. With S3_ENDPOINT set the
// client talks path-style to that endpoint instead, e.g. MinIO in development.
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	out := &S3Config{BucketName: cfg.S3BucketName, Region: cfg.AWSRegion}
	endpoint := strings.TrimRight(cfg.S3Endpoint, "/")
	out.Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	if endpoint != "" {
		out.PublicBaseURL = endpoint + "/" + cfg.S3BucketName
	}
	return out, nil
}
