package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrMissingBucket = errors.New("r2 bucket is not set")

type R2Options struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

// objectPutter is the slice of the S3 API the client uses.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type R2Client struct {
	client  objectPutter
	bucket  string
	baseURL string
}

func NewR2Client(ctx context.Context, opts R2Options) (*R2Client, error) {
	if opts.Bucket == "" {
		return nil, ErrMissingBucket
	}

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				opts.AccessKey,
				opts.SecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load r2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = true
	})

	return newR2Client(client, opts.Bucket, opts.PublicBaseURL), nil
}

func newR2Client(client objectPutter, bucket, baseURL string) *R2Client {
	return &R2Client{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// URL returns the public address of key.
func (r *R2Client) URL(key string) string {
	if r.baseURL == "" {
		return fmt.Sprintf("https://%s/%s", r.bucket, key)
	}
	return fmt.Sprintf("%s/%s", r.baseURL, key)
}
