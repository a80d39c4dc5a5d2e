package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores a JSON document under key and returns its public URL.
type Uploader interface {
	PutJSON(ctx context.Context, key string, v any) (string, error)
}

const snapshotCacheControl = "public, max-age=60"

func (r *R2Client) PutJSON(ctx context.Context, key string, v any) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", key, err)
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(r.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String("application/json"),
		CacheControl: aws.String(snapshotCacheControl),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}

	return r.URL(key), nil
}
