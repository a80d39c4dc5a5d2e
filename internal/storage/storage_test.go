package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestPutJSON(t *testing.T) {
	fake := &fakePutter{}
	c := newR2Client(fake, "menus", "https://cdn.example.com/")

	url, err := c.PutJSON(context.Background(), "venues/corner-cafe/menus.json", map[string]int{"count": 2})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/venues/corner-cafe/menus.json", url)
	assert.Equal(t, "menus", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "application/json", aws.ToString(fake.input.ContentType))
	assert.JSONEq(t, `{"count":2}`, string(fake.body))
}

func TestPutJSON_Errors(t *testing.T) {
	fake := &fakePutter{err: errors.New("boom")}
	c := newR2Client(fake, "menus", "")

	_, err := c.PutJSON(context.Background(), "k.json", 1)
	assert.ErrorContains(t, err, "put k.json")

	_, err = c.PutJSON(context.Background(), "k.json", func() {})
	assert.ErrorContains(t, err, "encode k.json")
}

func TestURL_FallsBackToBucket(t *testing.T) {
	c := newR2Client(&fakePutter{}, "menus", "")
	assert.Equal(t, "https://menus/a.json", c.URL("a.json"))
}

func TestNewR2Client_RequiresBucket(t *testing.T) {
	_, err := NewR2Client(context.Background(), R2Options{})
	assert.ErrorIs(t, err, ErrMissingBucket)
}
