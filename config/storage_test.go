package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePresignedURL(t *testing.T) {
	client := s3.New(s3.Options{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("test-access-key", "test-secret-key", ""),
	})
	cfg := &S3Config{Client: client, BucketName: "lumina-generated-media"}

	url, err := cfg.GeneratePresignedURL(context.Background(), "generated-images/abc.png", 15*time.Minute)
	require.NoError(t, err)

	assert.Contains(t, url, "lumina-generated-media")
	assert.Contains(t, url, "generated-images/abc.png")
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=900")
}

func TestNewS3ConfigDefaultBucket(t *testing.T) {
	t.Setenv("S3_BUCKET_NAME", "")
	t.Setenv("AWS_REGION", "us-east-1")

	cfg, err := NewS3Config(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "lumina-generated-media", cfg.BucketName)

	t.Setenv("S3_BUCKET_NAME", "custom-bucket")
	cfg, err = NewS3Config(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "custom-bucket", cfg.BucketName)
}
