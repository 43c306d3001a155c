package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alex/dev-tools-portal/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client writes objects to an S3-compatible bucket with public-read access.
type Client struct {
	mc      *minio.Client
	bucket  string
	cdnBase string
}

func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.StorageEndpoint == "" {
		return nil, fmt.Errorf("STORAGE_ENDPOINT is required")
	}

	mc, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
		Region: cfg.StorageRegion,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		mc:      mc,
		bucket:  cfg.StorageBucket,
		cdnBase: cfg.CDNBaseURL,
	}, nil
}

type SaveInput struct {
	Data        []byte
	ContentType string
	// Key overrides the generated date-prefixed object key when set.
	Key      string
	Metadata map[string]string
}

// Save writes the object and returns its public URL: CDN-prefixed when a CDN
// base is configured, the raw key otherwise.
func (c *Client) Save(ctx context.Context, input SaveInput) (string, error) {
	key := input.Key
	if key == "" {
		key = ObjectKey(input.ContentType)
	}

	opts := minio.PutObjectOptions{
		ContentType:  input.ContentType,
		UserMetadata: map[string]string{"x-amz-acl": "public-read"},
	}
	for k, v := range input.Metadata {
		opts.UserMetadata[k] = v
	}

	_, err := c.mc.PutObject(ctx, c.bucket, key, bytes.NewReader(input.Data), int64(len(input.Data)), opts)
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return PublicURL(c.cdnBase, key), nil
}

// ObjectKey builds a date-prefixed random key with the MIME-derived extension.
func ObjectKey(contentType string) string {
	ext := "bin"
	if _, sub, ok := strings.Cut(contentType, "/"); ok && sub != "" {
		ext = sub
	}
	return fmt.Sprintf("%s/%s.%s", time.Now().UTC().Format("2006-01-02"), uuid.New(), ext)
}

func PublicURL(cdnBase, key string) string {
	if cdnBase == "" {
		return key
	}
	if !strings.HasSuffix(cdnBase, "/") {
		cdnBase += "/"
	}
	return cdnBase + key
}
