package out

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	apperrors "topicmap/internal/platform/errors"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectPutter is the part of the minio client the publisher needs.
type ObjectPutter interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type PublisherConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// MinioPublisher uploads rendered documents to an S3 compatible bucket.
type MinioPublisher struct {
	client  ObjectPutter
	baseURL *url.URL
	bucket  string
	prefix  string
}

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".json": "application/json",
	".yaml": "application/yaml",
	".png":  "image/png",
	".svg":  "image/svg+xml",
}

func NewMinioPublisher(cfg PublisherConfig) (*MinioPublisher, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" || strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("%w: publish endpoint and bucket are required", apperrors.ErrInvalidInput)
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}
	return NewMinioPublisherWithClient(client, client.EndpointURL(), cfg.Bucket, cfg.Prefix), nil
}

func NewMinioPublisherWithClient(client ObjectPutter, baseURL *url.URL, bucket, prefix string) *MinioPublisher {
	return &MinioPublisher{
		client:  client,
		baseURL: baseURL,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
	}
}

// Publish uploads localPath under key and returns the object URL.
func (p *MinioPublisher) Publish(ctx context.Context, localPath, key string) (string, error) {
	object := p.objectName(key)
	opts := minio.PutObjectOptions{ContentType: contentType(localPath)}
	if _, err := p.client.FPutObject(ctx, p.bucket, object, localPath, opts); err != nil {
		return "", fmt.Errorf("upload %s to %s: %w", localPath, p.bucket, err)
	}
	return p.objectURL(object), nil
}

func (p *MinioPublisher) objectName(key string) string {
	key = strings.TrimLeft(key, "/")
	if p.prefix == "" {
		return key
	}
	return path.Join(p.prefix, key)
}

func (p *MinioPublisher) objectURL(object string) string {
	if p.baseURL == nil {
		return "s3://" + path.Join(p.bucket, object)
	}
	return p.baseURL.JoinPath(p.bucket, object).String()
}

func contentType(localPath string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(localPath))]; ok {
		return ct
	}
	return "application/octet-stream"
}
