package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"people-sync/internal/config"
)

const csvContentType = "text/csv"

// Sink stores one rendered export and returns where it went.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// FileSink writes exports into a local directory.
type FileSink struct {
	Dir string
}

func (s FileSink) Put(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}

// objectStore is the part of *minio.Client the object sink uses.
type objectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64,
		opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// ObjectSink uploads exports to a bucket.
type ObjectSink struct {
	store  objectStore
	bucket string
	region string
}

// NewObjectSink connects to the object store described by cfg.
func NewObjectSink(cfg config.ObjectStore) (*ObjectSink, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey.Value(), ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("object store client: %w", err)
	}

	return &ObjectSink{store: client, bucket: cfg.Bucket, region: cfg.Region}, nil
}

func (s *ObjectSink) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	_, err := s.store.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: csvContentType})
	if err != nil {
		return "", fmt.Errorf("upload %s to bucket %s: %w", name, s.bucket, err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, name), nil
}

func (s *ObjectSink) ensureBucket(ctx context.Context) error {
	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket %s exists: %w", s.bucket, err)
	}

	if exists {
		return nil
	}

	if err := s.store.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}

	return nil
}

// NewSink picks the bucket when one is configured, the output directory
// otherwise.
func NewSink(s *config.Settings) (Sink, error) {
	if s.ObjectStore.Enabled() {
		return NewObjectSink(s.ObjectStore)
	}

	return FileSink{Dir: s.OutputDir}, nil
}
