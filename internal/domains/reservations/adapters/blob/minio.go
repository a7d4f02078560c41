// Package blob persists reservation records as JSON objects.
package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/eshopweb/order-pipeline/internal/domains/reservations/domain"
	"github.com/eshopweb/order-pipeline/internal/domains/reservations/ports"
)

// DefaultBucket is where reservation records land.
const DefaultBucket = "order-details"

const contentTypeJSON = "application/json"

// Config locates the object store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// objectWriter is the slice of the minio client the store needs.
type objectWriter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
}

var _ ports.RecordStore = (*Store)(nil)

// Store writes one object per reserved item, keyed "{itemId}.json".
// Putting the same item again replaces the object, which makes message
// redelivery harmless.
type Store struct {
	client objectWriter
	bucket string
}

// NewStore connects to the object store. The bucket is created lazily on
// first write, not here, so a cold store does not fail startup.
func NewStore(cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object store: %w", err)
	}
	bucket := cfg.Bucket
	if bucket == "" {
		bucket = DefaultBucket
	}
	return &Store{client: client, bucket: bucket}, nil
}

// Put uploads the record, creating the bucket if it does not exist yet.
func (s *Store) Put(ctx context.Context, record domain.Record) error {
	if s == nil || s.client == nil {
		return errors.New("blob record store not configured")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}
	body, err := record.Encode()
	if err != nil {
		return fmt.Errorf("encode reservation record %s: %w", record.ItemID, err)
	}
	_, err = s.client.PutObject(ctx, s.bucket, record.BlobKey(),
		bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: contentTypeJSON})
	if err != nil {
		return fmt.Errorf("write reservation record %s: %w", record.ItemID, err)
	}
	return nil
}

func (s *Store) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// Another consumer may have created it concurrently.
		exists, existsErr := s.client.BucketExists(ctx, s.bucket)
		if existsErr == nil && exists {
			return nil
		}
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}
