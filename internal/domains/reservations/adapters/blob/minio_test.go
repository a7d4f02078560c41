package blob

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshopweb/order-pipeline/internal/domains/reservations/domain"
)

type fakeObjectWriter struct {
	buckets     map[string]bool
	objects     map[string][]byte
	contentType map[string]string
	putErr      error
	makeErr     error
	existsCalls int
	existsFn    func(call int) (bool, error)
}

func newFakeObjectWriter() *fakeObjectWriter {
	return &fakeObjectWriter{
		buckets:     map[string]bool{},
		objects:     map[string][]byte{},
		contentType: map[string]string{},
	}
}

func (f *fakeObjectWriter) PutObject(_ context.Context, bucket, object string, reader io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	key := bucket + "/" + object
	f.objects[key] = body
	f.contentType[key] = opts.ContentType
	return minio.UploadInfo{Bucket: bucket, Key: object}, nil
}

func (f *fakeObjectWriter) BucketExists(_ context.Context, bucket string) (bool, error) {
	f.existsCalls++
	if f.existsFn != nil {
		return f.existsFn(f.existsCalls)
	}
	return f.buckets[bucket], nil
}

func (f *fakeObjectWriter) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	if f.makeErr != nil {
		return f.makeErr
	}
	f.buckets[bucket] = true
	return nil
}

func record(itemID string, quantity int64) domain.Record {
	return domain.Record{ItemID: itemID, Quantity: decimal.NewFromInt(quantity)}
}

func TestStore_Put_CreatesBucketAndWritesJSON(t *testing.T) {
	writer := newFakeObjectWriter()
	store := &Store{client: writer, bucket: DefaultBucket}

	err := store.Put(context.Background(), record("A", 2))

	require.NoError(t, err)
	assert.True(t, writer.buckets[DefaultBucket])
	key := DefaultBucket + "/A.json"
	assert.JSONEq(t, `{"itemId":"A","quantity":2}`, string(writer.objects[key]))
	assert.Equal(t, "application/json", writer.contentType[key])
}

func TestStore_Put_OverwritesExistingRecord(t *testing.T) {
	writer := newFakeObjectWriter()
	store := &Store{client: writer, bucket: DefaultBucket}
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, record("A", 2)))
	require.NoError(t, store.Put(ctx, record("A", 5)))

	key := DefaultBucket + "/A.json"
	assert.JSONEq(t, `{"itemId":"A","quantity":5}`, string(writer.objects[key]))
	assert.Len(t, writer.objects, 1)
}

func TestStore_Put_ConcurrentBucketCreationIsNotAnError(t *testing.T) {
	writer := newFakeObjectWriter()
	writer.makeErr = errors.New("bucket already owned by you")
	// MakeBucket loses the race, then the existence re-check wins.
	writer.existsFn = func(call int) (bool, error) {
		return call > 1, nil
	}
	store := &Store{client: writer, bucket: DefaultBucket}

	err := store.Put(context.Background(), record("A", 2))
	require.NoError(t, err)
}

func TestStore_Put_UploadFailure(t *testing.T) {
	writer := newFakeObjectWriter()
	writer.buckets[DefaultBucket] = true
	writer.putErr = errors.New("slow down")
	store := &Store{client: writer, bucket: DefaultBucket}

	err := store.Put(context.Background(), record("A", 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write reservation record A")
}
