package zarr

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// BlobStore adapts a gocloud.dev bucket to the Store interface, so
// arrays can live on any backend gocloud supports (file://, s3://,
// gs://, mem://, ...).
type BlobStore struct {
	bucket *blob.Bucket
}

var _ Store = (*BlobStore)(nil)

// OpenBlobStore opens the bucket at the given URL. Register drivers by
// importing them for side effects, e.g. gocloud.dev/blob/fileblob.
func OpenBlobStore(ctx context.Context, url string) (*BlobStore, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket: %w", err)
	}
	return &BlobStore{bucket: bucket}, nil
}

// NewBlobStore wraps an already opened bucket. The caller keeps
// ownership of the bucket unless Close is used.
func NewBlobStore(bucket *blob.Bucket) *BlobStore {
	return &BlobStore{bucket: bucket}
}

func (s *BlobStore) GetItem(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		return nil, err
	}
	return data, nil
}

func (s *BlobStore) SetItem(ctx context.Context, key string, value []byte) error {
	return s.bucket.WriteAll(ctx, key, value, nil)
}

func (s *BlobStore) ContainsItem(ctx context.Context, key string) (bool, error) {
	return s.bucket.Exists(ctx, key)
}

func (s *BlobStore) DeleteItem(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) == gcerrors.NotFound {
		return nil
	}
	return err
}

func (s *BlobStore) ListDir(ctx context.Context, prefix string) ([]string, error) {
	pfx := keyPrefix(NormalizePath(prefix))
	iter := s.bucket.List(&blob.ListOptions{Prefix: pfx, Delimiter: "/"})
	var names []string
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		name := strings.TrimPrefix(obj.Key, pfx)
		name = strings.TrimSuffix(name, "/")
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close releases the underlying bucket.
func (s *BlobStore) Close() error {
	return s.bucket.Close()
}
