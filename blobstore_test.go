package zarr_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "gocloud.dev/blob/fileblob"

	zarr "github.com/gridstore/zarr"
)

func openFileBlobStore(t *testing.T) *zarr.BlobStore {
	t.Helper()
	dir := t.TempDir()
	store, err := zarr.OpenBlobStore(context.Background(), "file:///"+filepath.ToSlash(dir))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBlobStoreBasics(t *testing.T) {
	testStoreBasics(t, openFileBlobStore(t))
}

func TestBlobStoreArrayEndToEnd(t *testing.T) {
	ctx := context.Background()
	store := openFileBlobStore(t)

	arr, err := zarr.CreateArray(ctx, store, "grid", &zarr.Metadata{
		ZarrFormat: 2,
		Shape:      []int{4, 4},
		Chunks:     []int{2, 2},
		DType:      "<i4",
		FillValue:  0.0,
		Order:      "C",
		Compressor: &zarr.CompressorConfig{ID: "gzip"},
	})
	require.NoError(t, err)

	require.NoError(t, arr.SetBasicSelection(ctx, i32Bytes(i32Range(16)...)))

	reopened, err := zarr.OpenArray(ctx, store, "grid", nil)
	require.NoError(t, err)

	got, shape := getI32(t, reopened, zarr.NewSlice(1, 3), zarr.NewSlice(1, 3))
	require.Equal(t, []int{2, 2}, shape)
	require.Equal(t, []int32{5, 6, 9, 10}, got)

	rev, _ := getI32(t, reopened, zarr.Idx(0), zarr.All().WithStep(-1))
	require.Equal(t, []int32{3, 2, 1, 0}, rev)
}
