package zarr

import (
	"context"
	"errors"
	"fmt"
)

// Array is a chunked n-dimensional array backed by a Store. Reads and
// writes accept arbitrary hyper-rectangular selections; the engine
// translates them into the minimal set of chunk loads, decodes,
// partial writes and encodes.
//
// A single Array makes no guarantees for concurrent callers whose
// operations touch overlapping regions; synchronize externally.
type Array struct {
	store Store
	path  string // normalized
	meta  *Metadata

	dtype     DType
	codec     Codec
	sep       string
	fill      *float64 // nil means no fill value
	fillItem  []byte   // encoded fill, nil when fill is nil
	attrs     map[string]any
	readOnly  bool
	cacheMeta bool
}

// OpenOptions configures OpenArray.
type OpenOptions struct {
	// ReadOnly rejects SetBasicSelection and PutAttrs with ErrReadOnly.
	ReadOnly bool
	// NoMetadataCache re-reads .zarray before every operation instead
	// of keeping the descriptor loaded at open time.
	NoMetadataCache bool
}

// OpenArray opens the array stored at path. The path is normalized;
// "" or "/" address the store root. opts may be nil.
func OpenArray(ctx context.Context, store Store, path string, opts *OpenOptions) (*Array, error) {
	if opts == nil {
		opts = &OpenOptions{}
	}
	a := &Array{
		store:     store,
		path:      NormalizePath(path),
		readOnly:  opts.ReadOnly,
		cacheMeta: !opts.NoMetadataCache,
	}
	if err := a.loadMetadata(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// CreateArray validates meta, writes the .zarray descriptor at path
// and returns the open, writable array. It fails if an array already
// exists there.
func CreateArray(ctx context.Context, store Store, path string, meta *Metadata) (*Array, error) {
	norm := NormalizePath(path)
	metaKey := keyPrefix(norm) + MetadataKey

	exists, err := store.ContainsItem(ctx, metaKey)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: array already exists at %q", ErrValue, norm)
	}

	encoded, err := meta.Encode()
	if err != nil {
		return nil, err
	}
	if err := store.SetItem(ctx, metaKey, encoded); err != nil {
		return nil, err
	}
	return OpenArray(ctx, store, path, nil)
}

// loadMetadata reads and applies the .zarray descriptor.
func (a *Array) loadMetadata(ctx context.Context) error {
	data, err := a.store.GetItem(ctx, keyPrefix(a.path)+MetadataKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return fmt.Errorf("%w: no array at %q", ErrPathNotFound, a.path)
		}
		return err
	}

	meta, err := ParseMetadata(data)
	if err != nil {
		return err
	}
	dtype, err := ParseDType(meta.DType)
	if err != nil {
		return err
	}
	codec, err := newCodec(meta.Compressor)
	if err != nil {
		return err
	}
	fill, err := parseFillValue(meta.FillValue, dtype)
	if err != nil {
		return err
	}

	a.meta = meta
	a.dtype = dtype
	a.codec = codec
	a.sep = meta.Separator()
	a.fill = fill
	a.fillItem = nil
	if fill != nil {
		a.fillItem = make([]byte, dtype.size)
		dtype.putScalar(a.fillItem, *fill)
	}
	return nil
}

// refresh reloads the descriptor when metadata caching is disabled.
func (a *Array) refresh(ctx context.Context) error {
	if a.cacheMeta {
		return nil
	}
	return a.loadMetadata(ctx)
}

// Shape returns a copy of the array shape.
func (a *Array) Shape() []int {
	out := make([]int, len(a.meta.Shape))
	copy(out, a.meta.Shape)
	return out
}

// Chunks returns a copy of the chunk grid.
func (a *Array) Chunks() []int {
	out := make([]int, len(a.meta.Chunks))
	copy(out, a.meta.Chunks)
	return out
}

// DType returns the element type.
func (a *Array) DType() DType { return a.dtype }

// FillValue returns the fill value, or nil when none is configured.
func (a *Array) FillValue() *float64 {
	if a.fill == nil {
		return nil
	}
	f := *a.fill
	return &f
}

// Metadata returns the array descriptor.
func (a *Array) Metadata() *Metadata { return a.meta }

// ReadOnly reports whether writes are rejected.
func (a *Array) ReadOnly() bool { return a.readOnly }

// Path returns the normalized storage path.
func (a *Array) Path() string { return a.path }

// chunkKey builds the store key for a chunk from its grid coordinates.
func (a *Array) chunkKey(coords []int) string {
	return keyPrefix(a.path) + ChunkKey(coords, a.sep)
}

// chunkSize is the element count of a full chunk buffer.
func (a *Array) chunkSize() int { return product(a.meta.Chunks) }

// GetBasicSelection reads the selected region into a fresh NDArray.
// Chunks absent from the store read as the fill value; when no fill
// value is configured the corresponding output elements stay zero.
// Supplying an integer for an axis drops it from the output shape, so
// a fully integer selection yields a rank-0 result (use Scalar on it).
func (a *Array) GetBasicSelection(ctx context.Context, sel ...DimSel) (*NDArray, error) {
	if err := a.refresh(ctx); err != nil {
		return nil, err
	}
	ix, err := newBasicIndexer(sel, a.meta.Shape, a.meta.Chunks)
	if err != nil {
		return nil, err
	}

	out := NewNDArray(a.dtype, ix.outShape)
	if ix.outSize() == 0 {
		return out, nil
	}
	outStrides := strides(ix.outShape)

	err = ix.forEach(func(p ChunkProjection) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := a.store.GetItem(ctx, a.chunkKey(p.ChunkCoords))
		if err != nil {
			if errors.Is(err, ErrKeyNotFound) {
				if a.fillItem != nil {
					out.fillStrided(p.OutSelection, a.fillItem)
				}
				return nil
			}
			return err
		}

		buf, err := a.decodeChunk(raw)
		if err != nil {
			return err
		}

		if isTotalSlice(p.ChunkSelection, a.meta.Chunks) && isContiguous(p.OutSelection, ix.outShape) {
			off := 0
			for d, sp := range p.OutSelection {
				off += sp.Start * outStrides[d]
			}
			copy(out.data[off*a.dtype.size:], buf)
			return nil
		}

		chunkArr, err := NDArrayFromBytes(a.dtype, a.meta.Chunks, buf)
		if err != nil {
			return err
		}
		copyStrided(out, p.OutSelection, chunkArr, p.ChunkSelection)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetBasicSelection writes value over the selected region. value is an
// *NDArray shaped like the selection output, a flat []byte buffer of
// matching length, or a Go number broadcast over the region. Chunks
// fully covered by the selection are replaced without being read;
// partially covered chunks are read, modified and written back, with
// absent chunks initialized from the fill value. Reversed slices are
// rejected on this path.
func (a *Array) SetBasicSelection(ctx context.Context, value any, sel ...DimSel) error {
	if a.readOnly {
		return ErrReadOnly
	}
	if err := a.refresh(ctx); err != nil {
		return err
	}
	ix, err := newBasicIndexer(sel, a.meta.Shape, a.meta.Chunks)
	if err != nil {
		return err
	}
	if ix.hasNegativeStep() {
		return fmt.Errorf("%w: reversed slices cannot address a write", ErrNegativeStep)
	}

	src, item, err := coerceValue(value, a.dtype, ix)
	if err != nil {
		return err
	}
	if ix.outSize() == 0 {
		return nil
	}

	return ix.forEach(func(p ChunkProjection) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		var chunkArr *NDArray
		if isTotalSlice(p.ChunkSelection, a.meta.Chunks) {
			// The selection replaces the whole chunk: no read.
			chunkArr = NewNDArray(a.dtype, a.meta.Chunks)
		} else {
			raw, err := a.store.GetItem(ctx, a.chunkKey(p.ChunkCoords))
			switch {
			case errors.Is(err, ErrKeyNotFound):
				chunkArr = NewNDArray(a.dtype, a.meta.Chunks)
				if a.fillItem != nil {
					chunkArr.fillAll(a.fillItem)
				}
			case err != nil:
				return err
			default:
				buf, err := a.decodeChunk(raw)
				if err != nil {
					return err
				}
				chunkArr, err = NDArrayFromBytes(a.dtype, a.meta.Chunks, buf)
				if err != nil {
					return err
				}
			}
		}

		if src == nil {
			chunkArr.fillStrided(p.ChunkSelection, item)
		} else {
			copyStrided(chunkArr, p.ChunkSelection, src, p.OutSelection)
		}

		return a.storeChunk(ctx, a.chunkKey(p.ChunkCoords), chunkArr.data)
	})
}

// decodeChunk runs the codec, byte-swaps big-endian data into the
// in-memory little-endian form, and validates the buffer length
// against the chunk shape.
func (a *Array) decodeChunk(raw []byte) ([]byte, error) {
	buf, err := a.codec.Decode(raw)
	if err != nil {
		return nil, err
	}
	if want := a.chunkSize() * a.dtype.size; len(buf) != want {
		return nil, fmt.Errorf("%w: decoded chunk is %d bytes, expected %d", ErrValue, len(buf), want)
	}
	if a.dtype.bigEndian {
		byteSwap(buf, a.dtype.size)
	}
	return buf, nil
}

// storeChunk byte-swaps (when the on-disk dtype is big-endian),
// encodes and writes one chunk buffer.
func (a *Array) storeChunk(ctx context.Context, key string, buf []byte) error {
	if a.dtype.bigEndian {
		swapped := make([]byte, len(buf))
		copy(swapped, buf)
		byteSwap(swapped, a.dtype.size)
		buf = swapped
	}
	enc, err := a.codec.Encode(buf)
	if err != nil {
		return err
	}
	return a.store.SetItem(ctx, key, enc)
}

// isTotalSlice reports whether the chunk selection covers every
// element of a full-size chunk: each axis starts at 0, steps by 1 and
// spans the whole chunk length.
func isTotalSlice(spans []Span, chunks []int) bool {
	for d, sp := range spans {
		if sp.Drop && chunks[d] == 1 {
			continue
		}
		if sp.Start != 0 || sp.Step != 1 || sp.Count != chunks[d] {
			return false
		}
	}
	return true
}

// isContiguous reports whether the output selection addresses one
// contiguous row-major range: after the last axis that is not fully
// covered, everything must be full, and everything before it must pin
// a single position.
func isContiguous(spans []Span, outShape []int) bool {
	last := -1
	for d, sp := range spans {
		if !(sp.Start == 0 && sp.Step == 1 && sp.Count == outShape[d]) {
			last = d
		}
	}
	for d := 0; d < last; d++ {
		if spans[d].Count != 1 {
			return false
		}
	}
	return true
}
