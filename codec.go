package zarr

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codec is a bidirectional byte transform applied to chunk buffers on
// their way to and from the store.
type Codec interface {
	Encode(src []byte) ([]byte, error)
	Decode(src []byte) ([]byte, error)
}

// newCodec resolves a compressor descriptor into a Codec. A nil
// descriptor is the identity transform.
func newCodec(cfg *CompressorConfig) (Codec, error) {
	if cfg == nil {
		return identityCodec{}, nil
	}
	switch cfg.ID {
	case "zstd":
		return zstdCodec{}, nil
	case "gzip":
		return gzipCodec{level: cfg.Clevel}, nil
	case "zlib":
		return zlibCodec{level: cfg.Clevel}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported compressor %q", ErrValue, cfg.ID)
	}
}

type identityCodec struct{}

func (identityCodec) Encode(src []byte) ([]byte, error) { return src, nil }
func (identityCodec) Decode(src []byte) ([]byte, error) { return src, nil }

type zstdCodec struct{}

func (zstdCodec) Encode(src []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %w", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(src, nil), nil
}

func (zstdCodec) Decode(src []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer decoder.Close()
	out, err := decoder.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress zstd chunk: %w", err)
	}
	return out, nil
}

type gzipCodec struct {
	level int
}

func (c gzipCodec) Encode(src []byte) ([]byte, error) {
	level := c.level
	if level == 0 {
		level = gzip.DefaultCompression
	}
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("failed to init gzip writer: %w", err)
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gzipCodec) Decode(src []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to init gzip reader: %w", err)
	}
	out, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to decompress gzip chunk: %w", err)
	}
	return out, nil
}

type zlibCodec struct {
	level int
}

func (c zlibCodec) Encode(src []byte) ([]byte, error) {
	level := c.level
	if level == 0 {
		level = zlib.DefaultCompression
	}
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("failed to init zlib writer: %w", err)
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (zlibCodec) Decode(src []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to init zlib reader: %w", err)
	}
	out, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to decompress zlib chunk: %w", err)
	}
	return out, nil
}
