package zarr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	zarr "github.com/gridstore/zarr"
)

func TestParseDType(t *testing.T) {
	tests := []struct {
		input     string
		goName    string
		itemSize  int
		expectErr bool
	}{
		{"<f4", "float32", 4, false},
		{"<f8", "float64", 8, false},
		{"<i4", "int32", 4, false},
		{"<i2", "int16", 2, false},
		{"<u2", "uint16", 2, false},
		{"|u1", "uint8", 1, false},
		{"|i1", "int8", 1, false},
		{">f4", "float32", 4, false},
		{">u4", "uint32", 4, false},
		{"<i8", "", 0, true},  // 64-bit ints unsupported
		{"<f2", "", 0, true},  // half floats unsupported
		{"x2", "", 0, true},   // invalid encoding
		{"<x4", "", 0, true},  // unknown kind
		{"<i", "", 0, true},   // incomplete size
		{"<b1", "", 0, true},  // bool unsupported
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			dt, err := zarr.ParseDType(tt.input)
			if tt.expectErr {
				require.ErrorIs(t, err, zarr.ErrValue)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.goName, dt.GoName())
			require.Equal(t, tt.itemSize, dt.ItemSize())
		})
	}
}

func TestDTypeStringRoundTrip(t *testing.T) {
	for _, tag := range []string{"|u1", "|i1", "<u2", "<i2", "<u4", "<i4", "<f4", "<f8", ">i2", ">f8"} {
		dt, err := zarr.ParseDType(tag)
		require.NoError(t, err)
		require.Equal(t, tag, dt.String())
	}
}

func TestDTypeStringNormalizesSingleByte(t *testing.T) {
	// Single-byte types report the byte-order-irrelevant marker.
	dt, err := zarr.ParseDType("<u1")
	require.NoError(t, err)
	require.Equal(t, "|u1", dt.String())
}
