package zarr

import (
	"reflect"
	"testing"
)

func TestGridShape(t *testing.T) {
	tests := []struct {
		shape, chunks, expected []int
	}{
		{[]int{4, 4}, []int{2, 2}, []int{2, 2}},
		{[]int{5, 4}, []int{2, 2}, []int{3, 2}},
		{[]int{1}, []int{10}, []int{1}},
		{[]int{0}, []int{2}, []int{0}},
		{[]int{}, []int{}, []int{}},
	}

	for _, tt := range tests {
		got := GridShape(tt.shape, tt.chunks)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("GridShape(%v, %v) = %v, want %v", tt.shape, tt.chunks, got, tt.expected)
		}
	}
}

func TestChunkKey(t *testing.T) {
	tests := []struct {
		indices   []int
		separator string
		expected  string
	}{
		{[]int{1, 4}, ".", "1.4"},
		{[]int{0, 0, 0}, ".", "0.0.0"},
		{[]int{10}, ".", "10"},
		{[]int{1, 2}, "/", "1/2"},
		{[]int{}, ".", "0"}, // 0-d arrays store their single chunk as "0"
	}

	for _, tt := range tests {
		got := ChunkKey(tt.indices, tt.separator)
		if got != tt.expected {
			t.Errorf("ChunkKey(%v, %q) = %q, want %q", tt.indices, tt.separator, got, tt.expected)
		}
	}
}
