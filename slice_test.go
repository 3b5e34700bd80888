package zarr

import (
	"errors"
	"testing"
)

func TestNormalizeSlice(t *testing.T) {
	tests := []struct {
		name   string
		sel    Slice
		length int
		start  int
		stop   int
		step   int
		count  int
	}{
		{"full default", All(), 5, 0, 5, 1, 5},
		{"simple range", NewSlice(1, 3), 5, 1, 3, 1, 2},
		{"clamped stop", NewSlice(0, 99), 5, 0, 5, 1, 5},
		{"clamped start", NewSlice(-99, 3), 5, 0, 3, 1, 3},
		{"negative start", NewSlice(-2, 5), 5, 3, 5, 1, 2},
		{"negative stop", NewSlice(0, -1), 5, 0, 4, 1, 4},
		{"empty", NewSlice(3, 3), 5, 3, 3, 1, 0},
		{"inverted empty", NewSlice(4, 1), 5, 4, 1, 1, 0},
		{"step two", NewSlice(0, 5).WithStep(2), 5, 0, 5, 2, 3},
		{"step two offset", NewSlice(1, 5).WithStep(2), 5, 1, 5, 2, 2},
		{"full reverse", All().WithStep(-1), 5, 4, -1, -1, 5},
		{"reverse range", NewSlice(4, 0).WithStep(-2), 5, 4, 0, -2, 2},
		{"reverse to start", NewSlice(4, None).WithStep(-1), 5, 4, -1, -1, 5},
		{"reverse negative start", NewSlice(-1, None).WithStep(-1), 5, 4, -1, -1, 5},
		{"reverse clamp", NewSlice(99, -99).WithStep(-1), 5, 4, -1, -1, 5},
		{"reverse big step", All().WithStep(-5), 2, 1, -1, -5, 1},
		{"zero length axis", All(), 0, 0, 0, 1, 0},
		{"zero length reverse", All().WithStep(-1), 0, -1, -1, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, stop, step, count, err := normalizeSlice(tt.sel, tt.length)
			if err != nil {
				t.Fatalf("normalizeSlice(%+v, %d) failed: %v", tt.sel, tt.length, err)
			}
			if start != tt.start || stop != tt.stop || step != tt.step || count != tt.count {
				t.Errorf("normalizeSlice(%+v, %d) = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					tt.sel, tt.length, start, stop, step, count, tt.start, tt.stop, tt.step, tt.count)
			}
		})
	}
}

func TestNormalizeSliceZeroStep(t *testing.T) {
	_, _, _, _, err := normalizeSlice(All().WithStep(0), 5)
	if !errors.Is(err, ErrInvalidSlice) {
		t.Fatalf("expected ErrInvalidSlice, got %v", err)
	}
}

func TestNormalizeInt(t *testing.T) {
	tests := []struct {
		i, length int
		want      int
		wantErr   bool
	}{
		{0, 5, 0, false},
		{4, 5, 4, false},
		{-1, 5, 4, false},
		{-5, 5, 0, false},
		{5, 5, 0, true},
		{-6, 5, 0, true},
		{0, 0, 0, true},
	}

	for _, tt := range tests {
		got, err := normalizeInt(tt.i, tt.length)
		if tt.wantErr {
			if !errors.Is(err, ErrBounds) {
				t.Errorf("normalizeInt(%d, %d): expected ErrBounds, got %v", tt.i, tt.length, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("normalizeInt(%d, %d) failed: %v", tt.i, tt.length, err)
			continue
		}
		if got != tt.want {
			t.Errorf("normalizeInt(%d, %d) = %d, want %d", tt.i, tt.length, got, tt.want)
		}
	}
}
