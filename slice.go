package zarr

import (
	"fmt"
	"math"
)

// None marks a Slice field as "use the default for the step sign".
const None = math.MinInt

// DimSel selects elements along one axis: either a Slice or an integer
// index (Idx), which fixes the axis and drops it from the output.
type DimSel interface {
	isDimSel()
}

// Slice selects an arithmetic progression of indices along one axis
// with numpy semantics: negative Start/Stop count from the end of the
// axis, out-of-range values are clamped rather than rejected, and a
// negative Step iterates in reverse. Fields set to None take the
// defaults for the step sign.
//
// Construct slices with NewSlice, All and WithStep; the zero value is
// not a valid slice.
type Slice struct {
	Start, Stop, Step int
}

func (Slice) isDimSel() {}

// NewSlice selects [start, stop) with step 1.
func NewSlice(start, stop int) Slice {
	return Slice{Start: start, Stop: stop, Step: None}
}

// All selects the full axis.
func All() Slice {
	return Slice{Start: None, Stop: None, Step: None}
}

// WithStep returns a copy of s with the given step.
func (s Slice) WithStep(step int) Slice {
	s.Step = step
	return s
}

// Int is an integer index along one axis. The axis is dropped from the
// output shape.
type Int int

func (Int) isDimSel() {}

// Idx is an integer index selection; negative values count from the
// end of the axis.
func Idx(i int) Int { return Int(i) }

// normalizeSlice resolves s against an axis of the given length into a
// concrete (start, stop, step) triple plus the number of selected
// elements. The triple is directly usable as a for-loop descriptor;
// for negative steps, stop may be -1 meaning "past the beginning".
func normalizeSlice(s Slice, length int) (start, stop, step, count int, err error) {
	step = s.Step
	if step == None {
		step = 1
	}
	if step == 0 {
		return 0, 0, 0, 0, fmt.Errorf("%w: step must not be zero", ErrInvalidSlice)
	}

	if step > 0 {
		start, stop = 0, length
	} else {
		start, stop = length-1, -length-1
	}
	if s.Start != None {
		start = s.Start
	}
	if s.Stop != None {
		stop = s.Stop
	}

	start = resolveBound(start, length, step > 0)
	stop = resolveBound(stop, length, step > 0)

	if step > 0 {
		if stop > start {
			count = (stop - start + step - 1) / step
		}
	} else {
		if start > stop {
			count = (start - stop + (-step) - 1) / (-step)
		}
	}
	return start, stop, step, count, nil
}

// resolveBound shifts a negative bound by the axis length and clamps
// it to the usable range: [0, len] for forward iteration, [-1, len-1]
// for reverse.
func resolveBound(i, length int, forward bool) int {
	if i < 0 {
		i += length
	}
	if forward {
		if i < 0 {
			i = 0
		}
		if i > length {
			i = length
		}
		return i
	}
	if i < -1 {
		i = -1
	}
	if i > length-1 {
		i = length - 1
	}
	return i
}

// normalizeInt resolves an integer index against an axis length.
func normalizeInt(i, length int) (int, error) {
	n := i
	if n < 0 {
		n += length
	}
	if n < 0 || n >= length {
		return 0, fmt.Errorf("%w: index %d out of range for axis of length %d", ErrBounds, i, length)
	}
	return n, nil
}
