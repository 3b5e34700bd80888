package zarr

import "fmt"

// Span is a concrete per-axis selection: Count elements starting at
// Start, Step apart. Drop marks an axis fixed by an integer index;
// such axes always have Count 1 and are absent from output shapes.
type Span struct {
	Start, Count, Step int
	Drop               bool
}

// ChunkProjection maps one chunk onto the output of a selection: the
// chunk's grid coordinates, the selection within the chunk's local
// coordinate system (one Span per stored axis), and the selection
// within the output array (one Span per surviving axis, always
// contiguous with step 1).
type ChunkProjection struct {
	ChunkCoords    []int
	ChunkSelection []Span
	OutSelection   []Span
}

// dimProjection is the per-axis slice of a ChunkProjection.
type dimProjection struct {
	chunkIdx int
	chunkSel Span
	outSel   Span
}

// dimIndexer enumerates the chunks one axis selection touches.
type dimIndexer struct {
	projs   []dimProjection
	numOut  int  // output length along this axis
	dropped bool // integer-indexed axis, absent from the output
	step    int  // normalized step (1 for integer axes)
}

// newSliceDimIndexer covers every chunk touched by a slice selection
// along an axis of the given length, split into chunks of chunkLen.
// Chunks are visited in the order induced by the step sign; each
// projection's output range is contiguous and the ranges tile
// [0, count) without overlap.
func newSliceDimIndexer(s Slice, length, chunkLen int) (*dimIndexer, error) {
	start, stop, step, count, err := normalizeSlice(s, length)
	if err != nil {
		return nil, err
	}

	di := &dimIndexer{numOut: count, step: step}
	if count == 0 {
		return di, nil
	}

	outOffset := 0
	if step > 0 {
		last := start + (count-1)*step
		for c := start / chunkLen; c <= last/chunkLen; c++ {
			b0 := c * chunkLen
			b1 := b0 + chunkLen

			// First progression point inside [b0, b1).
			p := start
			if p < b0 {
				p = start + ((b0-start+step-1)/step)*step
			}
			end := min(b1, stop)
			if p >= end {
				continue
			}
			n := (end - p + step - 1) / step

			di.projs = append(di.projs, dimProjection{
				chunkIdx: c,
				chunkSel: Span{Start: p - b0, Count: n, Step: step},
				outSel:   Span{Start: outOffset, Count: n, Step: 1},
			})
			outOffset += n
		}
	} else {
		astep := -step
		last := start + (count-1)*step
		for c := start / chunkLen; c >= last/chunkLen; c-- {
			b0 := c * chunkLen
			b1 := b0 + chunkLen

			// First (highest) progression point inside [b0, b1).
			p := start
			if p > b1-1 {
				p = start - ((start-(b1-1)+astep-1)/astep)*astep
			}
			end := max(b0-1, stop)
			if p <= end {
				continue
			}
			n := (p - end + astep - 1) / astep

			di.projs = append(di.projs, dimProjection{
				chunkIdx: c,
				chunkSel: Span{Start: p - b0, Count: n, Step: step},
				outSel:   Span{Start: outOffset, Count: n, Step: 1},
			})
			outOffset += n
		}
	}
	return di, nil
}

// newIntDimIndexer fixes an axis to a single index. The axis is
// dropped from the output.
func newIntDimIndexer(i Int, length, chunkLen int) (*dimIndexer, error) {
	idx, err := normalizeInt(int(i), length)
	if err != nil {
		return nil, err
	}
	return &dimIndexer{
		projs: []dimProjection{{
			chunkIdx: idx / chunkLen,
			chunkSel: Span{Start: idx % chunkLen, Count: 1, Step: 1, Drop: true},
		}},
		numOut:  1,
		dropped: true,
		step:    1,
	}, nil
}

// basicIndexer translates a selection against a shape and chunk grid
// into a stream of chunk projections.
type basicIndexer struct {
	dims     []*dimIndexer
	outShape []int // surviving axes only
	dropAxes []int // positions of integer-indexed axes
}

// newBasicIndexer validates and right-pads the selection to the array
// rank, then builds one per-axis indexer per dimension. A nil entry in
// sel selects the full axis.
func newBasicIndexer(sel []DimSel, shape, chunks []int) (*basicIndexer, error) {
	if len(sel) > len(shape) {
		return nil, fmt.Errorf("%w: %d indices for %d dimensions", ErrTooManyIndices, len(sel), len(shape))
	}

	ix := &basicIndexer{dims: make([]*dimIndexer, len(shape))}
	for d := range shape {
		var ds DimSel = All()
		if d < len(sel) && sel[d] != nil {
			ds = sel[d]
		}

		var di *dimIndexer
		var err error
		switch s := ds.(type) {
		case Int:
			di, err = newIntDimIndexer(s, shape[d], chunks[d])
		case Slice:
			di, err = newSliceDimIndexer(s, shape[d], chunks[d])
		default:
			err = fmt.Errorf("%w: unsupported selection type %T", ErrValue, ds)
		}
		if err != nil {
			return nil, err
		}

		ix.dims[d] = di
		if di.dropped {
			ix.dropAxes = append(ix.dropAxes, d)
		} else {
			ix.outShape = append(ix.outShape, di.numOut)
		}
	}
	return ix, nil
}

// hasNegativeStep reports whether any axis iterates in reverse.
func (ix *basicIndexer) hasNegativeStep() bool {
	for _, di := range ix.dims {
		if di.step < 0 {
			return true
		}
	}
	return false
}

// outSize is the number of elements the selection yields.
func (ix *basicIndexer) outSize() int {
	n := 1
	for _, l := range ix.outShape {
		n *= l
	}
	return n
}

// forEach walks the Cartesian product of the per-axis projections in
// row-major order (axis 0 outermost) and calls fn with each assembled
// ChunkProjection. The projection's slices are reused between calls;
// fn must not retain them. Any axis with no projections makes the
// whole stream empty.
func (ix *basicIndexer) forEach(fn func(p ChunkProjection) error) error {
	rank := len(ix.dims)
	if rank == 0 {
		// 0-d array: a single projection addressing the lone chunk.
		return fn(ChunkProjection{ChunkCoords: []int{}, ChunkSelection: []Span{}, OutSelection: []Span{}})
	}
	for _, di := range ix.dims {
		if len(di.projs) == 0 {
			return nil
		}
	}

	p := ChunkProjection{
		ChunkCoords:    make([]int, rank),
		ChunkSelection: make([]Span, rank),
		OutSelection:   make([]Span, 0, rank),
	}
	pos := make([]int, rank)
	for {
		p.OutSelection = p.OutSelection[:0]
		for d, di := range ix.dims {
			dp := di.projs[pos[d]]
			p.ChunkCoords[d] = dp.chunkIdx
			p.ChunkSelection[d] = dp.chunkSel
			if !di.dropped {
				p.OutSelection = append(p.OutSelection, dp.outSel)
			}
		}
		if err := fn(p); err != nil {
			return err
		}

		// Odometer increment, innermost axis fastest.
		d := rank - 1
		for ; d >= 0; d-- {
			pos[d]++
			if pos[d] < len(ix.dims[d].projs) {
				break
			}
			pos[d] = 0
		}
		if d < 0 {
			return nil
		}
	}
}
