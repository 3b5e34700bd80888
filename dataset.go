package zarr

import (
	"context"
	"fmt"
	"io"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

// Dataset reads an array in sequential batches along axis 0 and hands
// them out as tensors, for feeding training loops straight from
// chunked storage.
type Dataset struct {
	arr *Array
	// CurrentIndex is the next row to be read. Reset it to re-iterate.
	CurrentIndex int
}

// NewDataset wraps an open array of rank >= 1.
func NewDataset(arr *Array) (*Dataset, error) {
	if len(arr.Shape()) == 0 {
		return nil, fmt.Errorf("%w: cannot batch a 0-d array", ErrValue)
	}
	return &Dataset{arr: arr}, nil
}

// NextBatch reads the next batch of up to batchSize rows. The last
// batch may be shorter. Returns io.EOF when the array is exhausted.
func (d *Dataset) NextBatch(ctx context.Context, batchSize int) (*tensors.Tensor, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size %d", ErrValue, batchSize)
	}
	rows := d.arr.Shape()[0]
	if d.CurrentIndex >= rows {
		return nil, io.EOF
	}

	start := d.CurrentIndex
	end := min(start+batchSize, rows)

	nd, err := d.arr.GetBasicSelection(ctx, NewSlice(start, end))
	if err != nil {
		return nil, err
	}
	t, err := toTensor(nd)
	if err != nil {
		return nil, err
	}

	d.CurrentIndex = end
	return t, nil
}

// toTensor converts an NDArray to a tensor of the matching dtype.
func toTensor(nd *NDArray) (*tensors.Tensor, error) {
	vals, err := nd.Values()
	if err != nil {
		return nil, err
	}
	shape := nd.Shape()
	switch v := vals.(type) {
	case []uint8:
		return tensors.FromFlatDataAndDimensions(v, shape...), nil
	case []int8:
		return tensors.FromFlatDataAndDimensions(v, shape...), nil
	case []uint16:
		return tensors.FromFlatDataAndDimensions(v, shape...), nil
	case []int16:
		return tensors.FromFlatDataAndDimensions(v, shape...), nil
	case []uint32:
		return tensors.FromFlatDataAndDimensions(v, shape...), nil
	case []int32:
		return tensors.FromFlatDataAndDimensions(v, shape...), nil
	case []float32:
		return tensors.FromFlatDataAndDimensions(v, shape...), nil
	case []float64:
		return tensors.FromFlatDataAndDimensions(v, shape...), nil
	default:
		return nil, fmt.Errorf("%w: unexpected data type %T", ErrValue, vals)
	}
}
