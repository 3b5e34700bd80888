package zarr

import (
	"encoding/json"
	"fmt"
	"math"
)

// MetadataKey is the store key suffix holding an array's descriptor.
const MetadataKey = ".zarray"

// AttrsKey is the store key suffix holding an array's user attributes.
const AttrsKey = ".zattrs"

// CompressorConfig represents the Zarr compressor metadata.
type CompressorConfig struct {
	ID      string `json:"id"`
	Cname   string `json:"cname,omitempty"`
	Clevel  int    `json:"clevel,omitempty"`
	Shuffle int    `json:"shuffle,omitempty"`
}

// Metadata represents the Zarr V2 .zarray descriptor.
type Metadata struct {
	ZarrFormat         int               `json:"zarr_format"`
	Shape              []int             `json:"shape"`
	Chunks             []int             `json:"chunks"`
	DType              string            `json:"dtype"`
	Compressor         *CompressorConfig `json:"compressor"`
	FillValue          any               `json:"fill_value"`
	Order              string            `json:"order"`
	Filters            []json.RawMessage `json:"filters"`
	DimensionSeparator string            `json:"dimension_separator,omitempty"`
}

// ParseMetadata decodes and validates a .zarray document.
func ParseMetadata(data []byte) (*Metadata, error) {
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if err := meta.validate(); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Encode serializes the descriptor back to JSON.
func (m *Metadata) Encode() ([]byte, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(m, "", "    ")
}

// Separator returns the chunk key separator, defaulting to ".".
func (m *Metadata) Separator() string {
	if m.DimensionSeparator == "" {
		return "."
	}
	return m.DimensionSeparator
}

func (m *Metadata) validate() error {
	if m.ZarrFormat != 2 {
		return fmt.Errorf("%w: unsupported zarr_format %d, expected 2", ErrValue, m.ZarrFormat)
	}
	if len(m.Shape) != len(m.Chunks) {
		return fmt.Errorf("%w: shape has %d dimensions, chunks has %d", ErrValue, len(m.Shape), len(m.Chunks))
	}
	for i, d := range m.Shape {
		if d < 0 {
			return fmt.Errorf("%w: shape[%d] = %d is negative", ErrValue, i, d)
		}
	}
	for i, c := range m.Chunks {
		if c <= 0 {
			return fmt.Errorf("%w: chunks[%d] = %d must be positive", ErrValue, i, c)
		}
	}
	switch m.Order {
	case "C":
	case "F":
		return fmt.Errorf("%w: Fortran order is not supported", ErrValue)
	default:
		return fmt.Errorf("%w: unknown order %q", ErrValue, m.Order)
	}
	if len(m.Filters) > 0 {
		return fmt.Errorf("%w: filters are not supported", ErrValue)
	}
	switch sep := m.DimensionSeparator; sep {
	case "", ".", "/":
	default:
		return fmt.Errorf("%w: unknown dimension_separator %q", ErrValue, sep)
	}

	dt, err := ParseDType(m.DType)
	if err != nil {
		return err
	}
	if _, err := parseFillValue(m.FillValue, dt); err != nil {
		return err
	}
	return nil
}

// parseFillValue resolves the fill_value field against the element
// type: a JSON number, one of the float sentinels "NaN", "Infinity",
// "-Infinity", or null (no fill). Returns nil when no fill value is
// configured.
func parseFillValue(v any, dt DType) (*float64, error) {
	switch fv := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return &fv, nil
	case json.Number:
		f, err := fv.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: fill_value %q", ErrValue, fv)
		}
		return &f, nil
	case string:
		if !dt.isFloat() {
			return nil, fmt.Errorf("%w: fill_value %q requires a float dtype", ErrValue, fv)
		}
		var f float64
		switch fv {
		case "NaN":
			f = math.NaN()
		case "Infinity":
			f = math.Inf(1)
		case "-Infinity":
			f = math.Inf(-1)
		default:
			return nil, fmt.Errorf("%w: fill_value %q", ErrValue, fv)
		}
		return &f, nil
	}
	return nil, fmt.Errorf("%w: fill_value of type %T", ErrValue, v)
}
