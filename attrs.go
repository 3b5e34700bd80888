package zarr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Attrs returns the array's user attributes from .zattrs. A missing
// attributes document reads as an empty map. The result is cached on
// the array unless metadata caching is disabled.
func (a *Array) Attrs(ctx context.Context) (map[string]any, error) {
	if a.cacheMeta && a.attrs != nil {
		return a.attrs, nil
	}

	data, err := a.store.GetItem(ctx, keyPrefix(a.path)+AttrsKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			attrs := map[string]any{}
			a.attrs = attrs
			return attrs, nil
		}
		return nil, err
	}

	var attrs map[string]any
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, fmt.Errorf("failed to decode attributes: %w", err)
	}
	a.attrs = attrs
	return attrs, nil
}

// PutAttrs replaces the array's user attributes.
func (a *Array) PutAttrs(ctx context.Context, attrs map[string]any) error {
	if a.readOnly {
		return ErrReadOnly
	}
	data, err := json.MarshalIndent(attrs, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode attributes: %w", err)
	}
	if err := a.store.SetItem(ctx, keyPrefix(a.path)+AttrsKey, data); err != nil {
		return err
	}
	a.attrs = attrs
	return nil
}
