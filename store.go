package zarr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// Store is the key-value abstraction arrays are backed by. Keys are
// slash-delimited strings. GetItem returns bytes owned by the caller;
// SetItem must not retain the passed slice. A missing key surfaces as
// ErrKeyNotFound (possibly wrapped).
type Store interface {
	// GetItem returns the value stored under key.
	GetItem(ctx context.Context, key string) ([]byte, error)
	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key string, value []byte) error
	// ContainsItem reports whether key exists.
	ContainsItem(ctx context.Context, key string) (bool, error)
	// DeleteItem removes key. Deleting a missing key is not an error.
	DeleteItem(ctx context.Context, key string) error
	// ListDir returns the names of the immediate children under
	// prefix, sorted.
	ListDir(ctx context.Context, prefix string) ([]string, error)
}

// MemStore is an in-memory Store safe for concurrent use.
type MemStore struct {
	data *xsync.MapOf[string, []byte]
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: xsync.NewMapOf[string, []byte]()}
}

func (s *MemStore) GetItem(_ context.Context, key string) ([]byte, error) {
	v, ok := s.data.Load(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemStore) SetItem(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	s.data.Store(key, v)
	return nil
}

func (s *MemStore) ContainsItem(_ context.Context, key string) (bool, error) {
	_, ok := s.data.Load(key)
	return ok, nil
}

func (s *MemStore) DeleteItem(_ context.Context, key string) error {
	s.data.Delete(key)
	return nil
}

func (s *MemStore) ListDir(_ context.Context, prefix string) ([]string, error) {
	prefix = keyPrefix(NormalizePath(prefix))
	seen := map[string]bool{}
	s.data.Range(func(key string, _ []byte) bool {
		if !strings.HasPrefix(key, prefix) {
			return true
		}
		rest := key[len(prefix):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			rest = rest[:i]
		}
		seen[rest] = true
		return true
	})
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Len returns the number of stored keys.
func (s *MemStore) Len() int { return s.data.Size() }

// DirStore is a Store over a local directory, one file per key.
type DirStore struct {
	base string
}

var _ Store = (*DirStore)(nil)

// NewDirStore creates the base directory if needed and returns a
// store rooted there.
func NewDirStore(base string) (*DirStore, error) {
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &DirStore{base: base}, nil
}

func (s *DirStore) keyPath(key string) string {
	return filepath.Join(s.base, filepath.FromSlash(key))
}

func (s *DirStore) GetItem(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return data, err
}

func (s *DirStore) SetItem(_ context.Context, key string, value []byte) error {
	path := s.keyPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, value, 0o644)
}

func (s *DirStore) ContainsItem(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(s.keyPath(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}

func (s *DirStore) DeleteItem(_ context.Context, key string) error {
	err := os.Remove(s.keyPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *DirStore) ListDir(_ context.Context, prefix string) ([]string, error) {
	dir := s.base
	if p := NormalizePath(prefix); p != "" {
		dir = filepath.Join(s.base, filepath.FromSlash(p))
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
