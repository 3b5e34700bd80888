package zarr

import "strings"

// NormalizePath canonicalizes a logical storage path so behaviour is
// consistent across storage systems: backslashes become forward
// slashes, leading and trailing slashes are stripped, and runs of
// slashes collapse to one. The root path normalizes to "".
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	kept := parts[:0]
	for _, s := range parts {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "/")
}

// keyPrefix returns the prefix for keys under a normalized path:
// "<path>/" or "" for the root.
func keyPrefix(path string) string {
	if path == "" {
		return ""
	}
	return path + "/"
}
