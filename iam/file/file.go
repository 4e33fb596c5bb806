// Package file restricts which filesystem paths built-in functions may access.
package file

import (
	"path/filepath"
	"strings"
)

// ExtractAllowedPaths parses a comma-separated allow-list of filesystem
// paths. Segments are trimmed and cleaned; empty or relative segments are
// dropped rather than guessed at, since this list gates file access.
func ExtractAllowedPaths(input string) []string {
	var paths []string

	for _, segment := range strings.Split(input, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if !filepath.IsAbs(segment) {
			continue
		}
		paths = append(paths, filepath.Clean(segment))
	}

	return paths
}

// IsPathAllowed reports whether path sits under one of the allowed paths.
func IsPathAllowed(path string, allowed []string) bool {
	path = filepath.Clean(path)

	for _, p := range allowed {
		if path == p || strings.HasPrefix(path, p+string(filepath.Separator)) {
			return true
		}
	}

	return false
}
