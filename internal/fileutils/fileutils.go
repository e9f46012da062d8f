// Package fileutils provides small filesystem helpers shared across the
// application.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// EnsureDirectoryExists creates the directory and any missing parents.
func EnsureDirectoryExists(path string) error {
	if err := os.MkdirAll(path, 0750); err != nil {
		return fmt.Errorf("error creating directory %s: %w", path, err)
	}
	return nil
}

// ListFilesWithSuffix returns the files in dir whose name ends with suffix,
// sorted by name. The comparison is case-insensitive.
func ListFilesWithSuffix(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	var files []string
	lowered := strings.ToLower(suffix)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), lowered) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
