package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileEntry is a local file discovered by CollectFiles
type FileEntry struct {
	Path      string // relative, forward-slash separated
	LocalPath string
}

// CollectFiles walks root recursively and returns every file in lexical
// order. Directories are never entries. Symlinks to regular files are
// included; symlinks to directories are not descended into. Paths matching
// one of the exclude globs (doublestar syntax, matched against the
// normalized relative path) are skipped, including whole directories.
func CollectFiles(root string, exclude []string) ([]FileEntry, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrInvalidPath)
	}

	var entries []FileEntry

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		remotePath := normalizePath(rel, filepath.Separator)

		if excluded(remotePath, exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err == nil && target.IsDir() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		entries = append(entries, FileEntry{Path: remotePath, LocalPath: path})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return entries, nil
}

// normalizePath converts a relative path using sep into a forward-slash path
func normalizePath(rel string, sep rune) string {
	if sep == '/' {
		return rel
	}

	return strings.ReplaceAll(rel, string(sep), "/")
}

func excluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}

	return false
}
