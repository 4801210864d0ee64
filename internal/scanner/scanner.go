/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package scanner enumerates SourceFiles under a root directory, honouring
// extension inclusion and directory exclusion lists, per spec.md §4.1.
package scanner

import (
	"crypto/sha256"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dxlang/style/internal/diagnostics"
)

// SourceFile describes one scanned regular file.
type SourceFile struct {
	Path        string
	Size        int64
	ModTime     int64
	ContentHash string
}

// Options configures a scan.
type Options struct {
	IncludeExt  []string
	ExcludeDirs []string
}

// Scan walks root and returns a stable, order-insensitive set of
// SourceFile descriptors for regular files only. Symlinks are followed at
// most one level and never revisited. Per-file errors (permission denied,
// cycles) are reported via diags and do not abort the scan.
func Scan(root string, opts Options, diags *diagnostics.Collector) map[string]SourceFile {
	include := make(map[string]bool, len(opts.IncludeExt))
	for _, e := range opts.IncludeExt {
		include[strings.TrimPrefix(e, ".")] = true
	}
	exclude := make(map[string]bool, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		exclude[d] = true
	}

	files := make(map[string]SourceFile)
	visited := make(map[string]bool)
	walk(root, root, include, exclude, visited, false, files, diags)
	return files
}

// walk recursively scans dir. followedSymlink is true once this branch has
// already crossed one symlink boundary, so a second is rejected rather
// than followed (spec.md §4.1: "followed at most one level").
func walk(root, dir string, include, exclude map[string]bool, visited map[string]bool, followedSymlink bool, files map[string]SourceFile, diags *diagnostics.Collector) {
	entries, err := readDirEntries(dir)
	if err != nil {
		diags.Add(diagnostics.Diagnostic{
			Kind:    diagnostics.KindIO,
			Path:    dir,
			Message: err.Error(),
		})
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if exclude[entry.Name()] {
				continue
			}
			walk(root, path, include, exclude, visited, followedSymlink, files, diags)
			continue
		}

		isSymlink := entry.Type()&fs.ModSymlink != 0
		if isSymlink {
			if followedSymlink {
				continue
			}
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				diags.Add(diagnostics.Diagnostic{
					Kind:    diagnostics.KindIO,
					Path:    path,
					Message: err.Error(),
				})
				continue
			}
			if visited[target] {
				continue
			}
			visited[target] = true

			info, err := statFollow(target)
			if err != nil {
				diags.Add(diagnostics.Diagnostic{
					Kind:    diagnostics.KindIO,
					Path:    path,
					Message: err.Error(),
				})
				continue
			}
			if info.IsDir() {
				walk(root, target, include, exclude, visited, true, files, diags)
				continue
			}
		}

		if !include[trimExt(entry.Name())] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			diags.Add(diagnostics.Diagnostic{
				Kind:    diagnostics.KindIO,
				Path:    path,
				Message: err.Error(),
			})
			continue
		}

		files[path] = SourceFile{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime().UnixNano(),
		}
	}
}

// trimExt returns the file's extension without its leading dot.
func trimExt(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimPrefix(ext, ".")
}

// MatchGlob reports whether path matches the doublestar pattern, used by
// callers that need to filter an already-scanned set against an
// additional user-supplied include/exclude glob.
func MatchGlob(pattern, path string) bool {
	matched, _ := doublestar.Match(pattern, path)
	return matched
}

// HashContent returns a stable content hash for data, used by the engine
// to record each file's content hash once its bytes have been read for
// extraction (the scanner itself never reads file contents, and Scan
// leaves SourceFile.ContentHash empty).
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return string(sum[:])
}
