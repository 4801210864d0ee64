/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package extractor

import (
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/dxlang/style/internal/diagnostics"
)

// FileInput is one file's bytes and the extension used to pick a backend.
type FileInput struct {
	Path string
	Ext  string
	Data []byte
}

// ExtractAll fans the per-file extraction stage out to a worker pool
// (spec.md §5: the only permitted fan-out in an otherwise single-threaded
// pipeline). Each worker owns its own de-duplication set and diagnostic
// collector; only the caller's diags is shared, behind a mutex. The
// per-file results are returned keyed by path; the engine unions their
// tokens into the cycle's authoritative set.
func ExtractAll(files []FileInput, opts Options, maxWorkers int, diags *diagnostics.Collector) map[string]Result {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	results := make([]Result, len(files))
	var diagsMu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for i, f := range files {
		i, f := i, f
		p.Go(func() {
			local := diagnostics.NewCollector()
			if IsStructural(f.Ext) {
				results[i] = ExtractStructural(f.Path, f.Ext, f.Data, opts, local)
			} else {
				results[i] = Extract(f.Path, f.Data, opts, local)
			}
			if local.Len() == 0 {
				return
			}
			diagsMu.Lock()
			defer diagsMu.Unlock()
			for _, d := range local.All() {
				diags.Add(d)
			}
		})
	}
	p.Wait()

	union := make(map[string]Result, len(files))
	for i, f := range files {
		union[f.Path] = results[i]
	}
	return union
}
