/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package engine ties the scan/extract/group/compile/assemble/cache
// pipeline together. An Engine is a value, never a singleton: CLI
// commands construct one, run it, and drop it (spec.md §9).
package engine

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dxlang/style/internal/assembler"
	"github.com/dxlang/style/internal/cache"
	"github.com/dxlang/style/internal/compiler"
	"github.com/dxlang/style/internal/config"
	"github.com/dxlang/style/internal/diagnostics"
	"github.com/dxlang/style/internal/extractor"
	"github.com/dxlang/style/internal/families"
	"github.com/dxlang/style/internal/grouping"
	"github.com/dxlang/style/internal/scanner"
	"github.com/dxlang/style/internal/watch"
	dxfs "github.com/dxlang/style/fs"
)

// groupingSuggestThreshold is the Jaccard similarity floor above which two
// files' token sets are reported as a grouping candidate (spec.md §9).
const groupingSuggestThreshold = 0.6

// Stats reports observability counters for a compile cycle. Exceeding the
// frame budget only ever affects these counters, never the output
// (spec.md §5, testable property 8).
type Stats struct {
	FilesScanned    int
	TokensExtracted int
	RulesCompiled   int
	Elapsed         time.Duration
	BudgetOverruns  int
}

// fileState is the engine's per-file record of extracted raw tokens. The
// content hash reflects the bytes used for the most recent extraction, per
// spec.md §3's SourceFile.content_hash invariant.
type fileState struct {
	tokens      []string
	contentHash string
}

// Engine owns the authoritative path->SourceFile map and the derived
// token set it compiles from (spec.md §3 Ownership).
type Engine struct {
	Config *config.Config
	FS     dxfs.FileSystem
	Tables *families.Tables

	expander *grouping.Expander
	compiler *compiler.Compiler

	files        map[string]*fileState
	lastRendered string
	stats        Stats
}

// New constructs an Engine bound to cfg and filesystem. It performs no I/O;
// call ScanAndExtract (or ApplyEvents, for the watch loop) to populate it.
func New(cfg *config.Config, filesystem dxfs.FileSystem) *Engine {
	tables := families.DefaultTables()
	return &Engine{
		Config:   cfg,
		FS:       filesystem,
		Tables:   tables,
		expander: grouping.NewExpander(cfg.Grouping.ContextPrefixLabels, cfg.Grouping.MaxDepth),
		compiler: compiler.New(cfg.Variants.Known, tables),
		files:    make(map[string]*fileState),
	}
}

// ScanAndExtract performs a full scan of paths.html_dir and extracts class
// tokens from every matched file, replacing the engine's file map
// entirely. Used by `style build` and `style check`, and once at startup
// by `style watch` before entering the event loop.
func (e *Engine) ScanAndExtract(diags *diagnostics.Collector) error {
	sources := scanner.Scan(e.Config.Paths.HTMLDir, scanner.Options{
		IncludeExt:  e.Config.Paths.IncludeExt,
		ExcludeDirs: e.Config.Paths.ExcludeDirs,
	}, diags)

	e.files = make(map[string]*fileState, len(sources))
	e.stats.FilesScanned = len(sources)

	var inputs []extractor.FileInput
	for path := range sources {
		data, err := e.FS.ReadFile(path)
		if err != nil {
			diags.Add(diagnostics.Diagnostic{
				Kind:    diagnostics.KindIO,
				Path:    path,
				Message: err.Error(),
			})
			continue
		}
		inputs = append(inputs, extractor.FileInput{
			Path: path,
			Ext:  trimExt(path),
			Data: data,
		})
	}

	results := extractor.ExtractAll(inputs, extractor.Options{
		Attributes: e.Config.Extract.Attributes,
	}, 8, diags)

	hashes := make(map[string]string, len(inputs))
	for _, in := range inputs {
		hashes[in.Path] = scanner.HashContent(in.Data)
	}

	for path, result := range results {
		e.files[path] = &fileState{tokens: result.Tokens, contentHash: hashes[path]}
	}

	return nil
}

// ApplyEvents incrementally updates the engine's file map from a
// debounced watch batch: Created/Modified paths are re-extracted, Deleted
// paths are removed (spec.md §4.8).
func (e *Engine) ApplyEvents(events []watch.Event, diags *diagnostics.Collector) {
	for _, ev := range events {
		switch ev.Kind {
		case watch.Deleted:
			delete(e.files, ev.Path)
		case watch.Created, watch.Modified:
			data, err := e.FS.ReadFile(ev.Path)
			if err != nil {
				diags.Add(diagnostics.Diagnostic{
					Kind:    diagnostics.KindIO,
					Path:    ev.Path,
					Message: err.Error(),
				})
				delete(e.files, ev.Path)
				continue
			}
			ext := trimExt(ev.Path)
			var result extractor.Result
			if extractor.IsStructural(ext) {
				result = extractor.ExtractStructural(ev.Path, ext, data, extractor.Options{Attributes: e.Config.Extract.Attributes}, diags)
			} else {
				result = extractor.Extract(ev.Path, data, extractor.Options{Attributes: e.Config.Extract.Attributes}, diags)
			}
			e.files[ev.Path] = &fileState{tokens: result.Tokens, contentHash: scanner.HashContent(data)}
		}
	}
}

// Compile recomputes the union of tokens across all known SourceFiles and
// runs it through grouping, compilation, and assembly, honouring the
// configured frame budget as a reporting-only soft timeout (spec.md §5).
// It returns the rendered stylesheet text, the serialised .dxc bytes, and
// whether the rendered stylesheet differs from the one the previous Compile
// call produced (an unchanged union always renders identically, so the
// caller skips rewriting the stylesheet, per spec.md §4.8).
func (e *Engine) Compile(diags *diagnostics.Collector) (stylesheet string, dxcBytes []byte, changed bool, stats Stats) {
	start := time.Now()

	raws := e.unionTokens()
	expanded := e.expander.ExpandAll(raws, diags)

	rules := make([]compiler.Rule, 0, len(expanded))
	for _, tok := range expanded {
		rule, ok := e.compiler.Compile(tok.Raw, tok.FromGroup, diags)
		if !ok {
			continue
		}
		rules = append(rules, rule)
	}

	sheet := assembler.Assemble(rules)
	rendered := sheet.Render()

	dxcBytes = buildCache(sheet)

	elapsed := time.Since(start)
	budgetOverrun := 0
	if e.Config.Budget.FrameMs > 0 && elapsed > time.Duration(e.Config.Budget.FrameMs)*time.Millisecond {
		budgetOverrun = 1
	}

	stats = Stats{
		FilesScanned:    len(e.files),
		TokensExtracted: len(raws),
		RulesCompiled:   len(rules),
		Elapsed:         elapsed,
		BudgetOverruns:  e.stats.BudgetOverruns + budgetOverrun,
	}
	e.stats = stats

	changed = rendered != e.lastRendered
	e.lastRendered = rendered

	return rendered, dxcBytes, changed, stats
}

// unionTokens returns the deterministic union of every known file's raw
// tokens: files in path order, each file's tokens in first-occurrence
// order, deduplicated across files by first occurrence (spec.md testable
// property 1 and 4 both depend on this being order-independent of scan
// order but still reproducible run to run).
func (e *Engine) unionTokens() []string {
	paths := make([]string, 0, len(e.files))
	for p := range e.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	seen := make(map[string]bool)
	var out []string
	for _, p := range paths {
		for _, tok := range e.files[p].tokens {
			if seen[tok] {
				continue
			}
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out
}

// SuggestGroupings reports candidate grouping labels as diagnostics: pairs
// of files whose token sets are similar enough that a user likely meant to
// factor them into a shared "label(...)" grouping expression. This never
// affects compiled output (spec.md §9, "Jaccard-based auto-grouping");
// callers opt into the cost of computing it, e.g. only under `--json`.
func (e *Engine) SuggestGroupings(diags *diagnostics.Collector) {
	paths := make([]string, 0, len(e.files))
	for p := range e.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	sets := make([][]string, len(paths))
	for i, p := range paths {
		sets[i] = e.files[p].tokens
	}

	for _, s := range grouping.SuggestGroupings(sets, groupingSuggestThreshold) {
		diags.Add(diagnostics.Diagnostic{
			Kind:    diagnostics.KindToken,
			Token:   strings.Join(s.Tokens, " "),
			Message: fmt.Sprintf("tokens co-occur across files at %.0f%% similarity, consider a shared grouping label", s.Similarity*100),
		})
	}
}

// WriteOutputs atomically writes the stylesheet and its .dxc cache,
// per spec.md §4.8: write to a sibling temp file, then rename.
func (e *Engine) WriteOutputs(stylesheet string, dxcBytes []byte) error {
	if err := dxfs.AtomicWrite(e.FS, e.Config.Paths.CSSFile, []byte(stylesheet), 0o644); err != nil {
		return err
	}
	return dxfs.AtomicWrite(e.FS, e.Config.CacheFilePath(), dxcBytes, 0o644)
}

func trimExt(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 {
		return ext[1:]
	}
	return ""
}
