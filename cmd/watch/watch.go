/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package watch provides the continuous-recompile command.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dxlang/style/internal/config"
	"github.com/dxlang/style/internal/diagnostics"
	"github.com/dxlang/style/internal/engine"
	"github.com/dxlang/style/internal/extractor"
	"github.com/dxlang/style/internal/logger"
	"github.com/dxlang/style/internal/tui"
	internalwatch "github.com/dxlang/style/internal/watch"
	dxfs "github.com/dxlang/style/fs"
)

// Cmd is the watch cobra command: scan once, then recompile on every
// debounced filesystem change until interrupted.
var Cmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompile utility classes on every source change",
	Long:  `watch performs an initial build, then watches paths.html_dir and recompiles on every debounced change until interrupted.`,
	RunE:  run,
}

func init() {
	Cmd.Flags().Bool("tui", false, "Show a live status view instead of plain log lines")
	Cmd.Flags().Bool("json", false, "Emit diagnostics as JSON lines (plain mode only)")
}

func run(cmd *cobra.Command, args []string) error {
	configPath := viper.GetString("config")
	useTUI, _ := cmd.Flags().GetBool("tui")
	jsonOut, _ := cmd.Flags().GetBool("json")

	filesystem := dxfs.NewOSFileSystem()

	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.LoadPath(filesystem, configPath)
		if err != nil {
			return diagnostics.ConfigExit(err)
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault(filesystem, ".")
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		for _, e := range errs {
			logger.Warn("%s", e.Error())
		}
		return diagnostics.ConfigExit(&errs[0])
	}

	eng := engine.New(cfg, filesystem)
	capabilities := extractor.DetectCapabilities()

	var program *tea.Program
	if useTUI {
		model := tui.NewWatchModel(cfg.Paths.HTMLDir, capabilities.String())
		program = tea.NewProgram(model)
		go func() {
			program.Run()
		}()
	} else {
		logger.Debug("%s", capabilities)
	}

	runCycle := func(events []internalwatch.Event) {
		diags := diagnostics.NewCollector()
		if events != nil {
			eng.ApplyEvents(events, diags)
		} else if err := eng.ScanAndExtract(diags); err != nil {
			diags.Add(diagnostics.Diagnostic{Kind: diagnostics.KindIO, Message: err.Error()})
		}

		stylesheet, dxcBytes, changed, stats := eng.Compile(diags)
		if changed {
			if err := eng.WriteOutputs(stylesheet, dxcBytes); err != nil {
				diags.Add(diagnostics.Diagnostic{Kind: diagnostics.KindIO, Message: err.Error()})
			}
		}

		if jsonOut {
			eng.SuggestGroupings(diags)
		}

		report(program, cmd, diags, stats, jsonOut)
	}

	if !cfg.Watch.Enabled {
		runCycle(nil)
		if program != nil {
			program.Quit()
		}
		return nil
	}

	loop, err := internalwatch.New(time.Duration(cfg.Watch.DebounceMs)*time.Millisecond, runCycle)
	if err != nil {
		return diagnostics.IOExit(err)
	}
	defer func() { _ = loop.Close() }()

	if err := addTree(loop, cfg.Paths.HTMLDir); err != nil {
		return diagnostics.IOExit(err)
	}

	runCycle(nil)

	stop := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		close(stop)
	}()

	loop.Run(stop)

	if program != nil {
		program.Quit()
	}

	return nil
}

// report surfaces one compile cycle's outcome either to the TUI program or
// to stderr as plain diagnostics.
func report(program *tea.Program, cmd *cobra.Command, diags *diagnostics.Collector, stats engine.Stats, jsonOut bool) {
	if program != nil {
		msg := tui.StatusMsg{
			Files:    stats.FilesScanned,
			Rules:    stats.RulesCompiled,
			Tokens:   stats.TokensExtracted,
			Elapsed:  stats.Elapsed,
			Overruns: stats.BudgetOverruns,
		}
		if diags.Len() > 0 {
			msg.Diagnostic = fmt.Sprintf("%d diagnostic(s)", diags.Len())
		}
		program.Send(msg)
		return
	}

	if jsonOut {
		_ = diags.WriteJSONLines(cmd.ErrOrStderr())
	} else {
		_ = diags.WriteHuman(cmd.ErrOrStderr())
	}
	logger.Info("compiled %d rule(s) from %d file(s) in %s", stats.RulesCompiled, stats.FilesScanned, stats.Elapsed)
}

// addTree registers root and every subdirectory beneath it with the
// watcher: fsnotify does not watch recursively on its own.
func addTree(loop *internalwatch.Loop, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return loop.Add(path)
		}
		return nil
	})
}
