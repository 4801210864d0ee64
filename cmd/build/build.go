/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package build provides the one-shot compile command.
package build

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dxlang/style/internal/config"
	"github.com/dxlang/style/internal/diagnostics"
	"github.com/dxlang/style/internal/engine"
	"github.com/dxlang/style/internal/extractor"
	"github.com/dxlang/style/internal/logger"
	dxfs "github.com/dxlang/style/fs"
)

// Cmd is the build cobra command: one-shot compile.
var Cmd = &cobra.Command{
	Use:   "build",
	Short: "Compile utility classes into a stylesheet and binary cache",
	Long:  `build scans the configured source tree once, compiles every utility class found, and writes the stylesheet and its .dxc cache.`,
	RunE:  run,
}

func init() {
	Cmd.Flags().Bool("quiet", false, "Suppress non-error output")
	Cmd.Flags().Bool("json", false, "Emit diagnostics as JSON lines")
}

func run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	jsonOut, _ := cmd.Flags().GetBool("json")
	if quiet {
		logger.SetOutput(io.Discard)
	}
	logger.Debug("%s", extractor.DetectCapabilities())

	filesystem := dxfs.NewOSFileSystem()
	configPath := viper.GetString("config")

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

	diags := diagnostics.NewCollector()
	eng := engine.New(cfg, filesystem)

	if err := eng.ScanAndExtract(diags); err != nil {
		return diagnostics.IOExit(err)
	}

	stylesheet, dxcBytes, _, stats := eng.Compile(diags)
	if err := eng.WriteOutputs(stylesheet, dxcBytes); err != nil {
		return diagnostics.IOExit(err)
	}

	if jsonOut {
		eng.SuggestGroupings(diags)
		_ = diags.WriteJSONLines(cmd.ErrOrStderr())
	} else {
		_ = diags.WriteHuman(cmd.ErrOrStderr())
	}

	if !quiet {
		logger.Info("compiled %d rule(s) from %d file(s) in %s", stats.RulesCompiled, stats.FilesScanned, stats.Elapsed)
	}

	return nil
}
