/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package check provides the CI-friendly diagnostic-only command.
package check

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dxlang/style/internal/config"
	"github.com/dxlang/style/internal/diagnostics"
	"github.com/dxlang/style/internal/engine"
	dxfs "github.com/dxlang/style/fs"
)

// Cmd is the check cobra command: compile without writing output, exiting
// non-zero if any diagnostic was raised.
var Cmd = &cobra.Command{
	Use:   "check",
	Short: "Compile without writing output, failing on any diagnostic",
	Long:  `check scans and compiles exactly like build, but never writes the stylesheet or cache; it exits non-zero if any diagnostic was raised, for use in CI.`,
	RunE:  run,
}

// summary is the machine-readable line `--json` writes to stdout after the
// diagnostic stream, so CI can parse one object instead of counting stderr
// lines.
type summary struct {
	Diagnostics int `json:"diagnostics"`
	Classes     int `json:"classes"`
	DurationMs  int `json:"durationMs"`
}

func init() {
	Cmd.Flags().Bool("json", false, "Emit diagnostics as JSON lines, plus a summary object on stdout")
}

func run(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	configPath := viper.GetString("config")

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
			cmd.PrintErrln(e.Error())
		}
		return diagnostics.ConfigExit(&errs[0])
	}

	diags := diagnostics.NewCollector()
	eng := engine.New(cfg, filesystem)

	if err := eng.ScanAndExtract(diags); err != nil {
		return diagnostics.IOExit(err)
	}

	_, _, _, stats := eng.Compile(diags)

	if jsonOut {
		eng.SuggestGroupings(diags)
		_ = diags.WriteJSONLines(cmd.ErrOrStderr())
		_ = json.NewEncoder(cmd.OutOrStdout()).Encode(summary{
			Diagnostics: diags.Len(),
			Classes:     stats.TokensExtracted,
			DurationMs:  int(stats.Elapsed.Milliseconds()),
		})
	} else {
		_ = diags.WriteHuman(cmd.ErrOrStderr())
	}

	if diags.Len() > 0 {
		return diagnostics.CheckExit(diags.Len())
	}
	return nil
}
