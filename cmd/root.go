/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for style.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dxlang/style/cmd/build"
	"github.com/dxlang/style/cmd/check"
	"github.com/dxlang/style/cmd/version"
	"github.com/dxlang/style/cmd/watch"
)

var rootCmd = &cobra.Command{
	Use:   "style",
	Short: "Compile atomic utility classes into a stylesheet",
	Long:  `style scans source files for utility classes, compiles them into CSS, and writes both a stylesheet and a binary cache for fast incremental rebuilds.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.AddCommand(build.Cmd)
	rootCmd.AddCommand(watch.Cmd)
	rootCmd.AddCommand(check.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

func initConfig() {
	// Look for config in .config directory
	viper.SetConfigName("style")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".config")
	viper.AddConfigPath(".")

	// Environment variables
	viper.SetEnvPrefix("STYLE")
	viper.AutomaticEnv()

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
