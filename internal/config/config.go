/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for the style compiler.
package config

// Config is the typed, validated configuration record for the compiler.
// It is the in-memory target of whatever external loader (TOML/YAML/JSONC
// file, viper, environment variables) produced the raw values; this package
// never touches a config file directly except through Load/LoadOrDefault/LoadPath.
type Config struct {
	Paths     PathsConfig     `yaml:"paths" json:"paths" toml:"paths"`
	Watch     WatchConfig     `yaml:"watch" json:"watch" toml:"watch"`
	Budget    BudgetConfig    `yaml:"budget" json:"budget" toml:"budget"`
	Variants  VariantsConfig  `yaml:"variants" json:"variants" toml:"variants"`
	Grouping  GroupingConfig  `yaml:"grouping" json:"grouping" toml:"grouping"`
	Utilities UtilitiesConfig `yaml:"utilities" json:"utilities" toml:"utilities"`
	Extract   ExtractConfig   `yaml:"extract" json:"extract" toml:"extract"`
}

// PathsConfig holds the scan root, output targets, and scan filters.
type PathsConfig struct {
	// HTMLDir is the scan root. Required.
	HTMLDir string `yaml:"html_dir" json:"html_dir" toml:"html_dir"`

	// CSSFile is the stylesheet output path. Required.
	CSSFile string `yaml:"css_file" json:"css_file" toml:"css_file"`

	// CacheFile is the B-CSS artifact path. Defaults to CSSFile+".dxc".
	CacheFile string `yaml:"cache_file" json:"cache_file" toml:"cache_file"`

	// IncludeExt lists scanned file extensions, without the leading dot.
	IncludeExt []string `yaml:"include_ext" json:"include_ext" toml:"include_ext"`

	// ExcludeDirs lists directory names never descended into.
	ExcludeDirs []string `yaml:"exclude_dirs" json:"exclude_dirs" toml:"exclude_dirs"`
}

// WatchConfig controls the debounced file-watch loop.
type WatchConfig struct {
	// DebounceMs is the coalescing window in milliseconds.
	DebounceMs int `yaml:"debounce_ms" json:"debounce_ms" toml:"debounce_ms"`

	// Enabled toggles the watch loop; when false, `style watch` behaves like `style build`.
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`
}

// BudgetConfig controls the soft per-cycle frame budget.
type BudgetConfig struct {
	// FrameMs is the reporting threshold in milliseconds. 0 disables the budget.
	FrameMs int `yaml:"frame_ms" json:"frame_ms" toml:"frame_ms"`
}

// VariantsConfig enumerates recognized variant prefixes.
type VariantsConfig struct {
	Known []string `yaml:"known" json:"known" toml:"known"`
}

// GroupingConfig controls grouping-expression expansion.
type GroupingConfig struct {
	// ContextPrefixLabels are labels that activate context-prefixing instead of flattening.
	ContextPrefixLabels []string `yaml:"context_prefix_labels" json:"context_prefix_labels" toml:"context_prefix_labels"`

	// MaxDepth bounds grouping-expression nesting.
	MaxDepth int `yaml:"max_depth" json:"max_depth" toml:"max_depth"`
}

// UtilitiesConfig carries the scale/palette tables the utility compiler resolves against.
type UtilitiesConfig struct {
	FamilyTables map[string]any `yaml:"family_tables" json:"family_tables" toml:"family_tables"`
}

// ExtractConfig controls which attributes the extractor scans for class tokens.
type ExtractConfig struct {
	// Attributes lists the attribute names scanned for class tokens.
	// Defaults to ["class", "className"] (className included per spec.md §9 open question).
	Attributes []string `yaml:"attributes" json:"attributes" toml:"attributes"`
}

// Default returns a config populated with the spec's documented defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			IncludeExt:  []string{"html", "htm", "svelte", "vue", "jsx", "tsx", "md"},
			ExcludeDirs: []string{".git", "node_modules", "target", ".dx-cache"},
		},
		Watch: WatchConfig{
			DebounceMs: 50,
			Enabled:    true,
		},
		Budget: BudgetConfig{
			FrameMs: 4,
		},
		Grouping: GroupingConfig{
			MaxDepth: 8,
		},
		Extract: ExtractConfig{
			Attributes: []string{"class", "className"},
		},
	}
}

// CacheFilePath returns the configured cache file, deriving it from CSSFile when unset.
func (c *Config) CacheFilePath() string {
	if c.Paths.CacheFile != "" {
		return c.Paths.CacheFile
	}
	return c.Paths.CSSFile + ".dxc"
}

// applyDefaults restores the default for list fields a loaded file left
// empty and for a zero max_depth, so a partially-specified loaded file still
// behaves sensibly. Load and LoadPath decode on top of Default(), so scalar
// fields absent from the file keep their defaults too.
func (c *Config) applyDefaults() {
	d := Default()
	if len(c.Paths.IncludeExt) == 0 {
		c.Paths.IncludeExt = d.Paths.IncludeExt
	}
	if len(c.Paths.ExcludeDirs) == 0 {
		c.Paths.ExcludeDirs = d.Paths.ExcludeDirs
	}
	if c.Grouping.MaxDepth == 0 {
		c.Grouping.MaxDepth = d.Grouping.MaxDepth
	}
	if len(c.Extract.Attributes) == 0 {
		c.Extract.Attributes = d.Extract.Attributes
	}
}
