/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"fmt"
)

// ValidationError represents a configuration defect detected at startup.
// Per spec.md §7, ConfigError is fatal before the engine starts.
type ValidationError struct {
	Field      string
	Message    string
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the loaded config for defects that would otherwise surface
// confusingly deep in the pipeline (unknown labels, negative durations, …).
func Validate(c *Config) []ValidationError {
	var errs []ValidationError

	if c.Paths.HTMLDir == "" {
		errs = append(errs, ValidationError{
			Field:   "paths.html_dir",
			Message: "required field is empty",
		})
	}
	if c.Paths.CSSFile == "" {
		errs = append(errs, ValidationError{
			Field:   "paths.css_file",
			Message: "required field is empty",
		})
	}

	if c.Watch.DebounceMs < 0 {
		errs = append(errs, ValidationError{
			Field:      "watch.debounce_ms",
			Message:    fmt.Sprintf("must be >= 0, got %d", c.Watch.DebounceMs),
			Suggestion: "remove the field to use the default of 50",
		})
	}

	if c.Budget.FrameMs < 0 {
		errs = append(errs, ValidationError{
			Field:      "budget.frame_ms",
			Message:    fmt.Sprintf("must be >= 0, got %d", c.Budget.FrameMs),
			Suggestion: "use 0 to disable the budget, or a positive value in milliseconds",
		})
	}

	if c.Grouping.MaxDepth < 1 {
		errs = append(errs, ValidationError{
			Field:      "grouping.max_depth",
			Message:    fmt.Sprintf("must be >= 1, got %d", c.Grouping.MaxDepth),
			Suggestion: "remove the field to use the default of 8",
		})
	}

	errs = append(errs, validateNoDuplicates("variants.known", c.Variants.Known)...)
	errs = append(errs, validateNoDuplicates("grouping.context_prefix_labels", c.Grouping.ContextPrefixLabels)...)

	return errs
}

// validateNoDuplicates reports a ValidationError per value that appears more than once.
func validateNoDuplicates(field string, values []string) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			errs = append(errs, ValidationError{
				Field:      field,
				Message:    fmt.Sprintf("duplicate entry %q", v),
				Suggestion: "remove the repeated entry",
			})
			continue
		}
		seen[v] = true
	}
	return errs
}
