/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package grouping

import "sort"

// Suggestion names a candidate grouping label for a set of tokens that
// co-occur often enough to look like they were meant to be grouped. It
// never affects compilation output; it is surfaced only as a diagnostic
// hint (spec.md §9, "Jaccard-based auto-grouping" open question).
type Suggestion struct {
	Tokens     []string
	Similarity float64
}

// SuggestGroupings compares every pair of per-file token sets and reports
// pairs whose Jaccard similarity is at least threshold. This is a pure,
// input-side heuristic: it detects labels a user could have written, it
// never invents or applies a grouping on its own.
func SuggestGroupings(fileTokenSets [][]string, threshold float64) []Suggestion {
	var suggestions []Suggestion
	for i := 0; i < len(fileTokenSets); i++ {
		for j := i + 1; j < len(fileTokenSets); j++ {
			sim, shared := jaccard(fileTokenSets[i], fileTokenSets[j])
			if sim >= threshold && len(shared) > 0 {
				sort.Strings(shared)
				suggestions = append(suggestions, Suggestion{Tokens: shared, Similarity: sim})
			}
		}
	}
	return suggestions
}

// jaccard returns the Jaccard similarity of a and b and their intersection.
func jaccard(a, b []string) (float64, []string) {
	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		setB[t] = true
	}

	var intersection []string
	union := make(map[string]bool, len(setA)+len(setB))
	for t := range setA {
		union[t] = true
		if setB[t] {
			intersection = append(intersection, t)
		}
	}
	for t := range setB {
		union[t] = true
	}

	if len(union) == 0 {
		return 0, nil
	}
	return float64(len(intersection)) / float64(len(union)), intersection
}
