// Package text provides utilities for text measurement shared across the
// summarization pipeline and the model adapters.
package text

import "strings"

// CountRunes counts the number of Unicode characters (runes) in the given text.
// This correctly handles multi-byte characters including CJK text and emoji by
// counting runes instead of bytes. Model adapters use it to report summary
// lengths consistently regardless of script.
//
// Examples:
//
//	CountRunes("hello")    // returns 5
//	CountRunes("héllo")    // returns 5
//	CountRunes("")         // returns 0
func CountRunes(s string) int {
	return len([]rune(s))
}

// CountWords counts whitespace-separated words in the given text.
// All length budgets in the pipeline (document size, summary targets,
// chunk skip threshold) are expressed in these units.
func CountWords(s string) int {
	return len(strings.Fields(s))
}
