package fixer

import (
	"git.home.luguber.info/inful/docrefs/internal/markdown"
	"git.home.luguber.info/inful/docrefs/internal/suggest"
)

// Fix is an accepted rewrite of one link.
type Fix struct {
	SourceFile string
	Link       markdown.ParsedLink
	NewLink    string // Replacement target text, fragment included
	NewPath    string // Project-relative file NewLink points to
	Confidence suggest.Confidence
}

// FixResult is the outcome of one attempted rewrite. A fix either fully
// applies or is reported failed; RedirectAdded is set only after the redirect
// for it has been written.
type FixResult struct {
	SourceFile    string
	Line          int
	OriginalLink  string
	NewLink       string
	NewPath       string
	Success       bool
	Error         string
	RedirectAdded bool

	originalPath string
}

// FileChange is the rewritten content of one file.
type FileChange struct {
	Path   string
	Before []byte
	After  []byte
}

// FromSuggestions turns suggestions at or above minimum confidence into fixes.
func FromSuggestions(suggestions []suggest.Suggestion, minimum suggest.Confidence) []Fix {
	var fixes []Fix
	for _, s := range suggest.AtLeast(suggestions, minimum) {
		fixes = append(fixes, Fix{
			SourceFile: s.Broken.SourceFile,
			Link:       s.Broken.Link,
			NewLink:    s.Fix.SuggestedLink,
			NewPath:    s.Fix.SuggestedPath,
			Confidence: s.Fix.Confidence,
		})
	}
	return fixes
}

// Succeeded counts successful results.
func Succeeded(results []FixResult) int {
	n := 0
	for _, r := range results {
		if r.Success {
			n++
		}
	}
	return n
}
