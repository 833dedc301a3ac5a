package linkcheck

import (
	"git.home.luguber.info/inful/docrefs/internal/markdown"
	"git.home.luguber.info/inful/docrefs/internal/redirects"
)

// Status is the outcome of validating one link.
type Status string

const (
	StatusValid    Status = "valid"
	StatusBroken   Status = "broken"
	StatusRedirect Status = "redirect-available"
)

// ValidationResult is the outcome of validating one link in a source file.
type ValidationResult struct {
	SourceFile   string
	Link         markdown.ParsedLink
	Status       Status
	ResolvedPath string           // Project-relative target after fallbacks
	Error        string           // Set unless Status is valid
	Redirect     *redirects.Entry // Set when Status is redirect-available

	// AnchorMissing marks a link whose file resolved but whose fragment names
	// no heading in it. Only produced when anchor checking is enabled.
	AnchorMissing     bool
	AnchorSuggestions []string
}

// BrokenLink is a ValidationResult that did not resolve directly. It always
// carries an error.
type BrokenLink struct {
	ValidationResult
}

// AnchorResult is the outcome of validating a fragment against a file's headings.
type AnchorResult struct {
	TargetFile  string
	Anchor      string
	Valid       bool
	MatchedID   string   // Heading id that matched, exact or case-insensitive
	Suggestions []string // Up to three closest heading ids when invalid
}

// CheckOptions controls batch validation.
type CheckOptions struct {
	Anchors bool // Also validate fragments of links to Markdown files
}

// BrokenLinks narrows results to the broken ones.
func BrokenLinks(results []ValidationResult) []BrokenLink {
	var broken []BrokenLink
	for _, r := range results {
		if r.Status == StatusBroken && r.Error != "" {
			broken = append(broken, BrokenLink{ValidationResult: r})
		}
	}
	return broken
}

// Unresolved returns the broken links together with links that only resolve
// through a redirect; both are candidates for rewriting.
func Unresolved(results []ValidationResult) []BrokenLink {
	var out []BrokenLink
	for _, r := range results {
		if r.Status != StatusValid {
			out = append(out, BrokenLink{ValidationResult: r})
		}
	}
	return out
}

// Summary counts results per status.
type Summary struct {
	Valid    int
	Broken   int
	Redirect int
}

// Summarize counts results per status.
func Summarize(results []ValidationResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusValid:
			s.Valid++
		case StatusBroken:
			s.Broken++
		case StatusRedirect:
			s.Redirect++
		}
	}
	return s
}
