// Package report renders check, suggestion and fix results for the CLI.
package report

import (
	"io"

	"git.home.luguber.info/inful/docrefs/internal/fixer"
	"git.home.luguber.info/inful/docrefs/internal/linkcheck"
	"git.home.luguber.info/inful/docrefs/internal/navigation"
	"git.home.luguber.info/inful/docrefs/internal/redirects"
	"git.home.luguber.info/inful/docrefs/internal/suggest"
)

// CheckReport is the outcome of a check run.
type CheckReport struct {
	Root      string
	Files     int
	Results   []linkcheck.ValidationResult
	NavFile   string
	NavIssues []navigation.Issue
	Orphans   []string
}

// Summary counts link results.
func (r CheckReport) Summary() linkcheck.Summary {
	return linkcheck.Summarize(r.Results)
}

// HasBroken reports whether any link or navigation entry is broken.
func (r CheckReport) HasBroken() bool {
	return r.Summary().Broken > 0 || len(r.NavIssues) > 0
}

// HasWarnings reports whether any link only resolves through a redirect or
// any file is missing from the navigation.
func (r CheckReport) HasWarnings() bool {
	return r.Summary().Redirect > 0 || len(r.Orphans) > 0
}

// FixReport is the outcome of a fix run.
type FixReport struct {
	DryRun    bool
	Results   []fixer.FixResult
	Redirects []redirects.Pair
	Skipped   []suggest.Suggestion // Broken links without a fix at the requested confidence
}

// Formatter renders reports.
type Formatter interface {
	Check(w io.Writer, r CheckReport) error
	Suggestions(w io.Writer, s []suggest.Suggestion) error
	Fixes(w io.Writer, r FixReport) error
}

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New returns the formatter for f; unknown formats render text.
func New(f Format) Formatter {
	if f == FormatJSON {
		return NewJSONFormatter()
	}
	return NewTextFormatter()
}
