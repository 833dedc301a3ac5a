package report

import (
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/docrefs/internal/linkcheck"
	"git.home.luguber.info/inful/docrefs/internal/suggest"
)

const rule = "━"

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// printer writes lines and keeps the first error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) ruler() {
	p.printf("%s\n", strings.Repeat(rule, 60))
}

// Check outputs link and navigation problems grouped by file, then a summary.
func (f *TextFormatter) Check(w io.Writer, r CheckReport) error {
	p := &printer{w: w}
	p.printf("Checking links in: %s\n", r.Root)
	p.ruler()

	current := ""
	for _, res := range r.Results {
		if res.Status == linkcheck.StatusValid {
			continue
		}
		if res.SourceFile != current {
			current = res.SourceFile
			p.printf("\n%s\n", current)
		}
		icon := "✗"
		if res.Status == linkcheck.StatusRedirect {
			icon = "⚠"
		}
		p.printf("  %s %d:%d %s\n", icon, res.Link.Line, res.Link.Column, res.Error)
		if len(res.AnchorSuggestions) > 0 {
			p.printf("      did you mean: #%s\n", strings.Join(res.AnchorSuggestions, ", #"))
		}
	}

	if len(r.NavIssues) > 0 {
		p.printf("\n%s\n", r.NavFile)
		for _, issue := range r.NavIssues {
			p.printf("  ✗ %d %s\n", issue.Entry.Line, issue.Message)
		}
	}
	if len(r.Orphans) > 0 {
		p.printf("\nNot in navigation:\n")
		for _, o := range r.Orphans {
			p.printf("  ⚠ %s\n", o)
		}
	}

	s := r.Summary()
	p.printf("\n")
	p.ruler()
	p.printf("Results:\n")
	p.printf("  %d files scanned\n", r.Files)
	p.printf("  %d link%s checked\n", len(r.Results), pluralize(len(r.Results)))
	if s.Broken > 0 {
		p.printf("  %d broken\n", s.Broken)
	}
	if s.Redirect > 0 {
		p.printf("  %d redirected (should update)\n", s.Redirect)
	}
	if n := len(r.NavIssues); n > 0 {
		p.printf("  %d broken navigation entr%s\n", n, pluralizeY(n))
	}
	p.printf("\n")

	switch {
	case r.HasBroken():
		p.printf("❌ Documentation has broken links.\n   To see fixes: docrefs suggest\n")
	case r.HasWarnings():
		p.printf("⚠️  Documentation has links that only resolve through redirects.\n   To update: docrefs fix\n")
	default:
		p.printf("✨ All links resolve!\n")
	}
	return p.err
}

// Suggestions outputs suggestions grouped by confidence, highest first.
func (f *TextFormatter) Suggestions(w io.Writer, all []suggest.Suggestion) error {
	p := &printer{w: w}
	g := suggest.GroupByConfidence(all)

	for _, group := range []struct {
		title string
		items []suggest.Suggestion
	}{
		{"High confidence", g.High},
		{"Medium confidence", g.Medium},
		{"Low confidence", g.Low},
	} {
		if len(group.items) == 0 {
			continue
		}
		p.printf("%s (%d)\n", group.title, len(group.items))
		for _, s := range group.items {
			p.printf("  %s:%d  %s -> %s\n", s.Broken.SourceFile, s.Broken.Link.Line, s.Broken.Link.RawTarget, s.Fix.SuggestedLink)
			p.printf("      %s\n", s.Fix.Reason)
		}
		p.printf("\n")
	}

	if len(g.None) > 0 {
		p.printf("No suggestion (%d)\n", len(g.None))
		for _, s := range g.None {
			p.printf("  %s:%d  %s\n", s.Broken.SourceFile, s.Broken.Link.Line, s.Broken.Link.RawTarget)
		}
		p.printf("\n")
	}
	if len(all) == 0 {
		p.printf("✨ Nothing to fix.\n")
	}
	return p.err
}

// Fixes outputs per-fix outcomes and the redirects added.
func (f *TextFormatter) Fixes(w io.Writer, r FixReport) error {
	p := &printer{w: w}
	verb := "Fixed"
	if r.DryRun {
		verb = "Would fix"
	}

	ok := 0
	for _, res := range r.Results {
		if res.Success {
			ok++
			p.printf("  ✓ %s:%d  %s -> %s\n", res.SourceFile, res.Line, res.OriginalLink, res.NewLink)
			continue
		}
		p.printf("  ✗ %s:%d  %s: %s\n", res.SourceFile, res.Line, res.OriginalLink, res.Error)
	}

	if len(r.Redirects) > 0 {
		label := "Added redirects"
		if r.DryRun {
			label = "Would add redirects"
		}
		p.printf("\n%s:\n", label)
		for _, pair := range r.Redirects {
			p.printf("  %s: %s\n", pair.From, pair.To)
		}
	}

	p.printf("\n%s %d of %d link%s", verb, ok, len(r.Results), pluralize(len(r.Results)))
	if n := len(r.Skipped); n > 0 {
		p.printf(", %d left without a confident fix", n)
	}
	p.printf("\n")
	return p.err
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func pluralizeY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
