// Package fixer rewrites accepted link fixes into source files and records
// redirects for the moved targets.
package fixer

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docrefs/internal/docfs"
	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
	"git.home.luguber.info/inful/docrefs/internal/logfields"
	"git.home.luguber.info/inful/docrefs/internal/markdown"
	"git.home.luguber.info/inful/docrefs/internal/metrics"
	"git.home.luguber.info/inful/docrefs/internal/redirects"
)

// Option configures a Fixer.
type Option func(*Fixer)

// WithDryRun computes changes without writing files or redirects.
func WithDryRun(dryRun bool) Option {
	return func(f *Fixer) {
		f.dryRun = dryRun
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fixer) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(f *Fixer) {
		if r != nil {
			f.recorder = r
		}
	}
}

// Fixer applies fixes to the files of one project. Rewrites are not
// transactional across files: files written before a failure keep their fixes.
type Fixer struct {
	index    *docfs.Index
	table    *redirects.Table
	dryRun   bool
	logger   *slog.Logger
	recorder metrics.Recorder

	changes []FileChange
}

// New creates a fixer. table may be nil, in which case no redirects are
// recorded.
func New(index *docfs.Index, table *redirects.Table, opts ...Option) *Fixer {
	f := &Fixer{
		index:    index,
		table:    table,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Changes returns the per-file content changes of the last ApplyFixes call.
func (f *Fixer) Changes() []FileChange {
	return f.changes
}

// ApplyFixes rewrites every fix and returns one result per fix, in input
// order. Fixes are grouped per file and applied bottom-up; each file is
// written once after all its fixes are applied. A fix whose link text is no
// longer on its recorded line fails without affecting the others.
func (f *Fixer) ApplyFixes(fixes []Fix) []FixResult {
	f.changes = nil
	results := make([]FixResult, len(fixes))

	byFile := make(map[string][]int)
	var files []string
	for i, fx := range fixes {
		results[i] = FixResult{
			SourceFile:   fx.SourceFile,
			Line:         fx.Link.Line,
			OriginalLink: fx.Link.RawTarget,
			NewLink:      fx.NewLink,
			NewPath:      fx.NewPath,
			originalPath: docfs.Resolve(fx.SourceFile, fx.Link.TargetPath),
		}
		if _, seen := byFile[fx.SourceFile]; !seen {
			files = append(files, fx.SourceFile)
		}
		byFile[fx.SourceFile] = append(byFile[fx.SourceFile], i)
	}
	sort.Strings(files)

	for _, file := range files {
		f.applyFile(file, fixes, byFile[file], results)
	}

	for _, r := range results {
		f.recorder.IncFixResult(r.Success)
	}
	return results
}

func (f *Fixer) applyFile(file string, fixes []Fix, idx []int, results []FixResult) {
	fail := func(msg string) {
		for _, i := range idx {
			if results[i].Error == "" {
				results[i].Success = false
				results[i].Error = msg
			}
		}
	}

	before, err := f.index.ReadFile(file)
	if err != nil {
		fail(err.Error())
		return
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return fixes[idx[a]].Link.Line > fixes[idx[b]].Link.Line
	})

	lines := strings.Split(string(before), "\n")
	applied := 0
	for _, i := range idx {
		fx := fixes[i]
		n := fx.Link.Line - 1
		if n < 0 || n >= len(lines) {
			results[i].Error = fmt.Sprintf("line %d out of range", fx.Link.Line)
			continue
		}
		updated, ok := replaceTarget(lines[n], fx.Link, fx.NewLink)
		if !ok {
			results[i].Error = fmt.Sprintf("link target %q not found on line %d", fx.Link.RawTarget, fx.Link.Line)
			continue
		}
		if !rewriteParses(updated, fx.NewLink) {
			results[i].Error = fmt.Sprintf("rewritten target %q is not a valid link on line %d", fx.NewLink, fx.Link.Line)
			continue
		}
		lines[n] = updated
		results[i].Success = true
		applied++
	}
	if applied == 0 {
		return
	}

	after := []byte(strings.Join(lines, "\n"))
	f.changes = append(f.changes, FileChange{Path: file, Before: before, After: after})
	if f.dryRun {
		return
	}

	if err := writeFile(f.index.Abs(file), after); err != nil {
		f.logger.Error("Failed to write fixes", logfields.File(file), logfields.Error(err))
		for _, i := range idx {
			results[i].Success = false
		}
		fail(err.Error())
		return
	}
	f.logger.Info("Applied fixes", logfields.File(file), logfields.Count(applied))
}

// replaceTarget replaces the first occurrence of link's target on line with
// newTarget, keeping angle brackets and titles.
func replaceTarget(line string, link markdown.ParsedLink, newTarget string) (string, bool) {
	quoted := regexp.QuoteMeta(link.RawTarget)

	var pattern *regexp.Regexp
	switch link.Form {
	case markdown.FormHref:
		pattern = regexp.MustCompile(`(href=")` + quoted + `(")`)
	case markdown.FormDataRef:
		pattern = regexp.MustCompile(`(data-ref=")` + quoted + `(")`)
	default:
		pattern = regexp.MustCompile(`(\]\(\s*<?)` + quoted + `(>?(?:\s+"[^"]*")?\s*\))`)
	}

	loc := pattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return line, false
	}
	return line[:loc[3]] + newTarget + line[loc[4]:], true
}

// rewriteParses reports whether the rewritten line still holds a link whose
// target is exactly newTarget.
func rewriteParses(line, newTarget string) bool {
	for _, l := range markdown.ParseLinks([]byte(line)) {
		if l.RawTarget == newTarget {
			return true
		}
	}
	return false
}

func writeFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return errors.RewriteError("failed to write fixed document").Wrap(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
