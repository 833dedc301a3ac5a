// Package linkcheck validates parsed links and anchors against the project
// tree and the redirect table.
package linkcheck

import (
	"fmt"
	"log/slog"
	"path"

	"git.home.luguber.info/inful/docrefs/internal/docfs"
	"git.home.luguber.info/inful/docrefs/internal/logfields"
	"git.home.luguber.info/inful/docrefs/internal/markdown"
	"git.home.luguber.info/inful/docrefs/internal/metrics"
	"git.home.luguber.info/inful/docrefs/internal/navigation"
	"git.home.luguber.info/inful/docrefs/internal/redirects"
)

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger used for per-link diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Checker) {
		if r != nil {
			c.recorder = r
		}
	}
}

// Checker validates links of one project. It memoizes parsed headings per
// target file until Reset is called. A Checker is not safe for concurrent use.
type Checker struct {
	index     *docfs.Index
	redirects *redirects.Table
	logger    *slog.Logger
	recorder  metrics.Recorder

	headings map[string]markdown.FileHeadings
}

// NewChecker creates a checker over index. table may be nil when the project
// has no redirect configuration.
func NewChecker(index *docfs.Index, table *redirects.Table, opts ...Option) *Checker {
	c := &Checker{
		index:     index,
		redirects: table,
		logger:    slog.Default(),
		recorder:  metrics.NoopRecorder{},
		headings:  make(map[string]markdown.FileHeadings),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Index returns the file index the checker resolves against.
func (c *Checker) Index() *docfs.Index {
	return c.index
}

// Redirects returns the redirect table, possibly nil.
func (c *Checker) Redirects() *redirects.Table {
	return c.redirects
}

// Reset clears the heading cache and the file index.
func (c *Checker) Reset() {
	c.headings = make(map[string]markdown.FileHeadings)
	c.index.Reset()
}

// ValidateLink resolves one link of sourceFile.
func (c *Checker) ValidateLink(sourceFile string, link markdown.ParsedLink) ValidationResult {
	res := ValidationResult{SourceFile: sourceFile, Link: link}

	switch link.Kind {
	case markdown.KindExternal:
		res.Status = StatusValid
		return res
	case markdown.KindAnchorOnly:
		res.Status = StatusValid
		res.ResolvedPath = sourceFile
		return res
	}

	resolved := docfs.Resolve(sourceFile, link.TargetPath)
	if docfs.OutsideRoot(resolved) {
		res.ResolvedPath = resolved
		res.Status = StatusBroken
		res.Error = fmt.Sprintf("target outside project root: %s", resolved)
		return res
	}
	res.ResolvedPath = c.Locate(resolved)
	if c.index.Exists(res.ResolvedPath) {
		res.Status = StatusValid
		return res
	}

	if entry, ok := c.redirects.FindRedirectTarget(res.ResolvedPath); ok {
		if dest := entry.Destination(); dest != "" && c.index.Exists(c.Locate(dest)) {
			res.Status = StatusRedirect
			res.Redirect = &entry
			res.Error = fmt.Sprintf("target moved: %s redirects to %s", res.ResolvedPath, entry.RawTo)
			return res
		}
	}

	res.Status = StatusBroken
	res.Error = fmt.Sprintf("target not found: %s", res.ResolvedPath)
	return res
}

// Locate applies the extensionless fallbacks to a resolved path: when nothing
// exists at p and p has no extension, p+".md" and then p/README.md are tried.
// The first that is a file wins; otherwise p is returned unchanged.
func (c *Checker) Locate(p string) string {
	if path.Ext(p) != "" || c.index.IsFile(p) {
		return p
	}
	if c.index.IsFile(p + ".md") {
		return p + ".md"
	}
	if readme := path.Join(p, "README.md"); c.index.IsFile(readme) {
		return readme
	}
	return p
}

// CheckFile validates every link in one Markdown file.
func (c *Checker) CheckFile(sourceFile string, opts CheckOptions) ([]ValidationResult, error) {
	fl, err := c.FileLinks(sourceFile)
	if err != nil {
		return nil, err
	}

	results := make([]ValidationResult, 0, len(fl.Links))
	for _, link := range fl.Links {
		res := c.ValidateLink(sourceFile, link)
		if opts.Anchors && link.HasAnchor() && res.Status == StatusValid && docfs.IsMarkdown(res.ResolvedPath) {
			c.applyAnchor(&res)
		}
		c.record(res)
		results = append(results, res)
	}
	return results, nil
}

func (c *Checker) applyAnchor(res *ValidationResult) {
	ar, err := c.ValidateAnchor(res.ResolvedPath, res.Link.Anchor)
	if err != nil {
		c.logger.Warn("Anchor target unreadable", logfields.File(res.ResolvedPath), logfields.Error(err))
		return
	}
	c.recorder.IncAnchorResult(ar.Valid)
	if ar.Valid {
		return
	}
	res.Status = StatusBroken
	res.AnchorMissing = true
	res.AnchorSuggestions = ar.Suggestions
	res.Error = fmt.Sprintf("anchor #%s not found in %s", res.Link.Anchor, res.ResolvedPath)
}

func (c *Checker) record(res ValidationResult) {
	c.recorder.IncLinkResult(metrics.LinkStatus(res.Status))
	if res.Status == StatusValid {
		return
	}
	c.logger.Debug("Link check",
		logfields.File(res.SourceFile),
		logfields.Line(res.Link.Line),
		logfields.Target(res.Link.RawTarget),
		logfields.Resolved(res.ResolvedPath),
		logfields.Status(string(res.Status)))
}

// CheckAll validates every Markdown file in the project. Files that cannot be
// read are logged and skipped.
func (c *Checker) CheckAll(opts CheckOptions) ([]ValidationResult, error) {
	files, err := c.index.MarkdownFiles()
	if err != nil {
		return nil, err
	}

	var results []ValidationResult
	for _, f := range files {
		fileResults, err := c.CheckFile(f, opts)
		if err != nil {
			c.logger.Warn("Skipping unreadable document", logfields.File(f), logfields.Error(err))
			continue
		}
		results = append(results, fileResults...)
	}
	c.logger.Debug("Checked project", logfields.Count(len(results)))
	return results, nil
}

// CheckNavigation validates navigation entries of navFile (a project-relative
// path) against the tree, applying the same fallbacks as links.
func (c *Checker) CheckNavigation(navFile string, entries []*navigation.Entry) []navigation.Issue {
	return navigation.Validate(entries, func(p string) bool {
		return c.index.Exists(c.Locate(docfs.Resolve(navFile, p)))
	})
}

// FileLinks parses the links of a project-relative document. Links are not
// cached; documents may change between fix passes.
func (c *Checker) FileLinks(file string) (markdown.FileLinks, error) {
	content, err := c.index.ReadFile(file)
	if err != nil {
		return markdown.FileLinks{}, err
	}
	return markdown.FileLinks{Path: file, Links: markdown.ParseLinks(content)}, nil
}

// FileHeadings returns the headings of a project-relative document, parsing it
// on first use.
func (c *Checker) FileHeadings(file string) (markdown.FileHeadings, error) {
	if fh, ok := c.headings[file]; ok {
		return fh, nil
	}
	content, err := c.index.ReadFile(file)
	if err != nil {
		return markdown.FileHeadings{}, err
	}
	fh := markdown.FileHeadings{Path: file, Headings: markdown.ParseHeadings(content)}
	c.headings[file] = fh
	return fh, nil
}
