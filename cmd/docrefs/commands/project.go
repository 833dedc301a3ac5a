package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/docrefs/internal/config"
	"git.home.luguber.info/inful/docrefs/internal/docfs"
	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
	"git.home.luguber.info/inful/docrefs/internal/linkcheck"
	"git.home.luguber.info/inful/docrefs/internal/logfields"
	"git.home.luguber.info/inful/docrefs/internal/metrics"
	"git.home.luguber.info/inful/docrefs/internal/navigation"
	"git.home.luguber.info/inful/docrefs/internal/redirects"
	"git.home.luguber.info/inful/docrefs/internal/report"
	"git.home.luguber.info/inful/docrefs/internal/suggest"
)

// DefaultRedirectsFile is looked up below the root when redirects_file is unset.
const DefaultRedirectsFile = ".gitbook.yaml"

// DefaultNavigationFile is used when neither the configuration nor the
// redirect settings name a navigation file.
const DefaultNavigationFile = "SUMMARY.md"

// project wires the core components for one documentation root.
type project struct {
	cfg     *config.Config
	root    string // Absolute OS path
	index   *docfs.Index
	table   *redirects.Table
	navFile string // Project-relative; empty when the project has none
	checker *linkcheck.Checker
	engine  *suggest.Engine

	logger   *slog.Logger
	recorder *metrics.PrometheusRecorder // nil unless metrics_file is set
	started  time.Time
}

func (c *CLI) openProject(g *Global) (*project, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Root != "" {
		cfg.Root = c.Root
	}
	c.configureLogging(g, cfg)

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, errors.ConfigError("invalid documentation root").Wrap(err).
			WithContext("path", cfg.Root).
			Build()
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return nil, errors.ConfigError("documentation root is not a directory").
			WithContext("path", root).
			Build()
	}

	p := &project{cfg: cfg, root: root, logger: g.Logger, started: time.Now()}
	p.index = docfs.NewIndex(root, g.Logger)
	if cfg.MetricsFile != "" {
		p.recorder = metrics.NewPrometheusRecorder(nil)
	}

	table, err := loadRedirects(root, cfg.RedirectsFile)
	if err != nil {
		return nil, err
	}
	if err := p.wire(table); err != nil {
		return nil, err
	}

	g.Logger.Debug("Project opened",
		logfields.Path(root),
		slog.String("redirects", p.table.Path()),
		slog.String("navigation", p.navFile))
	return p, nil
}

// loadRedirects loads the configured redirect file (relative to root unless
// absolute), or DefaultRedirectsFile when it exists. A configured file must
// exist.
func loadRedirects(root, configured string) (*redirects.Table, error) {
	if configured == "" {
		auto := filepath.Join(root, DefaultRedirectsFile)
		if _, err := os.Stat(auto); err != nil {
			return nil, nil
		}
		return redirects.Load(auto)
	}
	if !filepath.IsAbs(configured) {
		configured = filepath.Join(root, configured)
	}
	return redirects.Load(configured)
}

// detectNavigation picks navigation_file, then structure.summary from the
// redirect settings, then DefaultNavigationFile if present.
func (p *project) detectNavigation() (string, error) {
	if p.cfg.NavigationFile != "" {
		return filepath.ToSlash(p.cfg.NavigationFile), nil
	}
	if p.table != nil {
		settings, err := p.table.Settings()
		if err != nil {
			return "", err
		}
		if s := strings.TrimPrefix(settings.Structure.Summary, "./"); s != "" {
			return s, nil
		}
	}
	if p.index.IsFile(DefaultNavigationFile) {
		return DefaultNavigationFile, nil
	}
	return "", nil
}

// reset drops every cache and reloads the redirect table so the next run
// sees the tree as it is now.
func (p *project) reset() error {
	p.index.Reset()
	table, err := loadRedirects(p.root, p.cfg.RedirectsFile)
	if err != nil {
		return err
	}
	return p.wire(table)
}

// wire builds the checker and suggestion engine over table and picks the
// navigation file, which may come from the table's settings.
func (p *project) wire(table *redirects.Table) error {
	rec := p.metricsRecorder()
	p.table = table
	p.checker = linkcheck.NewChecker(p.index, table, linkcheck.WithLogger(p.logger), linkcheck.WithRecorder(rec))
	p.engine = suggest.NewEngine(p.checker, suggest.WithLogger(p.logger), suggest.WithRecorder(rec))

	nav, err := p.detectNavigation()
	if err != nil {
		return err
	}
	p.navFile = nav
	return nil
}

// check validates the whole project, or only the documents below paths.
func (p *project) check(paths []string) ([]linkcheck.ValidationResult, int, error) {
	opts := linkcheck.CheckOptions{Anchors: p.cfg.CheckAnchors}
	files, err := p.index.MarkdownFiles()
	if err != nil {
		return nil, 0, err
	}
	if len(paths) == 0 {
		results, err := p.checker.CheckAll(opts)
		return results, len(files), err
	}

	prefixes, err := p.relativePaths(paths)
	if err != nil {
		return nil, 0, err
	}
	var results []linkcheck.ValidationResult
	n := 0
	for _, f := range files {
		if !underAny(f, prefixes) {
			continue
		}
		n++
		fileResults, err := p.checker.CheckFile(f, opts)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, fileResults...)
	}
	return results, n, nil
}

// relativePaths converts OS paths given on the command line into
// project-relative prefixes.
func (p *project) relativePaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, raw := range paths {
		abs, err := filepath.Abs(raw)
		if err != nil {
			return nil, errors.ValidationError("invalid path").Wrap(err).WithContext("path", raw).Build()
		}
		rel, err := p.index.Rel(abs)
		if err != nil {
			return nil, err
		}
		if rel == ".." || strings.HasPrefix(rel, "../") {
			return nil, errors.ValidationError("path is outside the documentation root").WithContext("path", raw).Build()
		}
		out = append(out, rel)
	}
	return out, nil
}

func underAny(file string, prefixes []string) bool {
	for _, pre := range prefixes {
		if pre == "." || file == pre || strings.HasPrefix(file, pre+"/") {
			return true
		}
	}
	return false
}

// navigation parses and validates the navigation file. A project without
// one yields no entries.
func (p *project) navigation() ([]*navigation.Entry, []navigation.Issue, []string, error) {
	if p.navFile == "" {
		return nil, nil, nil, nil
	}
	entries, err := navigation.ParseFile(p.index.Abs(p.navFile))
	if err != nil {
		return nil, nil, nil, err
	}
	issues := p.checker.CheckNavigation(p.navFile, entries)

	files, err := p.index.MarkdownFiles()
	if err != nil {
		return nil, nil, nil, err
	}
	orphans := navigation.Orphans(p.resolvedEntries(entries), files, p.navFile)
	return entries, issues, orphans, nil
}

// resolvedEntries returns flat copies of entries whose paths are
// project-relative, so they compare against the file index.
func (p *project) resolvedEntries(entries []*navigation.Entry) []*navigation.Entry {
	flat := navigation.Flatten(entries)
	out := make([]*navigation.Entry, 0, len(flat))
	for _, e := range flat {
		if e.Path == "" {
			continue
		}
		c := *e
		c.Children = nil
		c.Path = p.checker.Locate(docfs.Resolve(p.navFile, e.Path))
		out = append(out, &c)
	}
	return out
}

// checkReport runs a full check including navigation.
func (p *project) checkReport(paths []string) (report.CheckReport, error) {
	results, files, err := p.check(paths)
	if err != nil {
		return report.CheckReport{}, err
	}
	r := report.CheckReport{Root: p.root, Files: files, Results: results, NavFile: p.navFile}
	if len(paths) == 0 {
		if _, r.NavIssues, r.Orphans, err = p.navigation(); err != nil {
			return report.CheckReport{}, err
		}
	}
	return r, nil
}

// metricsRecorder returns the metrics recorder core components report to.
func (p *project) metricsRecorder() metrics.Recorder {
	if p.recorder == nil {
		return metrics.NoopRecorder{}
	}
	return p.recorder
}

// finish records the run duration and writes the metrics textfile.
func (p *project) finish(command string) error {
	if p.recorder == nil {
		return nil
	}
	p.recorder.ObserveRunDuration(command, time.Since(p.started))
	return p.recorder.WriteTextfile(p.cfg.MetricsFile)
}
