// Package suggest proposes replacement targets for broken links.
//
// An Engine evaluates an ordered list of strategies and stops at the first
// that matches: redirect (high), basename (medium), similarity (medium or
// low), case variation (low), and neighbouring README (low).
package suggest

import (
	"log/slog"
	"sort"

	"git.home.luguber.info/inful/docrefs/internal/docfs"
	"git.home.luguber.info/inful/docrefs/internal/linkcheck"
	"git.home.luguber.info/inful/docrefs/internal/logfields"
	"git.home.luguber.info/inful/docrefs/internal/markdown"
	"git.home.luguber.info/inful/docrefs/internal/metrics"
)

// Option configures an Engine.
type Option func(*Engine)

// WithStrategies replaces the default strategy list.
func WithStrategies(s ...Strategy) Option {
	return func(e *Engine) {
		e.strategies = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// Engine finds fix suggestions for one project. The candidate file lists are
// built on first use and kept until Reset.
type Engine struct {
	checker    *linkcheck.Checker
	strategies []Strategy
	logger     *slog.Logger
	recorder   metrics.Recorder

	ctx *Context
}

// NewEngine creates an engine that resolves against checker's index and
// redirect table.
func NewEngine(checker *linkcheck.Checker, opts ...Option) *Engine {
	e := &Engine{
		checker:    checker,
		strategies: DefaultStrategies(),
		logger:     slog.Default(),
		recorder:   metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reset drops the cached candidate lists.
func (e *Engine) Reset() {
	e.ctx = nil
}

func (e *Engine) context() (*Context, error) {
	if e.ctx != nil {
		return e.ctx, nil
	}
	index := e.checker.Index()
	files, err := index.Files()
	if err != nil {
		return nil, err
	}
	md, err := index.MarkdownFiles()
	if err != nil {
		return nil, err
	}

	var assets []string
	for _, f := range files {
		if markdown.IsAssetPath(f) {
			assets = append(assets, f)
		}
	}
	sort.Strings(assets)

	e.ctx = &Context{
		Index:     index,
		Redirects: e.checker.Redirects(),
		Locate:    e.checker.Locate,
		Markdown:  md,
		Assets:    assets,
		Files:     files,
	}
	return e.ctx, nil
}

// FindFixSuggestion returns the first strategy's suggestion for broken, or
// nil when none matches. Links broken only by a missing anchor get no
// suggestion since their file resolves.
func (e *Engine) FindFixSuggestion(broken linkcheck.BrokenLink) (*FixSuggestion, error) {
	if broken.AnchorMissing {
		return nil, nil
	}
	ctx, err := e.context()
	if err != nil {
		return nil, err
	}

	for _, s := range e.strategies {
		fix, ok := s.Find(broken, ctx)
		if !ok {
			continue
		}
		fix.Strategy = s.Name
		if fix.SuggestedLink == "" {
			fix.SuggestedLink = suggestedLink(broken, fix.SuggestedPath)
		}
		e.logger.Debug("Fix suggestion",
			logfields.File(broken.SourceFile),
			logfields.Line(broken.Link.Line),
			logfields.Target(broken.Link.RawTarget),
			logfields.Strategy(s.Name),
			logfields.Confidence(fix.Confidence.String()))
		return &fix, nil
	}
	return nil, nil
}

// suggestedLink writes path relative to the source file in the style of the
// original link, encoded for its syntax, keeping its fragment.
func suggestedLink(broken linkcheck.BrokenLink, suggestedPath string) string {
	rel := docfs.RelativeLink(broken.SourceFile, suggestedPath, broken.Link.TargetPath)
	link := markdown.FormatTarget(broken.Link.Form, rel)
	if _, frag := markdown.SplitAnchor(broken.Link.RawTarget); frag != "" {
		link += "#" + frag
	}
	return link
}

// SuggestAll finds suggestions for every broken link, in input order.
func (e *Engine) SuggestAll(broken []linkcheck.BrokenLink) ([]Suggestion, error) {
	out := make([]Suggestion, 0, len(broken))
	for _, b := range broken {
		fix, err := e.FindFixSuggestion(b)
		if err != nil {
			return nil, err
		}
		s := Suggestion{Broken: b, Fix: fix}
		e.recorder.IncSuggestion(s.Confidence().String())
		out = append(out, s)
	}
	return out, nil
}
