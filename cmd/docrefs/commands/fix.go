package commands

import (
	"git.home.luguber.info/inful/docrefs/internal/fixer"
	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
	"git.home.luguber.info/inful/docrefs/internal/git"
	"git.home.luguber.info/inful/docrefs/internal/logfields"
	"git.home.luguber.info/inful/docrefs/internal/preview"
	"git.home.luguber.info/inful/docrefs/internal/redirects"
	"git.home.luguber.info/inful/docrefs/internal/report"
	"git.home.luguber.info/inful/docrefs/internal/suggest"
)

// FixCmd implements the 'fix' command.
type FixCmd struct {
	Paths         []string `arg:"" optional:"" help:"Files or directories to fix (default: the whole root)" type:"path"`
	DryRun        bool     `help:"Show a diff of the changes without writing them"`
	MinConfidence string   `help:"Lowest confidence to apply (high, medium, low); overrides fix.min_confidence"`
	Force         bool     `help:"Fix even when the git working tree has uncommitted changes"`
	NoRedirects   bool     `help:"Do not record redirects for rewritten links"`
}

func (fc *FixCmd) Run(g *Global, root *CLI) error {
	p, err := root.openProject(g)
	if err != nil {
		return err
	}

	minimum := p.cfg.MinConfidence()
	if fc.MinConfidence != "" {
		if minimum, err = suggest.ParseConfidence(fc.MinConfidence); err != nil {
			return err
		}
	}
	if minimum == suggest.ConfidenceNone {
		return errors.ValidationError("minimum confidence must be low, medium or high").Build()
	}

	if p.cfg.Fix.RequireCleanGit && !fc.Force && !fc.DryRun {
		if err := git.RequireClean(p.root); err != nil {
			return err
		}
	}

	suggestions, err := p.suggestions(fc.Paths)
	if err != nil {
		return err
	}
	fixes := fixer.FromSuggestions(suggestions, minimum)
	skipped := below(suggestions, minimum)

	fx := fixer.New(p.index, p.table,
		fixer.WithDryRun(fc.DryRun),
		fixer.WithLogger(g.Logger),
		fixer.WithRecorder(p.metricsRecorder()))

	var (
		results []fixer.FixResult
		pairs   []redirects.Pair
	)
	if p.cfg.AddRedirects() && !fc.NoRedirects {
		if results, pairs, err = fx.ApplyWithRedirects(fixes); err != nil {
			return err
		}
	} else {
		results = fx.ApplyFixes(fixes)
	}

	g.Logger.Info("Fix run complete",
		logfields.Count(fixer.Succeeded(results)),
		logfields.Status(fixStatus(fc.DryRun)))

	if fc.DryRun && root.Format != string(report.FormatJSON) {
		if err := preview.Write(g.Stdout, fx.Changes()); err != nil {
			return err
		}
	}
	r := report.FixReport{DryRun: fc.DryRun, Results: results, Redirects: pairs, Skipped: skipped}
	if err := root.formatter().Fixes(g.Stdout, r); err != nil {
		return err
	}

	switch {
	case fixer.Succeeded(results) < len(results):
		g.setExit(errors.ExitBroken)
	case len(skipped) > 0:
		g.setExit(errors.ExitWarnings)
	}
	return p.finish("fix")
}

// below returns the suggestions that will not be applied at minimum.
func below(all []suggest.Suggestion, minimum suggest.Confidence) []suggest.Suggestion {
	var out []suggest.Suggestion
	for _, s := range all {
		if !s.Confidence().AtLeast(minimum) {
			out = append(out, s)
		}
	}
	return out
}

func fixStatus(dryRun bool) string {
	if dryRun {
		return "dry-run"
	}
	return "applied"
}
