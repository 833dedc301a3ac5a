package commands

import (
	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
	"git.home.luguber.info/inful/docrefs/internal/linkcheck"
	"git.home.luguber.info/inful/docrefs/internal/suggest"
)

// SuggestCmd implements the 'suggest' command.
type SuggestCmd struct {
	Paths []string `arg:"" optional:"" help:"Files or directories to inspect (default: the whole root)" type:"path"`
}

func (sc *SuggestCmd) Run(g *Global, root *CLI) error {
	p, err := root.openProject(g)
	if err != nil {
		return err
	}
	suggestions, err := p.suggestions(sc.Paths)
	if err != nil {
		return err
	}
	if err := root.formatter().Suggestions(g.Stdout, suggestions); err != nil {
		return err
	}
	if len(suggestions) > 0 {
		g.setExit(errors.ExitBroken)
	}
	return p.finish("suggest")
}

// suggestions checks the project and proposes fixes for every link that
// does not resolve directly, redirected links included.
func (p *project) suggestions(paths []string) ([]suggest.Suggestion, error) {
	results, _, err := p.check(paths)
	if err != nil {
		return nil, err
	}
	return p.engine.SuggestAll(linkcheck.Unresolved(results))
}
