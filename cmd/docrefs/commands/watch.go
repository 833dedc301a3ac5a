package commands

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docrefs/internal/logfields"
	"git.home.luguber.info/inful/docrefs/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `default:"300ms" help:"Quiet period before re-checking"`
}

func (wc *WatchCmd) Run(g *Global, root *CLI) error {
	p, err := root.openProject(g)
	if err != nil {
		return err
	}

	first := true
	run := func(context.Context) error {
		if !first {
			if err := p.reset(); err != nil {
				return err
			}
		}
		first = false

		r, err := p.checkReport(nil)
		if err != nil {
			return err
		}
		s := r.Summary()
		g.Logger.Info("Check complete",
			logfields.Count(len(r.Results)),
			slog.Int("broken", s.Broken),
			slog.Int("redirected", s.Redirect))
		if err := root.formatter().Check(g.Stdout, r); err != nil {
			return err
		}
		return p.finish("watch")
	}

	var extra []string
	if path := p.table.Path(); path != "" {
		extra = append(extra, path)
	} else {
		extra = append(extra, filepath.Join(p.root, DefaultRedirectsFile))
	}

	w := watch.New(p.root, run,
		watch.WithDebounce(wc.Debounce),
		watch.WithLogger(g.Logger),
		watch.WithFiles(extra...))
	g.Logger.Info("Watching for changes", logfields.Path(p.root))
	return w.Run(g.Ctx)
}
