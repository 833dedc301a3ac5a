package commands

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Paths   []string `arg:"" optional:"" help:"Files or directories to check (default: the whole root)" type:"path"`
	Anchors bool     `help:"Also validate #anchors against target headings (as check_anchors: true)"`
}

func (cc *CheckCmd) Run(g *Global, root *CLI) error {
	p, err := root.openProject(g)
	if err != nil {
		return err
	}
	if cc.Anchors {
		p.cfg.CheckAnchors = true
	}

	r, err := p.checkReport(cc.Paths)
	if err != nil {
		return err
	}
	if err := root.formatter().Check(g.Stdout, r); err != nil {
		return err
	}
	g.setExit(exitFor(r))
	return p.finish("check")
}
