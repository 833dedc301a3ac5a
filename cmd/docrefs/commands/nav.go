package commands

import (
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
	"git.home.luguber.info/inful/docrefs/internal/navigation"
	"git.home.luguber.info/inful/docrefs/internal/report"
)

// NavCmd implements the 'nav' command.
type NavCmd struct {
	Tree bool `help:"Print the parsed navigation tree before the report"`
}

func (nc *NavCmd) Run(g *Global, root *CLI) error {
	p, err := root.openProject(g)
	if err != nil {
		return err
	}
	if p.navFile == "" {
		return errors.NewError(errors.CategoryNotFound, "no navigation file found").
			WithContext("path", DefaultNavigationFile).
			Build()
	}

	entries, issues, orphans, err := p.navigation()
	if err != nil {
		return err
	}
	if nc.Tree && root.Format != string(report.FormatJSON) {
		if err := printTree(g.Stdout, entries); err != nil {
			return err
		}
	}

	files, err := p.index.MarkdownFiles()
	if err != nil {
		return err
	}
	r := report.CheckReport{Root: p.root, Files: len(files), NavFile: p.navFile, NavIssues: issues, Orphans: orphans}
	if err := root.formatter().Check(g.Stdout, r); err != nil {
		return err
	}
	g.setExit(exitFor(r))
	return p.finish("nav")
}

func printTree(w io.Writer, entries []*navigation.Entry) error {
	for _, e := range navigation.Flatten(entries) {
		indent := strings.Repeat("  ", e.Depth)
		target := e.Path
		if target == "" {
			target = "-"
		}
		if _, err := fmt.Fprintf(w, "%s%s (%s)\n", indent, e.Title, target); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
