package commands

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docrefs/internal/anchor"
)

// AnchorCmd implements the 'anchor' command.
type AnchorCmd struct {
	Text []string `arg:"" help:"Heading text, without the leading #"`
}

func (ac *AnchorCmd) Run(g *Global) error {
	_, err := fmt.Fprintln(g.Stdout, anchor.Fragment(strings.Join(ac.Text, " ")))
	return err
}
