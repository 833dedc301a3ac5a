package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/docrefs/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Output directory for the generated config file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	if path == "" {
		path = config.DefaultFile
	}
	if i.Output != "" {
		path = filepath.Join(i.Output, config.DefaultFile)
	}
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	_, err := fmt.Fprintf(g.Stdout, "Wrote configuration to %s\n", path)
	return err
}
