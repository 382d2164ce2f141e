package main

import (
	"fmt"

	"github.com/signadot/bibstr/encode"
	"github.com/signadot/bibstr/eval"

	"github.com/scott-cotton/cli"
)

func macros(cfg *MacrosConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Macros.Parse(cc, args)
	if err != nil {
		cfg.Macros.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: macros takes no arguments", cli.ErrUsage)
	}
	var filter *eval.Filter
	if cfg.Where != "" {
		filter, err = eval.Compile(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	defs, err := filter.Select(cfg.db.Macros, cfg.All)
	if err != nil {
		return err
	}
	return encode.EncodeMacros(defs, cc.Out, cfg.encOpts(cc.Out)...)
}
