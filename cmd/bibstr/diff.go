package main

import (
	"fmt"
	"io"

	"github.com/signadot/bibstr/ir"
	"github.com/signadot/bibstr/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two values", cli.ErrUsage)
	}
	a, err := cfg.value(args[0])
	if err != nil {
		return err
	}
	b, err := cfg.value(args[1])
	if err != nil {
		return err
	}
	differs, err := diffValues(cfg, cc.Out, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffValues writes the node diff then the expansion diff of a and b, and
// reports whether either differs.
func diffValues(cfg *DiffConfig, w io.Writer, a, b *ir.Value) (bool, error) {
	if cfg.Reverse {
		a, b = b, a
	}
	nodes := libdiff.Nodes(a, b)
	text := libdiff.Expansion(a.Expanded(), b.Expanded())
	if libdiff.Same(nodes) && libdiff.Same(text) {
		return false, nil
	}
	if _, err := libdiff.PatchNodes(a, nodes); err != nil {
		return false, fmt.Errorf("error checking node diff: %w", err)
	}
	colors := cfg.useColor(w)
	if _, err := fmt.Fprintf(w, "nodes: %s\n", libdiff.Format(nodes, colors)); err != nil {
		return false, err
	}
	if _, err := fmt.Fprintf(w, "text:  %s\n", libdiff.Format(text, colors)); err != nil {
		return false, err
	}
	return true, nil
}
