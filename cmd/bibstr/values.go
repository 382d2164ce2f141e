package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/signadot/bibstr/encode"
	"github.com/signadot/bibstr/ir"

	"github.com/scott-cotton/cli"
)

func expand(cfg *ExpandConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Expand.Parse(cc, args)
	if err != nil {
		cfg.Expand.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return eachValue(cfg.MainConfig, cc, args, func(w io.Writer, v *ir.Value) error {
		_, err := fmt.Fprintln(w, v.Expanded())
		return err
	})
}

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	opts := cfg.encOpts(cc.Out)
	return eachValue(cfg.MainConfig, cc, args, func(w io.Writer, v *ir.Value) error {
		if !cfg.Nodes {
			return encode.Encode(v, w, opts...)
		}
		for _, n := range v.Nodes() {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", n.Type(), n.BibTeX(cfg.quotes())); err != nil {
				return err
			}
		}
		return nil
	})
}

func deps(cfg *DepsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Deps.Parse(cc, args)
	if err != nil {
		cfg.Deps.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: deps requires a macro name", cli.ErrUsage)
	}
	name := args[0]
	r := cfg.db.Macros
	return eachValue(cfg.MainConfig, cc, args[1:], func(w io.Writer, v *ir.Value) error {
		var dep bool
		if cfg.Direct {
			dep = slices.ContainsFunc(v.MacroNames(), func(m string) bool {
				return ir.NormalizeName(m) == ir.NormalizeName(name)
			})
		} else {
			dep = r.DependsOnMacro(v, name)
		}
		_, err := fmt.Fprintf(w, "%t\t%s\n", dep, v.BibTeXString())
		return err
	})
}

func compare(cfg *CompareConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Compare.Parse(cc, args)
	if err != nil {
		cfg.Compare.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: compare requires two values", cli.ErrUsage)
	}
	a, err := cfg.value(args[0])
	if err != nil {
		return err
	}
	b, err := cfg.value(args[1])
	if err != nil {
		return err
	}
	opts := cfg.compareOpts()
	fmt.Fprintf(cc.Out, "equal\t%t\n", a.Equal(b))
	fmt.Fprintf(cc.Out, "compare\t%d\n", a.Compare(b, opts...))
	fmt.Fprintf(cc.Out, "a has b\t%t\n", a.HasSubstring(b, opts...))
	fmt.Fprintf(cc.Out, "b has a\t%t\n", b.HasSubstring(a, opts...))
	return nil
}

func replace(cfg *ReplaceConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Replace.Parse(cc, args)
	if err != nil {
		cfg.Replace.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: replace requires a target and a replacement", cli.ErrUsage)
	}
	target, replacement := args[0], args[1]
	opts := cfg.compareOpts()
	encOpts := cfg.encOpts(cc.Out)
	total := 0
	err = eachValue(cfg.MainConfig, cc, args[2:], func(w io.Writer, v *ir.Value) error {
		res, n := v.ReplaceAll(target, replacement, opts...)
		total += n
		return encode.Encode(res, w, encOpts...)
	})
	theLog.Debug("replaced", "target", target, "count", total)
	return err
}

// eachValue parses each argument, or each stdin line without arguments, and
// calls f on the result. Parse errors are reported and the rest continue.
func eachValue(cfg *MainConfig, cc *cli.Context, args []string, f func(io.Writer, *ir.Value) error) error {
	texts, err := inputs(cc.In, args)
	if err != nil {
		return err
	}
	failed := 0
	for _, text := range texts {
		v, err := cfg.value(text)
		if err != nil {
			theLog.Error(err.Error())
			failed++
			continue
		}
		if err := f(cc.Out, v); err != nil {
			return err
		}
	}
	if failed != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
