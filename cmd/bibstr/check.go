package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/signadot/bibstr/bib"
	"github.com/signadot/bibstr/encode"
	"github.com/signadot/bibstr/macro"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: check requires at least one file", cli.ErrUsage)
	}
	failed := false
	for _, f := range args {
		if err := checkFile(cfg, cc, f); err != nil {
			theLog.Error("check failed", "file", f, "error", err)
			failed = true
		}
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkFile loads f with its own macro table on top of the configured one,
// so files are checked independently.
func checkFile(cfg *CheckConfig, cc *cli.Context, f string) error {
	d, err := os.ReadFile(f)
	if err != nil {
		return err
	}
	db, err := bib.Load(d, macro.New(nil, cfg.db.Macros), bib.WithLogger(theLog))
	err = errors.Join(err, db.CheckCrossRefs())
	fmt.Fprintf(cc.Out, "%s: %d entries, %d macros\n", f, len(db.Entries), db.Macros.Len())
	if cfg.Print {
		if perr := encode.EncodeDatabase(db, cc.Out, append(cfg.encOpts(cc.Out), encode.Inherited(db))...); perr != nil {
			return perr
		}
	}
	return err
}
