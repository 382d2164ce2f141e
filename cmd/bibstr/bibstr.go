package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/signadot/bibstr/config"
	"github.com/signadot/bibstr/ir"
	"github.com/signadot/bibstr/parse"

	"github.com/scott-cotton/cli"
)

func bibstrMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	if err := cfg.setup(); err != nil {
		return err
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// setup builds the macro table from the configuration, then the -bib files,
// then the -m definitions. Problems with the configured sources are logged
// and the remaining definitions are kept.
func (cfg *MainConfig) setup() error {
	if cfg.V {
		logLevel.Set(slog.LevelDebug)
	}
	conf, err := config.Load(cfg.ConfigFile)
	if err != nil {
		return err
	}
	cfg.conf = conf
	db, err := conf.Database(theLog)
	if err != nil {
		theLog.Warn("configured macros", "error", err)
	}
	for _, f := range cfg.Bibs {
		d, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		if err := db.Read(d); err != nil {
			theLog.Warn("reading bib file", "file", f, "error", err)
		}
	}
	for _, m := range cfg.MacroDefs {
		v, err := parse.ValueString(m[1], db.Macros)
		if err == nil {
			err = db.Macros.SetMacro(m[0], v)
		}
		if err != nil {
			return fmt.Errorf("%w: -m %s: %w", cli.ErrUsage, m[0], err)
		}
	}
	theLog.Debug("macro table ready", "local", db.Macros.Len(), "entries", len(db.Entries))
	cfg.db = db
	return nil
}

// inputs returns args, or the non-blank lines of r when args is empty.
func inputs(r io.Reader, args []string) ([]string, error) {
	if len(args) != 0 {
		return args, nil
	}
	var res []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		res = append(res, line)
	}
	return res, sc.Err()
}

func (cfg *MainConfig) value(s string) (*ir.Value, error) {
	v, err := parse.ValueString(s, cfg.db.Macros)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", s, err)
	}
	return v, nil
}
