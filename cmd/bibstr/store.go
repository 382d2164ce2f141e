package main

import (
	"context"
	"fmt"

	"github.com/signadot/bibstr/encode"
	"github.com/signadot/bibstr/macro"
	"github.com/signadot/bibstr/storage"

	"github.com/scott-cotton/cli"
)

func (cfg *MainConfig) openStorage() (*storage.Storage, error) {
	path := cfg.dbPath()
	if path == "" {
		return nil, fmt.Errorf("%w: no database, use -db or set db in the configuration", cli.ErrUsage)
	}
	return storage.Open(path, theLog)
}

func save(cfg *SaveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Save.Parse(cc, args)
	if err != nil {
		cfg.Save.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: save takes no arguments", cli.ErrUsage)
	}
	s, err := cfg.openStorage()
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Save(context.Background(), cfg.scope(), cfg.db.Macros.Definitions())
}

func load(cfg *LoadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Load.Parse(cc, args)
	if err != nil {
		cfg.Load.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: load takes no arguments", cli.ErrUsage)
	}
	s, err := cfg.openStorage()
	if err != nil {
		return err
	}
	defer s.Close()
	r := macro.New(nil, cfg.db.Macros, macro.WithLogger(theLog))
	if err := s.Load(context.Background(), cfg.scope(), r); err != nil {
		return err
	}
	return encode.EncodeMacros(r.Definitions(), cc.Out, cfg.encOpts(cc.Out)...)
}

func scopes(cfg *ScopesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Scopes.Parse(cc, args)
	if err != nil {
		cfg.Scopes.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: scopes takes no arguments", cli.ErrUsage)
	}
	s, err := cfg.openStorage()
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()
	if cfg.Delete != "" {
		return s.Delete(ctx, cfg.Delete)
	}
	names, err := s.Scopes(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(cc.Out, name)
	}
	return nil
}
