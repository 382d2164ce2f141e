package main

import (
	"github.com/scott-cotton/cli"
)

// synopses of the subcommands, by name
var synopses = map[string]string{
	"expand":  "expand [values]",
	"fmt":     "fmt [-n] [values]",
	"deps":    "deps [-d] macro [values]",
	"macros":  "macros [-where expr] [-all]",
	"diff":    "diff [-r] a b",
	"compare": "compare a b",
	"replace": "replace target replacement [values]",
	"check":   "check [-print] files",
	"save":    "save (store macro table under -scope)",
	"load":    "load (print macro table stored under -scope)",
	"scopes":  "scopes [-delete scope]",
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "m",
			Description: "define a macro, overriding the configuration",
			Type:        cli.NamedFuncOpt(cfg.macroOpt, "(name=value)"),
		},
		&cli.Opt{
			Name:        "bib",
			Description: "import @string definitions from a .bib file",
			Type:        cli.NamedFuncOpt(cfg.bibOpt, "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "bibstr").
		WithSynopsis("bibstr [opts] command [opts]").
		WithDescription("bibstr is a tool for working with BibTeX field values and macros.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return bibstrMain(cfg, cc, args)
		}).
		WithSubs(
			ExpandCommand(cfg),
			FmtCommand(cfg),
			DepsCommand(cfg),
			MacrosCommand(cfg),
			DiffCommand(cfg),
			CompareCommand(cfg),
			ReplaceCommand(cfg),
			CheckCommand(cfg),
			SaveCommand(cfg),
			LoadCommand(cfg),
			ScopesCommand(cfg))
}

func ExpandCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExpandConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Expand, "expand").
		WithAliases("x").
		WithSynopsis(synopses["expand"]).
		WithDescription("print the expansion of each value, read from stdin lines if none are given").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return expand(cfg, cc, args)
		})
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithAliases("f").
		WithSynopsis(synopses["fmt"]).
		WithDescription("print the BibTeX form of each value").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return format(cfg, cc, args)
		})
}

func DepsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DepsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Deps, "deps").
		WithSynopsis(synopses["deps"]).
		WithDescription("report whether each value depends on macro, directly or through other macros").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return deps(cfg, cc, args)
		})
}

func MacrosCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MacrosConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Macros, "macros").
		WithAliases("m", "ls").
		WithSynopsis(synopses["macros"]).
		WithDescription("list macro definitions as @string blocks").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return macros(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis(synopses["diff"]).
		WithDescription("show the node diff and the expansion diff of two values").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func CompareCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CompareConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Compare, "compare").
		WithAliases("cmp").
		WithSynopsis(synopses["compare"]).
		WithDescription("compare two values: equality, ordering of expansions and containment").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return compare(cfg, cc, args)
		})
}

func ReplaceCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ReplaceConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Replace, "replace").
		WithAliases("r").
		WithSynopsis(synopses["replace"]).
		WithDescription("replace every occurrence of target in each value").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return replace(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis(synopses["check"]).
		WithDescription("load .bib files and report parse and crossref errors").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func SaveCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SaveConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Save, "save").
		WithSynopsis(synopses["save"]).
		WithDescription("store the macro table in the database under the scope").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return save(cfg, cc, args)
		})
}

func LoadCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LoadConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Load, "load").
		WithSynopsis(synopses["load"]).
		WithDescription("print the macro table stored in the database under the scope").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return load(cfg, cc, args)
		})
}

func ScopesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ScopesConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Scopes, "scopes").
		WithSynopsis(synopses["scopes"]).
		WithDescription("list or delete the scopes stored in the database").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return scopes(cfg, cc, args)
		})
}
