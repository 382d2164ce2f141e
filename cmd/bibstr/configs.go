package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/bibstr/bib"
	"github.com/signadot/bibstr/config"
	"github.com/signadot/bibstr/encode"
	"github.com/signadot/bibstr/ir"
	"github.com/signadot/bibstr/token"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config desc='configuration file (yaml)'"`
	Color      bool   `cli:"name=color desc='output with color'"`
	Q          bool   `cli:"name=q aliases=quotes desc='delimit literals with double quotes'"`
	I          bool   `cli:"name=i desc='compare text ignoring case'"`
	DB         string `cli:"name=db desc='sqlite macro database'"`
	Scope      string `cli:"name=scope desc='macro table scope in the database'"`
	V          bool   `cli:"name=v desc='log debug messages'"`

	// -m name=value, in order given
	MacroDefs [][2]string
	// -bib file
	Bibs []string

	conf *config.Config
	db   *bib.Database

	Main *cli.Command
}

func (cfg *MainConfig) macroOpt(_ *cli.Context, v string) (any, error) {
	name, value, ok := strings.Cut(v, "=")
	name = strings.TrimSpace(name)
	if !ok || !token.IsIdent(name) {
		return nil, fmt.Errorf("%w: expected name=value, got %q", cli.ErrUsage, v)
	}
	cfg.MacroDefs = append(cfg.MacroDefs, [2]string{name, value})
	return v, nil
}

func (cfg *MainConfig) bibOpt(_ *cli.Context, v string) (any, error) {
	cfg.Bibs = append(cfg.Bibs, v)
	return v, nil
}

// flagSet reports the value of a boolean main option and whether it was
// given on the command line.
func (cfg *MainConfig) flagSet(name string) (val, set bool) {
	for _, opt := range cfg.Main.Opts {
		if opt.Name != name {
			continue
		}
		set = opt.Value != nil
		if set {
			val = (*opt.Value).(bool)
		}
		break
	}
	return
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if v, set := cfg.flagSet("color"); set {
		return v
	}
	if cfg.conf != nil && cfg.conf.Color != nil {
		return *cfg.conf.Color
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) quotes() bool {
	if v, set := cfg.flagSet("q"); set {
		return v
	}
	return cfg.conf != nil && cfg.conf.Quotes
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	opts := []encode.EncodeOption{encode.EncodeQuotes(cfg.quotes())}
	if cfg.useColor(w) {
		opts = append(opts, encode.EncodeColors(encode.NewColors()))
	}
	return opts
}

func (cfg *MainConfig) compareOpts() []ir.CompareOption {
	var res []ir.CompareOption
	if cfg.conf != nil {
		res = cfg.conf.CompareOptions()
	}
	if cfg.I && (cfg.conf == nil || !cfg.conf.CaseInsensitive) {
		res = append(res, ir.CaseInsensitive())
	}
	return res
}

func (cfg *MainConfig) dbPath() string {
	if cfg.DB != "" {
		return cfg.DB
	}
	return cfg.conf.DBPath()
}

func (cfg *MainConfig) scope() string {
	switch {
	case cfg.Scope != "":
		return cfg.Scope
	case cfg.conf.Scope != "":
		return cfg.conf.Scope
	}
	return "default"
}

type ExpandConfig struct {
	*MainConfig
	Expand *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Nodes bool `cli:"name=n desc='print one node per line with its type'"`
	Fmt   *cli.Command
}

type DepsConfig struct {
	*MainConfig
	Direct bool `cli:"name=d desc='only report direct references'"`
	Deps   *cli.Command
}

type MacrosConfig struct {
	*MainConfig
	Where  string `cli:"name=where desc='expr filter over name, value, expanded, complex, macros'"`
	All    bool   `cli:"name=all desc='include inherited standard macros'"`
	Macros *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Diff    *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Print bool `cli:"name=print desc='print the loaded database'"`
	Check *cli.Command
}

type CompareConfig struct {
	*MainConfig
	Compare *cli.Command
}

type ReplaceConfig struct {
	*MainConfig
	Replace *cli.Command
}

type SaveConfig struct {
	*MainConfig
	Save *cli.Command
}

type LoadConfig struct {
	*MainConfig
	Load *cli.Command
}

type ScopesConfig struct {
	*MainConfig
	Delete string `cli:"name=delete desc='delete the named scope'"`
	Scopes *cli.Command
}
