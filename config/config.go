// Package config reads the bibstr configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/signadot/bibstr/bib"
	"github.com/signadot/bibstr/debug"
	"github.com/signadot/bibstr/ir"
	"github.com/signadot/bibstr/parse"

	"github.com/goccy/go-yaml"
)

const (
	EnvConfig   = "BIBSTR_CONFIG"
	DefaultFile = "bibstr.yaml"
)

type Config struct {
	// Dir is the directory holding the configuration file; relative paths
	// in Files and DB are resolved against it.
	Dir string `yaml:"-"`

	// Macros maps macro names to values in BibTeX form.
	Macros map[string]string `yaml:"macros,omitempty"`
	// Files are .bib files whose @string blocks are imported.
	Files []string `yaml:"files,omitempty"`

	DB    string `yaml:"db,omitempty"`
	Scope string `yaml:"scope,omitempty"`

	// Color forces colored output on or off; unset means on for terminals.
	Color           *bool  `yaml:"color,omitempty"`
	Quotes          bool   `yaml:"quotes,omitempty"`
	CaseInsensitive bool   `yaml:"caseInsensitive,omitempty"`
	Locale          string `yaml:"locale,omitempty"`
}

// Load reads the configuration at path. An empty path means $BIBSTR_CONFIG,
// then bibstr.yaml in the working directory; a missing bibstr.yaml gives
// the zero configuration.
func Load(path string) (*Config, error) {
	optional := false
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = DefaultFile
		optional = true
	}
	d, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return &Config{Dir: "."}, nil
		}
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	cfg, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	cfg.Dir = filepath.Dir(path)
	if debug.Config() {
		debug.Logf("loaded config from %s: %+v\n", path, *cfg)
	}
	return cfg, nil
}

// Parse decodes a configuration. Unknown keys are errors.
func Parse(d []byte) (*Config, error) {
	cfg := &Config{Dir: "."}
	if err := yaml.UnmarshalWithOptions(d, cfg, yaml.Strict()); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// DBPath returns the sqlite path, resolved against Dir.
func (c *Config) DBPath() string {
	return c.path(c.DB)
}

// Database returns a database whose macro table holds the @string
// definitions of Files followed by Macros, which take precedence. Entries
// of Files are loaded too. Errors are returned with the partial database.
func (c *Config) Database(logger *slog.Logger) (*bib.Database, error) {
	db := bib.New(nil, bib.WithLogger(logger))
	var errs []error
	for _, f := range c.Files {
		d, err := os.ReadFile(c.path(f))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := db.Read(d); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
		}
	}
	names := make([]string, 0, len(c.Macros))
	for name := range c.Macros {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		v, err := parse.ValueString(c.Macros[name], db.Macros)
		if err == nil {
			err = db.Macros.SetMacro(name, v)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("macro %s: %w", name, err))
		}
	}
	return db, errors.Join(errs...)
}

// CompareOptions returns the text comparison options configured.
func (c *Config) CompareOptions() []ir.CompareOption {
	var res []ir.CompareOption
	if c.CaseInsensitive {
		res = append(res, ir.CaseInsensitive())
	}
	if c.Locale != "" {
		res = append(res, ir.Locale(c.Locale))
	}
	return res
}
