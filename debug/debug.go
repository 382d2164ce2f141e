package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Tokenize bool
	Parse    bool
	Expand   bool
	Macros   bool
	Config   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokenize = boolEnv("BIBSTR_DEBUG_TOKENIZE")
	d.Parse = boolEnv("BIBSTR_DEBUG_PARSE")
	d.Expand = boolEnv("BIBSTR_DEBUG_EXPAND")
	d.Macros = boolEnv("BIBSTR_DEBUG_MACROS")
	d.Config = boolEnv("BIBSTR_DEBUG_CONFIG")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tokenize() bool {
	return d.Tokenize
}
func Parse() bool {
	return d.Parse
}
func Expand() bool {
	return d.Expand
}
func Macros() bool {
	return d.Macros
}
func Config() bool {
	return d.Config
}

func Logf(msg string, args ...any) {
	for i := range args {
		switch args[i].(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(args[i], "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", args[i])
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
