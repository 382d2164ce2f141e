package macro

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/signadot/bibstr/debug"
	"github.com/signadot/bibstr/ir"
	"github.com/signadot/bibstr/parse"
	"github.com/signadot/bibstr/token"
)

// Owner is the opaque handle of whatever owns a resolver, such as a
// document. The resolver only asks it where to record edits.
type Owner interface {
	// UndoLog returns the log edits are recorded in, or nil if edits
	// are not undoable.
	UndoLog() UndoLog
}

type owner struct {
	log UndoLog
}

func (o owner) UndoLog() UndoLog { return o.log }

// NewOwner returns an Owner whose edits are recorded in log.
func NewOwner(log UndoLog) Owner {
	return owner{log: log}
}

type definition struct {
	name  string
	value *ir.Value
}

// Resolver is a macro table.
type Resolver struct {
	owner  Owner
	parent *Resolver
	macros map[string]*definition
	mod    uint64
	log    *slog.Logger
}

type Option func(*Resolver)

// WithLogger sets the logger used to report detected cycles.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// New returns an empty resolver. Lookups which miss fall back to parent,
// which may be nil.
func New(owner Owner, parent *Resolver, opts ...Option) *Resolver {
	r := &Resolver{
		owner:  owner,
		parent: parent,
		macros: map[string]*definition{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r
}

func (r *Resolver) Owner() Owner {
	return r.owner
}

func (r *Resolver) Parent() *Resolver {
	return r.parent
}

// Modification returns a counter incremented by every edit.
func (r *Resolver) Modification() uint64 {
	return r.mod
}

// Len returns the number of macros defined in r itself.
func (r *Resolver) Len() int {
	return len(r.macros)
}

func (r *Resolver) lookup(key string) (*definition, bool) {
	for x := r; x != nil; x = x.parent {
		if def, ok := x.macros[key]; ok {
			return def, true
		}
	}
	return nil, false
}

// ValueOfMacro returns the definition of name, unexpanded, or nil if name
// is not defined here or in a parent.
func (r *Resolver) ValueOfMacro(name string) *ir.Value {
	def, ok := r.lookup(ir.NormalizeName(name))
	if !ok {
		return nil
	}
	return def.value
}

// Definitions returns the macros defined in r itself, keyed by name as
// written.
func (r *Resolver) Definitions() map[string]*ir.Value {
	res := make(map[string]*ir.Value, len(r.macros))
	for _, def := range r.macros {
		res[def.name] = def.value
	}
	return res
}

// AllMacroDefinitions returns the definitions of r merged over those of
// its parents, keyed by name as written.
func (r *Resolver) AllMacroDefinitions() map[string]*ir.Value {
	merged := map[string]*definition{}
	var chain []*Resolver
	for x := r; x != nil; x = x.parent {
		chain = append(chain, x)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for key, def := range chain[i].macros {
			merged[key] = def
		}
	}
	res := make(map[string]*ir.Value, len(merged))
	for _, def := range merged {
		res[def.name] = def.value
	}
	return res
}

func checkName(name string) error {
	if !token.IsIdent(name) {
		return fmt.Errorf("%w %q", ErrInvalidName, name)
	}
	return nil
}

// SetMacro defines or redefines name. The stored value is an uninherited
// copy of value which expands with r.
func (r *Resolver) SetMacro(name string, value *ir.Value) error {
	if err := checkName(name); err != nil {
		return err
	}
	if value == nil {
		return ErrNilValue
	}
	key := ir.NormalizeName(name)
	stored := value.CopyUninherited().WithResolver(r)
	c := Change{Kind: Added, Name: name, New: stored}
	if old, ok := r.macros[key]; ok {
		c.Kind = Redefined
		c.OldName = old.name
		c.Old = old.value
	}
	r.macros[key] = &definition{name: name, value: stored}
	r.changed(c)
	return nil
}

// RemoveMacro removes the definition of name from r.
func (r *Resolver) RemoveMacro(name string) error {
	key := ir.NormalizeName(name)
	old, ok := r.macros[key]
	if !ok {
		return fmt.Errorf("%w %q", ErrNoSuchMacro, name)
	}
	delete(r.macros, key)
	r.changed(Change{Kind: Removed, Name: old.name, Old: old.value})
	return nil
}

// ChangeMacroName renames the macro oldName to newName, keeping its value.
// Values referring to oldName are not rewritten.
func (r *Resolver) ChangeMacroName(oldName, newName string) error {
	if err := checkName(newName); err != nil {
		return err
	}
	oldKey := ir.NormalizeName(oldName)
	def, ok := r.macros[oldKey]
	if !ok {
		return fmt.Errorf("%w %q", ErrNoSuchMacro, oldName)
	}
	newKey := ir.NormalizeName(newName)
	if newKey != oldKey {
		if _, exists := r.macros[newKey]; exists {
			return fmt.Errorf("%w: %q", ErrMacroExists, newName)
		}
	}
	delete(r.macros, oldKey)
	r.macros[newKey] = &definition{name: newName, value: def.value}
	r.changed(Change{Kind: Renamed, Name: newName, OldName: def.name, Old: def.value, New: def.value})
	return nil
}

func (r *Resolver) changed(c Change) {
	r.mod++
	if debug.Macros() {
		debug.Logf("macro %s (mod %d)\n", c, r.mod)
	}
	if r.owner == nil {
		return
	}
	if log := r.owner.UndoLog(); log != nil {
		log.Record(c)
	}
}

// ExpandNodes concatenates nodes, replacing each macro reference with the
// expansion of its definition. An undefined macro expands to its name as
// written. A macro which is already being expanded further up the current
// path also expands to its name as written, so circular definitions
// terminate after at most one substitution per distinct name.
func (r *Resolver) ExpandNodes(nodes []*ir.Node) string {
	var sb strings.Builder
	r.expand(&sb, nodes, map[string]bool{})
	return sb.String()
}

func (r *Resolver) expand(sb *strings.Builder, nodes []*ir.Node, path map[string]bool) {
	for _, n := range nodes {
		if n.Type() != ir.MacroType {
			sb.WriteString(n.Text())
			continue
		}
		key := n.Name()
		if path[key] {
			r.log.Debug("circular macro definition", "macro", n.Text())
			if debug.Expand() {
				debug.Logf("cycle at %q, path %v\n", n.Text(), path)
			}
			sb.WriteString(n.Text())
			continue
		}
		def, ok := r.lookup(key)
		if !ok {
			sb.WriteString(n.Text())
			continue
		}
		if !def.value.IsComplex() {
			sb.WriteString(def.value.Expanded())
			continue
		}
		path[key] = true
		r.expand(sb, def.value.Nodes(), path)
		delete(path, key)
	}
}

// Expand returns the expansion of the macro name, or "" if it is not
// defined.
func (r *Resolver) Expand(name string) string {
	n, err := ir.MacroNode(name)
	if err != nil {
		return ""
	}
	if _, ok := r.lookup(n.Name()); !ok {
		return ""
	}
	return r.ExpandNodes([]*ir.Node{n})
}

// DependsOnMacro reports whether expanding v would refer to the macro
// name, directly or through other definitions. A direct reference counts
// whether or not name is defined; indirect references are followed through
// the definitions visible from r. Each macro is visited at most once.
func (r *Resolver) DependsOnMacro(v *ir.Value, name string) bool {
	if v == nil || !v.IsComplex() {
		return false
	}
	return r.dependsOn(v.Nodes(), ir.NormalizeName(name), map[string]bool{})
}

func (r *Resolver) dependsOn(nodes []*ir.Node, target string, visited map[string]bool) bool {
	for _, n := range nodes {
		if n.Type() != ir.MacroType {
			continue
		}
		key := n.Name()
		if key == target {
			return true
		}
		if visited[key] {
			continue
		}
		visited[key] = true
		def, ok := r.lookup(key)
		if !ok {
			continue
		}
		if r.dependsOn(def.value.Nodes(), target, visited) {
			return true
		}
	}
	return false
}

// StringDependsOnMacro parses text as a field value and reports whether it
// depends on the macro name.
func (r *Resolver) StringDependsOnMacro(text, name string) (bool, error) {
	v, err := parse.ValueString(text, r)
	if err != nil {
		return false, err
	}
	return r.DependsOnMacro(v, name), nil
}

// WouldCycle reports whether defining name as value would make name
// depend on itself.
func (r *Resolver) WouldCycle(name string, value *ir.Value) bool {
	return r.DependsOnMacro(value, name)
}
