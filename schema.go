package argparse

import (
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map"
)

// Args is an argument schema: the ordered declarations of one parseable unit
// and its subcommands. Declarations are added with Positional, Keyword, Flag
// and Subcommand; once parsing starts the schema is read-only.
type Args struct {
	name        string // display path, e.g. "git commit"
	summary     string
	description string
	registry    *Registry

	decls       []*Declaration
	positionals []*Declaration
	options     *orderedmap.OrderedMap // alias -> *Declaration
	subcmds     *orderedmap.OrderedMap // name -> *Declaration

	parent    *Args
	self      *Declaration // declaration in parent, nil at the root
	active    bool
	activeSub *Args

	frozen  bool
	err     error
	checkFn []func(*Args) error
	handler func(*Args) error
}

// Option configures a root schema.
type Option func(*Args)

// WithRegistry makes the schema convert values with r instead of
// DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(a *Args) { a.registry = r }
}

// WithDescription sets the text shown under the usage line.
func WithDescription(s string) Option {
	return func(a *Args) { a.description = s }
}

// New creates an empty root schema. name is the program name shown in usage
// text and error messages.
func New(name string, opts ...Option) *Args {
	a := newArgs(name, "", nil)
	a.registry = DefaultRegistry
	for _, o := range opts {
		o(a)
	}
	return a
}

func newArgs(name, summary string, parent *Args) *Args {
	a := &Args{
		name:    name,
		summary: summary,
		options: orderedmap.New(),
		subcmds: orderedmap.New(),
		parent:  parent,
	}
	if parent != nil {
		a.registry = parent.registry
	}
	return a
}

// Name returns the display path of the schema.
func (a *Args) Name() string { return a.name }

// Summary returns the one line help of a subcommand.
func (a *Args) Summary() string { return a.summary }

// Description returns the text set by WithDescription or Describe.
func (a *Args) Description() string { return a.description }

// Describe sets the text shown under the usage line.
func (a *Args) Describe(s string) *Args {
	a.mustBuild()
	a.description = s
	return a
}

// Parent returns the schema a subcommand was declared in, nil at the root.
func (a *Args) Parent() *Args { return a.parent }

// Declarations returns every declaration in declaration order.
func (a *Args) Declarations() []*Declaration {
	return append([]*Declaration(nil), a.decls...)
}

// Err returns the first defect found while declaring this schema or any of
// its subcommands.
func (a *Args) Err() error {
	if a.err != nil {
		return a.err
	}
	for _, sub := range a.Subcommands() {
		if err := sub.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Option implements OptionSet.
func (a *Args) Option(name string) (Kind, bool) {
	d, ok := a.option(name)
	if !ok {
		return 0, false
	}
	return d.kind, true
}

func (a *Args) option(name string) (*Declaration, bool) {
	v, ok := a.options.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Declaration), true
}

// Checker registers fn to run after a successful parse of this schema.
func (a *Args) Checker(fn func(*Args) error) *Args {
	a.mustBuild()
	a.checkFn = append(a.checkFn, fn)
	return a
}

// fail records a schema defect; only the first one is kept.
func (a *Args) fail(format string, args ...any) {
	if a.err == nil {
		a.err = &SchemaError{Command: a.name, Reason: fmt.Sprintf(format, args...)}
	}
}

// mustBuild panics when the schema is modified after parsing started.
func (a *Args) mustBuild() {
	if a.frozen {
		panic(fmt.Sprintf("schema %s is read-only once parsing started", a.name))
	}
}

func (a *Args) freeze() {
	a.frozen = true
	for _, sub := range a.Subcommands() {
		sub.freeze()
	}
}

// reset clears every bound value so the schema can be parsed again.
func (a *Args) reset() {
	for _, d := range a.decls {
		d.value, d.state = nil, StateAbsent
	}
	a.active, a.activeSub = false, nil
	for _, sub := range a.Subcommands() {
		sub.reset()
	}
}

// declare appends a declaration of type t and resolves its converter.
func (a *Args) declare(kind Kind, names, help string, t reflect.Type) *Declaration {
	a.mustBuild()
	d := &Declaration{
		owner:    a,
		help:     help,
		kind:     kind,
		shape:    ShapeSingle,
		typ:      t,
		required: kind != KindFlag,
		conv:     converter{typ: t, format: formatValue, parse: a.noConverter(t)},
	}

	found := false
	if c, ok := a.registry.lookup(t); ok {
		d.conv, found = c, true
	} else if t.Kind() == reflect.Slice {
		if c, ok := a.registry.lookup(t.Elem()); ok {
			d.conv, d.shape, found = c, ShapeList, true
		}
	}
	if kind == KindFlag {
		d.shape = ShapeBoolean
	}

	switch kind {
	case KindPositional:
		d.index = len(a.positionals)
		d.names = []string{d.Name()}
		a.positionals = append(a.positionals, d)
	default:
		a.addNames(d, names)
	}
	if !found {
		a.fail(errNoConverter, t, d.Name())
	}
	a.decls = append(a.decls, d)
	return d
}

func (a *Args) noConverter(t reflect.Type) func(string) (any, error) {
	return func(string) (any, error) {
		return nil, fmt.Errorf("no converter registered for type %s", t)
	}
}

// addNames registers the comma separated aliases of an option.
func (a *Args) addNames(d *Declaration, names string) {
	for _, n := range strings.Split(names, ",") {
		n = strings.TrimLeft(strings.TrimSpace(n), "-")
		if n == "" {
			a.fail(errEmptyName, names)
			continue
		}
		d.names = append(d.names, n)
	}
	if len(d.names) == 0 {
		d.names = []string{names}
		return
	}
	for _, n := range d.names {
		if n == "help" {
			a.fail(errReservedName, d.Name())
			continue
		}
		if prev, ok := a.option(n); ok {
			a.fail(errArgRedefined, prev.Name(), d.Name())
			continue
		}
		a.options.Set(n, d)
	}
}

// checkMulti rejects a multi-token positional that cannot be matched
// unambiguously.
func (a *Args) checkMulti(d *Declaration) {
	if d.kind != KindPositional {
		return
	}
	for _, p := range a.positionals {
		if p != d && p.shape == ShapeMultiToken {
			a.fail(errMultiAfterMulti, d.Name(), p.Name())
			return
		}
	}
	if a.subcmds.Len() > 0 {
		a.fail(errMultiWithSubcmd, d.Name())
	}
}

func (a *Args) multiPositional() bool {
	for _, p := range a.positionals {
		if p.shape == ShapeMultiToken {
			return true
		}
	}
	return false
}

// Positional declares the next positional argument. Positionals match bare
// words in declaration order.
func Positional[T any](a *Args, help string) *Arg[T] {
	return &Arg[T]{a.declare(KindPositional, "", help, typeOf[T]())}
}

// Keyword declares an argument matched by name, e.g. names "a,alpha" matches
// both -a and --alpha. A slice T takes a comma separated list.
func Keyword[T any](a *Args, names, help string) *Arg[T] {
	return &Arg[T]{a.declare(KindKeyword, names, help, typeOf[T]())}
}

// Flag declares a boolean argument taking no value; presence means true.
func Flag(a *Args, names, help string) *Arg[bool] {
	d := a.declare(KindFlag, names, help, typeOf[bool]())
	d.def, d.hasDefault, d.defaultText = false, true, "false"
	return &Arg[bool]{d}
}
