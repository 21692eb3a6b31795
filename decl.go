package argparse

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind tells how a declaration is matched on the command line.
type Kind int

const (
	KindPositional Kind = iota
	KindKeyword
	KindFlag
	KindSubcommand
)

func (k Kind) String() string {
	switch k {
	case KindPositional:
		return "positional"
	case KindKeyword:
		return "keyword"
	case KindFlag:
		return "flag"
	case KindSubcommand:
		return "subcommand"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Shape tells how many tokens a declaration consumes and how they combine.
type Shape int

const (
	// ShapeSingle takes one token holding one value.
	ShapeSingle Shape = iota
	// ShapeList takes one token holding comma separated values.
	ShapeList
	// ShapeMultiToken takes a run of bare words, one value each.
	ShapeMultiToken
	// ShapeBoolean takes no token, presence means true.
	ShapeBoolean
)

func (s Shape) String() string {
	switch s {
	case ShapeSingle:
		return "single"
	case ShapeList:
		return "list"
	case ShapeMultiToken:
		return "multi"
	case ShapeBoolean:
		return "boolean"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// State tells where the value of a declaration came from.
type State int

const (
	// StateAbsent: not supplied and no default.
	StateAbsent State = iota
	// StateDefaulted: not supplied, the default was used.
	StateDefaulted
	// StateBound: supplied on the command line.
	StateBound
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateDefaulted:
		return "defaulted"
	case StateBound:
		return "bound"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Declaration describes one declared argument and holds its bound value.
// It is owned by the schema that created it.
type Declaration struct {
	owner *Args
	names []string
	help  string
	kind  Kind
	shape Shape
	index int // position among positionals

	typ  reflect.Type
	conv converter // converter of typ, or of its element for list shapes

	def         any
	hasDefault  bool
	defaultText string

	implicit     any
	implicitText *string

	required bool

	value any
	state State

	sub *Args // KindSubcommand only
}

// Names returns the aliases of the declaration in declaration order.
func (d *Declaration) Names() []string {
	return append([]string(nil), d.names...)
}

// Name returns the display name: arg_<n> for positionals, the dashed alias
// list for options and the bare name for subcommands.
func (d *Declaration) Name() string {
	switch d.kind {
	case KindPositional:
		return fmt.Sprintf("arg_%d", d.index)
	case KindSubcommand:
		return d.names[0]
	}
	dashed := make([]string, len(d.names))
	for i, n := range d.names {
		dashed[i] = dashName(n)
	}
	return strings.Join(dashed, ",")
}

// dashName prefixes a one letter alias with "-" and longer ones with "--".
func dashName(n string) string {
	if len([]rune(n)) == 1 {
		return "-" + n
	}
	return "--" + n
}

// longName returns the preferred alias used when writing tokens back.
func (d *Declaration) longName() string {
	for _, n := range d.names {
		if len([]rune(n)) > 1 {
			return dashName(n)
		}
	}
	return dashName(d.names[0])
}

func (d *Declaration) Help() string { return d.help }
func (d *Declaration) Kind() Kind { return d.kind }
func (d *Declaration) Shape() Shape { return d.shape }
func (d *Declaration) Type() reflect.Type { return d.typ }
func (d *Declaration) Required() bool { return d.required }
func (d *Declaration) State() State { return d.state }

// Value returns the bound or defaulted value, nil when absent.
func (d *Declaration) Value() any { return d.value }

// Subcommand returns the nested schema of a KindSubcommand declaration.
func (d *Declaration) Subcommand() *Args { return d.sub }

// Default returns the default value and whether there is one.
func (d *Declaration) Default() (any, bool) { return d.def, d.hasDefault }

// Implicit returns the implicit value text of a keyword.
func (d *Declaration) Implicit() (string, bool) {
	if d.implicitText == nil {
		return "", false
	}
	return *d.implicitText, true
}

// isList reports whether the declaration binds a slice of converted elements.
func (d *Declaration) isList() bool {
	return d.shape == ShapeList || d.shape == ShapeMultiToken
}

// format renders v as it would be typed on the command line.
func (d *Declaration) format(v any) string {
	if d.isList() {
		return joinList(formatList(v, d.conv))
	}
	return d.conv.format(v)
}

// ValueString renders the current value, "<none>" when absent.
func (d *Declaration) ValueString() string {
	switch {
	case d.kind == KindSubcommand:
		if d.sub.active {
			return "active"
		}
		return "inactive"
	case d.state == StateAbsent:
		return "<none>"
	}
	return d.format(d.value)
}

// convert turns texts into a value of the declared type. Single shapes take
// texts[0], list shapes split it, multi-token shapes take every text.
func (d *Declaration) convert(texts []string) (any, string, error) {
	switch d.shape {
	case ShapeList:
		var parts []string
		for _, t := range texts {
			parts = append(parts, splitList(t)...)
		}
		return listOf(d.typ, d.conv, parts)
	case ShapeMultiToken:
		return listOf(d.typ, d.conv, texts)
	}
	v, err := d.conv.parse(texts[0])
	if err != nil {
		return nil, texts[0], err
	}
	return v, "", nil
}

// convertText converts default or implicit text. Multi-token declarations
// take their default as a comma separated list.
func (d *Declaration) convertText(s string) (any, error) {
	if d.shape == ShapeMultiToken {
		v, _, err := listOf(d.typ, d.conv, splitList(s))
		return v, err
	}
	v, _, err := d.convert([]string{s})
	return v, err
}

// Arg is the typed handle of a declaration, returned by Positional, Keyword
// and Flag. Modifiers may only be used before parsing starts.
type Arg[T any] struct {
	d *Declaration
}

// Declaration returns the untyped declaration behind the handle.
func (a *Arg[T]) Declaration() *Declaration {
	return a.d
}

// Default attaches a default used when the argument is absent.
func (a *Arg[T]) Default(v T) *Arg[T] {
	d := a.d
	d.owner.mustBuild()
	if d.kind == KindFlag {
		if b, _ := any(v).(bool); b {
			d.owner.fail(errFlagDefault, d.Name())
			return a
		}
	}
	d.def, d.hasDefault, d.required = v, true, false
	d.defaultText = d.format(v)
	return a
}

// DefaultText attaches a default given as command line text. The text is
// converted immediately; a failure is a schema error.
func (a *Arg[T]) DefaultText(s string) *Arg[T] {
	d := a.d
	d.owner.mustBuild()
	v, err := d.convertText(s)
	if err != nil {
		d.owner.fail(errBadDefault, s, d.Name(), err)
		return a
	}
	if d.kind == KindFlag {
		if b, _ := v.(bool); b {
			d.owner.fail(errFlagDefault, d.Name())
			return a
		}
	}
	d.def, d.hasDefault, d.required = v, true, false
	d.defaultText = s
	return a
}

// Implicit sets the value a keyword takes when its name is given without a
// value. Only keywords accept an implicit value.
func (a *Arg[T]) Implicit(s string) *Arg[T] {
	d := a.d
	d.owner.mustBuild()
	if d.kind != KindKeyword {
		d.owner.fail(errImplicitOnArg, d.Name())
		return a
	}
	v, err := d.convertText(s)
	if err != nil {
		d.owner.fail(errBadImplicit, s, d.Name(), err)
		return a
	}
	d.implicit, d.implicitText = v, &s
	return a
}

// MultiArgument makes the argument consume a run of bare words instead of a
// single comma separated token. T must be a slice.
func (a *Arg[T]) MultiArgument() *Arg[T] {
	d := a.d
	d.owner.mustBuild()
	if !d.isList() {
		d.owner.fail(errMultiNotSlice, d.Name(), d.typ)
		return a
	}
	d.shape = ShapeMultiToken
	d.owner.checkMulti(d)
	return a
}

// Optional lets the argument be omitted without a default. Its state is then
// StateAbsent and Lookup reports false.
func (a *Arg[T]) Optional() *Arg[T] {
	a.d.owner.mustBuild()
	a.d.required = false
	return a
}

// Value returns the bound or defaulted value, or the zero T when absent.
func (a *Arg[T]) Value() T {
	v, _ := a.Lookup()
	return v
}

// Lookup returns the value and whether it was supplied or defaulted.
func (a *Arg[T]) Lookup() (zero T, ok bool) {
	if a.d.state == StateAbsent || a.d.value == nil {
		return zero, false
	}
	return a.d.value.(T), true
}

// State returns where the value came from.
func (a *Arg[T]) State() State {
	return a.d.state
}
