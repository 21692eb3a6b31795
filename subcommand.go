package argparse

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoHandler is returned by Run when the selected schema has no handler.
var ErrNoHandler = errors.New("no handler")

// Subcommand declares a named nested schema. At most one subcommand of a
// schema is active after parsing.
func (a *Args) Subcommand(name, summary string) *Args {
	a.mustBuild()
	sub := newArgs(a.name+" "+name, summary, a)
	d := &Declaration{
		owner: a,
		names: []string{name},
		help:  summary,
		kind:  KindSubcommand,
		sub:   sub,
	}
	sub.self = d

	switch {
	case name == "" || strings.ContainsAny(name, " \t") || strings.HasPrefix(name, "-"):
		a.fail(errBadCmdName, name)
	case a.hasSubcommand(name):
		a.fail(errCmdRedefined, name)
	default:
		a.subcmds.Set(name, d)
	}
	for _, p := range a.positionals {
		if p.shape == ShapeMultiToken {
			a.fail(errMultiWithSubcmd, p.Name())
		}
	}
	a.decls = append(a.decls, d)
	return sub
}

func (a *Args) hasSubcommand(name string) bool {
	_, ok := a.subcommand(name)
	return ok
}

// subcommand matches name exactly, case-sensitive.
func (a *Args) subcommand(name string) (*Args, bool) {
	v, ok := a.subcmds.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Declaration).sub, true
}

// Subcommands returns the nested schemas in declaration order.
func (a *Args) Subcommands() []*Args {
	subs := make([]*Args, 0, a.subcmds.Len())
	for p := a.subcmds.Oldest(); p != nil; p = p.Next() {
		subs = append(subs, p.Value.(*Declaration).sub)
	}
	return subs
}

// IsActive reports whether this schema was selected by the last parse. The
// root is active after every successful parse.
func (a *Args) IsActive() bool { return a.active }

// Active returns the active subcommand, nil when none was given.
func (a *Args) Active() *Args { return a.activeSub }

// Leaf returns the deepest active schema, a itself when no subcommand is
// active.
func (a *Args) Leaf() *Args {
	for a.activeSub != nil {
		a = a.activeSub
	}
	return a
}

// dispatch binds the unread arguments to sub and marks it active.
func (b *binder) dispatch(sub *Args) error {
	b.done = true
	if err := sub.bind(b.rest()); err != nil {
		return err
	}
	sub.active = true
	sub.self.value, sub.self.state = true, StateBound
	b.a.activeSub = sub
	return nil
}

// Handle sets the function Run calls when this schema is the deepest active
// one.
func (a *Args) Handle(fn func(*Args) error) *Args {
	a.mustBuild()
	a.handler = fn
	return a
}

// Run calls the handler of the deepest active schema. Schemas without a
// handler fall back to the nearest ancestor that has one.
func (a *Args) Run() error {
	leaf := a.Leaf()
	for s := leaf; s != nil; s = s.parent {
		if s.handler != nil {
			return s.handler(leaf)
		}
		if s == a {
			break
		}
	}
	return fmt.Errorf("%w for %s", ErrNoHandler, leaf.name)
}
