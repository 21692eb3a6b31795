package argparse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/shlex"
)

// Replaced in tests.
var (
	exit             = os.Exit
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// ParseTokens binds tokens to a. With strict set every failure is returned;
// otherwise failures are reported on stderr and the process exits, and help
// requests print the usage text and exit 0.
func ParseTokens(a *Args, tokens []string, strict bool) error {
	err := a.ParseArgs(tokens)
	if strict {
		return err
	}
	a.handle(err)
	return nil
}

// ParseArgs binds args (without the program name) and returns the first
// failure. A schema defect is returned before any argument is read.
func (a *Args) ParseArgs(args []string) error {
	if err := a.Err(); err != nil {
		return err
	}
	a.freeze()
	a.reset()
	if err := a.bind(args); err != nil {
		return err
	}
	a.active = true
	return nil
}

// ParseString splits s the way a POSIX shell would and parses the result.
func (a *Args) ParseString(s string) error {
	args, err := shlex.Split(s)
	if err != nil {
		return fmt.Errorf("split %q: %w", s, err)
	}
	return a.ParseArgs(args)
}

// Parse parses os.Args[1:]. On failure the error and the usage text are
// printed and the program exits with status 2; help exits with status 0.
func (a *Args) Parse() {
	a.handle(a.ParseArgs(os.Args[1:]))
}

// handle reports err the way a command line program is expected to.
func (a *Args) handle(err error) {
	if err == nil {
		return
	}

	var help *HelpError
	if errors.As(err, &help) {
		fmt.Fprint(stdout, help.Args.Usage())
		exit(0)
		return
	}

	target := a
	if cmd, ok := commandOf(err); ok {
		target = a.find(cmd)
	}
	fmt.Fprintf(stderr, "%s %v\n", color.RedString("error:"), err)
	if !errors.Is(err, ErrAmbiguousSchema) {
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "The usage is:")
		fmt.Fprint(stderr, target.Usage())
	}
	exit(2)
}

// find returns the schema with display path cmd, or a when there is none.
func (a *Args) find(cmd string) *Args {
	if cmd == a.name {
		return a
	}
	for _, sub := range a.Subcommands() {
		if cmd == sub.name || strings.HasPrefix(cmd, sub.name+" ") {
			return sub.find(cmd)
		}
	}
	return a
}
