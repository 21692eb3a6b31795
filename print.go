package argparse

import (
	"fmt"
	"io"
)

// Print writes every declaration with its current value, one per line, and
// descends into the active subcommand.
func (a *Args) Print(w io.Writer) {
	a.print(w, "")
}

func (a *Args) print(w io.Writer, indent string) {
	for _, d := range a.decls {
		fmt.Fprintf(w, "%s%s = %s\n", indent, d.Name(), d.ValueString())
		if d.kind == KindSubcommand && d.sub.active {
			d.sub.print(w, indent+"    ")
		}
	}
}

// Tokens writes the bound values of the last parse back as arguments that
// parse to the same values. Defaulted and absent declarations are left out.
// Without an active subcommand positionals come last, after a "--" when a
// multi-token keyword precedes them or one of them would read as an option.
// With one, positionals come first and a multi-token keyword with no option
// after it swallows the subcommand name, such schemas do not round-trip.
func (a *Args) Tokens() []string {
	var positionals, multi, options []string
	for _, d := range a.decls {
		if d.state != StateBound {
			continue
		}
		switch d.kind {
		case KindPositional:
			if d.shape == ShapeMultiToken {
				positionals = append(positionals, formatList(d.value, d.conv)...)
			} else {
				positionals = append(positionals, d.format(d.value))
			}
		case KindFlag:
			if d.value == true {
				options = append(options, d.longName())
			} else {
				options = append(options, d.longName()+"=false")
			}
		case KindKeyword:
			switch d.shape {
			case ShapeMultiToken:
				// a multi-token keyword stops at the next option, keep one after it
				multi = append(multi, d.longName())
				multi = append(multi, formatList(d.value, d.conv)...)
			default:
				options = append(options, d.longName()+"="+d.format(d.value))
			}
		}
	}

	if a.activeSub != nil {
		tokens := append(positionals, multi...)
		tokens = append(tokens, options...)
		tokens = append(tokens, a.activeSub.self.names[0])
		return append(tokens, a.activeSub.Tokens()...)
	}

	tokens := append(options, multi...)
	if len(positionals) > 0 && (len(multi) > 0 || a.needTerminator(positionals)) {
		tokens = append(tokens, terminator)
	}
	return append(tokens, positionals...)
}

// needTerminator reports whether one of words would not be read back as a
// bare word.
func (a *Args) needTerminator(words []string) bool {
	for _, w := range words {
		if w == terminator || lex(w, a).Kind != BareWord {
			return true
		}
	}
	return false
}
