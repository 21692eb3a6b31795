package argparse

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const defaultUsageWidth = 80

var heading = color.New(color.Bold).SprintFunc()

// Usage renders the help text of the schema, wrapped to the terminal width.
func (a *Args) Usage() string {
	return a.UsageWidth(terminalWidth())
}

// UsageWidth renders the help text wrapping help columns at width. A width
// of 0 disables wrapping.
func (a *Args) UsageWidth(width int) string {
	return makeUsageText(a, width)
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w < 40 {
		return defaultUsageWidth
	}
	return w
}

func makeUsageText(a *Args, width int) string {
	argUsageList := makeArgUsageList(a, width)
	subcmdUsageList := makeSubcmdUsageList(a, width)
	optionUsageList := makeOptionUsageList(a, width)

	usage := fmt.Sprintf("%s %s [OPTIONS]", heading("Usage:"), a.name)
	for _, d := range a.positionals {
		usage = fmt.Sprintf("%s %s", usage, positionalSyntax(d))
	}
	if len(subcmdUsageList) > 0 {
		usage += " [COMMAND]"
	}
	usage += "\n"

	if a.description != "" {
		usage += "\n" + strings.Join(wrap(a.description, width), "\n") + "\n"
	}
	if len(argUsageList) > 0 {
		usage += fmt.Sprintf(
			"\n%s\n%s\n", heading("Arguments:"),
			strings.Join(fmap(argUsageList, shiftFour), "\n"),
		)
	}
	if len(subcmdUsageList) > 0 {
		usage += fmt.Sprintf(
			"\n%s\n%s\n", heading("Commands:"),
			strings.Join(fmap(subcmdUsageList, shiftFour), "\n"),
		)
	}

	// options always have a --help entry
	usage += fmt.Sprintf(
		"\n%s\n%s\n", heading("Options:"),
		strings.Join(fmap(optionUsageList, shiftFour), "\n"),
	)
	if len(subcmdUsageList) > 0 {
		usage += fmt.Sprintf(
			"\nRun `%s [COMMAND] --help` to print the help message of COMMAND\n",
			a.name,
		)
	}
	return usage
}

func positionalSyntax(d *Declaration) string {
	s := fmt.Sprintf("<%s>", d.Name())
	if !d.required {
		s = fmt.Sprintf("[%s]", d.Name())
	}
	if d.shape == ShapeMultiToken {
		s += "..."
	}
	return s
}

func optionSyntax(d *Declaration) string {
	dashed := make([]string, len(d.names))
	for i, n := range d.names {
		dashed[i] = dashName(n)
	}
	s := strings.Join(dashed, ", ")
	if d.kind == KindFlag {
		return s
	}

	value := "<" + d.conv.typ.String() + ">"
	switch d.shape {
	case ShapeList:
		value = fmt.Sprintf("<%s[,%s]...>", d.conv.typ, d.conv.typ)
	case ShapeMultiToken:
		value += "..."
	}
	if d.implicitText != nil {
		value = "[" + value + "]"
	}
	return s + " " + value
}

func makeArgUsageList(a *Args, width int) []string {
	rows := make([][2]string, 0, len(a.positionals))
	for _, d := range a.positionals {
		rows = append(rows, [2]string{positionalSyntax(d), describe(d)})
	}
	return alignRows(rows, width)
}

func makeSubcmdUsageList(a *Args, width int) []string {
	subs := a.Subcommands()
	rows := make([][2]string, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, [2]string{sub.self.names[0], sub.summary})
	}
	return alignRows(rows, width)
}

func makeOptionUsageList(a *Args, width int) []string {
	rows := [][2]string{{"-h, --help", "print this message"}}
	if _, ok := a.option("h"); ok {
		rows[0][0] = "--help"
	}
	for _, d := range a.decls {
		if d.kind == KindKeyword || d.kind == KindFlag {
			rows = append(rows, [2]string{optionSyntax(d), describe(d)})
		}
	}
	return alignRows(rows, width)
}

// describe joins the help text of d with its default, implicit value or
// input example.
func describe(d *Declaration) string {
	parts := []string{}
	if d.help != "" {
		parts = append(parts, d.help)
	}
	if extraUsage, ok := makeDefaultOrExample(d); ok {
		parts = append(parts, extraUsage)
	}
	return strings.Join(parts, "  ")
}

func makeDefaultOrExample(d *Declaration) (_extraUsage string, _ok bool) {
	extra := []string{}
	if d.hasDefault && d.kind != KindFlag {
		extra = append(extra, fmt.Sprintf(`[default: "%s"]`, d.defaultText))
	} else if d.conv.example != "" {
		// a default already shows how to write the value
		extra = append(extra, fmt.Sprintf(`[example: "%s"]`, d.conv.example))
	}
	if d.implicitText != nil {
		extra = append(extra, fmt.Sprintf(`[implicit: "%s"]`, *d.implicitText))
	}
	return strings.Join(extra, "  "), len(extra) > 0
}

// alignRows pads the first column and wraps the second one so that the
// whole line fits in width. Continuation lines are indented under the
// second column.
func alignRows(rows [][2]string, width int) []string {
	maxLength := 0
	for _, r := range rows {
		maxLength = maxInt(maxLength, len(r[0]))
	}
	lines := []string{}
	for _, r := range rows {
		if r[1] == "" {
			lines = append(lines, r[0])
			continue
		}
		col := len(shiftFour("")) + maxLength + 2
		text := wrap(r[1], width-col)
		lines = append(lines, fmt.Sprintf("%s  %s", appendSpacesToLength(r[0], maxLength), text[0]))
		for _, t := range text[1:] {
			lines = append(lines, appendSpacesToLength("", maxLength+2)+t)
		}
	}
	return lines
}

// wrap breaks s into lines of at most width columns on word boundaries.
// Words longer than width get their own line. width <= 0 disables wrapping.
func wrap(s string, width int) []string {
	if width <= 0 || len(s) <= width {
		return []string{s}
	}
	lines := []string{}
	line := ""
	for _, w := range strings.Fields(s) {
		switch {
		case line == "":
			line = w
		case len(line)+1+len(w) <= width:
			line += " " + w
		default:
			lines = append(lines, line)
			line = w
		}
	}
	if line != "" || len(lines) == 0 {
		lines = append(lines, line)
	}
	return lines
}

func shiftFour(s string) string {
	const fourSpace = "    "
	return fourSpace + s
}

func fmap(ss []string, f func(string) string) []string {
	for i, s := range ss {
		ss[i] = f(s)
	}
	return ss
}

func appendSpacesToLength(s string, toLength int) string {
	needSpace := toLength - len(s)
	for i := 0; i < needSpace; i++ {
		s += " "
	}
	return s
}

func maxInt(a, b int) int {
	if a < b {
		return b
	}
	return a
}
