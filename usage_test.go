package argparse

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

func init() {
	color.NoColor = true
}

var usageCase = []struct {
	about string
	work  func() (usage string)
	exp   string
}{{
	"arguments and options",
	func() string {
		a := New("prog", WithDescription("A test program"))
		Positional[string](a, "Source path")
		Positional[[]string](a, "Others").MultiArgument().Default([]string{})
		Keyword[int](a, "k", "A parameter").Implicit("3")
		Keyword[float32](a, "b,beta", "Beta").Default(0.6)
		Keyword[[]int](a, "n,numbers", "Numbers").DefaultText("1,2")
		Flag(a, "v,verbose", "Verbose")
		return a.UsageWidth(0)
	},
	`Usage: prog [OPTIONS] <arg_0> [arg_1]...

A test program

Arguments:
    <arg_0>     Source path
    [arg_1]...  Others  [default: ""]

Options:
    -h, --help                    print this message
    -k [<int>]                    A parameter  [implicit: "3"]
    -b, --beta <float32>          Beta  [default: "0.6"]
    -n, --numbers <int[,int]...>  Numbers  [default: "1,2"]
    -v, --verbose                 Verbose
`,
}, {
	"subcommands",
	func() string {
		return newGitArgs().UsageWidth(0)
	},
	"Usage: git [OPTIONS] [COMMAND]\n" +
		"\n" +
		"Commands:\n" +
		"    commit  Record changes to the repository\n" +
		"    push    Update remote refs\n" +
		"\n" +
		"Options:\n" +
		"    -h, --help     print this message\n" +
		"    -v, --verbose  A flag to toggle verbose\n" +
		"\n" +
		"Run `git [COMMAND] --help` to print the help message of COMMAND\n",
}, {
	"subcommand usage",
	func() string {
		return newGitArgs().commit.UsageWidth(0)
	},
	`Usage: git commit [OPTIONS]

Options:
    -h, --help              print this message
    -a, --all               Stage modified and deleted files
    -m, --message <string>  Use the given <msg> as the commit message
`,
}, {
	"declared -h and examples",
	func() string {
		a := New("prog", WithRegistry(paintRegistry()))
		Keyword[string](a, "h,host", "hostname")
		Keyword[paint](a, "c,color", "color")
		Keyword[[]string](a, "files", "input files").MultiArgument()
		Keyword[addr](a, "at", "listen address")
		Flag(a, "q", "quiet")
		return a.UsageWidth(0)
	},
	`Usage: prog [OPTIONS]

Options:
    --help                        print this message
    -h, --host <string>           hostname
    -c, --color <argparse.paint>  color  [example: "red|blue|green"]
    --files <string>...           input files
    --at <argparse.addr>          listen address  [example: "127.0.0.1:80"]
    -q                            quiet
`,
}}

func TestUsage(t *testing.T) {
	for _, c := range usageCase {
		t.Run(c.about, func(t *testing.T) {
			assert.Equal(t, c.exp, c.work())
		})
	}
}

func TestUsageDescribe(t *testing.T) {
	a := New("prog").Describe("Welcome to Argparse")
	Positional[string](a, "").Optional()
	usage := a.Usage()
	assert.Assert(t, is.Contains(usage, "Usage: prog [OPTIONS] [arg_0]\n"))
	assert.Assert(t, is.Contains(usage, "\nWelcome to Argparse\n"))
	assert.Assert(t, is.Contains(usage, "\n    [arg_0]\n"))
	assert.Equal(t, "Welcome to Argparse", a.Description())
}

func TestWrap(t *testing.T) {
	assert.DeepEqual(t, []string{"one two three"}, wrap("one two three", 0))
	assert.DeepEqual(t, []string{"one two", "three"}, wrap("one two three", 7))
	assert.DeepEqual(t, []string{"a", "looooong", "b"}, wrap("a looooong b", 4))
	assert.DeepEqual(t, []string{""}, wrap("", 4))
}

func TestAlignRowsWrapsHelp(t *testing.T) {
	lines := alignRows([][2]string{
		{"-x", "one two three"},
		{"-y", ""},
	}, 14)
	assert.DeepEqual(t, []string{
		"-x  one",
		"    two",
		"    three",
		"-y",
	}, lines)
}

func TestUsageWrapsToWidth(t *testing.T) {
	a := New("prog")
	Flag(a, "v,verbose", "print every step of the work as it happens")
	usage := a.UsageWidth(40)
	indent := strings.Repeat(" ", 19)
	assert.Assert(t, is.Contains(usage,
		"    -v, --verbose  print every step of\n"+
			indent+"the work as it\n"+
			indent+"happens\n"))
}
