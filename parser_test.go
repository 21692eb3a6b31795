package argparse

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProcess captures what the exiting entry points print and the status
// they exit with.
func stubProcess(t *testing.T) (out, errOut *bytes.Buffer, code *int) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	code = new(int)
	*code = -1

	oldExit, oldOut, oldErr := exit, stdout, stderr
	exit = func(c int) { *code = c }
	stdout, stderr = out, errOut
	t.Cleanup(func() {
		exit, stdout, stderr = oldExit, oldOut, oldErr
	})
	return out, errOut, code
}

func TestParseNonStrictError(t *testing.T) {
	out, errOut, code := stubProcess(t)
	a := New("prog")
	Flag(a, "v,verbose", "be verbose")

	require.NoError(t, ParseTokens(a, []string{"--nope"}, false))
	assert.Equal(t, 2, *code)
	assert.Empty(t, out.String())
	assert.Equal(t,
		"error: Unrecognized argument \"--nope\" in prog\n\nThe usage is:\n"+a.Usage(),
		errOut.String())
}

func TestParseNonStrictHelp(t *testing.T) {
	out, errOut, code := stubProcess(t)
	g := newGitArgs()

	require.NoError(t, ParseTokens(g.Args, []string{"commit", "-h"}, false))
	assert.Equal(t, 0, *code)
	assert.Equal(t, g.commit.Usage(), out.String())
	assert.Empty(t, errOut.String())
}

func TestParseNonStrictSubcommandUsage(t *testing.T) {
	_, errOut, code := stubProcess(t)
	g := newGitArgs()

	require.NoError(t, ParseTokens(g.Args, []string{"commit", "-a"}, false))
	assert.Equal(t, 2, *code)
	assert.Contains(t, errOut.String(), "error: Argument missing: -m,--message")
	assert.Contains(t, errOut.String(), "Usage: git commit [OPTIONS]\n")
	assert.NotContains(t, errOut.String(), "[COMMAND]")
}

func TestParseNonStrictSchemaError(t *testing.T) {
	_, errOut, code := stubProcess(t)
	a := New("prog")
	Flag(a, "help", "")

	require.NoError(t, ParseTokens(a, nil, false))
	assert.Equal(t, 2, *code)
	assert.Equal(t,
		"error: ambiguous schema prog: \"help\" is a reserved word, please rename --help\n",
		errOut.String())
}

func TestParseNonStrictSuccess(t *testing.T) {
	out, errOut, code := stubProcess(t)
	a := New("prog")
	v := Flag(a, "v,verbose", "")

	require.NoError(t, ParseTokens(a, []string{"-v"}, false))
	assert.Equal(t, -1, *code)
	assert.True(t, v.Value())
	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestParseOSArgs(t *testing.T) {
	_, _, code := stubProcess(t)
	oldArgs := os.Args
	os.Args = []string{"prog", "-v", "file"}
	t.Cleanup(func() { os.Args = oldArgs })

	a := New("prog")
	v := Flag(a, "v,verbose", "")
	f := Positional[string](a, "file")
	a.Parse()

	assert.Equal(t, -1, *code)
	assert.True(t, v.Value())
	assert.Equal(t, "file", f.Value())
}

func TestFind(t *testing.T) {
	a := New("git")
	remote := a.Subcommand("remote", "")
	add := remote.Subcommand("add", "")
	a.Subcommand("rem", "")

	assert.Same(t, a, a.find("git"))
	assert.Same(t, remote, a.find("git remote"))
	assert.Same(t, add, a.find("git remote add"))
	assert.Same(t, a, a.find("other"))
}
