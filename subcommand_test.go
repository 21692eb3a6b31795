package argparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gitArgs struct {
	*Args
	verbose *Arg[bool]

	commit  *Args
	all     *Arg[bool]
	message *Arg[string]

	push        *Args
	source      *Arg[string]
	destination *Arg[string]
}

func newGitArgs() *gitArgs {
	g := &gitArgs{Args: New("git")}
	g.verbose = Flag(g.Args, "v,verbose", "A flag to toggle verbose")

	g.commit = g.Subcommand("commit", "Record changes to the repository")
	g.all = Flag(g.commit, "a,all", "Stage modified and deleted files")
	g.message = Keyword[string](g.commit, "m,message", "Use the given <msg> as the commit message")

	g.push = g.Subcommand("push", "Update remote refs")
	g.source = Positional[string](g.push, "Source repository").Default("origin")
	g.destination = Positional[string](g.push, "Destination repository").Default("master")
	return g
}

func TestSubcommandNone(t *testing.T) {
	g := newGitArgs()
	require.NoError(t, g.ParseString("--verbose"))

	assert.True(t, g.IsActive())
	assert.True(t, g.verbose.Value())
	assert.False(t, g.commit.IsActive())
	assert.False(t, g.push.IsActive())
	assert.Nil(t, g.Active())
	assert.Same(t, g.Args, g.Leaf())
	assert.Equal(t, StateAbsent, g.message.State())
}

func TestSubcommandCommit(t *testing.T) {
	for _, line := range []string{
		`commit -am "testing-argparse"`,
		`commit -a -m testing-argparse`,
		`commit --message=testing-argparse --all`,
	} {
		g := newGitArgs()
		require.NoError(t, g.ParseString(line), line)

		assert.False(t, g.verbose.Value(), line)
		assert.True(t, g.commit.IsActive(), line)
		assert.False(t, g.push.IsActive(), line)
		assert.Same(t, g.commit, g.Active(), line)
		assert.True(t, g.all.Value(), line)
		assert.Equal(t, "testing-argparse", g.message.Value(), line)
		assert.Equal(t, StateAbsent, g.source.State(), line)
	}
}

func TestSubcommandPush(t *testing.T) {
	g := newGitArgs()
	require.NoError(t, g.ParseString("-v push origin dev"))

	assert.True(t, g.verbose.Value())
	assert.False(t, g.commit.IsActive())
	assert.True(t, g.push.IsActive())
	assert.Equal(t, "origin", g.source.Value())
	assert.Equal(t, "dev", g.destination.Value())

	require.NoError(t, g.ParseString("push"))
	assert.Equal(t, "origin", g.source.Value())
	assert.Equal(t, "master", g.destination.Value())
	assert.Equal(t, StateDefaulted, g.destination.State())
}

func TestSubcommandReparse(t *testing.T) {
	g := newGitArgs()
	require.NoError(t, g.ParseString("commit -m x"))
	require.NoError(t, g.ParseString("push"))

	assert.False(t, g.commit.IsActive())
	assert.Equal(t, StateAbsent, g.message.State())
	assert.True(t, g.push.IsActive())
}

func TestSubcommandErrors(t *testing.T) {
	g := newGitArgs()

	err := g.ParseString("commit --verbose -m x")
	assert.Equal(t, &UnrecognizedArgumentError{Raw: "--verbose", Command: "git commit"}, err)

	err = g.ParseString("pull")
	assert.Equal(t, &UnrecognizedArgumentError{Raw: "pull", Command: "git"}, err)

	err = g.ParseString("commit -a")
	assert.Equal(t, &MissingArgumentError{
		Name:    "-m,--message",
		Help:    "Use the given <msg> as the commit message",
		Command: "git commit",
	}, err)

	// names are matched exactly
	err = g.ParseString("Commit")
	assert.ErrorIs(t, err, ErrUnrecognizedArgument)

	err = g.ParseString("commit --help")
	var help *HelpError
	require.ErrorAs(t, err, &help)
	assert.Same(t, g.commit, help.Args)
	assert.Equal(t, "help requested for git commit", err.Error())
}

func TestSubcommandAfterPositional(t *testing.T) {
	a := New("prog")
	target := Positional[string](a, "target")
	run := a.Subcommand("run", "run the target")
	fast := Flag(run, "fast", "")

	require.NoError(t, a.ParseString("x run --fast"))
	assert.Equal(t, "x", target.Value())
	assert.True(t, run.IsActive())
	assert.True(t, fast.Value())

	// a pending positional takes the word first
	err := a.ParseString("run")
	require.NoError(t, err)
	assert.Equal(t, "run", target.Value())
	assert.False(t, run.IsActive())
}

func TestNestedSubcommands(t *testing.T) {
	a := New("git")
	remote := a.Subcommand("remote", "Manage tracked repositories")
	add := remote.Subcommand("add", "Add a remote")
	name := Positional[string](add, "remote name")
	url := Positional[string](add, "remote url")
	fetch := Flag(add, "f", "fetch after adding")
	remove := remote.Subcommand("remove", "Remove a remote")

	require.NoError(t, a.ParseString("remote add -f origin https://example.com/repo.git"))
	assert.Equal(t, "git remote add", add.Name())
	assert.Same(t, remote, a.Active())
	assert.Same(t, add, remote.Active())
	assert.Same(t, add, a.Leaf())
	assert.Same(t, remote, add.Parent())
	assert.False(t, remove.IsActive())
	assert.Equal(t, "origin", name.Value())
	assert.Equal(t, "https://example.com/repo.git", url.Value())
	assert.True(t, fetch.Value())

	err := a.ParseString("remote add origin")
	assert.Equal(t, &MissingArgumentError{Name: "arg_1", Help: "remote url", Command: "git remote add"}, err)
}

func TestSubcommandTerminator(t *testing.T) {
	a := New("prog")
	run := a.Subcommand("run", "")
	cmd := Positional[[]string](run, "command").MultiArgument()

	require.NoError(t, a.ParseString("-- run -v --x"))
	assert.True(t, run.IsActive())
	assert.Equal(t, []string{"-v", "--x"}, cmd.Value())
}

func TestSubcommandDeclarations(t *testing.T) {
	g := newGitArgs()
	require.NoError(t, g.ParseString("commit -m x"))

	decls := g.Declarations()
	require.Len(t, decls, 3)
	assert.Equal(t, KindFlag, decls[0].Kind())
	assert.Equal(t, KindSubcommand, decls[1].Kind())
	assert.Same(t, g.commit, decls[1].Subcommand())
	assert.Equal(t, "active", decls[1].ValueString())
	assert.Equal(t, StateBound, decls[1].State())
	assert.Equal(t, "inactive", decls[2].ValueString())
	assert.Equal(t, "Record changes to the repository", g.commit.Summary())
	assert.Equal(t, []*Args{g.commit, g.push}, g.Subcommands())
}

func TestRun(t *testing.T) {
	var ran []string
	g := newGitArgs()
	g.commit.Handle(func(leaf *Args) error {
		ran = append(ran, "commit:"+leaf.Name())
		return nil
	})

	require.NoError(t, g.ParseString("commit -m x"))
	require.NoError(t, g.Run())
	assert.Equal(t, []string{"commit:git commit"}, ran)

	// push has no handler and the root neither
	require.NoError(t, g.ParseString("push"))
	err := g.Run()
	assert.ErrorIs(t, err, ErrNoHandler)
	assert.Equal(t, "no handler for git push", err.Error())
}

func TestRunFallsBackToAncestor(t *testing.T) {
	var ran []string
	errRoot := errors.New("root")
	g := newGitArgs()
	g.Handle(func(leaf *Args) error {
		ran = append(ran, "root:"+leaf.Name())
		return errRoot
	})
	g.commit.Handle(func(leaf *Args) error {
		ran = append(ran, "commit:"+leaf.Name())
		return nil
	})

	require.NoError(t, g.ParseString("push"))
	assert.ErrorIs(t, g.Run(), errRoot)

	require.NoError(t, g.ParseString("-v"))
	assert.ErrorIs(t, g.Run(), errRoot)

	require.NoError(t, g.ParseString("commit -m x"))
	assert.NoError(t, g.Run())

	assert.Equal(t, []string{"root:git push", "root:git", "commit:git commit"}, ran)
}
