package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/canoriz/argparse"
)

func main() {
	args := argparse.New("simple", argparse.WithDescription("A git like example"))
	name := argparse.Keyword[string](args, "name", "your name").Default("you")
	email := argparse.Keyword[string](args, "email", "your email").Default("you@example.com")
	verbose := argparse.Flag(args, "v,verbose", "A flag to toggle verbose")

	// subcommands are nested schemas, at most one of them is active
	add := args.Subcommand("add", "Add file contents to the index")
	addAll := argparse.Flag(add, "a,all", "Add all files")
	files := argparse.Positional[[]string](add, "file to be added").MultiArgument().Optional()
	add.Handle(func(*argparse.Args) error {
		fmt.Printf("add all=%v files=%v\n", addAll.Value(), files.Value())
		return nil
	})

	commit := args.Subcommand("commit", "Record changes to the repository")
	commitAll := argparse.Flag(commit, "a,all", "Stage modified and deleted files")
	message := argparse.Keyword[string](commit, "m,message", "Use the given <msg> as the commit message")
	commit.Handle(func(*argparse.Args) error {
		fmt.Printf("%s <%s> commits %q (all=%v)\n", name.Value(), email.Value(), message.Value(), commitAll.Value())
		return nil
	})

	push := args.Subcommand("push", "Update remote refs")
	source := argparse.Positional[string](push, "Source repository").Default("origin")
	destination := argparse.Positional[string](push, "Destination repository").Default("master")
	push.Handle(func(*argparse.Args) error {
		fmt.Printf("push %s -> %s\n", source.Value(), destination.Value())
		return nil
	})

	// subcommands can be nested inside of subcommands, a subcommand without
	// a handler runs the handler of its parent
	remote := args.Subcommand("remote", "Manage set of tracked repositories")
	remote.Subcommand("show", "Show remotes")
	remote.Handle(func(leaf *argparse.Args) error {
		fmt.Printf("%s\n", leaf.Name())
		return nil
	})

	config := args.Subcommand("config", "Watch a configuration file")
	file := argparse.Positional[*argparse.File[map[string]any, argparse.EnableLiveUpdate]](config, "configuration file")
	config.Handle(func(*argparse.Args) error {
		fmt.Println(prettyPrint(file.Value().Get()))
		for range file.Value().UpdateEvents() {
			fmt.Println(prettyPrint(file.Value().Get()))
		}
		return nil
	})

	args.Handle(func(*argparse.Args) error {
		fmt.Printf("Welcome to Argparse, %s\n", name.Value())
		return nil
	})

	// if Parse() fails, the program exits
	args.Parse()
	if verbose.Value() {
		args.Print(os.Stdout)
	}
	if err := args.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func prettyPrint(i interface{}) string {
	s, _ := json.MarshalIndent(i, "", "  ")
	return string(s)
}
