package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/tripbook/tripbook/cmd"
)

func main() {
	// Shell completion exits early when invoked by the shell.
	completion().Complete("tbk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	if err := cmd.LoadConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	sub := make(map[string]*complete.Command)
	for _, name := range []string{
		"new", "trips", "use", "rm-trip",
		"day", "add", "edit", "done", "move", "rm",
		"spend", "edit-expense", "expenses", "rm-expense", "undo", "redo", "budget", "convert",
		"bookings", "book",
		"check", "voucher", "memo",
		"share", "export", "import",
		"guide", "recommend",
	} {
		sub[name] = &complete.Command{}
	}
	return &complete.Command{Sub: sub}
}
