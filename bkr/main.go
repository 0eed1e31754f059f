// Command bkr manages a single-owner trading account stored in a plain text
// file: buys and sells with FIFO cost basis accounting, a pending limit
// order queue, and account reports.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/brokerage/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
)

func main() {
	// Shell completion: a no-op outside of a completion context.
	completion().Complete("bkr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	sub := make(map[string]*complete.Command)
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	return &complete.Command{Sub: sub}
}
