package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type watchCmd struct {
	accountFlags
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "add tickers to the watchlist" }
func (*watchCmd) Usage() string {
	return `bkr watch [-f <account>] <TICKER>...

  Adds tickers to the watchlist. Already watched tickers are reported.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) { c.accountFlags.setFlags(f) }

func (c *watchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	account, err := c.load()
	if err != nil {
		return fail(err)
	}
	for _, ticker := range f.Args() {
		added, err := account.Watch(ticker)
		if err != nil {
			return fail(err)
		}
		if !added {
			fmt.Printf("%s already watched\n", ticker)
		}
	}
	if err := c.save(account); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type unwatchCmd struct {
	accountFlags
}

func (*unwatchCmd) Name() string     { return "unwatch" }
func (*unwatchCmd) Synopsis() string { return "remove tickers from the watchlist" }
func (*unwatchCmd) Usage() string {
	return `bkr unwatch [-f <account>] <TICKER>...

  Removes tickers from the watchlist.
`
}

func (c *unwatchCmd) SetFlags(f *flag.FlagSet) { c.accountFlags.setFlags(f) }

func (c *unwatchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	account, err := c.load()
	if err != nil {
		return fail(err)
	}
	for _, ticker := range f.Args() {
		removed, err := account.Unwatch(ticker)
		if err != nil {
			return fail(err)
		}
		if !removed {
			fmt.Printf("%s was not watched\n", ticker)
		}
	}
	if err := c.save(account); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
