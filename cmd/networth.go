package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type networthCmd struct {
	accountFlags
}

func (*networthCmd) Name() string     { return "networth" }
func (*networthCmd) Synopsis() string { return "print the account's net and market worth" }
func (*networthCmd) Usage() string {
	return `bkr networth [-f <account>]

  Prints cash plus liquidation value (net worth) and cash plus market value
  (market worth), both recomputed from the current state.
`
}

func (c *networthCmd) SetFlags(f *flag.FlagSet) { c.accountFlags.setFlags(f) }

func (c *networthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	account, err := c.load()
	if err != nil {
		return fail(err)
	}
	fmt.Printf("NET|%s\n", account.NetWorth().StringFixed(2))
	fmt.Printf("MARKET|%s\n", account.MarketWorth().StringFixed(2))
	return subcommands.ExitSuccess
}
