package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/brokerage"
	"github.com/google/subcommands"
)

type initCmd struct {
	accountFlags
	cash string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a new empty account file" }
func (*initCmd) Usage() string {
	return `bkr init [-f <account>] [-cash <amount>]

  Creates a new account file holding the given initial cash.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	c.accountFlags.setFlags(f)
	f.StringVar(&c.cash, "cash", "0", "Initial cash balance.")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cash, err := parseMoney(c.cash)
	if err != nil {
		return fail(err)
	}
	account, err := brokerage.NewAccount(cash)
	if err != nil {
		return fail(err)
	}
	if err := c.save(account); err != nil {
		return fail(err)
	}
	fmt.Printf("created %s with cash %s\n", c.accountFile, cash.StringFixed(2))
	return subcommands.ExitSuccess
}
