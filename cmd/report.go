package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/brokerage"
	"github.com/google/subcommands"
)

type reportCmd struct {
	accountFlags
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the account overview in its line format" }
func (*reportCmd) Usage() string {
	return `bkr report [-f <account>]

  Prints the cash balance and one ASSET line per position, sorted by kind,
  then descending market value, then ticker.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) { c.accountFlags.setFlags(f) }

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	account, err := c.load()
	if err != nil {
		return fail(err)
	}
	fmt.Print(brokerage.RenderReport(account))
	return subcommands.ExitSuccess
}
