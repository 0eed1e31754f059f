package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/brokerage"
	"github.com/google/subcommands"
)

type sellCmd struct {
	tradeFlags
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell a quantity of a security at the current price" }
func (*sellCmd) Usage() string {
	return `bkr sell [-f <account>] [-price <p>] [-d <date>] <TICKER> <QUANTITY>

  Executes a sell immediately: consumes purchase lots oldest first, credits
  cash with the full proceeds, and prints the realized P&L per lot.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) { c.tradeFlags.setFlags(f) }

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	account, err := c.load()
	if err != nil {
		return fail(err)
	}
	qty, err := parseQuantity(f.Arg(1))
	if err != nil {
		return fail(err)
	}
	day, err := c.day()
	if err != nil {
		return fail(err)
	}
	sec, err := c.security(account, f.Arg(0))
	if err != nil {
		return fail(err)
	}

	report, err := account.ExecuteSell(sec, qty, day)
	if err != nil {
		return fail(err)
	}
	if err := c.save(account); err != nil {
		return fail(err)
	}
	fmt.Print(brokerage.RenderSaleReport(report))
	fmt.Printf("cash %s\n", account.Cash().StringFixed(2))
	return subcommands.ExitSuccess
}
