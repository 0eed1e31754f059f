package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type buyCmd struct {
	tradeFlags
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy a quantity of a security at the current price" }
func (*buyCmd) Usage() string {
	return `bkr buy [-f <account>] [-kind <kind>] [-price <p>] [-storage <c>] [-spread <s>] [-d <date>] <TICKER> <QUANTITY>

  Executes a buy immediately: debits cash by the full purchase cost and
  appends a purchase lot at the effective unit cost. The kind flags are only
  needed the first time a ticker is traded.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.tradeFlags.setFlags(f) }

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if err := account.ExecuteBuy(sec, qty, day); err != nil {
		return fail(err)
	}
	if err := c.save(account); err != nil {
		return fail(err)
	}
	fmt.Printf("bought %s %s, cash %s\n", qty, sec.Ticker(), account.Cash().StringFixed(2))
	return subcommands.ExitSuccess
}
