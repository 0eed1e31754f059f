package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/brokerage"
	"github.com/google/subcommands"
)

type processCmd struct {
	accountFlags
}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "execute the next executable pending order" }
func (*processCmd) Usage() string {
	return `bkr process [-f <account>]

  Scans pending orders from most to least attractive and executes the first
  one whose limit tolerates its captured market price. Prints the sale
  report when the executed order was a sell.
`
}

func (c *processCmd) SetFlags(f *flag.FlagSet) { c.accountFlags.setFlags(f) }

func (c *processCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	account, err := c.load()
	if err != nil {
		return fail(err)
	}
	records, err := readOrders(c.ordersFile)
	if err != nil {
		return fail(err)
	}
	if err := restoreOrders(account, records); err != nil {
		return fail(err)
	}

	before := len(account.PendingOrders())
	report, err := account.ProcessNextExecutableOrder()
	if err != nil {
		return fail(err)
	}

	if err := writeOrders(c.ordersFile, account); err != nil {
		return fail(err)
	}
	if err := c.save(account); err != nil {
		return fail(err)
	}

	switch {
	case report != nil:
		fmt.Print(brokerage.RenderSaleReport(report))
		fmt.Printf("cash %s\n", account.Cash().StringFixed(2))
	case len(account.PendingOrders()) < before:
		fmt.Printf("executed buy order, cash %s\n", account.Cash().StringFixed(2))
	default:
		fmt.Println("no executable order")
	}
	return subcommands.ExitSuccess
}
