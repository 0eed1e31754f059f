package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type ordersCmd struct {
	accountFlags
}

func (*ordersCmd) Name() string     { return "orders" }
func (*ordersCmd) Synopsis() string { return "list pending orders, most attractive first" }
func (*ordersCmd) Usage() string {
	return `bkr orders [-f <account>]

  Lists the pending orders in attractiveness order.
`
}

func (c *ordersCmd) SetFlags(f *flag.FlagSet) { c.accountFlags.setFlags(f) }

func (c *ordersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	for _, o := range account.PendingOrders() {
		fmt.Printf("%d|%s|%s|%s|limit %s|snapshot %s|%s\n",
			o.Sequence(), o.Side(), o.Security().Ticker(), o.Quantity(),
			o.Limit().StringFixed(2), o.Snapshot().StringFixed(2), o.Date())
	}
	return subcommands.ExitSuccess
}
