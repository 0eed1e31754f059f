package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/brokerage"
	"github.com/google/subcommands"
)

type placeCmd struct {
	tradeFlags
	side  string
	limit string
}

func (*placeCmd) Name() string     { return "place" }
func (*placeCmd) Synopsis() string { return "enqueue a limit order without executing it" }
func (*placeCmd) Usage() string {
	return `bkr place -side <buy|sell> -limit <p> [-f <account>] [-price <p>] [-d <date>] <TICKER> <QUANTITY>

  Places a limit order in the pending queue, ranked by attractiveness. The
  security's current market price is captured on the order; nothing executes
  until 'bkr process' is called.
`
}

func (c *placeCmd) SetFlags(f *flag.FlagSet) {
	c.tradeFlags.setFlags(f)
	f.StringVar(&c.side, "side", "buy", "Order side: buy or sell.")
	f.StringVar(&c.limit, "limit", "", "Limit price.")
}

func (c *placeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 || c.limit == "" {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
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

	side, err := brokerage.ParseSide(strings.ToUpper(c.side))
	if err != nil {
		return fail(err)
	}
	qty, err := parseQuantity(f.Arg(1))
	if err != nil {
		return fail(err)
	}
	limit, err := parseMoney(c.limit)
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

	if err := account.PlaceOrder(side, sec, qty, limit, day); err != nil {
		return fail(err)
	}
	if err := writeOrders(c.ordersFile, account); err != nil {
		return fail(err)
	}
	if err := c.save(account); err != nil {
		return fail(err)
	}
	fmt.Printf("placed %s %s %s limit %s\n", side, qty, sec.Ticker(), limit.StringFixed(2))
	return subcommands.ExitSuccess
}
