package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/brokerage"
	"github.com/etnz/brokerage/renderer"
	"github.com/google/subcommands"
)

type reviewCmd struct {
	accountFlags
	date string
	raw  bool
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "render a readable account review" }
func (*reviewCmd) Usage() string {
	return `bkr review [-f <account>] [-d <date>] [-raw]

  Renders a markdown review of the account: cash, worth, positions, pending
  orders and watchlist. By default the markdown is styled for the terminal.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	c.accountFlags.setFlags(f)
	f.StringVar(&c.date, "d", "", "Review date, defaults to today.")
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown instead of styled output.")
}

func (c *reviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	on := brokerage.Today()
	if c.date != "" {
		if on, err = brokerage.ParseDate(c.date); err != nil {
			return fail(err)
		}
	}

	md := renderer.RenderReview(renderer.NewReview(account, on))
	if c.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		return fail(err)
	}
	fmt.Print(out)
	return subcommands.ExitSuccess
}
