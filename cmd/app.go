// Package cmd implements the subcommands of the bkr command-line tool.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/brokerage"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// Commands lists all bkr subcommands in registration order.
var Commands = []subcommands.Command{
	&initCmd{},
	&buyCmd{},
	&sellCmd{},
	&placeCmd{},
	&processCmd{},
	&ordersCmd{},
	&reportCmd{},
	&reviewCmd{},
	&networthCmd{},
	&watchCmd{},
	&unwatchCmd{},
}

// accountFlags holds the flags shared by every command that touches the
// account on disk. The account file is the canonical pipe-delimited format;
// pending orders and the watchlist are boundary state kept in sidecar files.
type accountFlags struct {
	accountFile string
	ordersFile  string
	watchFile   string
}

func (a *accountFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&a.accountFile, "f", "account.txt", "Path to the account file.")
	f.StringVar(&a.ordersFile, "orders", "orders.jsonl", "Path to the pending orders file.")
	f.StringVar(&a.watchFile, "watchlist", "watchlist.txt", "Path to the watchlist file.")
}

// load reads the account and its watchlist.
func (a *accountFlags) load() (*brokerage.Account, error) {
	account, err := brokerage.LoadAccount(a.accountFile)
	if err != nil {
		return nil, err
	}
	if err := readWatchlist(a.watchFile, account); err != nil {
		return nil, err
	}
	return account, nil
}

// save writes the account and its watchlist back.
func (a *accountFlags) save(account *brokerage.Account) error {
	if err := brokerage.SaveAccount(a.accountFile, account); err != nil {
		return err
	}
	return writeWatchlist(a.watchFile, account)
}

func readWatchlist(path string, account *brokerage.Account) error {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not read watchlist file %q: %w", path, err)
	}
	for _, line := range strings.Split(string(content), "\n") {
		ticker := strings.TrimSpace(line)
		if ticker == "" {
			continue
		}
		if _, err := account.Watch(ticker); err != nil {
			return err
		}
	}
	return nil
}

func writeWatchlist(path string, account *brokerage.Account) error {
	var sb strings.Builder
	for _, ticker := range account.Watchlist() {
		sb.WriteString(ticker)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("could not write watchlist file %q: %w", path, err)
	}
	return nil
}

// tradeFlags extends accountFlags for commands that name a security: the
// kind and its parameters are only needed the first time a ticker is traded,
// afterwards the account file definition wins.
type tradeFlags struct {
	accountFlags
	kind    string
	price   string
	storage string
	spread  string
	date    string
}

func (t *tradeFlags) setFlags(f *flag.FlagSet) {
	t.accountFlags.setFlags(f)
	f.StringVar(&t.kind, "kind", "equity", "Security kind: equity, commodity or currency.")
	f.StringVar(&t.price, "price", "", "Current market price. Overrides the stored price when set.")
	f.StringVar(&t.storage, "storage", "0", "Per-unit storage cost (commodities).")
	f.StringVar(&t.spread, "spread", "0", "Bid/ask spread (currencies).")
	f.StringVar(&t.date, "d", "", "Business date, defaults to today.")
}

// day resolves the -d flag, defaulting to today.
func (t *tradeFlags) day() (brokerage.Date, error) {
	if t.date == "" {
		return brokerage.Today(), nil
	}
	return brokerage.ParseDate(t.date)
}

// security resolves a ticker to a security: the held position's security
// when one exists, otherwise a new one built from the kind flags. The -price
// flag, when set, updates the live market price either way.
func (t *tradeFlags) security(account *brokerage.Account, ticker string) (*brokerage.Security, error) {
	if p := account.Position(ticker); p != nil {
		sec := p.Security()
		if t.price != "" {
			price, err := parseMoney(t.price)
			if err != nil {
				return nil, err
			}
			if err := sec.SetPrice(price); err != nil {
				return nil, err
			}
		}
		return sec, nil
	}

	if t.price == "" {
		return nil, fmt.Errorf("no position in %s: -price is required to define it", ticker)
	}
	price, err := parseMoney(t.price)
	if err != nil {
		return nil, err
	}
	kind, err := brokerage.ParseKind(strings.ToUpper(t.kind))
	if err != nil {
		return nil, err
	}
	switch kind {
	case brokerage.Commodity:
		storage, err := parseMoney(t.storage)
		if err != nil {
			return nil, err
		}
		return brokerage.NewCommodity(ticker, price, storage)
	case brokerage.Currency:
		spread, err := parseMoney(t.spread)
		if err != nil {
			return nil, err
		}
		return brokerage.NewCurrencyPair(ticker, price, spread)
	default:
		return brokerage.NewEquity(ticker, price)
	}
}

func parseMoney(s string) (brokerage.Money, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return brokerage.Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return brokerage.M(v, ""), nil
}

func parseQuantity(s string) (brokerage.Quantity, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return brokerage.Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return brokerage.Q(v), nil
}

// fail prints the error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
