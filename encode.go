package brokerage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/brokerage/date"
	"github.com/shopspring/decimal"
)

// The account text format is line oriented, pipe delimited, UTF-8:
//
//	HEADER|CASH|<cash:2dp>
//	ASSET|<KIND>|<TICKER>|<quantity>|<price:2dp>[|<param:4dp>]
//	LOT|<ISO date>|<quantity>|<unit cost:6dp>
//
// The header comes first and exactly once. LOT lines belong to the
// preceding ASSET line, oldest first. The kind parameter is the storage
// cost for commodities and the spread for currencies; equities have none.

// EncodeAccount writes the account in its text format. Positions are
// written in report order so the output is deterministic.
func EncodeAccount(w io.Writer, a *Account) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "HEADER|CASH|%s\n", a.Cash().StringFixed(2))

	for _, p := range SortedPositions(a) {
		sec := p.Security()
		fmt.Fprintf(bw, "ASSET|%s|%s|%s|%s", sec.Kind(), sec.Ticker(), p.TotalQuantity(), sec.Price().StringFixed(2))
		switch sec.Kind() {
		case Commodity:
			fmt.Fprintf(bw, "|%s", sec.StorageCost().StringFixed(4))
		case Currency:
			fmt.Fprintf(bw, "|%s", sec.Spread().StringFixed(4))
		}
		fmt.Fprintln(bw)

		for _, lot := range p.Lots() {
			fmt.Fprintf(bw, "LOT|%s|%s|%s\n", lot.Date, lot.Quantity, lot.UnitCost.StringFixed(6))
		}
	}
	return bw.Flush()
}

// DecodeAccount reads an account from its text format. Any malformed line,
// negative number, unknown prefix or declared-vs-summed quantity mismatch
// aborts the whole load: no partial account is ever returned.
func DecodeAccount(r io.Reader) (*Account, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading account: %w", err)
		}
		return nil, fmt.Errorf("account file is empty: %w", ErrDataIntegrity)
	}
	cash, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, err
	}
	account, err := NewAccount(cash)
	if err != nil {
		return nil, err
	}

	var current *Position
	var declared, summed Quantity

	// flush checks the pending position's declared quantity and attaches it.
	flush := func() error {
		if current == nil {
			return nil
		}
		if !summed.Equal(declared) {
			return fmt.Errorf("asset %s declares quantity %s but lots sum to %s: %w",
				current.Security().Ticker(), declared, summed, ErrDataIntegrity)
		}
		if summed.IsZero() {
			// An empty position never survives a sale, so it cannot appear in a saved account.
			return fmt.Errorf("asset %s holds no lots: %w", current.Security().Ticker(), ErrDataIntegrity)
		}
		return account.restorePosition(current)
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "HEADER|"):
			return nil, fmt.Errorf("header line must come first and only once: %w", ErrDataIntegrity)

		case strings.HasPrefix(line, "ASSET|"):
			if err := flush(); err != nil {
				return nil, err
			}
			current, declared, err = parseAsset(line)
			if err != nil {
				return nil, err
			}
			summed = Quantity{}

		case strings.HasPrefix(line, "LOT|"):
			if current == nil {
				return nil, fmt.Errorf("lot line %q before any asset line: %w", line, ErrDataIntegrity)
			}
			day, qty, unitCost, err := parseLot(line)
			if err != nil {
				return nil, err
			}
			if err := current.AddLot(day, qty, unitCost); err != nil {
				return nil, fmt.Errorf("invalid lot line %q: %w", line, err)
			}
			summed = summed.Add(qty)

		default:
			return nil, fmt.Errorf("unknown line %q: %w", line, ErrDataIntegrity)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading account: %w", err)
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return account, nil
}

// SaveAccount writes the account to a file.
func SaveAccount(path string, a *Account) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not open account file %q for writing: %w", path, err)
	}
	defer f.Close()
	if err := EncodeAccount(f, a); err != nil {
		return fmt.Errorf("could not write account file %q: %w", path, err)
	}
	return nil
}

// LoadAccount reads an account from a file.
func LoadAccount(path string) (*Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open account file %q: %w", path, err)
	}
	defer f.Close()
	a, err := DecodeAccount(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode account file %q: %w", path, err)
	}
	return a, nil
}

func parseHeader(line string) (Money, error) {
	fields := strings.Split(line, "|")
	if len(fields) != 3 || fields[0] != "HEADER" || fields[1] != "CASH" {
		return Money{}, fmt.Errorf("bad header line %q: %w", line, ErrDataIntegrity)
	}
	return parseMoney(fields[2])
}

func parseAsset(line string) (*Position, Quantity, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 5 {
		return nil, Quantity{}, fmt.Errorf("bad asset line %q: %w", line, ErrDataIntegrity)
	}

	kind, err := ParseKind(fields[1])
	if err != nil {
		return nil, Quantity{}, fmt.Errorf("bad asset line %q: %w", line, ErrDataIntegrity)
	}
	ticker := fields[2]
	declared, err := parseQuantity(fields[3])
	if err != nil {
		return nil, Quantity{}, fmt.Errorf("bad asset line %q: %w", line, err)
	}
	price, err := parseMoney(fields[4])
	if err != nil {
		return nil, Quantity{}, fmt.Errorf("bad asset line %q: %w", line, err)
	}

	var sec *Security
	switch kind {
	case Equity:
		if len(fields) != 5 {
			return nil, Quantity{}, fmt.Errorf("equity line %q takes no parameter: %w", line, ErrDataIntegrity)
		}
		sec, err = NewEquity(ticker, price)
	case Commodity:
		if len(fields) != 6 {
			return nil, Quantity{}, fmt.Errorf("commodity line %q needs a storage cost: %w", line, ErrDataIntegrity)
		}
		var storage Money
		if storage, err = parseMoney(fields[5]); err == nil {
			sec, err = NewCommodity(ticker, price, storage)
		}
	case Currency:
		if len(fields) != 6 {
			return nil, Quantity{}, fmt.Errorf("currency line %q needs a spread: %w", line, ErrDataIntegrity)
		}
		var spread Money
		if spread, err = parseMoney(fields[5]); err == nil {
			sec, err = NewCurrencyPair(ticker, price, spread)
		}
	}
	if err != nil {
		return nil, Quantity{}, fmt.Errorf("bad asset line %q: %w", line, err)
	}

	position, err := NewPosition(sec)
	if err != nil {
		return nil, Quantity{}, err
	}
	return position, declared, nil
}

func parseLot(line string) (Date, Quantity, Money, error) {
	fields := strings.Split(line, "|")
	if len(fields) != 4 {
		return Date{}, Quantity{}, Money{}, fmt.Errorf("bad lot line %q: %w", line, ErrDataIntegrity)
	}
	day, err := date.Parse(fields[1])
	if err != nil {
		return Date{}, Quantity{}, Money{}, fmt.Errorf("bad lot line %q: %w: %v", line, ErrDataIntegrity, err)
	}
	qty, err := parseQuantity(fields[2])
	if err != nil {
		return Date{}, Quantity{}, Money{}, fmt.Errorf("bad lot line %q: %w", line, err)
	}
	unitCost, err := parseMoney(fields[3])
	if err != nil {
		return Date{}, Quantity{}, Money{}, fmt.Errorf("bad lot line %q: %w", line, err)
	}
	return day, qty, unitCost, nil
}

// parseQuantity parses a whole, non-negative quantity field.
func parseQuantity(raw string) (Quantity, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("bad quantity %q: %w", raw, ErrDataIntegrity)
	}
	if v < 0 {
		return Quantity{}, fmt.Errorf("negative quantity %q: %w", raw, ErrDataIntegrity)
	}
	return Q(v), nil
}

// parseMoney parses a non-negative decimal amount.
func parseMoney(raw string) (Money, error) {
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, fmt.Errorf("bad amount %q: %w", raw, ErrDataIntegrity)
	}
	if v.IsNegative() {
		return Money{}, fmt.Errorf("negative amount %q: %w", raw, ErrDataIntegrity)
	}
	return M(v, ""), nil
}
