package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/etnz/brokerage"
)

// orderRecord is the JSONL form of a pending order. It carries the security
// definition so the queue can be rebuilt even for tickers the account does
// not currently hold.
type orderRecord struct {
	Side     string `json:"side"`
	Kind     string `json:"kind"`
	Ticker   string `json:"ticker"`
	Quantity string `json:"quantity"`
	Limit    string `json:"limit"`
	Snapshot string `json:"snapshot"`
	Date     string `json:"date"`
	Price    string `json:"price"`
	Param    string `json:"param,omitempty"`
}

// readOrders loads the pending order records. A missing file is an empty queue.
func readOrders(path string) ([]orderRecord, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open orders file %q: %w", path, err)
	}
	defer f.Close()

	var records []orderRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var rec orderRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("could not decode orders file %q: %w", path, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read orders file %q: %w", path, err)
	}
	return records, nil
}

// restoreOrders re-enqueues persisted orders. Records are restored in file
// order, which is ranked order, so relative ties keep their submission order.
func restoreOrders(account *brokerage.Account, records []orderRecord) error {
	for _, rec := range records {
		side, err := brokerage.ParseSide(rec.Side)
		if err != nil {
			return err
		}
		qty, err := parseQuantity(rec.Quantity)
		if err != nil {
			return err
		}
		limit, err := parseMoney(rec.Limit)
		if err != nil {
			return err
		}
		snapshot, err := parseMoney(rec.Snapshot)
		if err != nil {
			return err
		}
		day, err := brokerage.ParseDate(rec.Date)
		if err != nil {
			return err
		}
		sec, err := recordSecurity(account, rec)
		if err != nil {
			return err
		}
		if err := account.RestoreOrder(side, sec, qty, limit, snapshot, day); err != nil {
			return err
		}
	}
	return nil
}

// recordSecurity resolves the record's ticker against the account first, so
// a held security stays a single instance, and rebuilds it otherwise.
func recordSecurity(account *brokerage.Account, rec orderRecord) (*brokerage.Security, error) {
	if p := account.Position(rec.Ticker); p != nil {
		return p.Security(), nil
	}

	kind, err := brokerage.ParseKind(rec.Kind)
	if err != nil {
		return nil, err
	}
	price, err := parseMoney(rec.Price)
	if err != nil {
		return nil, err
	}
	param := rec.Param
	if param == "" {
		param = "0"
	}
	switch kind {
	case brokerage.Commodity:
		storage, err := parseMoney(param)
		if err != nil {
			return nil, err
		}
		return brokerage.NewCommodity(rec.Ticker, price, storage)
	case brokerage.Currency:
		spread, err := parseMoney(param)
		if err != nil {
			return nil, err
		}
		return brokerage.NewCurrencyPair(rec.Ticker, price, spread)
	default:
		return brokerage.NewEquity(rec.Ticker, price)
	}
}

// writeOrders persists the pending queue, most attractive first.
func writeOrders(path string, account *brokerage.Account) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not open orders file %q for writing: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, o := range account.PendingOrders() {
		sec := o.Security()
		rec := orderRecord{
			Side:     o.Side().String(),
			Kind:     sec.Kind().String(),
			Ticker:   sec.Ticker(),
			Quantity: o.Quantity().String(),
			Limit:    o.Limit().StringFixed(6),
			Snapshot: o.Snapshot().StringFixed(6),
			Date:     o.Date().String(),
			Price:    sec.Price().StringFixed(6),
		}
		switch sec.Kind() {
		case brokerage.Commodity:
			rec.Param = sec.StorageCost().StringFixed(4)
		case brokerage.Currency:
			rec.Param = sec.Spread().StringFixed(4)
		}
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("could not encode order: %w", err)
		}
		w.Write(line)
		w.WriteByte('\n')
	}
	return w.Flush()
}
