package brokerage

import (
	"fmt"
	"maps"
	"slices"
)

// Account is a single-owner trading account: a cash balance, one position
// per held ticker, a watchlist and a queue of pending orders ranked by
// attractiveness.
//
// All operations are synchronous and run to completion; the account defines
// no locking of its own. A concurrent wrapper must serialize every mutating
// call on a single boundary, since lot consumption and cash movements are
// not composable across calls.
type Account struct {
	cash      Money
	positions map[string]*Position
	watchlist map[string]bool
	pending   orderQueue
	nextSeq   uint64
}

// NewAccount creates an account holding the given initial cash.
func NewAccount(initialCash Money) (*Account, error) {
	if initialCash.IsNegative() {
		return nil, fmt.Errorf("initial cash cannot be negative, got %s: %w", initialCash.StringFixed(2), ErrInvalidArgument)
	}
	return &Account{
		cash:      initialCash,
		positions: make(map[string]*Position),
		watchlist: make(map[string]bool),
		nextSeq:   1,
	}, nil
}

// Cash returns the current cash balance. It never goes negative: every
// debit is preceded by a sufficiency check.
func (a *Account) Cash() Money { return a.cash }

// Quantity returns the held quantity for a ticker, zero when no position exists.
func (a *Account) Quantity(ticker string) Quantity {
	p, ok := a.positions[ticker]
	if !ok {
		return Quantity{}
	}
	return p.TotalQuantity()
}

// Position returns the position held for a ticker, or nil.
func (a *Account) Position(ticker string) *Position { return a.positions[ticker] }

// Positions returns the held positions in no particular order.
func (a *Account) Positions() []*Position {
	return slices.Collect(maps.Values(a.positions))
}

// NetWorth returns cash plus the net liquidation value of every position.
// It is recomputed on every call, never cached.
func (a *Account) NetWorth() Money {
	sum := a.cash
	for _, p := range a.positions {
		sum = sum.Add(p.RealValue())
	}
	return sum
}

// MarketWorth returns cash plus the market value of every position.
func (a *Account) MarketWorth() Money {
	sum := a.cash
	for _, p := range a.positions {
		sum = sum.Add(p.MarketValue())
	}
	return sum
}

// Watch adds a ticker to the watchlist. It reports whether the ticker was
// not already watched.
func (a *Account) Watch(ticker string) (bool, error) {
	if ticker == "" {
		return false, fmt.Errorf("ticker cannot be blank: %w", ErrInvalidArgument)
	}
	if a.watchlist[ticker] {
		return false, nil
	}
	a.watchlist[ticker] = true
	return true, nil
}

// Unwatch removes a ticker from the watchlist and reports whether it was there.
func (a *Account) Unwatch(ticker string) (bool, error) {
	if ticker == "" {
		return false, fmt.Errorf("ticker cannot be blank: %w", ErrInvalidArgument)
	}
	if !a.watchlist[ticker] {
		return false, nil
	}
	delete(a.watchlist, ticker)
	return true, nil
}

// Watchlist returns the watched tickers, sorted.
func (a *Account) Watchlist() []string {
	return slices.Sorted(maps.Keys(a.watchlist))
}

// PlaceOrder validates and enqueues an order. The security's current market
// price is captured on the order, and the next sequence number is assigned.
// Nothing executes until ProcessNextExecutableOrder is called.
func (a *Account) PlaceOrder(side Side, security *Security, quantity Quantity, limit Money, day Date) error {
	if security == nil {
		return fmt.Errorf("order needs a security: %w", ErrInvalidArgument)
	}
	o, err := newOrder(a.nextSeq, side, security, quantity, limit, security.Price(), day)
	if err != nil {
		return err
	}
	a.nextSeq++
	a.pending.insert(o)
	return nil
}

// RestoreOrder re-enqueues an order with a previously captured market price
// snapshot, assigning a fresh sequence number. It exists for boundary code
// that persists the pending queue; restoring orders in their ranked order
// preserves the original tie-breaks.
func (a *Account) RestoreOrder(side Side, security *Security, quantity Quantity, limit, snapshot Money, day Date) error {
	o, err := newOrder(a.nextSeq, side, security, quantity, limit, snapshot, day)
	if err != nil {
		return err
	}
	a.nextSeq++
	a.pending.insert(o)
	return nil
}

// PendingOrders returns a copy of the pending orders, most attractive first.
func (a *Account) PendingOrders() []Order { return a.pending.snapshot() }

// PeekNextOrder returns the most attractive pending order.
func (a *Account) PeekNextOrder() (Order, bool) { return a.pending.peek() }

// ProcessNextExecutableOrder scans pending orders from most to least
// attractive and executes the first one whose limit tolerates its captured
// market price. Orders examined before it are put back unchanged. When
// nothing is executable, the queue content and order are left as they were.
//
// Before executing, the security's live price is reset to the order's
// snapshot so the trade settles at the price that was attractive at
// decision time.
//
// The report is nil for a buy execution and for the no-op case: buys never
// realize profit or loss.
func (a *Account) ProcessNextExecutableOrder() (report *SaleReport, err error) {
	var skipped []Order

	for a.pending.len() > 0 {
		o, _ := a.pending.popHead()
		if !o.Executable() {
			skipped = append(skipped, o)
			continue
		}
		report, err = a.executeOrder(o)
		break
	}

	// Skipped orders go back whether or not anything executed.
	for _, o := range skipped {
		a.pending.insert(o)
	}
	return report, err
}

func (a *Account) executeOrder(o Order) (*SaleReport, error) {
	// Settle at the captured price, not whatever the live price drifted to.
	if err := o.Security().SetPrice(o.Snapshot()); err != nil {
		return nil, err
	}
	if o.Side() == Buy {
		return nil, a.ExecuteBuy(o.Security(), o.Quantity(), o.Date())
	}
	return a.ExecuteSell(o.Security(), o.Quantity(), o.Date())
}

// ExecuteBuy buys a quantity at the security's current price, debiting cash
// by the full purchase cost and appending a lot at the effective unit cost
// (cost divided by quantity, so friction is part of the cost basis).
func (a *Account) ExecuteBuy(security *Security, quantity Quantity, day Date) error {
	if err := checkTrade(security, quantity, day); err != nil {
		return err
	}

	cost := security.PurchaseCost(quantity)
	if a.cash.LessThan(cost) {
		return fmt.Errorf("cannot buy %s %s for %s, cash balance is %s: %w",
			quantity, security.Ticker(), cost.StringFixed(2), a.cash.StringFixed(2), ErrInsufficientFunds)
	}

	position, ok := a.positions[security.Ticker()]
	if !ok {
		p, err := NewPosition(security)
		if err != nil {
			return err
		}
		position = p
	}
	if err := position.AddLot(day, quantity, cost.Div(quantity)); err != nil {
		return err
	}
	a.positions[security.Ticker()] = position
	a.cash = a.cash.Sub(cost)
	return nil
}

// ExecuteSell sells a quantity at the security's current price, consuming
// lots FIFO, crediting cash with the full proceeds and removing the
// position once empty. The report details the per-lot realized P&L.
func (a *Account) ExecuteSell(security *Security, quantity Quantity, day Date) (*SaleReport, error) {
	if err := checkTrade(security, quantity, day); err != nil {
		return nil, err
	}

	position, ok := a.positions[security.Ticker()]
	if !ok || !position.TotalQuantity().IsPositive() {
		return nil, fmt.Errorf("no position in %s to sell: %w", security.Ticker(), ErrInsufficientHoldings)
	}

	proceeds := security.SaleProceeds(quantity)
	report, err := position.SellFIFO(day, quantity, proceeds.Div(quantity))
	if err != nil {
		return nil, err
	}

	a.cash = a.cash.Add(proceeds)
	if position.TotalQuantity().IsZero() {
		delete(a.positions, security.Ticker())
	}
	return report, nil
}

// restorePosition appends a fully built position, used by the account
// decoder. A duplicate ticker means the source data is inconsistent.
func (a *Account) restorePosition(p *Position) error {
	ticker := p.Security().Ticker()
	if _, ok := a.positions[ticker]; ok {
		return fmt.Errorf("duplicate position for %s: %w", ticker, ErrDataIntegrity)
	}
	a.positions[ticker] = p
	return nil
}

func checkTrade(security *Security, quantity Quantity, day Date) error {
	if security == nil {
		return fmt.Errorf("trade needs a security: %w", ErrInvalidArgument)
	}
	if day.IsZero() {
		return fmt.Errorf("trade date is missing: %w", ErrInvalidArgument)
	}
	if !quantity.IsPositive() {
		return fmt.Errorf("trade quantity must be positive, got %s: %w", quantity, ErrInvalidArgument)
	}
	return nil
}
