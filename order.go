package brokerage

import (
	"fmt"
	"slices"
)

// Side is the direction of an order.
type Side int

const (
	Buy Side = iota
	Sell
)

// String returns the side token used in reports and the CLI.
func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// ParseSide parses a side token, case sensitive.
func ParseSide(s string) (Side, error) {
	switch s {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	}
	return 0, fmt.Errorf("unknown order side %q: %w", s, ErrInvalidArgument)
}

// Order is an immutable intent to trade a quantity at a limit price. The
// market price of the security is captured at submission time, and the order
// settles against that snapshot, not against any later price.
type Order struct {
	sequence uint64
	side     Side
	security *Security
	quantity Quantity
	limit    Money
	snapshot Money // market price captured at submission
	day      Date
}

func newOrder(sequence uint64, side Side, security *Security, quantity Quantity, limit, snapshot Money, day Date) (Order, error) {
	if security == nil {
		return Order{}, fmt.Errorf("order needs a security: %w", ErrInvalidArgument)
	}
	if day.IsZero() {
		return Order{}, fmt.Errorf("order date is missing: %w", ErrInvalidArgument)
	}
	if !quantity.IsPositive() {
		return Order{}, fmt.Errorf("order quantity must be positive, got %s: %w", quantity, ErrInvalidArgument)
	}
	if limit.IsNegative() || snapshot.IsNegative() {
		return Order{}, fmt.Errorf("order prices cannot be negative: %w", ErrInvalidArgument)
	}
	return Order{
		sequence: sequence,
		side:     side,
		security: security,
		quantity: quantity,
		limit:    limit,
		snapshot: snapshot,
		day:      day,
	}, nil
}

// Sequence returns the submission sequence number, unique per account.
func (o Order) Sequence() uint64 { return o.sequence }

// Side returns the order direction.
func (o Order) Side() Side { return o.side }

// Security returns the security the order trades.
func (o Order) Security() *Security { return o.security }

// Quantity returns the quantity to trade.
func (o Order) Quantity() Quantity { return o.quantity }

// Limit returns the limit price.
func (o Order) Limit() Money { return o.limit }

// Snapshot returns the market price captured when the order was placed.
func (o Order) Snapshot() Money { return o.snapshot }

// Date returns the order's business date.
func (o Order) Date() Date { return o.day }

// Executable reports whether the order can settle against its captured
// market price: a buy requires limit >= snapshot, a sell limit <= snapshot.
func (o Order) Executable() bool {
	if o.side == Buy {
		return o.limit.GreaterThanOrEqual(o.snapshot)
	}
	return o.limit.LessThanOrEqual(o.snapshot)
}

// compareOrders is the attractiveness ranking: a strict total order over
// orders, ascending from most to least attractive.
//
// Buys rank before sells. Among buys the higher limit ranks first, among
// sells the lower limit ranks first, and the lower sequence number breaks
// remaining ties so that submission order is preserved.
func compareOrders(a, b Order) int {
	if a.side != b.side {
		return int(a.side) - int(b.side)
	}
	var c int
	if a.side == Buy {
		c = b.limit.Compare(a.limit)
	} else {
		c = a.limit.Compare(b.limit)
	}
	if c != 0 {
		return c
	}
	switch {
	case a.sequence < b.sequence:
		return -1
	case a.sequence > b.sequence:
		return 1
	}
	return 0
}

// orderQueue keeps pending orders sorted by attractiveness. Insertion is by
// binary search so the queue order never depends on arrival history beyond
// the sequence tie-break.
type orderQueue struct {
	orders []Order
}

func (q *orderQueue) len() int { return len(q.orders) }

// insert places the order at its ranked position.
func (q *orderQueue) insert(o Order) {
	i, _ := slices.BinarySearchFunc(q.orders, o, compareOrders)
	q.orders = slices.Insert(q.orders, i, o)
}

// popHead removes and returns the most attractive order.
func (q *orderQueue) popHead() (Order, bool) {
	if len(q.orders) == 0 {
		return Order{}, false
	}
	head := q.orders[0]
	q.orders = q.orders[1:]
	return head, true
}

// peek returns the most attractive order without removing it.
func (q *orderQueue) peek() (Order, bool) {
	if len(q.orders) == 0 {
		return Order{}, false
	}
	return q.orders[0], true
}

// snapshot returns a copy of the queue content, most attractive first.
func (q *orderQueue) snapshot() []Order {
	out := make([]Order, len(q.orders))
	copy(out, q.orders)
	return out
}
