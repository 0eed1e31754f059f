package brokerage

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies the pricing behavior of a security. The set is closed:
// every security is exactly one of equity, commodity or currency.
type Kind int

const (
	Equity Kind = iota
	Commodity
	Currency
)

// String returns the kind token used in the account text format and reports.
func (k Kind) String() string {
	switch k {
	case Equity:
		return "EQUITY"
	case Commodity:
		return "COMMODITY"
	case Currency:
		return "CURRENCY"
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// ParseKind parses a kind token as found in the account text format.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "EQUITY":
		return Equity, nil
	case "COMMODITY":
		return Commodity, nil
	case "CURRENCY":
		return Currency, nil
	}
	return 0, fmt.Errorf("unknown security kind %q: %w", s, ErrInvalidArgument)
}

// Friction parameters, per kind.
var (
	minCommission    = decimal.NewFromInt(5)       // equity commission floor
	commissionRate   = decimal.NewFromFloat(0.005) // equity commission rate
	storageThreshold = Q(100)                      // above it, storage cost is penalized
	storagePenalty   = decimal.NewFromFloat(1.2)
	spreadThreshold  = Q(1000) // at or above it, the spread is discounted
	spreadDiscount   = decimal.NewFromFloat(0.8)
)

// Security is a tradeable instrument with a mutable current market price.
//
// The security does not hold any ownership state: quantities live in the
// account's purchase lots. Its pricing methods are pure functions of a
// quantity and the current price.
type Security struct {
	ticker string
	kind   Kind
	price  Money // current market price per unit

	storageCost Money // per unit, commodities only
	spread      Money // currencies only
}

func newSecurity(kind Kind, ticker string, price Money) (*Security, error) {
	if strings.TrimSpace(ticker) == "" {
		return nil, fmt.Errorf("ticker cannot be blank: %w", ErrInvalidArgument)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("market price for %q cannot be negative: %w", ticker, ErrInvalidArgument)
	}
	return &Security{ticker: ticker, kind: kind, price: price}, nil
}

// NewEquity returns an equity-like security. Trades carry a commission of
// 0.5% of the trade value with a 5.00 floor.
func NewEquity(ticker string, price Money) (*Security, error) {
	return newSecurity(Equity, ticker, price)
}

// NewCommodity returns a commodity-like security with a per-unit storage
// cost. Trades are frictionless but the liquidation value is net of storage.
func NewCommodity(ticker string, price, storageCostPerUnit Money) (*Security, error) {
	if storageCostPerUnit.IsNegative() {
		return nil, fmt.Errorf("storage cost for %q cannot be negative: %w", ticker, ErrInvalidArgument)
	}
	s, err := newSecurity(Commodity, ticker, price)
	if err != nil {
		return nil, err
	}
	s.storageCost = storageCostPerUnit
	return s, nil
}

// NewCurrencyPair returns a currency-like security quoted mid-market with a
// symmetric spread. Buys price at ask, sells at bid.
func NewCurrencyPair(ticker string, price, spread Money) (*Security, error) {
	if spread.IsNegative() {
		return nil, fmt.Errorf("spread for %q cannot be negative: %w", ticker, ErrInvalidArgument)
	}
	s, err := newSecurity(Currency, ticker, price)
	if err != nil {
		return nil, err
	}
	s.spread = spread
	return s, nil
}

// Ticker returns the security's ticker symbol.
func (s *Security) Ticker() string { return s.ticker }

// Kind returns the security's kind.
func (s *Security) Kind() Kind { return s.kind }

// Price returns the current market price per unit.
func (s *Security) Price() Money { return s.price }

// StorageCost returns the per-unit storage cost. Zero for non-commodities.
func (s *Security) StorageCost() Money { return s.storageCost }

// Spread returns the bid/ask spread. Zero for non-currencies.
func (s *Security) Spread() Money { return s.spread }

// SetPrice updates the current market price.
func (s *Security) SetPrice(price Money) error {
	if price.IsNegative() {
		return fmt.Errorf("market price for %q cannot be negative: %w", s.ticker, ErrInvalidArgument)
	}
	s.price = price
	return nil
}

// MarketValue returns price * quantity, with no friction applied.
func (s *Security) MarketValue(q Quantity) Money {
	return s.price.Mul(q)
}

// PurchaseCost returns the total cash outflow to acquire q units, friction
// included.
func (s *Security) PurchaseCost(q Quantity) Money {
	switch s.kind {
	case Equity:
		value := s.MarketValue(q)
		return value.Add(s.commission(value))
	case Currency:
		ask := s.price.Add(s.effectiveSpread(q))
		return ask.Mul(q)
	default:
		return s.MarketValue(q)
	}
}

// SaleProceeds returns the total cash inflow from disposing of q units,
// friction included, floored at zero.
func (s *Security) SaleProceeds(q Quantity) Money {
	switch s.kind {
	case Equity:
		value := s.MarketValue(q)
		return floorZero(value.Sub(s.commission(value)))
	case Currency:
		bid := s.price.Sub(s.effectiveSpread(q))
		return floorZero(bid.Mul(q))
	default:
		return s.MarketValue(q)
	}
}

// RealValue returns the net liquidation value of a q-unit holding: what an
// immediate full disposal would realize after kind-specific friction.
func (s *Security) RealValue(q Quantity) Money {
	if s.kind != Commodity {
		return s.SaleProceeds(q)
	}
	value := s.MarketValue(q).Sub(s.totalStorageCost(q))
	return floorZero(value)
}

// commission is the equity trade fee: rate of the trade value, floored.
func (s *Security) commission(tradeValue Money) Money {
	fee := tradeValue.value.Mul(commissionRate)
	if fee.LessThan(minCommission) {
		fee = minCommission
	}
	return Money{value: fee, cur: tradeValue.cur}
}

// effectiveSpread applies the volume discount above the threshold.
func (s *Security) effectiveSpread(q Quantity) Money {
	if q.GreaterThanOrEqual(spreadThreshold) {
		return Money{value: s.spread.value.Mul(spreadDiscount), cur: s.spread.cur}
	}
	return s.spread
}

// totalStorageCost is the commodity holding cost, penalized above the threshold.
func (s *Security) totalStorageCost(q Quantity) Money {
	base := s.storageCost.Mul(q)
	if q.GreaterThan(storageThreshold) {
		return Money{value: base.value.Mul(storagePenalty), cur: base.cur}
	}
	return base
}

func floorZero(m Money) Money {
	if m.IsNegative() {
		return Money{cur: m.cur}
	}
	return m
}
