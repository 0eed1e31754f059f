package brokerage

import (
	"fmt"
)

// Lot represents a single purchase of a security: the date it was acquired,
// the effective unit cost (friction included) and the quantity still held
// from it. Lots are consumed oldest-first on sale.
type Lot struct {
	Date     Date
	Quantity Quantity
	UnitCost Money
}

// Position holds one security's purchase lots, oldest first.
// The total quantity always equals the sum of the lot quantities.
type Position struct {
	security *Security
	lots     []Lot
	total    Quantity
}

// NewPosition creates an empty position for the given security.
func NewPosition(security *Security) (*Position, error) {
	if security == nil {
		return nil, fmt.Errorf("position needs a security: %w", ErrInvalidArgument)
	}
	return &Position{security: security}, nil
}

// Security returns the security this position is held in.
func (p *Position) Security() *Security { return p.security }

// TotalQuantity returns the summed quantity over all lots.
func (p *Position) TotalQuantity() Quantity { return p.total }

// Lots returns a copy of the purchase lots, oldest first.
func (p *Position) Lots() []Lot {
	out := make([]Lot, len(p.lots))
	copy(out, p.lots)
	return out
}

// MarketValue returns the position value at the current market price.
func (p *Position) MarketValue() Money { return p.security.MarketValue(p.total) }

// RealValue returns the net liquidation value of the position.
func (p *Position) RealValue() Money { return p.security.RealValue(p.total) }

// AddLot appends a purchase lot at the tail of the FIFO order.
func (p *Position) AddLot(day Date, quantity Quantity, unitCost Money) error {
	if day.IsZero() {
		return fmt.Errorf("lot date is missing: %w", ErrInvalidArgument)
	}
	if !quantity.IsPositive() {
		return fmt.Errorf("lot quantity must be positive, got %s: %w", quantity, ErrInvalidArgument)
	}
	if unitCost.IsNegative() {
		return fmt.Errorf("lot unit cost cannot be negative, got %s: %w", unitCost.StringFixed(6), ErrInvalidArgument)
	}
	p.lots = append(p.lots, Lot{Date: day, Quantity: quantity, UnitCost: unitCost})
	p.total = p.total.Add(quantity)
	return nil
}

// SellFIFO disposes of a quantity against the oldest lots first and returns
// the resulting sale report, one entry per lot touched.
//
// Each slice realizes taken * (unitProceeds - lot unit cost). Exhausted lots
// are removed. The lots running out while quantity remains would mean the
// total-quantity invariant is broken, so it panics instead of returning an
// error.
func (p *Position) SellFIFO(day Date, quantityToSell Quantity, unitProceeds Money) (*SaleReport, error) {
	if !quantityToSell.IsPositive() || quantityToSell.GreaterThan(p.total) {
		return nil, fmt.Errorf("cannot sell %s of %s, holding %s: %w",
			quantityToSell, p.security.Ticker(), p.total, ErrInsufficientHoldings)
	}

	report := &SaleReport{
		Ticker:       p.security.Ticker(),
		SaleDate:     day,
		Quantity:     quantityToSell,
		UnitProceeds: unitProceeds,
	}

	still := quantityToSell
	for still.IsPositive() {
		if len(p.lots) == 0 {
			panic(fmt.Sprintf("position %s: lots exhausted with %s still to sell, total quantity invariant broken",
				p.security.Ticker(), still))
		}
		head := &p.lots[0]

		taken := head.Quantity.Min(still)
		pnl := unitProceeds.Sub(head.UnitCost).Mul(taken)
		report.add(LotSale{
			LotDate:       head.Date,
			Quantity:      taken,
			UnitCost:      head.UnitCost,
			ProfitAndLoss: pnl,
		})

		head.Quantity = head.Quantity.Sub(taken)
		p.total = p.total.Sub(taken)
		still = still.Sub(taken)

		if head.Quantity.IsZero() {
			p.lots = p.lots[1:]
		}
	}

	return report, nil
}
