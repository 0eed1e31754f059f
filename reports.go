package brokerage

import (
	"slices"
	"strings"
)

// comparePositions is the report ordering: kind first (equity, commodity,
// currency), then descending market value, then ticker.
func comparePositions(a, b *Position) int {
	if c := int(a.Security().Kind()) - int(b.Security().Kind()); c != 0 {
		return c
	}
	if c := b.MarketValue().Compare(a.MarketValue()); c != 0 {
		return c
	}
	return strings.Compare(a.Security().Ticker(), b.Security().Ticker())
}

// SortedPositions returns the account's positions in report order.
func SortedPositions(a *Account) []*Position {
	positions := a.Positions()
	slices.SortFunc(positions, comparePositions)
	return positions
}

// RenderReport renders the account overview in its line format: the cash
// balance followed by one ASSET line per position, sorted by kind, then
// descending market value, then ticker.
func RenderReport(a *Account) string {
	var sb strings.Builder
	sb.WriteString("CASH|")
	sb.WriteString(a.Cash().StringFixed(2))
	sb.WriteByte('\n')

	for _, p := range SortedPositions(a) {
		sb.WriteString("ASSET|")
		sb.WriteString(p.Security().Kind().String())
		sb.WriteByte('|')
		sb.WriteString(p.Security().Ticker())
		sb.WriteByte('|')
		sb.WriteString(p.TotalQuantity().String())
		sb.WriteByte('|')
		sb.WriteString(p.MarketValue().StringFixed(2))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderSaleReport renders a sale report with one line per consumed lot.
func RenderSaleReport(r *SaleReport) string {
	var sb strings.Builder
	sb.WriteString("SALE|")
	sb.WriteString(r.Ticker)
	sb.WriteByte('|')
	sb.WriteString(r.SaleDate.String())
	sb.WriteByte('|')
	sb.WriteString(r.Quantity.String())
	sb.WriteByte('|')
	sb.WriteString(r.UnitProceeds.StringFixed(6))
	sb.WriteByte('\n')
	for _, s := range r.Sales {
		sb.WriteString("FROM|")
		sb.WriteString(s.LotDate.String())
		sb.WriteByte('|')
		sb.WriteString(s.Quantity.String())
		sb.WriteByte('|')
		sb.WriteString(s.UnitCost.StringFixed(6))
		sb.WriteByte('|')
		sb.WriteString(s.ProfitAndLoss.StringFixed(2))
		sb.WriteByte('\n')
	}
	sb.WriteString("TOTAL|")
	sb.WriteString(r.TotalProfitAndLoss().StringFixed(2))
	sb.WriteByte('\n')
	return sb.String()
}
