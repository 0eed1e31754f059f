package brokerage

// LotSale records the part of a sale taken from a single purchase lot.
type LotSale struct {
	LotDate       Date
	Quantity      Quantity // quantity taken from this lot
	UnitCost      Money    // the lot's unit cost basis
	ProfitAndLoss Money    // Quantity * (unit proceeds - UnitCost)
}

// SaleReport describes one sell execution: which lots were consumed, in FIFO
// order, and the profit or loss each slice realized.
type SaleReport struct {
	Ticker       string
	SaleDate     Date
	Quantity     Quantity // total quantity sold
	UnitProceeds Money    // per-unit sale proceeds, friction included
	Sales        []LotSale

	total Money
}

// add appends a per-lot result and accumulates the total.
func (r *SaleReport) add(s LotSale) {
	r.Sales = append(r.Sales, s)
	r.total = r.total.Add(s.ProfitAndLoss)
}

// TotalProfitAndLoss returns the sum of the per-lot results.
func (r *SaleReport) TotalProfitAndLoss() Money { return r.total }
