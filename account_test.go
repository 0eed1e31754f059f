package brokerage

import (
	"errors"
	"testing"

	"github.com/etnz/brokerage/date"
)

func TestNewAccount(t *testing.T) {
	if _, err := NewAccount(M(-1, "")); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewAccount(-1) err = %v, want ErrInvalidArgument", err)
	}
	a, err := NewAccount(M(1000, ""))
	if err != nil {
		t.Fatal(err)
	}
	if !a.Cash().Equal(M(1000, "")) {
		t.Errorf("Cash = %s, want 1000", a.Cash())
	}
	if !a.NetWorth().Equal(M(1000, "")) {
		t.Errorf("NetWorth = %s, want 1000", a.NetWorth())
	}
}

func mustAccount(t *testing.T, cash float64) *Account {
	t.Helper()
	a, err := NewAccount(M(cash, ""))
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestAccount_ExecuteBuy(t *testing.T) {
	a := mustAccount(t, 10000)
	sec := mustEquity(t, "AAPL", 100)
	day := date.MustParse("2025-01-10")

	if err := a.ExecuteBuy(sec, Q(10), day); err != nil {
		t.Fatalf("ExecuteBuy: %v", err)
	}

	// 10 * 100 + max(5, 0.5%) commission = 1005.
	if !a.Cash().Equal(M(8995, "")) {
		t.Errorf("Cash = %s, want 8995", a.Cash())
	}
	if !a.Quantity("AAPL").Equal(Q(10)) {
		t.Errorf("Quantity(AAPL) = %s, want 10", a.Quantity("AAPL"))
	}

	// The lot carries the effective unit cost, commission included.
	lots := a.Position("AAPL").Lots()
	if len(lots) != 1 {
		t.Fatalf("len(lots) = %d, want 1", len(lots))
	}
	if !lots[0].UnitCost.Equal(M(100.5, "")) {
		t.Errorf("lot unit cost = %s, want 100.5", lots[0].UnitCost)
	}
}

func TestAccount_ExecuteBuy_InsufficientFunds(t *testing.T) {
	a := mustAccount(t, 10)
	sec := mustEquity(t, "AAPL", 100)
	day := date.MustParse("2025-01-10")

	err := a.ExecuteBuy(sec, Q(1), day)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("ExecuteBuy err = %v, want ErrInsufficientFunds", err)
	}
	// A failed buy leaves the account untouched.
	if !a.Cash().Equal(M(10, "")) {
		t.Errorf("Cash = %s, want 10", a.Cash())
	}
	if a.Position("AAPL") != nil {
		t.Error("failed buy created a position")
	}
}

func TestAccount_ExecuteBuy_Validation(t *testing.T) {
	a := mustAccount(t, 1000)
	sec := mustEquity(t, "AAPL", 100)
	day := date.MustParse("2025-01-10")

	testCases := []struct {
		name     string
		security *Security
		qty      int64
		day      Date
	}{
		{name: "nil security", qty: 1, day: day},
		{name: "zero quantity", security: sec, qty: 0, day: day},
		{name: "negative quantity", security: sec, qty: -1, day: day},
		{name: "missing date", security: sec, qty: 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := a.ExecuteBuy(tc.security, Q(tc.qty), tc.day); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ExecuteBuy err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestAccount_ExecuteSell(t *testing.T) {
	a := mustAccount(t, 10000)
	sec := mustCommodity(t, "GOLD", 100, 0)
	buyDay := date.MustParse("2025-01-10")
	sellDay := date.MustParse("2025-02-10")

	if err := a.ExecuteBuy(sec, Q(10), buyDay); err != nil {
		t.Fatal(err)
	}
	if err := sec.SetPrice(M(150, "")); err != nil {
		t.Fatal(err)
	}

	report, err := a.ExecuteSell(sec, Q(4), sellDay)
	if err != nil {
		t.Fatalf("ExecuteSell: %v", err)
	}

	// Commodity trades are frictionless: bought for 1000, sold 4 for 600.
	if !a.Cash().Equal(M(9600, "")) {
		t.Errorf("Cash = %s, want 9600", a.Cash())
	}
	if !a.Quantity("GOLD").Equal(Q(6)) {
		t.Errorf("Quantity(GOLD) = %s, want 6", a.Quantity("GOLD"))
	}
	if report.Ticker != "GOLD" || report.SaleDate != sellDay {
		t.Errorf("report header = %s %s, want GOLD %s", report.Ticker, report.SaleDate, sellDay)
	}
	// 4 * (150 - 100) = 200 realized.
	if !report.TotalProfitAndLoss().Equal(M(200, "")) {
		t.Errorf("TotalProfitAndLoss = %s, want 200", report.TotalProfitAndLoss())
	}
}

func TestAccount_ExecuteSell_RemovesEmptyPosition(t *testing.T) {
	a := mustAccount(t, 10000)
	sec := mustCommodity(t, "GOLD", 100, 0)
	day := date.MustParse("2025-01-10")

	if err := a.ExecuteBuy(sec, Q(10), day); err != nil {
		t.Fatal(err)
	}
	if _, err := a.ExecuteSell(sec, Q(10), day); err != nil {
		t.Fatal(err)
	}
	if a.Position("GOLD") != nil {
		t.Error("fully sold position was not removed")
	}
	if !a.Quantity("GOLD").IsZero() {
		t.Errorf("Quantity(GOLD) = %s, want 0", a.Quantity("GOLD"))
	}
}

func TestAccount_ExecuteSell_InsufficientHoldings(t *testing.T) {
	a := mustAccount(t, 10000)
	sec := mustCommodity(t, "GOLD", 100, 0)
	day := date.MustParse("2025-01-10")

	// No position at all.
	if _, err := a.ExecuteSell(sec, Q(1), day); !errors.Is(err, ErrInsufficientHoldings) {
		t.Errorf("ExecuteSell err = %v, want ErrInsufficientHoldings", err)
	}

	// A position, but too small.
	if err := a.ExecuteBuy(sec, Q(5), day); err != nil {
		t.Fatal(err)
	}
	if _, err := a.ExecuteSell(sec, Q(6), day); !errors.Is(err, ErrInsufficientHoldings) {
		t.Errorf("ExecuteSell err = %v, want ErrInsufficientHoldings", err)
	}
	// The failed sale changed nothing.
	if !a.Quantity("GOLD").Equal(Q(5)) {
		t.Errorf("Quantity(GOLD) = %s, want 5", a.Quantity("GOLD"))
	}
	if !a.Cash().Equal(M(9500, "")) {
		t.Errorf("Cash = %s, want 9500", a.Cash())
	}
}

func TestAccount_CashIsConserved(t *testing.T) {
	// Buying and selling everything back at the same price only loses the
	// friction, never more.
	a := mustAccount(t, 10000)
	sec := mustCommodity(t, "GOLD", 100, 0)
	day := date.MustParse("2025-01-10")

	if err := a.ExecuteBuy(sec, Q(10), day); err != nil {
		t.Fatal(err)
	}
	if _, err := a.ExecuteSell(sec, Q(10), day); err != nil {
		t.Fatal(err)
	}
	if !a.Cash().Equal(M(10000, "")) {
		t.Errorf("Cash = %s, want 10000 for a frictionless round trip", a.Cash())
	}
}

func TestAccount_PlaceAndProcessOrders(t *testing.T) {
	a := mustAccount(t, 10000)
	sec := mustEquity(t, "AAPL", 110)
	day := date.MustParse("2025-01-10")

	// Two buy orders: limits 100 and 105, market at 110. The 105 order is
	// more attractive, and neither tolerates the market price.
	if err := a.PlaceOrder(Buy, sec, Q(10), M(100, ""), day); err != nil {
		t.Fatal(err)
	}
	if err := a.PlaceOrder(Buy, sec, Q(10), M(105, ""), day); err != nil {
		t.Fatal(err)
	}

	head, ok := a.PeekNextOrder()
	if !ok {
		t.Fatal("PeekNextOrder found nothing")
	}
	if !head.Limit().Equal(M(105, "")) {
		t.Errorf("head limit = %s, want 105", head.Limit())
	}

	// Repeated no-op scans leave the queue content and order untouched.
	before := a.PendingOrders()
	for run := 0; run < 3; run++ {
		report, err := a.ProcessNextExecutableOrder()
		if err != nil {
			t.Fatalf("ProcessNextExecutableOrder: %v", err)
		}
		if report != nil {
			t.Errorf("no-op processing returned a report: %+v", report)
		}
		after := a.PendingOrders()
		if len(after) != len(before) {
			t.Fatalf("pending = %d, want %d after a no-op scan", len(after), len(before))
		}
		for i := range before {
			if after[i].Sequence() != before[i].Sequence() {
				t.Errorf("run %d: queue order changed at %d: %d vs %d",
					run, i, after[i].Sequence(), before[i].Sequence())
			}
		}
	}
	if !a.Cash().Equal(M(10000, "")) {
		t.Errorf("Cash = %s, want 10000 after a no-op scan", a.Cash())
	}
}

func TestAccount_ProcessSkipsToExecutableOrder(t *testing.T) {
	a := mustAccount(t, 10000)
	sec := mustEquity(t, "AAPL", 100)
	day := date.MustParse("2025-01-10")

	// Most attractive first: a buy at 90 (not executable, market is 100)
	// then a sell at 95 (executable). Processing must skip the buy, execute
	// the sell and put the buy back.
	if err := a.ExecuteBuy(sec, Q(10), day); err != nil {
		t.Fatal(err)
	}
	if err := a.PlaceOrder(Buy, sec, Q(5), M(90, ""), day); err != nil {
		t.Fatal(err)
	}
	if err := a.PlaceOrder(Sell, sec, Q(5), M(95, ""), day); err != nil {
		t.Fatal(err)
	}

	report, err := a.ProcessNextExecutableOrder()
	if err != nil {
		t.Fatalf("ProcessNextExecutableOrder: %v", err)
	}
	if report == nil {
		t.Fatal("sell execution returned no report")
	}
	if !a.Quantity("AAPL").Equal(Q(5)) {
		t.Errorf("Quantity(AAPL) = %s, want 5", a.Quantity("AAPL"))
	}

	pending := a.PendingOrders()
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	if pending[0].Side() != Buy || !pending[0].Limit().Equal(M(90, "")) {
		t.Errorf("remaining order = %s at %s, want the skipped BUY at 90", pending[0].Side(), pending[0].Limit())
	}
}

func TestAccount_ProcessSettlesAtSnapshotPrice(t *testing.T) {
	a := mustAccount(t, 10000)
	sec := mustCommodity(t, "GOLD", 100, 0)
	day := date.MustParse("2025-01-10")

	// The order captures the market at 100; the live price then drifts.
	if err := a.PlaceOrder(Buy, sec, Q(10), M(100, ""), day); err != nil {
		t.Fatal(err)
	}
	if err := sec.SetPrice(M(999, "")); err != nil {
		t.Fatal(err)
	}

	report, err := a.ProcessNextExecutableOrder()
	if err != nil {
		t.Fatalf("ProcessNextExecutableOrder: %v", err)
	}
	if report != nil {
		t.Errorf("buy execution returned a report: %+v", report)
	}
	// Settled at 100, not at 999.
	if !a.Cash().Equal(M(9000, "")) {
		t.Errorf("Cash = %s, want 9000", a.Cash())
	}
	if !sec.Price().Equal(M(100, "")) {
		t.Errorf("price = %s, want the snapshot 100 after settlement", sec.Price())
	}
	if len(a.PendingOrders()) != 0 {
		t.Errorf("pending = %d, want 0", len(a.PendingOrders()))
	}
}

func TestAccount_ProcessKeepsSkippedOrdersOnFailure(t *testing.T) {
	a := mustAccount(t, 10)
	sec := mustEquity(t, "AAPL", 100)
	day := date.MustParse("2025-01-10")

	// The executable buy fails on funds; the skipped buy must survive.
	if err := a.PlaceOrder(Buy, sec, Q(1), M(90, ""), day); err != nil {
		t.Fatal(err)
	}
	if err := a.PlaceOrder(Buy, sec, Q(1), M(110, ""), day); err != nil {
		t.Fatal(err)
	}

	// The 110 order is the head, is executable and fails. There was nothing
	// skipped before it, but run a second scan to check the 90 order stayed.
	if _, err := a.ProcessNextExecutableOrder(); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("ProcessNextExecutableOrder err = %v, want ErrInsufficientFunds", err)
	}
	pending := a.PendingOrders()
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	if !pending[0].Limit().Equal(M(90, "")) {
		t.Errorf("surviving order limit = %s, want 90", pending[0].Limit())
	}
}

func TestAccount_NetWorth(t *testing.T) {
	a := mustAccount(t, 10000)
	day := date.MustParse("2025-01-10")

	gold := mustCommodity(t, "GOLD", 100, 2)
	if err := a.ExecuteBuy(gold, Q(10), day); err != nil {
		t.Fatal(err)
	}

	// Cash 9000, market value 1000, real value 1000 - 20 storage = 980.
	if !a.MarketWorth().Equal(M(10000, "")) {
		t.Errorf("MarketWorth = %s, want 10000", a.MarketWorth())
	}
	if !a.NetWorth().Equal(M(9980, "")) {
		t.Errorf("NetWorth = %s, want 9980", a.NetWorth())
	}

	// Net worth follows the live price without any trade.
	if err := gold.SetPrice(M(200, "")); err != nil {
		t.Fatal(err)
	}
	if !a.NetWorth().Equal(M(10960, "")) {
		t.Errorf("NetWorth = %s, want 10960 after repricing", a.NetWorth())
	}
}

func TestAccount_Watchlist(t *testing.T) {
	a := mustAccount(t, 0)

	if _, err := a.Watch(""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Watch(blank) err = %v, want ErrInvalidArgument", err)
	}

	for _, ticker := range []string{"GOLD", "AAPL"} {
		added, err := a.Watch(ticker)
		if err != nil || !added {
			t.Errorf("Watch(%s) = %v, %v", ticker, added, err)
		}
	}
	if added, _ := a.Watch("GOLD"); added {
		t.Error("Watch reported an already watched ticker as added")
	}

	got := a.Watchlist()
	if len(got) != 2 || got[0] != "AAPL" || got[1] != "GOLD" {
		t.Errorf("Watchlist = %v, want [AAPL GOLD]", got)
	}

	if removed, _ := a.Unwatch("AAPL"); !removed {
		t.Error("Unwatch did not remove a watched ticker")
	}
	if removed, _ := a.Unwatch("AAPL"); removed {
		t.Error("Unwatch reported an absent ticker as removed")
	}
}
