// Package renderer turns account state into markdown report text.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/brokerage"
)

//go:embed templates/*.md
var templates embed.FS

// Review is the view of an account prepared for rendering.
type Review struct {
	AsOf        string
	Cash        string
	MarketWorth string
	NetWorth    string
	Positions   []PositionReview
	Orders      []OrderReview
	Watchlist   []string
}

// PositionReview is one held position in the review.
type PositionReview struct {
	Kind        string
	Ticker      string
	Quantity    string
	Price       string
	MarketValue string
	RealValue   string
}

// OrderReview is one pending order in the review.
type OrderReview struct {
	Sequence uint64
	Side     string
	Ticker   string
	Quantity string
	Limit    string
	Snapshot string
}

// NewReview builds the review view for an account on a given date.
// Positions appear in report order, pending orders from most to least
// attractive.
func NewReview(a *brokerage.Account, on brokerage.Date) *Review {
	r := &Review{
		AsOf:        on.String(),
		Cash:        a.Cash().StringFixed(2),
		MarketWorth: a.MarketWorth().StringFixed(2),
		NetWorth:    a.NetWorth().StringFixed(2),
		Watchlist:   a.Watchlist(),
	}

	for _, p := range brokerage.SortedPositions(a) {
		r.Positions = append(r.Positions, PositionReview{
			Kind:        p.Security().Kind().String(),
			Ticker:      p.Security().Ticker(),
			Quantity:    p.TotalQuantity().String(),
			Price:       p.Security().Price().StringFixed(2),
			MarketValue: p.MarketValue().StringFixed(2),
			RealValue:   p.RealValue().StringFixed(2),
		})
	}

	for _, o := range a.PendingOrders() {
		r.Orders = append(r.Orders, OrderReview{
			Sequence: o.Sequence(),
			Side:     o.Side().String(),
			Ticker:   o.Security().Ticker(),
			Quantity: o.Quantity().String(),
			Limit:    o.Limit().StringFixed(2),
			Snapshot: o.Snapshot().StringFixed(2),
		})
	}
	return r
}

// RenderReview renders the review to a markdown string.
func RenderReview(r *Review) string {
	return renderTemplate("review", "templates/review.md", r)
}

// renderTemplate is a generic utility to render one embedded template.
func renderTemplate(templateName, file string, data any) string {
	content, err := fs.ReadFile(templates, file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}

	tmpl, err := template.New(templateName).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", file, err)
	}
	return b.String()
}
