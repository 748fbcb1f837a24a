package views

import (
	"github.com/yourusername/pairdesk/internal/models"
	"github.com/yourusername/pairdesk/internal/table"
)

// PaymentRow adapts a payment to the payments table.
type PaymentRow struct {
	*models.Payment
}

var paymentFieldNames = []string{
	"id", "invoiceId", "pairSymbol", "period", "amount", "currency", "status", "createdAt", "user",
}

// Field implements table.Record.
func (r PaymentRow) Field(name string) (any, bool) {
	p := r.Payment
	if p == nil {
		return nil, false
	}
	switch name {
	case "id":
		return p.ID, true
	case "invoiceId":
		return p.InvoiceID, true
	case "pairSymbol":
		return p.PairSymbol, true
	case "period":
		return string(p.Period), true
	case "amount":
		return p.Amount.InexactFloat64(), true
	case "currency":
		return p.Currency, true
	case "status":
		return string(p.Status), true
	case "createdAt":
		return p.CreatedAt, true
	case "user":
		return table.Fields{"id": p.UserID, "email": p.UserEmail}, true
	}
	return nil, false
}

// FieldNames implements table.Record.
func (r PaymentRow) FieldNames() []string {
	return paymentFieldNames
}

// PaymentRows wraps payments for the table pipeline.
func PaymentRows(payments []*models.Payment) []PaymentRow {
	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		if p != nil {
			rows = append(rows, PaymentRow{Payment: p})
		}
	}
	return rows
}

// PaymentOptions are the view options of the payments table.
func PaymentOptions(pageSizes []int, defaultSize int) table.ViewOptions {
	return table.ViewOptions{
		PageSizes:       pageSizes,
		DefaultPageSize: defaultSize,
		DefaultSort:     "createdAt",
		DefaultDir:      table.Desc,
	}
}

// PaymentView is the payments table: gateway status filters plus invoices
// raised in the last seven days.
func PaymentView(clock Clock) table.View[PaymentRow] {
	status := func(want models.PaymentStatus) table.Predicate[PaymentRow] {
		return func(r PaymentRow) bool { return r.Status == want }
	}
	return table.View[PaymentRow]{
		Categories: table.NewCategorySet(
			table.Category[PaymentRow]{Key: "paid", Match: status(models.PaymentPaid)},
			table.Category[PaymentRow]{Key: "pending", Match: status(models.PaymentPending)},
			table.Category[PaymentRow]{Key: "failed", Match: status(models.PaymentFailed)},
			table.Category[PaymentRow]{Key: "expired", Match: status(models.PaymentExpired)},
			table.Category[PaymentRow]{Key: "underpaid", Match: status(models.PaymentUnderpaid)},
			table.Category[PaymentRow]{Key: "recent", Match: func(r PaymentRow) bool { return isRecent(r.CreatedAt, clock.now()) }},
		),
		SearchFields: table.FieldPaths("invoiceId", "pairSymbol", "user.email"),
		Accessors: map[string]table.Accessor[PaymentRow]{
			"period": func(r PaymentRow) any { return r.Period.Months() },
		},
	}
}
