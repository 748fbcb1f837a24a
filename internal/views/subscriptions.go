package views

import (
	"github.com/yourusername/pairdesk/internal/models"
	"github.com/yourusername/pairdesk/internal/table"
)

// SubscriptionRow adapts a subscription to the pairs table.
type SubscriptionRow struct {
	*models.Subscription
}

var subscriptionFieldNames = []string{
	"id", "period", "status", "price", "discount", "createdAt", "expiresAt", "user", "pair",
}

// Field implements table.Record.
func (r SubscriptionRow) Field(name string) (any, bool) {
	s := r.Subscription
	if s == nil {
		return nil, false
	}
	switch name {
	case "id":
		return s.ID, true
	case "period":
		return string(s.Period), true
	case "status":
		return string(s.Status), true
	case "price":
		return s.Price.InexactFloat64(), true
	case "discount":
		return s.Discount.InexactFloat64(), true
	case "createdAt":
		return s.CreatedAt, true
	case "expiresAt":
		return s.ExpiresAt, true
	case "user":
		return table.Fields{"id": s.UserID, "email": s.UserEmail, "name": s.UserName}, true
	case "pair":
		return table.Fields{"id": s.PairID, "symbol": s.PairSymbol, "timeframe": s.PairTimeframe}, true
	}
	return nil, false
}

// FieldNames implements table.Record.
func (r SubscriptionRow) FieldNames() []string {
	return subscriptionFieldNames
}

// SubscriptionRows wraps subscriptions for the table pipeline.
func SubscriptionRows(subs []*models.Subscription) []SubscriptionRow {
	rows := make([]SubscriptionRow, 0, len(subs))
	for _, s := range subs {
		if s != nil {
			rows = append(rows, SubscriptionRow{Subscription: s})
		}
	}
	return rows
}

// SubscriptionOptions are the view options of the pairs table.
func SubscriptionOptions(pageSizes []int, defaultSize int) table.ViewOptions {
	return table.ViewOptions{
		PageSizes:       pageSizes,
		DefaultPageSize: defaultSize,
		DefaultSort:     "createdAt",
		DefaultDir:      table.Desc,
	}
}

// SubscriptionView is the pairs table: status and asset class filters,
// search by pair symbol and subscriber.
func SubscriptionView() table.View[SubscriptionRow] {
	status := func(want models.SubscriptionStatus) table.Predicate[SubscriptionRow] {
		return func(r SubscriptionRow) bool { return r.Status == want }
	}
	categories := []table.Category[SubscriptionRow]{
		{Key: "active", Match: status(models.SubscriptionActive)},
		{Key: "pending", Match: status(models.SubscriptionPending)},
		{Key: "expired", Match: status(models.SubscriptionExpired)},
	}
	categories = append(categories, assetCategories(func(r SubscriptionRow) string { return r.PairSymbol })...)

	return table.View[SubscriptionRow]{
		Categories:   table.NewCategorySet(categories...),
		SearchFields: table.FieldPaths("pair.symbol", "user.email", "user.name"),
		Accessors: map[string]table.Accessor[SubscriptionRow]{
			// period names do not sort lexically
			"period": func(r SubscriptionRow) any { return r.Period.Months() },
			"finalPrice": func(r SubscriptionRow) any {
				return models.PeriodPrice{Price: r.Price, Discount: r.Discount}.Final().InexactFloat64()
			},
		},
	}
}
