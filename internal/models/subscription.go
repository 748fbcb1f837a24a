package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionStatus is the lifecycle state of a subscription.
type SubscriptionStatus string

// Subscription statuses
const (
	SubscriptionActive  SubscriptionStatus = "ACTIVE"
	SubscriptionPending SubscriptionStatus = "PENDING"
	SubscriptionExpired SubscriptionStatus = "EXPIRED"
)

// Subscription is a user's subscription to the signals of one pair.
// Price and Discount are snapshots taken when the subscription was paid.
type Subscription struct {
	ID            string             `db:"id" json:"id"`
	UserID        string             `db:"user_id" json:"userId"`
	UserEmail     string             `db:"user_email" json:"userEmail"`
	UserName      string             `db:"user_name" json:"userName"`
	PairID        string             `db:"pair_id" json:"pairId"`
	PairSymbol    string             `db:"pair_symbol" json:"pairSymbol"`
	PairTimeframe string             `db:"pair_timeframe" json:"pairTimeframe"`
	Period        SubscriptionPeriod `db:"period" json:"period"`
	Status        SubscriptionStatus `db:"status" json:"status"`
	Price         decimal.Decimal    `db:"price" json:"price"`
	Discount      decimal.Decimal    `db:"discount" json:"discount"`
	ExpiresAt     *time.Time         `db:"expires_at" json:"expiresAt,omitempty"`
	CreatedAt     time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `db:"updated_at" json:"updatedAt"`
}
