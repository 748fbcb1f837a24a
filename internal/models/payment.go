package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus mirrors the invoice states reported by the payment gateway.
type PaymentStatus string

// Payment statuses
const (
	PaymentPaid      PaymentStatus = "PAID"
	PaymentPending   PaymentStatus = "PENDING"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentExpired   PaymentStatus = "EXPIRED"
	PaymentUnderpaid PaymentStatus = "UNDERPAID"
)

// Payment is one invoice raised for a subscription.
type Payment struct {
	ID             string             `db:"id" json:"id"`
	InvoiceID      string             `db:"invoice_id" json:"invoiceId"`
	UserID         string             `db:"user_id" json:"userId"`
	UserEmail      string             `db:"user_email" json:"userEmail"`
	SubscriptionID *string            `db:"subscription_id" json:"subscriptionId,omitempty"`
	PairSymbol     string             `db:"pair_symbol" json:"pairSymbol"`
	Period         SubscriptionPeriod `db:"period" json:"period"`
	Amount         decimal.Decimal    `db:"amount" json:"amount"`
	Currency       string             `db:"currency" json:"currency"`
	Status         PaymentStatus      `db:"status" json:"status"`
	CreatedAt      time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `db:"updated_at" json:"updatedAt"`
}
