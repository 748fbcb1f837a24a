// Package views binds the domain records to the generic table pipeline:
// row adapters, filter categories, search fields and sort accessors for
// every list the console shows.
package views

import (
	"time"

	"github.com/yourusername/pairdesk/internal/table"
)

// Ticker lists used to classify a pair symbol.
var (
	ForexExcluded   = []string{"BTC", "ETH", "LTC", "ADA", "XAU", "XAG"}
	CryptoTokens    = []string{"BTC", "ETH", "LTC", "ADA"}
	CommodityTokens = []string{"XAU", "XAG"}
)

// RecentWindow is how far back the "recent" category looks.
const RecentWindow = 7 * 24 * time.Hour

// Asset classes
const (
	AssetForex       = "forex"
	AssetCrypto      = "crypto"
	AssetCommodities = "commodities"
)

// IsForex reports whether symbol contains none of the crypto or metal tickers.
func IsForex(symbol string) bool {
	return !table.ContainsAny(symbol, ForexExcluded)
}

// IsCrypto reports whether symbol contains a crypto ticker.
func IsCrypto(symbol string) bool {
	return table.ContainsAny(symbol, CryptoTokens)
}

// IsCommodity reports whether symbol contains a metal ticker.
func IsCommodity(symbol string) bool {
	return table.ContainsAny(symbol, CommodityTokens)
}

// AssetClass names the class a symbol is listed under.
func AssetClass(symbol string) string {
	switch {
	case IsCrypto(symbol):
		return AssetCrypto
	case IsCommodity(symbol):
		return AssetCommodities
	}
	return AssetForex
}

// Clock returns the current time; views take one so "recent" is testable.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func isRecent(t time.Time, now time.Time) bool {
	return !t.IsZero() && !t.Before(now.Add(-RecentWindow))
}

// assetCategories builds the forex/crypto/commodities categories over any
// row that can report its symbol.
func assetCategories[T any](symbol func(T) string) []table.Category[T] {
	return []table.Category[T]{
		{Key: AssetForex, Match: func(r T) bool { return IsForex(symbol(r)) }},
		{Key: AssetCrypto, Match: func(r T) bool { return IsCrypto(symbol(r)) }},
		{Key: AssetCommodities, Match: func(r T) bool { return IsCommodity(symbol(r)) }},
	}
}
