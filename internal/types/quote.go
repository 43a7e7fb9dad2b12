package types

import "github.com/shopspring/decimal"

// Quote is the result of a price-oracle lookup.
type Quote struct {
	// Code is the canonical instrument code.
	Code string `json:"code" yaml:"code"`
	// Name is the instrument display name.
	Name string `json:"name" yaml:"name"`
	// Price is the latest traded price.
	Price decimal.Decimal `json:"price" yaml:"price"`
	// PrevClose is the previous session's closing price.
	PrevClose decimal.Decimal `json:"prev_close" yaml:"prev_close"`
	// PercentChange is the intraday change in percent (9.97 means +9.97%).
	PercentChange decimal.Decimal `json:"percent_change" yaml:"percent_change"`
}
