package types

import "github.com/shopspring/decimal"

// AccountInfo is a read model of the ledger for upstream decision context,
// e.g. blocking low-probability buys when cash is insufficient.
type AccountInfo struct {
	// Cash is the current available cash balance.
	Cash decimal.Decimal `json:"cash" yaml:"cash"`
	// Equity is the total account value (cash + net liquidation value of holdings).
	Equity decimal.Decimal `json:"equity" yaml:"equity"`
	// RealizedPnL is the total realized profit/loss from closed positions.
	RealizedPnL decimal.Decimal `json:"realized_pnl" yaml:"realized_pnl"`
	// UnrealizedPnL is the total unrealized profit/loss from open positions,
	// net of estimated exit fees.
	UnrealizedPnL decimal.Decimal `json:"unrealized_pnl" yaml:"unrealized_pnl"`
	// TotalFees is the cumulative fees paid since account creation.
	TotalFees decimal.Decimal `json:"total_fees" yaml:"total_fees"`
	// OpenPositions is the number of currently held symbols.
	OpenPositions int `json:"open_positions" yaml:"open_positions"`
}
