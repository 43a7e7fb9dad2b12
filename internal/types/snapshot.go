package types

import "github.com/shopspring/decimal"

// HoldingDetail is the per-position line of a daily snapshot.
type HoldingDetail struct {
	Symbol       string          `json:"symbol" yaml:"symbol"`
	CurrentPrice decimal.Decimal `json:"current_price" yaml:"current_price"`
	// NetPnL is the unrealized profit or loss net of the buy fee and an
	// estimated exit fee.
	NetPnL     decimal.Decimal `json:"net_pnl" yaml:"net_pnl"`
	NetPnLRate decimal.Decimal `json:"net_pnl_rate" yaml:"net_pnl_rate"`
}

// DailySnapshot is one mark-to-market record of the whole account. The
// ledger keeps one snapshot per calendar date; reruns within a date refresh
// it in place.
type DailySnapshot struct {
	// Date is the snapshot calendar date, formatted as 2006-01-02.
	Date string `json:"date" yaml:"date"`
	// TotalValue is cash plus the net liquidation value of all open positions.
	TotalValue decimal.Decimal `json:"total_value" yaml:"total_value"`
	// TotalPnL is realized PnL of closed positions plus unrealized net PnL
	// of open ones. Deposits do not count as profit.
	TotalPnL decimal.Decimal `json:"total_pnl" yaml:"total_pnl"`
	// TotalFees is the cumulative fee total at snapshot time.
	TotalFees decimal.Decimal `json:"total_fees" yaml:"total_fees"`
	// DayReturn is the relative change of TotalValue against the previous
	// snapshot, zero on the first snapshot.
	DayReturn decimal.Decimal `json:"day_return" yaml:"day_return"`
	Holdings  []HoldingDetail `json:"holdings" yaml:"holdings"`
}
