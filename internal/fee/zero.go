package fee

import "github.com/shopspring/decimal"

// ZeroSchedule charges no fees on either side. Useful for isolating cash
// arithmetic in tests.
type ZeroSchedule struct{}

// NewZeroSchedule creates a fee-free schedule.
func NewZeroSchedule() Schedule {
	return &ZeroSchedule{}
}

// Market implements Schedule.
func (s *ZeroSchedule) Market() Market {
	return MarketZero
}

// BuyFee implements Schedule.
func (s *ZeroSchedule) BuyFee(cost decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}

// SellFee implements Schedule.
func (s *ZeroSchedule) SellFee(revenue decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}
