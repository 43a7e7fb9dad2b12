// Package fee computes regulatory-style transaction costs from trade
// notional value. All arithmetic is exact fixed-point; every fee component
// is rounded half-up to the smallest currency unit independently before
// summing, matching the settlement convention of the simulated market.
package fee

import "github.com/shopspring/decimal"

// Schedule computes the total transaction cost of one trade leg.
type Schedule interface {
	// BuyFee returns the fee charged on a buy with the given notional cost.
	BuyFee(cost decimal.Decimal) decimal.Decimal
	// SellFee returns the fee charged on a sell with the given notional revenue.
	SellFee(revenue decimal.Decimal) decimal.Decimal
	// Market returns the market this schedule models.
	Market() Market
}

type Market string

const (
	MarketAShare Market = "a_share"
	MarketZero   Market = "zero_fee"
)

var AllMarkets = []any{
	MarketAShare,
	MarketZero,
}

// GetSchedule returns the fee schedule for the given market, defaulting to
// the A-share schedule for unknown markets.
func GetSchedule(market Market) Schedule {
	switch market {
	case MarketAShare:
		return NewAShareSchedule()
	case MarketZero:
		return NewZeroSchedule()
	default:
		return NewAShareSchedule()
	}
}
