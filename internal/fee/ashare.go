package fee

import "github.com/shopspring/decimal"

// Standard A-share cost policy. Rates are policy constants, kept out of the
// calculation logic so a different schedule never touches the rounding rule.
var (
	// commissionRate is the brokerage commission, 0.03% of notional.
	commissionRate = decimal.NewFromFloat(0.0003)
	// minCommission is the commission floor per trade leg.
	minCommission = decimal.NewFromInt(5)
	// stampDutyRate is the stamp duty, 0.05% of revenue, sell side only.
	stampDutyRate = decimal.NewFromFloat(0.0005)
	// transferRate is the transfer fee, 0.001% of notional, both sides.
	transferRate = decimal.NewFromFloat(0.00001)
)

// currencyScale is the number of decimal places of the smallest currency unit.
const currencyScale int32 = 2

// AShareSchedule models the standard A-share transaction cost setup:
// commission with a floor, transfer fee both ways, stamp duty on sells.
type AShareSchedule struct{}

// NewAShareSchedule creates the standard A-share fee schedule.
func NewAShareSchedule() Schedule {
	return &AShareSchedule{}
}

// Market implements Schedule.
func (s *AShareSchedule) Market() Market {
	return MarketAShare
}

// BuyFee implements Schedule. The commission and transfer components are
// each rounded half-up before summing, never once at the end.
func (s *AShareSchedule) BuyFee(cost decimal.Decimal) decimal.Decimal {
	return s.commission(cost).Add(s.transfer(cost))
}

// SellFee implements Schedule. Same components as the buy side plus stamp duty.
func (s *AShareSchedule) SellFee(revenue decimal.Decimal) decimal.Decimal {
	return s.commission(revenue).Add(s.stampDuty(revenue)).Add(s.transfer(revenue))
}

func (s *AShareSchedule) commission(notional decimal.Decimal) decimal.Decimal {
	commission := notional.Mul(commissionRate)
	if commission.LessThan(minCommission) {
		commission = minCommission
	}

	return roundHalfUp(commission)
}

func (s *AShareSchedule) stampDuty(notional decimal.Decimal) decimal.Decimal {
	return roundHalfUp(notional.Mul(stampDutyRate))
}

func (s *AShareSchedule) transfer(notional decimal.Decimal) decimal.Decimal {
	return roundHalfUp(notional.Mul(transferRate))
}

// roundHalfUp rounds to the smallest currency unit. decimal.Round rounds
// half away from zero, which is half-up for the non-negative notionals the
// schedule operates on.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(currencyScale)
}
