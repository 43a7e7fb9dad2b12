package scheduler

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Session boundaries in exchange local time. The close boundaries are one
// minute past the official close so a cycle triggered right at the bell
// still executes.
var (
	amOpen  = sessionTime{9, 30}
	amClose = sessionTime{11, 31}
	pmOpen  = sessionTime{13, 0}
	pmClose = sessionTime{15, 1}
)

// Limit-band thresholds in percent. Main-board instruments move at most 10%
// a day, STAR and ChiNext 20%; an instrument pinned at the band cannot be
// traded in that direction.
var (
	mainBoardLimit   = decimal.RequireFromString("9.9")
	growthBoardLimit = decimal.RequireFromString("19.9")
)

type sessionTime struct {
	hour   int
	minute int
}

func (s sessionTime) minutes() int {
	return s.hour*60 + s.minute
}

// IsMarketOpen reports whether t falls inside an A-share trading session,
// evaluated in t's location.
func IsMarketOpen(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}

	now := t.Hour()*60 + t.Minute()

	morning := now >= amOpen.minutes() && now <= amClose.minutes()
	afternoon := now >= pmOpen.minutes() && now <= pmClose.minutes()

	return morning || afternoon
}

// isGrowthBoard reports whether a code belongs to ChiNext or STAR, which
// carry the wider 20% daily band.
func isGrowthBoard(code string) bool {
	return strings.HasPrefix(code, "300") || strings.HasPrefix(code, "688")
}

// canBuyAt reports whether an instrument at the given day percent change is
// still buyable, i.e. not pinned at its limit-up band.
func canBuyAt(code string, percentChange decimal.Decimal) bool {
	limit := mainBoardLimit
	if isGrowthBoard(code) {
		limit = growthBoardLimit
	}

	return percentChange.LessThanOrEqual(limit)
}

// canSellAt reports whether an instrument at the given day percent change is
// still sellable, i.e. not pinned at its limit-down band.
func canSellAt(code string, percentChange decimal.Decimal) bool {
	limit := mainBoardLimit.Neg()
	if isGrowthBoard(code) {
		limit = growthBoardLimit.Neg()
	}

	return percentChange.GreaterThanOrEqual(limit)
}
