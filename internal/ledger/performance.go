package ledger

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rxtech-lab/paper-trading/internal/types"
)

// UpdatePerformance marks all open positions to the given prices and records
// (or refreshes) the daily snapshot for date. Position values are stated net
// of the estimated exit fee, so total value is what the account would hold
// after liquidating everything.
//
// Symbols absent from prices keep their last known price. Running more than
// once on the same date replaces that date's snapshot in place; the day
// return always compares against the latest snapshot of an earlier date.
func (l *Ledger) UpdatePerformance(prices map[string]decimal.Decimal, date time.Time) (types.DailySnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.state
	l.state = prev.clone()

	totalValue := l.state.Cash
	totalPnL := decimal.Zero
	details := make([]types.HoldingDetail, 0, len(l.state.Holdings))

	for _, symbol := range l.state.symbols() {
		position := l.state.Holdings[symbol]

		if price, ok := prices[symbol]; ok && price.IsPositive() {
			position.CurrentPrice = price

			if price.GreaterThan(position.MaxPrice) {
				position.MaxPrice = price
			}
		}

		marketValue := position.MarketValue()
		netValue := marketValue.Sub(l.fees.SellFee(marketValue))
		entryCost := position.Cost().Add(position.BuyFee)
		netPnL := netValue.Sub(entryCost)
		netPnLRate := decimal.Zero

		if entryCost.IsPositive() {
			netPnLRate = netPnL.Div(entryCost)
		}

		totalValue = totalValue.Add(netValue)
		totalPnL = totalPnL.Add(netPnL)
		details = append(details, types.HoldingDetail{
			Symbol:       symbol,
			CurrentPrice: position.CurrentPrice,
			NetPnL:       netPnL,
			NetPnLRate:   netPnLRate,
		})
	}

	for _, tx := range l.state.History {
		if tx.Type == types.TransactionTypeSell || tx.Type == types.TransactionTypeSellManual {
			totalPnL = totalPnL.Add(tx.PnL)
		}
	}

	day := date.Format(time.DateOnly)
	dayReturn := decimal.Zero

	if previous := l.previousSnapshot(day); previous.IsSome() {
		base := previous.Unwrap().TotalValue
		if base.IsPositive() {
			dayReturn = totalValue.Sub(base).Div(base)
		}
	}

	snapshot := types.DailySnapshot{
		Date:       day,
		TotalValue: totalValue,
		TotalPnL:   totalPnL,
		TotalFees:  l.state.TotalFees,
		DayReturn:  dayReturn,
		Holdings:   details,
	}

	if n := len(l.state.DailyStats); n > 0 && l.state.DailyStats[n-1].Date == day {
		l.state.DailyStats[n-1] = snapshot
	} else {
		l.state.DailyStats = append(l.state.DailyStats, snapshot)
	}

	if err := l.commit(prev); err != nil {
		return types.DailySnapshot{}, err
	}

	l.log.Info("updated performance",
		zap.String("date", day),
		zap.String("total_value", totalValue.String()),
		zap.String("total_pnl", totalPnL.String()),
		zap.String("day_return", dayReturn.String()),
	)

	return snapshot, nil
}

// previousSnapshot returns the latest snapshot recorded before day, if any.
func (l *Ledger) previousSnapshot(day string) optional.Option[types.DailySnapshot] {
	for i := len(l.state.DailyStats) - 1; i >= 0; i-- {
		if l.state.DailyStats[i].Date < day {
			return optional.Some(l.state.DailyStats[i])
		}
	}

	return optional.None[types.DailySnapshot]()
}
