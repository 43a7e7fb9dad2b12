// Package scheduler drives the intraday decision cycle: at fixed times
// during the trading session it collects signals, executes them against the
// ledger with market microstructure guards, applies the trailing-stop
// advisory, and records the daily performance snapshot.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rxtech-lab/paper-trading/internal/datasource"
	"github.com/rxtech-lab/paper-trading/internal/ledger"
	"github.com/rxtech-lab/paper-trading/internal/logger"
	"github.com/rxtech-lab/paper-trading/internal/marketdata"
	"github.com/rxtech-lab/paper-trading/internal/types"
)

// targetTimes are the intraday trigger points: shortly after each session
// open to let prices settle, every half hour through the session, the last
// window before each close, and one read-mostly pass after the bell.
var targetTimes = []string{
	"09:35", "10:00", "10:30", "11:00", "11:25",
	"13:05", "13:30", "14:00", "14:30", "14:50", "15:05",
}

// lowCashFloor is the cash level below which an empty account skips the
// cycle entirely, saving upstream signal-generation cost.
var lowCashFloor = decimal.NewFromInt(1000)

// SignalAction is the direction of a trade signal.
type SignalAction string

const (
	ActionBuy  SignalAction = "buy"
	ActionSell SignalAction = "sell"
)

// Signal is one trade suggestion from the signal source. Symbol may be an
// instrument code or a display name; the scheduler resolves it through the
// price oracle before acting.
type Signal struct {
	Symbol         string
	Action         SignalAction
	Reason         string
	HasOpportunity bool
}

// SignalSource produces trade suggestions for a trigger time. The account
// read model is passed so the source can condition on cash and holdings.
type SignalSource interface {
	Signals(ctx context.Context, triggerTime time.Time, account types.AccountInfo) ([]Signal, error)
}

// Scheduler owns the cron loop and the per-cycle pipeline.
type Scheduler struct {
	ledger      *ledger.Ledger
	provider    marketdata.Provider
	signals     SignalSource
	log         *logger.Logger
	loc         *time.Location
	tradeAmount decimal.Decimal
	cron        *cron.Cron
	now         func() time.Time
}

// NewScheduler creates a scheduler. loc is the exchange timezone; every
// trigger and market-hours decision is evaluated in it.
func NewScheduler(l *ledger.Ledger, provider marketdata.Provider, signals SignalSource, tradeAmount decimal.Decimal, loc *time.Location, log *logger.Logger) *Scheduler {
	return &Scheduler{
		ledger:      l,
		provider:    provider,
		signals:     signals,
		log:         log,
		loc:         loc,
		tradeAmount: tradeAmount,
		cron:        nil,
		now:         time.Now,
	}
}

// Start registers the intraday trigger times and runs the cron loop until
// ctx is canceled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron = cron.New(cron.WithLocation(s.loc))

	for _, target := range targetTimes {
		var hour, minute int
		if _, err := fmt.Sscanf(target, "%d:%d", &hour, &minute); err != nil {
			return fmt.Errorf("invalid target time %q: %w", target, err)
		}

		spec := fmt.Sprintf("%d %d * * MON-FRI", minute, hour)
		if _, err := s.cron.AddFunc(spec, func() {
			if err := s.RunOnce(ctx); err != nil {
				s.log.Error("decision cycle failed", zap.Error(err))
			}
		}); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", target, err)
		}
	}

	s.log.Info("scheduler started",
		zap.Strings("target_times", targetTimes),
		zap.String("timezone", s.loc.String()),
	)

	s.cron.Start()

	<-ctx.Done()

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()

	return ctx.Err()
}

// RunOnce executes a single decision cycle at the current time.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	trigger := datasource.TruncateTrigger(s.now().In(s.loc))

	if !IsMarketOpen(trigger) {
		s.log.Info("outside trading hours, skipping cycle",
			zap.Time("trigger", trigger),
		)

		return nil
	}

	account := s.ledger.AccountInfo()

	if account.Cash.LessThan(lowCashFloor) && account.OpenPositions == 0 {
		s.log.Info("cash below floor with no holdings, skipping cycle",
			zap.String("cash", account.Cash.String()),
		)

		return nil
	}

	signals, err := s.signals.Signals(ctx, trigger, account)
	if err != nil {
		return err
	}

	currentPrices := make(map[string]decimal.Decimal)

	s.executeSignals(ctx, trigger, signals, currentPrices)
	s.applyTrailingStops(ctx, trigger, currentPrices)
	s.refreshHoldingPrices(ctx, currentPrices)

	if _, err := s.ledger.UpdatePerformance(currentPrices, trigger); err != nil {
		return err
	}

	return nil
}

// executeSignals resolves and executes signals against the ledger, sells
// first so freed cash is available to the buys of the same cycle.
func (s *Scheduler) executeSignals(ctx context.Context, trigger time.Time, signals []Signal, currentPrices map[string]decimal.Decimal) {
	ordered := make([]Signal, len(signals))
	copy(ordered, signals)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Action == ActionSell && ordered[j].Action != ActionSell
	})

	for _, signal := range ordered {
		if !signal.HasOpportunity || signal.Symbol == "" {
			continue
		}

		quote, err := s.provider.GetQuote(ctx, signal.Symbol)
		if err != nil {
			s.log.Warn("no quote for signal, skipping",
				zap.String("symbol", signal.Symbol),
				zap.Error(err),
			)

			continue
		}

		currentPrices[quote.Code] = quote.Price

		switch signal.Action {
		case ActionBuy:
			if !canBuyAt(quote.Code, quote.PercentChange) {
				s.log.Info("skipping buy pinned at limit up",
					zap.String("symbol", quote.Code),
					zap.String("percent_change", quote.PercentChange.String()),
				)

				continue
			}

			if _, err := s.ledger.Buy(quote.Code, quote.Price, trigger, quote.Name, s.tradeAmount); err != nil {
				s.log.Info("buy not executed",
					zap.String("symbol", quote.Code),
					zap.Error(err),
				)
			}
		case ActionSell:
			if !canSellAt(quote.Code, quote.PercentChange) {
				s.log.Info("skipping sell pinned at limit down",
					zap.String("symbol", quote.Code),
					zap.String("percent_change", quote.PercentChange.String()),
				)

				continue
			}

			reason := signal.Reason
			if reason == "" {
				reason = "signal"
			}

			if _, err := s.ledger.Sell(quote.Code, quote.Price, trigger, reason); err != nil {
				s.log.Info("sell not executed",
					zap.String("symbol", quote.Code),
					zap.Error(err),
				)
			}
		}
	}
}

// applyTrailingStops sells any holding whose trailing-stop advisory fires at
// the current price.
func (s *Scheduler) applyTrailingStops(ctx context.Context, trigger time.Time, currentPrices map[string]decimal.Decimal) {
	for _, position := range s.ledger.Holdings() {
		price, ok := currentPrices[position.Symbol]
		if !ok {
			quote, err := s.provider.GetQuote(ctx, position.Symbol)
			if err != nil {
				continue
			}

			price = quote.Price
			currentPrices[position.Symbol] = price
		}

		if !s.ledger.CheckTrailingStop(position.Symbol, price) {
			continue
		}

		if _, err := s.ledger.Sell(position.Symbol, price, trigger, "trailing stop"); err != nil {
			s.log.Warn("trailing-stop sell not executed",
				zap.String("symbol", position.Symbol),
				zap.Error(err),
			)
		}
	}
}

// refreshHoldingPrices fills in quotes for holdings the signal pass did not
// touch, so the performance snapshot marks every position.
func (s *Scheduler) refreshHoldingPrices(ctx context.Context, currentPrices map[string]decimal.Decimal) {
	for _, position := range s.ledger.Holdings() {
		if _, ok := currentPrices[position.Symbol]; ok {
			continue
		}

		quote, err := s.provider.GetQuote(ctx, position.Symbol)
		if err != nil {
			s.log.Warn("failed to refresh holding price",
				zap.String("symbol", position.Symbol),
				zap.Error(err),
			)

			continue
		}

		currentPrices[position.Symbol] = quote.Price
	}
}
