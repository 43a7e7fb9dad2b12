// Package ledger implements the virtual trading ledger: cash, open
// positions, the append-only transaction history and daily performance
// snapshots of one simulated equities account, persisted as a single JSON
// document with all-or-nothing writes.
package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rxtech-lab/paper-trading/internal/fee"
	"github.com/rxtech-lab/paper-trading/internal/logger"
	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/internal/version"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// Ledger is the single-writer owner of one account's state. All mutating
// operations are serialized by its mutex; the surrounding decision pipeline
// may run concurrently but every ledger mutation is synchronous and
// complete-or-fail.
type Ledger struct {
	mu             sync.Mutex
	path           string
	initialCapital decimal.Decimal
	fees           fee.Schedule
	trailingDrop   decimal.Decimal
	trailingGain   decimal.Decimal
	state          *State
	log            *logger.Logger
}

// Open loads the account at config.StoragePath, or initializes a fresh one.
// A missing file is a fresh account; an unreadable or corrupt file is
// treated as no prior state and reinitialized with the configured initial
// capital. A document written by an incompatible schema version, or one
// whose balances violate the ledger invariants, is refused rather than
// discarded.
func Open(config Config, log *logger.Logger) (*Ledger, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	initialCapital, err := types.DecimalFromFloat(config.InitialCapital)
	if err != nil {
		return nil, err
	}

	trailingDrop, err := types.DecimalFromFloat(config.TrailingStopDrop)
	if err != nil {
		return nil, err
	}

	trailingGain, err := types.DecimalFromFloat(config.TrailingStopMinGain)
	if err != nil {
		return nil, err
	}

	l := &Ledger{
		mu:             sync.Mutex{},
		path:           config.StoragePath,
		initialCapital: initialCapital,
		fees:           fee.GetSchedule(config.Market),
		trailingDrop:   trailingDrop,
		trailingGain:   trailingGain,
		state:          nil,
		log:            log,
	}

	state, err := l.load()
	if err != nil {
		return nil, err
	}

	l.state = state

	return l, nil
}

func (l *Ledger) load() (*State, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		l.log.Info("no account document found, starting fresh",
			zap.String("path", l.path),
		)

		return newState(l.initialCapital, version.SchemaVersion), nil
	}

	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodePersistenceFailed, err, "failed to read account document %s", l.path)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		// Corrupt on-disk state is treated as no prior state. This discards
		// history, so it is logged loudly rather than silently.
		l.log.Warn("account document is corrupt, reinitializing",
			zap.String("path", l.path),
			zap.Error(err),
		)

		return newState(l.initialCapital, version.SchemaVersion), nil
	}

	if err := version.CheckSchemaCompatibility(state.SchemaVersion); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchemaIncompatible, "cannot load account document", err)
	}

	state.normalize()

	if err := state.validate(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStateCorrupted, err, "cannot load account document %s", l.path)
	}

	return &state, nil
}

// save serializes the whole state to a temporary file in the storage
// directory and atomically renames it over the previous document, so a crash
// mid-write never yields truncated state.
func (l *Ledger) save() error {
	data, err := json.MarshalIndent(l.state, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodePersistenceFailed, "failed to serialize account state", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodePersistenceFailed, "failed to create storage directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".account-*.json")
	if err != nil {
		return errors.Wrap(errors.ErrCodePersistenceFailed, "failed to create temporary snapshot", err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrap(errors.ErrCodePersistenceFailed, "failed to write snapshot", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrap(errors.ErrCodePersistenceFailed, "failed to sync snapshot", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(errors.ErrCodePersistenceFailed, "failed to close snapshot", err)
	}

	if err := os.Rename(tmpName, l.path); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(errors.ErrCodePersistenceFailed, "failed to replace account document", err)
	}

	return nil
}

// commit persists the current state, rolling back to prev if the write
// fails so memory never diverges from disk.
func (l *Ledger) commit(prev *State) error {
	if err := l.save(); err != nil {
		l.state = prev

		return err
	}

	return nil
}

// Cash returns the current available cash balance.
func (l *Ledger) Cash() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state.Cash
}

// TotalFees returns the cumulative fees paid since account creation.
func (l *Ledger) TotalFees() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state.TotalFees
}

// Holdings returns a copy of all open positions in deterministic symbol order.
func (l *Ledger) Holdings() []types.Position {
	l.mu.Lock()
	defer l.mu.Unlock()

	holdings := make([]types.Position, 0, len(l.state.Holdings))
	for _, symbol := range l.state.symbols() {
		holdings = append(holdings, *l.state.Holdings[symbol])
	}

	return holdings
}

// Position returns a copy of the open position for symbol, if any.
func (l *Ledger) Position(symbol string) (types.Position, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	position, ok := l.state.Holdings[symbol]
	if !ok {
		return types.Position{}, false
	}

	return *position, true
}

// History returns a copy of the full transaction log in append order.
func (l *Ledger) History() []types.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	history := make([]types.Transaction, len(l.state.History))
	copy(history, l.state.History)

	return history
}

// DailyStats returns a copy of the daily snapshot sequence in append order.
func (l *Ledger) DailyStats() []types.DailySnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := make([]types.DailySnapshot, len(l.state.DailyStats))
	copy(stats, l.state.DailyStats)

	return stats
}

// AccountInfo returns the read model consumed by the scheduler for upstream
// decision context. Equity marks open positions at their last known price
// net of estimated exit fees.
func (l *Ledger) AccountInfo() types.AccountInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	unrealized := decimal.Zero
	liquidation := decimal.Zero

	for _, position := range l.state.Holdings {
		marketValue := position.MarketValue()
		netValue := marketValue.Sub(l.fees.SellFee(marketValue))
		liquidation = liquidation.Add(netValue)
		unrealized = unrealized.Add(netValue.Sub(position.Cost().Add(position.BuyFee)))
	}

	realized := decimal.Zero

	for _, tx := range l.state.History {
		if tx.Type == types.TransactionTypeSell || tx.Type == types.TransactionTypeSellManual {
			realized = realized.Add(tx.PnL)
		}
	}

	return types.AccountInfo{
		Cash:          l.state.Cash,
		Equity:        l.state.Cash.Add(liquidation),
		RealizedPnL:   realized,
		UnrealizedPnL: unrealized,
		TotalFees:     l.state.TotalFees,
		OpenPositions: len(l.state.Holdings),
	}
}
