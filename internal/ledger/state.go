package ledger

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// State is the persisted account document. One document per account.
//
// Cash, Holdings, History, DailyStats and TotalFees are owned exclusively by
// the Ledger; all mutation happens under the Ledger mutex and is committed to
// disk atomically before an operation reports success.
type State struct {
	SchemaVersion string                     `json:"schema_version"`
	Cash          decimal.Decimal            `json:"cash"`
	Holdings      map[string]*types.Position `json:"holdings"`
	History       []types.Transaction        `json:"history"`
	DailyStats    []types.DailySnapshot      `json:"daily_stats"`
	TotalFees     decimal.Decimal            `json:"total_fees"`
}

// newState creates a fresh empty account with the given starting cash.
func newState(initialCapital decimal.Decimal, schemaVersion string) *State {
	return &State{
		SchemaVersion: schemaVersion,
		Cash:          initialCapital,
		Holdings:      make(map[string]*types.Position),
		History:       []types.Transaction{},
		DailyStats:    []types.DailySnapshot{},
		TotalFees:     decimal.Zero,
	}
}

// clone returns a deep copy of the state. Mutating operations snapshot the
// state first so a failed persistence can roll back without divergence
// between memory and disk.
func (s *State) clone() *State {
	holdings := make(map[string]*types.Position, len(s.Holdings))
	for symbol, position := range s.Holdings {
		copied := *position
		holdings[symbol] = &copied
	}

	return &State{
		SchemaVersion: s.SchemaVersion,
		Cash:          s.Cash,
		Holdings:      holdings,
		History:       slices.Clone(s.History),
		DailyStats:    slices.Clone(s.DailyStats),
		TotalFees:     s.TotalFees,
	}
}

// normalize repairs fields that JSON decoding leaves inconsistent: nil
// collections and the Symbol field of holdings, which is carried by the map
// key rather than the document body.
func (s *State) normalize() {
	if s.Holdings == nil {
		s.Holdings = make(map[string]*types.Position)
	}

	if s.History == nil {
		s.History = []types.Transaction{}
	}

	if s.DailyStats == nil {
		s.DailyStats = []types.DailySnapshot{}
	}

	for symbol, position := range s.Holdings {
		position.Symbol = symbol
	}
}

// validate enforces the invariants a structurally valid document can still
// violate. A file that fails here holds readable history, so it is refused
// rather than reinitialized.
func (s *State) validate() error {
	if s.Cash.IsNegative() {
		return errors.Newf(errors.ErrCodeStateCorrupted, "cash balance %s is negative", s.Cash)
	}

	if s.TotalFees.IsNegative() {
		return errors.Newf(errors.ErrCodeStateCorrupted, "total fees %s is negative", s.TotalFees)
	}

	for symbol, position := range s.Holdings {
		if position.Quantity <= 0 || position.Quantity%types.Lot != 0 {
			return errors.Newf(errors.ErrCodeStateCorrupted, "holding %s quantity %d is not a positive lot multiple", symbol, position.Quantity)
		}

		if !position.BuyPrice.IsPositive() {
			return errors.Newf(errors.ErrCodeStateCorrupted, "holding %s buy price %s is not positive", symbol, position.BuyPrice)
		}
	}

	return nil
}

// symbols returns the held symbols in deterministic order.
func (s *State) symbols() []string {
	return slices.Sorted(maps.Keys(s.Holdings))
}
