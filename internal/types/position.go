package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// Lot is the minimum tradable unit of the simulated equities market.
// Every position quantity must be a positive integer multiple of it.
const Lot int64 = 100

// Position represents an open holding of a single symbol. A symbol has at
// most one open position at a time; a later buy after a full sell creates a
// new, unrelated Position.
type Position struct {
	Symbol string `json:"-" yaml:"-"`
	// Name is the instrument display name.
	Name string `json:"name" yaml:"name"`
	// Quantity is the held share count, always a positive multiple of Lot.
	Quantity int64 `json:"quantity" yaml:"quantity" validate:"required,gt=0"`
	// BuyPrice is the entry price per share.
	BuyPrice decimal.Decimal `json:"buy_price" yaml:"buy_price"`
	// BuyTime is when the position was opened. Used for the T+1 settlement rule.
	BuyTime time.Time `json:"buy_time" yaml:"buy_time" validate:"required"`
	// CurrentPrice is the last known market price, refreshed by valuation updates.
	CurrentPrice decimal.Decimal `json:"current_price" yaml:"current_price"`
	// MaxPrice is the high-water price observed since purchase, used for
	// trailing-stop evaluation.
	MaxPrice decimal.Decimal `json:"max_price" yaml:"max_price"`
	// BuyFee is the fee paid on the buy leg.
	BuyFee decimal.Decimal `json:"buy_fee" yaml:"buy_fee"`
}

// Validate validates the Position struct, including the lot-size constraint.
func (p *Position) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidQuantity, "invalid position", err)
	}

	if p.Quantity%Lot != 0 {
		return errors.Newf(errors.ErrCodeInvalidQuantity, "position quantity %d is not a multiple of %d", p.Quantity, Lot)
	}

	if !p.BuyPrice.IsPositive() {
		return errors.New(errors.ErrCodeInvalidPrice, "position buy price must be positive")
	}

	return nil
}

// Cost returns the entry notional value (quantity x buy price), excluding fees.
func (p *Position) Cost() decimal.Decimal {
	return p.BuyPrice.Mul(decimal.NewFromInt(p.Quantity))
}

// MarketValue returns the mark-to-market notional at the current price,
// before any estimated exit fee.
func (p *Position) MarketValue() decimal.Decimal {
	return p.CurrentPrice.Mul(decimal.NewFromInt(p.Quantity))
}

// BoughtOn reports whether the position was opened on the same calendar date
// as t. The comparison uses the calendar date in t's location.
func (p *Position) BoughtOn(t time.Time) bool {
	return p.BuyTime.Format(time.DateOnly) == t.Format(time.DateOnly)
}
