package types

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// TransactionType identifies what kind of ledger event a transaction records.
type TransactionType string

const (
	// TransactionTypeBuy is a programmatic buy executed by the trade executor.
	TransactionTypeBuy TransactionType = "BUY"
	// TransactionTypeSell is a programmatic sell executed by the trade executor.
	TransactionTypeSell TransactionType = "SELL"
	// TransactionTypeDeposit is a manual cash injection.
	TransactionTypeDeposit TransactionType = "DEPOSIT"
	// TransactionTypeBuyManual is an administrative position add or top-up.
	TransactionTypeBuyManual TransactionType = "BUY_MANUAL"
	// TransactionTypeSellManual is an administrative (possibly partial) sell.
	TransactionTypeSellManual TransactionType = "SELL_MANUAL"
)

// AllTransactionTypes lists every transaction kind the ledger records.
var AllTransactionTypes = []TransactionType{
	TransactionTypeBuy,
	TransactionTypeSell,
	TransactionTypeDeposit,
	TransactionTypeBuyManual,
	TransactionTypeSellManual,
}

// Transaction is a single immutable entry of the ledger audit trail. Entries
// are append-only: nothing is ever mutated or removed from the history.
//
// Field population depends on Type:
//   - BUY / BUY_MANUAL: Symbol, Name, Price, Quantity, Fee
//   - SELL / SELL_MANUAL: Symbol, Name, BuyPrice, SellPrice, Quantity,
//     BuyFee, SellFee, PnL, PnLRate, Reason
//   - DEPOSIT: Amount, Notes
type Transaction struct {
	ID     string          `json:"id" yaml:"id" validate:"required,uuid"`
	Type   TransactionType `json:"type" yaml:"type" validate:"required,oneof=BUY SELL DEPOSIT BUY_MANUAL SELL_MANUAL"`
	Symbol string          `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Name   string          `json:"name,omitempty" yaml:"name,omitempty"`

	Price     decimal.Decimal `json:"price" yaml:"price"`
	BuyPrice  decimal.Decimal `json:"buy_price" yaml:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price" yaml:"sell_price"`
	Quantity  int64           `json:"quantity,omitempty" yaml:"quantity,omitempty"`

	Fee     decimal.Decimal `json:"fee" yaml:"fee"`
	BuyFee  decimal.Decimal `json:"buy_fee" yaml:"buy_fee"`
	SellFee decimal.Decimal `json:"sell_fee" yaml:"sell_fee"`

	// Amount is the cash delta of a DEPOSIT.
	Amount decimal.Decimal `json:"amount" yaml:"amount"`

	Time time.Time `json:"time" yaml:"time" validate:"required"`

	// PnL is the realized profit or loss of a sell, net of both legs' fees.
	PnL decimal.Decimal `json:"pnl" yaml:"pnl"`
	// PnLRate is PnL divided by the all-in entry cost.
	PnLRate decimal.Decimal `json:"pnl_rate" yaml:"pnl_rate"`
	// Reason records why a sell was issued (signal text, trailing stop, ...).
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	// Notes carries free-form context for administrative entries.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// transactionDoc is the persisted form of a Transaction. Decimal fields are
// pointers so a kind that never sets them leaves no "0" keys behind.
type transactionDoc struct {
	ID        string           `json:"id"`
	Type      TransactionType  `json:"type"`
	Symbol    string           `json:"symbol,omitempty"`
	Name      string           `json:"name,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	BuyPrice  *decimal.Decimal `json:"buy_price,omitempty"`
	SellPrice *decimal.Decimal `json:"sell_price,omitempty"`
	Quantity  int64            `json:"quantity,omitempty"`
	Fee       *decimal.Decimal `json:"fee,omitempty"`
	BuyFee    *decimal.Decimal `json:"buy_fee,omitempty"`
	SellFee   *decimal.Decimal `json:"sell_fee,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Time      time.Time        `json:"time"`
	PnL       *decimal.Decimal `json:"pnl,omitempty"`
	PnLRate   *decimal.Decimal `json:"pnl_rate,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	Notes     string           `json:"notes,omitempty"`
}

func decimalField(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// MarshalJSON writes only the fields meaningful for the transaction kind:
// buy rows carry the single leg, sell rows both legs with PnL, deposits just
// the amount. Absent keys decode back to zero decimals, so the document
// round-trips.
func (t Transaction) MarshalJSON() ([]byte, error) {
	doc := transactionDoc{
		ID:       t.ID,
		Type:     t.Type,
		Symbol:   t.Symbol,
		Name:     t.Name,
		Quantity: t.Quantity,
		Time:     t.Time,
		Reason:   t.Reason,
		Notes:    t.Notes,
	}

	switch t.Type {
	case TransactionTypeBuy, TransactionTypeBuyManual:
		doc.Price = decimalField(t.Price)
		doc.Fee = decimalField(t.Fee)
	case TransactionTypeSell, TransactionTypeSellManual:
		doc.BuyPrice = decimalField(t.BuyPrice)
		doc.SellPrice = decimalField(t.SellPrice)
		doc.BuyFee = decimalField(t.BuyFee)
		doc.SellFee = decimalField(t.SellFee)
		doc.PnL = decimalField(t.PnL)
		doc.PnLRate = decimalField(t.PnLRate)
	case TransactionTypeDeposit:
		doc.Amount = decimalField(t.Amount)
	}

	return json.Marshal(doc)
}

// CashDelta returns the signed effect this transaction had on the cash
// balance. Summing deltas over the whole history reconciles the current cash
// against the initial capital.
func (t *Transaction) CashDelta() decimal.Decimal {
	qty := decimal.NewFromInt(t.Quantity)

	switch t.Type {
	case TransactionTypeBuy:
		return t.Price.Mul(qty).Add(t.Fee).Neg()
	case TransactionTypeBuyManual:
		return t.Price.Mul(qty).Neg()
	case TransactionTypeSell:
		return t.SellPrice.Mul(qty).Sub(t.SellFee)
	case TransactionTypeSellManual:
		return t.SellPrice.Mul(qty)
	case TransactionTypeDeposit:
		return t.Amount
	default:
		return decimal.Zero
	}
}

// Validate validates the Transaction struct.
func (t *Transaction) Validate() error {
	validate := validator.New()
	if err := validate.Struct(t); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTransaction, "invalid transaction", err)
	}

	return nil
}
