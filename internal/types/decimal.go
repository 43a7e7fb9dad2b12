package types

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// DecimalFromFloat converts a float entry-point value to an exact Decimal.
// NaN and infinities are rejected up front; decimal.NewFromFloat panics on
// them.
func DecimalFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, errors.Newf(errors.ErrCodeInvalidAmount, "value %v is not a finite number", f)
	}

	return decimal.NewFromFloat(f), nil
}
