// Package marketdata provides realtime price lookup for A-share instruments.
package marketdata

import (
	"context"

	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderEastMoney ProviderType = "eastmoney"
)

// AllProviderTypes lists every supported provider.
var AllProviderTypes = []ProviderType{
	ProviderEastMoney,
}

// Provider resolves instruments to realtime quotes. Lookups accept either
// the numeric instrument code or the display name.
type Provider interface {
	// GetQuote returns the quote for a single instrument.
	GetQuote(ctx context.Context, symbolOrName string) (types.Quote, error)
	// GetQuotes returns quotes for the given codes, keyed by code. Codes
	// with no quote are absent from the result rather than an error.
	GetQuotes(ctx context.Context, symbols []string) (map[string]types.Quote, error)
}

// SpotFetcher retrieves the full spot snapshot table of the market.
type SpotFetcher interface {
	FetchSpot(ctx context.Context) ([]types.Quote, error)
}

// NewProvider creates a market data provider based on the provider type.
func NewProvider(providerType ProviderType) (Provider, error) {
	switch providerType {
	case ProviderEastMoney:
		return NewEastMoneyProvider(), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}
