package mocks

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/paper-trading/internal/types"
)

// QuoteGenerator produces a synthetic spot snapshot table for testing and
// benchmarking. It implements marketdata.SpotFetcher and evolves prices with
// a random walk on every fetch, so repeated cycles see moving quotes.
type QuoteGenerator struct {
	rng    *rand.Rand
	config GeneratorConfig
	prices map[string]float64
	closes map[string]float64
}

// GeneratorConfig configures how quotes are generated.
type GeneratorConfig struct {
	// Codes are the instrument codes to include in the snapshot.
	Codes []string
	// InitialPrice is the starting price of every instrument.
	InitialPrice float64
	// Volatility controls per-fetch price movement (0.01 = 1% typical move).
	Volatility float64
	// Trend is the drift factor (-0.01 to 0.01 for bearish to bullish).
	Trend float64
}

// DefaultGeneratorConfig returns a sensible default configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Codes:        []string{"600519", "000001", "300750"},
		InitialPrice: 100.0,
		Volatility:   0.01,
		Trend:        0.0,
	}
}

// NewQuoteGenerator creates a generator with the given seed. Use a fixed
// seed for reproducible results in tests.
func NewQuoteGenerator(seed int64, config GeneratorConfig) *QuoteGenerator {
	prices := make(map[string]float64, len(config.Codes))
	closes := make(map[string]float64, len(config.Codes))

	for _, code := range config.Codes {
		prices[code] = config.InitialPrice
		closes[code] = config.InitialPrice
	}

	return &QuoteGenerator{
		rng:    rand.New(rand.NewSource(seed)),
		config: config,
		prices: prices,
		closes: closes,
	}
}

// FetchSpot returns the current synthetic snapshot, advancing every price by
// one random-walk step.
func (g *QuoteGenerator) FetchSpot(ctx context.Context) ([]types.Quote, error) {
	quotes := make([]types.Quote, 0, len(g.config.Codes))

	for i, code := range g.config.Codes {
		step := g.config.Trend + g.config.Volatility*g.rng.NormFloat64()
		price := g.prices[code] * math.Exp(step)
		g.prices[code] = price

		prevClose := g.closes[code]
		percentChange := (price - prevClose) / prevClose * 100

		quotes = append(quotes, types.Quote{
			Code:          code,
			Name:          fmt.Sprintf("TEST-%d", i),
			Price:         decimal.NewFromFloat(price).Round(2),
			PrevClose:     decimal.NewFromFloat(prevClose).Round(2),
			PercentChange: decimal.NewFromFloat(percentChange).Round(2),
		})
	}

	return quotes, nil
}

// RollDay closes the current session: every instrument's previous close
// becomes its latest price, resetting the day percent change.
func (g *QuoteGenerator) RollDay() {
	for code, price := range g.prices {
		g.closes[code] = price
	}
}
