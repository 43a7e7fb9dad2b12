package datasource

import (
	"context"
	"time"

	"github.com/rxtech-lab/paper-trading/internal/marketdata"
)

// MarketSpotSourceName is the registry key of the built-in spot feed.
const MarketSpotSourceName = "market_spot"

var marketSpotColumns = []string{"code", "name", "price", "prev_close", "percent_change"}

// MarketSpotSource exposes the realtime spot snapshot table as a data
// source. The trigger time selects the fetch moment only; the feed itself is
// always the latest snapshot.
type MarketSpotSource struct {
	fetcher marketdata.SpotFetcher
}

// NewMarketSpotSource creates a spot feed backed by the given fetcher.
func NewMarketSpotSource(fetcher marketdata.SpotFetcher) *MarketSpotSource {
	return &MarketSpotSource{fetcher: fetcher}
}

func (s *MarketSpotSource) Name() string {
	return MarketSpotSourceName
}

func (s *MarketSpotSource) Columns() []string {
	return marketSpotColumns
}

func (s *MarketSpotSource) Fetch(ctx context.Context, triggerTime time.Time) ([]Row, error) {
	quotes, err := s.fetcher.FetchSpot(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(quotes))
	for _, quote := range quotes {
		rows = append(rows, Row{
			quote.Code,
			quote.Name,
			quote.Price.String(),
			quote.PrevClose.String(),
			quote.PercentChange.String(),
		})
	}

	return rows, nil
}
