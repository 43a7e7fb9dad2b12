package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/paper-trading/internal/marketdata Provider,SpotFetcher
//go:generate mockgen -destination=./mock_signal_source.go -package=mocks github.com/rxtech-lab/paper-trading/internal/scheduler SignalSource
//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/paper-trading/internal/datasource DataSource
