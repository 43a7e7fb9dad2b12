package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/rxtech-lab/paper-trading/internal/marketdata"
	"github.com/rxtech-lab/paper-trading/internal/types"
)

type MockProviderTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
}

func (suite *MockProviderTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
}

func (suite *MockProviderTestSuite) TestMockProviderSatisfiesInterface() {
	var provider marketdata.Provider = NewMockProvider(suite.ctrl)
	suite.Assert().NotNil(provider)
}

func (suite *MockProviderTestSuite) TestCachedProviderWithMockFetcher() {
	fetcher := NewMockSpotFetcher(suite.ctrl)
	fetcher.EXPECT().FetchSpot(gomock.Any()).Return([]types.Quote{
		{Code: "600519", Name: "TEST-0", Price: decimal.NewFromInt(10)},
	}, nil).Times(1)

	provider := marketdata.NewCachedProvider(fetcher, marketdata.NewInstrumentCache(time.UTC))

	quote, err := provider.GetQuote(context.Background(), "600519")
	suite.Require().NoError(err)
	suite.Assert().True(quote.Price.Equal(decimal.NewFromInt(10)))
}

func TestMockProviderTestSuite(t *testing.T) {
	suite.Run(t, new(MockProviderTestSuite))
}
