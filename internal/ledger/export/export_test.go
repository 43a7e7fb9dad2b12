package export

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/paper-trading/internal/logger"
	"github.com/rxtech-lab/paper-trading/internal/types"
)

type ExportTestSuite struct {
	suite.Suite
	history []types.Transaction
	stats   []types.DailySnapshot
}

func (suite *ExportTestSuite) SetupTest() {
	buyTime := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)

	suite.history = []types.Transaction{
		{
			ID:       uuid.NewString(),
			Type:     types.TransactionTypeBuy,
			Symbol:   "600519",
			Name:     "贵州茅台",
			Price:    decimal.NewFromInt(10),
			Quantity: 1000,
			Fee:      decimal.RequireFromString("5.10"),
			Time:     buyTime,
		},
		{
			ID:        uuid.NewString(),
			Type:      types.TransactionTypeSell,
			Symbol:    "600519",
			Name:      "贵州茅台",
			BuyPrice:  decimal.NewFromInt(10),
			SellPrice: decimal.NewFromInt(11),
			Quantity:  1000,
			BuyFee:    decimal.RequireFromString("5.10"),
			SellFee:   decimal.RequireFromString("10.61"),
			Time:      buyTime.AddDate(0, 0, 1),
			PnL:       decimal.RequireFromString("984.29"),
			PnLRate:   decimal.RequireFromString("0.0984"),
			Reason:    "take profit",
		},
	}

	suite.stats = []types.DailySnapshot{
		{
			Date:       "2026-03-02",
			TotalValue: decimal.RequireFromString("19984.80"),
			TotalPnL:   decimal.RequireFromString("-15.20"),
			TotalFees:  decimal.RequireFromString("5.10"),
			DayReturn:  decimal.Zero,
			Holdings: []types.HoldingDetail{
				{
					Symbol:       "600519",
					CurrentPrice: decimal.NewFromInt(10),
					NetPnL:       decimal.RequireFromString("-15.20"),
					NetPnLRate:   decimal.RequireFromString("-0.0015"),
				},
			},
		},
		{
			Date:       "2026-03-03",
			TotalValue: decimal.RequireFromString("20984.29"),
			TotalPnL:   decimal.RequireFromString("984.29"),
			TotalFees:  decimal.RequireFromString("15.71"),
			DayReturn:  decimal.RequireFromString("0.05"),
			Holdings:   nil,
		},
	}
}

func (suite *ExportTestSuite) countRows(path string) int {
	db, err := sql.Open("duckdb", ":memory:")
	suite.Require().NoError(err)

	defer db.Close()

	var count int
	row := db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM read_parquet('%s')`, path))
	suite.Require().NoError(row.Scan(&count))

	return count
}

func (suite *ExportTestSuite) TestArchive() {
	dir := suite.T().TempDir()

	paths, err := Archive(dir, suite.history, suite.stats, logger.NewNopLogger())
	suite.Require().NoError(err)

	suite.Require().FileExists(paths["transactions"])
	suite.Require().FileExists(paths["daily_stats"])
	suite.Require().FileExists(paths["snapshot_holdings"])

	suite.Assert().Equal(2, suite.countRows(paths["transactions"]))
	suite.Assert().Equal(2, suite.countRows(paths["daily_stats"]))
	suite.Assert().Equal(1, suite.countRows(paths["snapshot_holdings"]))
}

func (suite *ExportTestSuite) TestExportedValues() {
	dir := suite.T().TempDir()

	paths, err := Archive(dir, suite.history, suite.stats, logger.NewNopLogger())
	suite.Require().NoError(err)

	db, err := sql.Open("duckdb", ":memory:")
	suite.Require().NoError(err)

	defer db.Close()

	var pnl float64
	row := db.QueryRow(fmt.Sprintf(
		`SELECT pnl FROM read_parquet('%s') WHERE type = 'SELL'`, paths["transactions"]))
	suite.Require().NoError(row.Scan(&pnl))
	suite.Assert().InDelta(984.29, pnl, 1e-9)

	var totalValue float64
	row = db.QueryRow(fmt.Sprintf(
		`SELECT total_value FROM read_parquet('%s') WHERE date = '2026-03-03'`, paths["daily_stats"]))
	suite.Require().NoError(row.Scan(&totalValue))
	suite.Assert().InDelta(20984.29, totalValue, 1e-9)
}

func (suite *ExportTestSuite) TestArchiveEmptyLedger() {
	dir := suite.T().TempDir()

	paths, err := Archive(dir, nil, nil, logger.NewNopLogger())
	suite.Require().NoError(err)

	suite.Assert().Equal(0, suite.countRows(paths["transactions"]))
}

func TestExportTestSuite(t *testing.T) {
	suite.Run(t, new(ExportTestSuite))
}
