package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/paper-trading/internal/fee"
	"github.com/rxtech-lab/paper-trading/internal/logger"
	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

type LedgerTestSuite struct {
	suite.Suite
	config Config
	log    *logger.Logger
}

func (suite *LedgerTestSuite) SetupTest() {
	suite.config = DefaultConfig()
	suite.config.StoragePath = filepath.Join(suite.T().TempDir(), "account.json")
	suite.log = logger.NewNopLogger()
}

func (suite *LedgerTestSuite) TestOpenFreshAccount() {
	ledger, err := Open(suite.config, suite.log)
	suite.Require().NoError(err)

	suite.Assert().True(ledger.Cash().Equal(decimal.NewFromInt(20000)))
	suite.Assert().Empty(ledger.Holdings())
	suite.Assert().Empty(ledger.History())
	suite.Assert().Empty(ledger.DailyStats())
	suite.Assert().True(ledger.TotalFees().IsZero())

	// Opening never writes; the document appears on the first mutation.
	_, err = os.Stat(suite.config.StoragePath)
	suite.Assert().True(os.IsNotExist(err))
}

func (suite *LedgerTestSuite) TestOpenInvalidConfig() {
	config := suite.config
	config.InitialCapital = 0

	_, err := Open(config, suite.log)
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *LedgerTestSuite) TestRoundTripPersistence() {
	ledger, err := Open(suite.config, suite.log)
	suite.Require().NoError(err)

	buyTime := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err = ledger.Buy("600519", decimal.NewFromInt(10), buyTime, "Moutai", decimal.NewFromInt(10000))
	suite.Require().NoError(err)

	_, err = ledger.Deposit(decimal.NewFromInt(5000), buyTime, "top up")
	suite.Require().NoError(err)

	reopened, err := Open(suite.config, suite.log)
	suite.Require().NoError(err)

	suite.Assert().True(reopened.Cash().Equal(ledger.Cash()))
	suite.Assert().True(reopened.TotalFees().Equal(ledger.TotalFees()))
	suite.Require().Len(reopened.Holdings(), 1)
	suite.Assert().Equal("600519", reopened.Holdings()[0].Symbol)
	suite.Assert().Equal(int64(1000), reopened.Holdings()[0].Quantity)
	suite.Assert().Len(reopened.History(), 2)
}

func (suite *LedgerTestSuite) TestCorruptDocumentReinitializes() {
	suite.Require().NoError(os.WriteFile(suite.config.StoragePath, []byte("{not json"), 0644))

	ledger, err := Open(suite.config, suite.log)
	suite.Require().NoError(err)

	suite.Assert().True(ledger.Cash().Equal(decimal.NewFromInt(20000)))
	suite.Assert().Empty(ledger.History())
}

func (suite *LedgerTestSuite) TestEmptyValidDocumentIsNotCorrupt() {
	doc := `{"schema_version":"1.0.0","cash":"123.45","holdings":{},"history":[],"daily_stats":[],"total_fees":"0"}`
	suite.Require().NoError(os.WriteFile(suite.config.StoragePath, []byte(doc), 0644))

	ledger, err := Open(suite.config, suite.log)
	suite.Require().NoError(err)

	// A valid but empty document keeps its own cash, not the initial capital.
	suite.Assert().True(ledger.Cash().Equal(decimal.RequireFromString("123.45")))
}

func (suite *LedgerTestSuite) TestNegativeCashDocumentRefused() {
	doc := `{"schema_version":"1.0.0","cash":"-50","holdings":{},"history":[],"daily_stats":[],"total_fees":"0"}`
	suite.Require().NoError(os.WriteFile(suite.config.StoragePath, []byte(doc), 0644))

	_, err := Open(suite.config, suite.log)
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeStateCorrupted))
}

func (suite *LedgerTestSuite) TestBrokenLotDocumentRefused() {
	doc := `{"schema_version":"1.0.0","cash":"1000","holdings":{"600519":{"name":"Moutai","quantity":150,"buy_price":"10","buy_time":"2026-03-02T10:00:00Z","current_price":"10","max_price":"10","buy_fee":"5.10"}},"history":[],"daily_stats":[],"total_fees":"5.10"}`
	suite.Require().NoError(os.WriteFile(suite.config.StoragePath, []byte(doc), 0644))

	_, err := Open(suite.config, suite.log)
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeStateCorrupted))
}

func (suite *LedgerTestSuite) TestIncompatibleSchemaRefused() {
	doc := `{"schema_version":"2.0.0","cash":"100","holdings":{},"history":[],"daily_stats":[],"total_fees":"0"}`
	suite.Require().NoError(os.WriteFile(suite.config.StoragePath, []byte(doc), 0644))

	_, err := Open(suite.config, suite.log)
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeSchemaIncompatible))
}

func (suite *LedgerTestSuite) TestHoldingSymbolRestoredFromMapKey() {
	ledger, err := Open(suite.config, suite.log)
	suite.Require().NoError(err)

	buyTime := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err = ledger.Buy("000001", decimal.NewFromInt(10), buyTime, "Ping An Bank", decimal.NewFromInt(5000))
	suite.Require().NoError(err)

	data, err := os.ReadFile(suite.config.StoragePath)
	suite.Require().NoError(err)

	var raw map[string]json.RawMessage
	suite.Require().NoError(json.Unmarshal(data, &raw))
	suite.Assert().Contains(raw, "holdings")
	suite.Assert().Contains(raw, "schema_version")

	reopened, err := Open(suite.config, suite.log)
	suite.Require().NoError(err)

	position, ok := reopened.Position("000001")
	suite.Require().True(ok)
	suite.Assert().Equal("000001", position.Symbol)
}

func (suite *LedgerTestSuite) TestFailedPersistRollsBack() {
	dir := filepath.Join(suite.T().TempDir(), "store")
	suite.config.StoragePath = filepath.Join(dir, "account.json")

	ledger, err := Open(suite.config, suite.log)
	suite.Require().NoError(err)

	buyTime := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err = ledger.Buy("600519", decimal.NewFromInt(10), buyTime, "Moutai", decimal.NewFromInt(10000))
	suite.Require().NoError(err)

	cashBefore := ledger.Cash()

	// Replace the storage directory with a plain file so the next write fails.
	suite.Require().NoError(os.RemoveAll(dir))
	suite.Require().NoError(os.WriteFile(dir, []byte("blocker"), 0644))

	_, err = ledger.Sell("600519", decimal.NewFromInt(11), buyTime.AddDate(0, 0, 1), "signal")
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodePersistenceFailed))

	// The in-memory state must match the last successful write.
	suite.Assert().True(ledger.Cash().Equal(cashBefore))
	_, held := ledger.Position("600519")
	suite.Assert().True(held)
	suite.Assert().Len(ledger.History(), 1)
}

func (suite *LedgerTestSuite) TestAccountInfo() {
	ledger, err := Open(suite.config, suite.log)
	suite.Require().NoError(err)

	buyTime := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err = ledger.Buy("600519", decimal.NewFromInt(10), buyTime, "Moutai", decimal.NewFromInt(10000))
	suite.Require().NoError(err)

	info := ledger.AccountInfo()

	suite.Assert().True(info.Cash.Equal(decimal.RequireFromString("9994.90")))
	suite.Assert().Equal(1, info.OpenPositions)
	suite.Assert().True(info.TotalFees.Equal(decimal.RequireFromString("5.10")))
	suite.Assert().True(info.RealizedPnL.IsZero())

	// Market value 10000 less the estimated exit fee of 10.10 gives the
	// liquidation value; unrealized PnL nets out both legs' fees.
	suite.Assert().True(info.Equity.Equal(decimal.RequireFromString("19984.80")))
	suite.Assert().True(info.UnrealizedPnL.Equal(decimal.RequireFromString("-15.20")))
}

func (suite *LedgerTestSuite) TestZeroFeeMarket() {
	suite.config.Market = fee.MarketZero

	ledger, err := Open(suite.config, suite.log)
	suite.Require().NoError(err)

	buyTime := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	tx, err := ledger.Buy("600519", decimal.NewFromInt(10), buyTime, "Moutai", decimal.NewFromInt(10000))
	suite.Require().NoError(err)

	suite.Assert().True(tx.Fee.IsZero())
	suite.Assert().True(ledger.Cash().Equal(decimal.NewFromInt(10000)))
}

func (suite *LedgerTestSuite) TestHoldingsSortedBySymbol() {
	ledger, err := Open(suite.config, suite.log)
	suite.Require().NoError(err)

	buyTime := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err = ledger.Buy("600519", decimal.NewFromInt(10), buyTime, "Moutai", decimal.NewFromInt(5000))
	suite.Require().NoError(err)
	_, err = ledger.Buy("000001", decimal.NewFromInt(10), buyTime, "Ping An Bank", decimal.NewFromInt(5000))
	suite.Require().NoError(err)

	holdings := ledger.Holdings()
	suite.Require().Len(holdings, 2)
	suite.Assert().Equal("000001", holdings[0].Symbol)
	suite.Assert().Equal("600519", holdings[1].Symbol)
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

type TradingTestSuite struct {
	suite.Suite
	ledger  *Ledger
	buyTime time.Time
}

func (suite *TradingTestSuite) SetupTest() {
	config := DefaultConfig()
	config.StoragePath = filepath.Join(suite.T().TempDir(), "account.json")

	ledger, err := Open(config, logger.NewNopLogger())
	suite.Require().NoError(err)

	suite.ledger = ledger
	suite.buyTime = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
}

func (suite *TradingTestSuite) TestBuy() {
	tx, err := suite.ledger.Buy("600519", decimal.NewFromInt(10), suite.buyTime, "Moutai", decimal.NewFromInt(10000))
	suite.Require().NoError(err)

	suite.Assert().Equal(types.TransactionTypeBuy, tx.Type)
	suite.Assert().Equal(int64(1000), tx.Quantity)
	suite.Assert().True(tx.Fee.Equal(decimal.RequireFromString("5.10")))
	suite.Assert().True(suite.ledger.Cash().Equal(decimal.RequireFromString("9994.90")))

	position, ok := suite.ledger.Position("600519")
	suite.Require().True(ok)
	suite.Assert().Equal(int64(1000), position.Quantity)
	suite.Assert().True(position.BuyPrice.Equal(decimal.NewFromInt(10)))
	suite.Assert().True(position.MaxPrice.Equal(decimal.NewFromInt(10)))
	suite.Assert().True(position.BuyFee.Equal(decimal.RequireFromString("5.10")))
}

func (suite *TradingTestSuite) TestBuyFloorsToWholeLots() {
	// 10000 / 10.50 = 952.38 shares, floored to 900.
	tx, err := suite.ledger.Buy("600519", decimal.RequireFromString("10.50"), suite.buyTime, "Moutai", decimal.NewFromInt(10000))
	suite.Require().NoError(err)

	suite.Assert().Equal(int64(900), tx.Quantity)
}

func (suite *TradingTestSuite) TestBuyAlreadyHeld() {
	_, err := suite.ledger.Buy("600519", decimal.NewFromInt(10), suite.buyTime, "Moutai", decimal.NewFromInt(5000))
	suite.Require().NoError(err)

	_, err = suite.ledger.Buy("600519", decimal.NewFromInt(10), suite.buyTime, "Moutai", decimal.NewFromInt(5000))
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeAlreadyHeld))
}

func (suite *TradingTestSuite) TestBuyInvalidPrice() {
	_, err := suite.ledger.Buy("600519", decimal.Zero, suite.buyTime, "Moutai", decimal.NewFromInt(5000))
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeInvalidPrice))

	_, err = suite.ledger.Buy("600519", decimal.NewFromInt(-10), suite.buyTime, "Moutai", decimal.NewFromInt(5000))
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeInvalidPrice))
}

func (suite *TradingTestSuite) TestBuyLotTooSmall() {
	_, err := suite.ledger.Buy("600519", decimal.NewFromInt(10), suite.buyTime, "Moutai", decimal.NewFromInt(500))
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeLotTooSmall))

	suite.Assert().Empty(suite.ledger.History())
}

func (suite *TradingTestSuite) TestBuyInsufficientFunds() {
	// Cost of one lot fits in the budget but the fee pushes past the cash.
	_, err := suite.ledger.Buy("600519", decimal.NewFromInt(10), suite.buyTime, "Moutai", decimal.NewFromInt(10000))
	suite.Require().NoError(err)

	_, err = suite.ledger.Buy("000001", decimal.RequireFromString("99.90"), suite.buyTime, "Ping An Bank", decimal.NewFromInt(9994))
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeInsufficientFunds))
}

func (suite *TradingTestSuite) TestSell() {
	_, err := suite.ledger.Buy("600519", decimal.NewFromInt(10), suite.buyTime, "Moutai", decimal.NewFromInt(10000))
	suite.Require().NoError(err)

	sellTime := suite.buyTime.AddDate(0, 0, 1)
	tx, err := suite.ledger.Sell("600519", decimal.NewFromInt(11), sellTime, "take profit")
	suite.Require().NoError(err)

	suite.Assert().Equal(types.TransactionTypeSell, tx.Type)
	suite.Assert().True(tx.SellFee.Equal(decimal.RequireFromString("10.61")))
	suite.Assert().True(tx.PnL.Equal(decimal.RequireFromString("984.29")))
	suite.Assert().Equal("take profit", tx.Reason)
	suite.Assert().True(suite.ledger.Cash().Equal(decimal.RequireFromString("20984.29")))
	suite.Assert().True(suite.ledger.TotalFees().Equal(decimal.RequireFromString("15.71")))

	_, held := suite.ledger.Position("600519")
	suite.Assert().False(held)
}

func (suite *TradingTestSuite) TestSellNotHeld() {
	_, err := suite.ledger.Sell("600519", decimal.NewFromInt(11), suite.buyTime, "signal")
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeNotHeld))
}

func (suite *TradingTestSuite) TestSellSameDayViolatesSettlement() {
	_, err := suite.ledger.Buy("600519", decimal.NewFromInt(10), suite.buyTime, "Moutai", decimal.NewFromInt(10000))
	suite.Require().NoError(err)

	laterToday := suite.buyTime.Add(4 * time.Hour)
	_, err = suite.ledger.Sell("600519", decimal.NewFromInt(11), laterToday, "signal")
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeSettlementViolation))

	_, held := suite.ledger.Position("600519")
	suite.Assert().True(held)
}

func (suite *TradingTestSuite) TestFlatRoundTripLosesOnlyFees() {
	_, err := suite.ledger.Buy("600519", decimal.NewFromInt(10), suite.buyTime, "Moutai", decimal.NewFromInt(10000))
	suite.Require().NoError(err)

	tx, err := suite.ledger.Sell("600519", decimal.NewFromInt(10), suite.buyTime.AddDate(0, 0, 1), "flat exit")
	suite.Require().NoError(err)

	totalFees := tx.BuyFee.Add(tx.SellFee)
	suite.Assert().True(tx.PnL.Equal(totalFees.Neg()))
	suite.Assert().True(suite.ledger.Cash().Equal(decimal.NewFromInt(20000).Sub(totalFees)))
}

func (suite *TradingTestSuite) TestRebuyAfterSellIsFresh() {
	_, err := suite.ledger.Buy("600519", decimal.NewFromInt(10), suite.buyTime, "Moutai", decimal.NewFromInt(10000))
	suite.Require().NoError(err)

	day2 := suite.buyTime.AddDate(0, 0, 1)
	_, err = suite.ledger.Sell("600519", decimal.NewFromInt(11), day2, "signal")
	suite.Require().NoError(err)

	_, err = suite.ledger.Buy("600519", decimal.NewFromInt(11), day2, "Moutai", decimal.NewFromInt(10000))
	suite.Require().NoError(err)

	position, ok := suite.ledger.Position("600519")
	suite.Require().True(ok)
	suite.Assert().True(position.BuyPrice.Equal(decimal.NewFromInt(11)))
	suite.Assert().True(position.BuyTime.Equal(day2))

	// New position again settles T+1.
	_, err = suite.ledger.Sell("600519", decimal.NewFromInt(12), day2, "signal")
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeSettlementViolation))
}

func (suite *TradingTestSuite) TestCheckTrailingStop() {
	_, err := suite.ledger.Buy("600519", decimal.NewFromInt(10), suite.buyTime, "Moutai", decimal.NewFromInt(10000))
	suite.Require().NoError(err)

	// Raise the high-water mark to 10.80.
	_, err = suite.ledger.UpdatePerformance(map[string]decimal.Decimal{
		"600519": decimal.RequireFromString("10.80"),
	}, suite.buyTime)
	suite.Require().NoError(err)

	// 2.78% off the high with a 5% gain over entry.
	suite.Assert().True(suite.ledger.CheckTrailingStop("600519", decimal.RequireFromString("10.50")))

	// Not enough of a pullback.
	suite.Assert().False(suite.ledger.CheckTrailingStop("600519", decimal.RequireFromString("10.70")))

	// Enough of a pullback but the gain over entry is below the floor.
	suite.Assert().False(suite.ledger.CheckTrailingStop("600519", decimal.RequireFromString("10.29")))

	// A fresh high never triggers.
	suite.Assert().False(suite.ledger.CheckTrailingStop("600519", decimal.NewFromInt(11)))

	// Unknown symbol never triggers.
	suite.Assert().False(suite.ledger.CheckTrailingStop("000001", decimal.NewFromInt(11)))
}

func (suite *TradingTestSuite) TestDeposit() {
	tx, err := suite.ledger.Deposit(decimal.NewFromInt(5000), suite.buyTime, "salary")
	suite.Require().NoError(err)

	suite.Assert().Equal(types.TransactionTypeDeposit, tx.Type)
	suite.Assert().Equal("salary", tx.Notes)
	suite.Assert().True(suite.ledger.Cash().Equal(decimal.NewFromInt(25000)))

	_, err = suite.ledger.Deposit(decimal.Zero, suite.buyTime, "")
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeInvalidAmount))
}

func (suite *TradingTestSuite) TestAddManualPosition() {
	tx, err := suite.ledger.AddManualPosition("600519", "Moutai", decimal.NewFromInt(10), 1000, suite.buyTime)
	suite.Require().NoError(err)

	suite.Assert().Equal(types.TransactionTypeBuyManual, tx.Type)
	suite.Assert().True(tx.Fee.IsZero())

	// Fee free, so cash drops by exactly the share cost.
	suite.Assert().True(suite.ledger.Cash().Equal(decimal.NewFromInt(10000)))
	suite.Assert().True(suite.ledger.TotalFees().IsZero())
}

func (suite *TradingTestSuite) TestAddManualPositionTopUpAverages() {
	_, err := suite.ledger.AddManualPosition("600519", "Moutai", decimal.NewFromInt(10), 500, suite.buyTime)
	suite.Require().NoError(err)

	day2 := suite.buyTime.AddDate(0, 0, 1)
	_, err = suite.ledger.AddManualPosition("600519", "Moutai", decimal.NewFromInt(12), 500, day2)
	suite.Require().NoError(err)

	position, ok := suite.ledger.Position("600519")
	suite.Require().True(ok)
	suite.Assert().Equal(int64(1000), position.Quantity)
	suite.Assert().True(position.BuyPrice.Equal(decimal.NewFromInt(11)))
	suite.Assert().True(position.MaxPrice.Equal(decimal.NewFromInt(12)))

	// The original entry time survives a top-up.
	suite.Assert().True(position.BuyTime.Equal(suite.buyTime))
}

func (suite *TradingTestSuite) TestAddManualPositionValidation() {
	_, err := suite.ledger.AddManualPosition("600519", "Moutai", decimal.NewFromInt(10), 150, suite.buyTime)
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeLotTooSmall))

	_, err = suite.ledger.AddManualPosition("600519", "Moutai", decimal.NewFromInt(10), 100000, suite.buyTime)
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeInsufficientFunds))
}

func (suite *TradingTestSuite) TestSellManualPositionPartial() {
	_, err := suite.ledger.AddManualPosition("600519", "Moutai", decimal.NewFromInt(10), 1000, suite.buyTime)
	suite.Require().NoError(err)

	day2 := suite.buyTime.AddDate(0, 0, 1)
	tx, err := suite.ledger.SellManualPosition("600519", decimal.NewFromInt(12), 400, day2, "trim")
	suite.Require().NoError(err)

	suite.Assert().Equal(types.TransactionTypeSellManual, tx.Type)
	suite.Assert().True(tx.PnL.Equal(decimal.NewFromInt(800)))
	suite.Assert().True(tx.PnLRate.Equal(decimal.RequireFromString("0.2")))
	suite.Assert().Equal("trim", tx.Notes)

	position, ok := suite.ledger.Position("600519")
	suite.Require().True(ok)
	suite.Assert().Equal(int64(600), position.Quantity)
	suite.Assert().True(position.BuyPrice.Equal(decimal.NewFromInt(10)))

	// 10000 cash after the add, plus fee-free revenue of 4800.
	suite.Assert().True(suite.ledger.Cash().Equal(decimal.NewFromInt(14800)))
}

func (suite *TradingTestSuite) TestSellManualPositionFull() {
	_, err := suite.ledger.AddManualPosition("600519", "Moutai", decimal.NewFromInt(10), 1000, suite.buyTime)
	suite.Require().NoError(err)

	day2 := suite.buyTime.AddDate(0, 0, 1)
	_, err = suite.ledger.SellManualPosition("600519", decimal.NewFromInt(9), 1000, day2, "")
	suite.Require().NoError(err)

	_, held := suite.ledger.Position("600519")
	suite.Assert().False(held)
	suite.Assert().True(suite.ledger.Cash().Equal(decimal.NewFromInt(19000)))
}

func (suite *TradingTestSuite) TestSellManualPositionValidation() {
	_, err := suite.ledger.SellManualPosition("600519", decimal.NewFromInt(10), 100, suite.buyTime, "")
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeNotHeld))

	_, err = suite.ledger.AddManualPosition("600519", "Moutai", decimal.NewFromInt(10), 500, suite.buyTime)
	suite.Require().NoError(err)

	_, err = suite.ledger.SellManualPosition("600519", decimal.NewFromInt(10), 100, suite.buyTime, "")
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeSettlementViolation))

	day2 := suite.buyTime.AddDate(0, 0, 1)

	_, err = suite.ledger.SellManualPosition("600519", decimal.NewFromInt(10), 150, day2, "")
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeLotTooSmall))

	_, err = suite.ledger.SellManualPosition("600519", decimal.NewFromInt(10), 600, day2, "")
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeInvalidQuantity))
}

func (suite *TradingTestSuite) TestHistoryCashDeltasReconcile() {
	_, err := suite.ledger.Buy("600519", decimal.NewFromInt(10), suite.buyTime, "Moutai", decimal.NewFromInt(10000))
	suite.Require().NoError(err)

	day2 := suite.buyTime.AddDate(0, 0, 1)
	_, err = suite.ledger.Deposit(decimal.NewFromInt(3000), day2, "")
	suite.Require().NoError(err)

	_, err = suite.ledger.Sell("600519", decimal.NewFromInt(11), day2, "signal")
	suite.Require().NoError(err)

	total := decimal.NewFromInt(20000)
	for _, tx := range suite.ledger.History() {
		total = total.Add(tx.CashDelta())
	}

	suite.Assert().True(total.Equal(suite.ledger.Cash()))
}

func TestTradingTestSuite(t *testing.T) {
	suite.Run(t, new(TradingTestSuite))
}
