package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/paper-trading/internal/fee"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (suite *ConfigTestSuite) TestDefaultConfig() {
	config := DefaultConfig()

	suite.Assert().Equal(float64(20000), config.InitialCapital)
	suite.Assert().Equal(fee.MarketAShare, config.Market)
	suite.Assert().Equal(float64(10000), config.TradeAmount)
	suite.Assert().Equal(0.02, config.TrailingStopDrop)
	suite.Assert().Equal(0.03, config.TrailingStopMinGain)
	suite.Assert().NoError(config.Validate())
}

func (suite *ConfigTestSuite) TestLoadConfig() {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")
	content := `
initial_capital: 50000
trade_amount: 20000
market: zero_fee
`
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	suite.Require().NoError(err)

	suite.Assert().Equal(float64(50000), config.InitialCapital)
	suite.Assert().Equal(float64(20000), config.TradeAmount)
	suite.Assert().Equal(fee.MarketZero, config.Market)

	// Absent fields keep their defaults.
	suite.Assert().Equal("data/account.json", config.StoragePath)
	suite.Assert().Equal(0.02, config.TrailingStopDrop)
}

func (suite *ConfigTestSuite) TestLoadConfigMissingFile() {
	_, err := LoadConfig(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidValues() {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte("initial_capital: -1\n"), 0644))

	_, err := LoadConfig(path)
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestGenerateSchema() {
	config := DefaultConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	suite.Require().NoError(err)

	suite.Assert().Contains(schemaJSON, "initial_capital")
	suite.Assert().Contains(schemaJSON, "trailing_stop_drop")
	suite.Assert().Contains(schemaJSON, "a_share")
	suite.Assert().Contains(schemaJSON, "zero_fee")
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
