package ledger

import (
	"encoding/json"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/paper-trading/internal/fee"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// Config holds the account-level policy of the ledger.
type Config struct {
	// InitialCapital is the starting cash of a fresh account.
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital" jsonschema:"title=Initial Capital,description=Starting cash for a fresh account,minimum=0" validate:"gt=0"`
	// StoragePath is the location of the persisted account document.
	StoragePath string `yaml:"storage_path" json:"storage_path" jsonschema:"title=Storage Path,description=Path of the persisted account JSON document" validate:"required"`
	// Market selects the fee schedule.
	Market fee.Market `yaml:"market" json:"market" jsonschema:"title=Market,description=Fee schedule to apply to trades"`
	// TradeAmount is the cash budget of a single programmatic buy.
	TradeAmount float64 `yaml:"trade_amount" json:"trade_amount" jsonschema:"title=Trade Amount,description=Cash budget per programmatic buy,minimum=0" validate:"gt=0"`
	// TrailingStopDrop is the required drawdown from the high-water price
	// before the trailing stop advises an exit (0.02 = 2%).
	TrailingStopDrop float64 `yaml:"trailing_stop_drop" json:"trailing_stop_drop" jsonschema:"title=Trailing Stop Drop,description=Drawdown from the high-water price that arms the trailing stop,minimum=0" validate:"gte=0,lt=1"`
	// TrailingStopMinGain is the minimum gain over the buy price before the
	// trailing stop can trigger at all (0.03 = 3%).
	TrailingStopMinGain float64 `yaml:"trailing_stop_min_gain" json:"trailing_stop_min_gain" jsonschema:"title=Trailing Stop Min Gain,description=Minimum gain over the buy price before the trailing stop applies,minimum=0" validate:"gte=0,lt=1"`
}

// DefaultConfig returns the stock account policy: 20000 starting cash,
// A-share fees, 10000 per buy, 2% trailing drop after a 3% gain.
func DefaultConfig() Config {
	return Config{
		InitialCapital:      20000,
		StoragePath:         "data/account.json",
		Market:              fee.MarketAShare,
		TradeAmount:         10000,
		TrailingStopDrop:    0.02,
		TrailingStopMinGain: 0.03,
	}
}

// LoadConfig reads and validates a YAML config file, applying defaults for
// absent fields.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config file", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid ledger config", err)
	}

	return nil
}

// GenerateSchema generates a JSON schema for the ledger Config.
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if strings.Contains(t.String(), "fee.Market") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: fee.AllMarkets,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "paper-trading-ledger-config"
	schema.Description = "Configuration schema for the virtual trading ledger"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON returns the config schema as an indented JSON string.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(data), nil
}
