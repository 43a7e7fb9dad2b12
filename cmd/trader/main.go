package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/paper-trading/internal/datasource"
	"github.com/rxtech-lab/paper-trading/internal/ledger"
	"github.com/rxtech-lab/paper-trading/internal/ledger/export"
	"github.com/rxtech-lab/paper-trading/internal/logger"
	"github.com/rxtech-lab/paper-trading/internal/marketdata"
	"github.com/rxtech-lab/paper-trading/internal/scheduler"
	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/internal/version"
)

// noSignals is the default signal source: trade suggestions come from an
// external integration, so out of the box a cycle only manages trailing
// stops and performance snapshots.
type noSignals struct{}

func (noSignals) Signals(ctx context.Context, triggerTime time.Time, account types.AccountInfo) ([]scheduler.Signal, error) {
	return nil, nil
}

func loadConfig(cmd *cli.Command) (ledger.Config, error) {
	config := ledger.DefaultConfig()

	if path := cmd.String("config"); path != "" {
		loaded, err := ledger.LoadConfig(path)
		if err != nil {
			return ledger.Config{}, err
		}

		config = loaded
	}

	if storage := cmd.String("storage"); storage != "" {
		config.StoragePath = storage
	}

	return config, nil
}

func openLedger(cmd *cli.Command, log *logger.Logger) (*ledger.Ledger, ledger.Config, error) {
	config, err := loadConfig(cmd)
	if err != nil {
		return nil, ledger.Config{}, err
	}

	l, err := ledger.Open(config, log)
	if err != nil {
		return nil, ledger.Config{}, err
	}

	return l, config, nil
}

func exchangeLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		return time.FixedZone("CST", 8*3600)
	}

	return loc
}

func newScheduler(cmd *cli.Command, log *logger.Logger) (*scheduler.Scheduler, error) {
	l, config, err := openLedger(cmd, log)
	if err != nil {
		return nil, err
	}

	loc := exchangeLocation()
	provider := marketdata.NewCachedProvider(
		marketdata.NewEastMoneyProvider(),
		marketdata.NewInstrumentCache(loc),
	)

	tradeAmount, err := types.DecimalFromFloat(config.TradeAmount)
	if err != nil {
		return nil, err
	}

	return scheduler.NewScheduler(l, provider, noSignals{}, tradeAmount, loc, log), nil
}

// newSourceRegistry builds the data sources available to external signal
// integrations.
func newSourceRegistry() (*datasource.Registry, error) {
	registry := datasource.NewRegistry()
	if err := registry.Register(datasource.NewMarketSpotSource(marketdata.NewEastMoneyProvider())); err != nil {
		return nil, err
	}

	return registry, nil
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}

	sched, err := newScheduler(cmd, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sched.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	return nil
}

func onceAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}

	sched, err := newScheduler(cmd, log)
	if err != nil {
		return err
	}

	return sched.RunOnce(ctx)
}

func statusAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}

	l, _, err := openLedger(cmd, log)
	if err != nil {
		return err
	}

	status := struct {
		Account  types.AccountInfo     `json:"account"`
		Holdings []types.Position      `json:"holdings"`
		Stats    []types.DailySnapshot `json:"daily_stats"`
	}{
		Account:  l.AccountInfo(),
		Holdings: l.Holdings(),
		Stats:    l.DailyStats(),
	}

	output, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(output))

	return nil
}

func depositAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}

	l, _, err := openLedger(cmd, log)
	if err != nil {
		return err
	}

	amount, err := types.DecimalFromFloat(cmd.Float("amount"))
	if err != nil {
		return err
	}

	tx, err := l.Deposit(amount, time.Now().In(exchangeLocation()), cmd.String("notes"))
	if err != nil {
		return err
	}

	fmt.Printf("deposited %s, cash is now %s\n", tx.Amount, l.Cash())

	return nil
}

func addHoldingAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}

	l, _, err := openLedger(cmd, log)
	if err != nil {
		return err
	}

	price, err := types.DecimalFromFloat(cmd.Float("price"))
	if err != nil {
		return err
	}

	tx, err := l.AddManualPosition(
		cmd.String("symbol"),
		cmd.String("name"),
		price,
		cmd.Int("quantity"),
		time.Now().In(exchangeLocation()),
	)
	if err != nil {
		return err
	}

	fmt.Printf("added %d of %s at %s\n", tx.Quantity, tx.Symbol, tx.Price)

	return nil
}

func sellHoldingAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}

	l, _, err := openLedger(cmd, log)
	if err != nil {
		return err
	}

	price, err := types.DecimalFromFloat(cmd.Float("price"))
	if err != nil {
		return err
	}

	tx, err := l.SellManualPosition(
		cmd.String("symbol"),
		price,
		cmd.Int("quantity"),
		time.Now().In(exchangeLocation()),
		cmd.String("notes"),
	)
	if err != nil {
		return err
	}

	fmt.Printf("sold %d of %s at %s, pnl %s\n", tx.Quantity, tx.Symbol, tx.SellPrice, tx.PnL)

	return nil
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}

	l, _, err := openLedger(cmd, log)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if err := os.MkdirAll(output, 0755); err != nil {
		return err
	}

	paths, err := export.Archive(output, l.History(), l.DailyStats(), log)
	if err != nil {
		return err
	}

	for _, path := range paths {
		fmt.Println(path)
	}

	return nil
}

func sourcesAction(ctx context.Context, cmd *cli.Command) error {
	registry, err := newSourceRegistry()
	if err != nil {
		return err
	}

	for _, name := range registry.List() {
		source, err := registry.Get(name)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %v\n", name, source.Columns())
	}

	return nil
}

func schemaAction(ctx context.Context, cmd *cli.Command) error {
	config := ledger.DefaultConfig()

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func main() {
	// Missing .env is fine; it only supplies optional overrides.
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:    "trader",
		Usage:   "Virtual A-share trading ledger",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file",
				Sources: cli.EnvVars("TRADER_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "storage",
				Aliases: []string{"s"},
				Usage:   "Path of the account JSON document (overrides config)",
				Sources: cli.EnvVars("TRADER_STORAGE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the intraday decision loop until interrupted",
				Action: runAction,
			},
			{
				Name:   "once",
				Usage:  "Execute a single decision cycle",
				Action: onceAction,
			},
			{
				Name:   "status",
				Usage:  "Print the account read model as JSON",
				Action: statusAction,
			},
			{
				Name:  "deposit",
				Usage: "Add cash to the account",
				Flags: []cli.Flag{
					&cli.FloatFlag{Name: "amount", Usage: "Cash amount to add", Required: true},
					&cli.StringFlag{Name: "notes", Usage: "Free-form note for the transaction"},
				},
				Action: depositAction,
			},
			{
				Name:  "add-holding",
				Usage: "Record a fee-free administrative buy",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "symbol", Usage: "Instrument code", Required: true},
					&cli.StringFlag{Name: "name", Usage: "Instrument display name"},
					&cli.FloatFlag{Name: "price", Usage: "Price per share", Required: true},
					&cli.IntFlag{Name: "quantity", Usage: "Share count, a multiple of 100", Required: true},
				},
				Action: addHoldingAction,
			},
			{
				Name:  "sell-holding",
				Usage: "Record a fee-free administrative sell",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "symbol", Usage: "Instrument code", Required: true},
					&cli.FloatFlag{Name: "price", Usage: "Price per share", Required: true},
					&cli.IntFlag{Name: "quantity", Usage: "Share count, a multiple of 100", Required: true},
					&cli.StringFlag{Name: "notes", Usage: "Free-form note for the transaction"},
				},
				Action: sellHoldingAction,
			},
			{
				Name:  "export",
				Usage: "Archive history and snapshots as Parquet",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory", Value: "data/export"},
				},
				Action: exportAction,
			},
			{
				Name:   "sources",
				Usage:  "List registered data sources and their columns",
				Action: sourcesAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the config JSON schema",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
