// Package export archives ledger history and performance snapshots as
// Parquet files for offline analysis.
package export

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/rxtech-lab/paper-trading/internal/logger"
	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// Archiver stages ledger data in an in-memory DuckDB and copies it out as
// Parquet. Monetary values are exported as DOUBLE; the JSON document stays
// the exact record, the archive is for analysis.
type Archiver struct {
	db  *sql.DB
	sq  squirrel.StatementBuilderType
	log *logger.Logger
}

// NewArchiver creates an archiver backed by an in-memory database.
func NewArchiver(log *logger.Logger) (*Archiver, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, "failed to open staging database", err)
	}

	archiver := &Archiver{
		db:  db,
		sq:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		log: log,
	}

	if err := archiver.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return archiver, nil
}

func (a *Archiver) initialize() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			type TEXT,
			symbol TEXT,
			name TEXT,
			price DOUBLE,
			buy_price DOUBLE,
			sell_price DOUBLE,
			quantity BIGINT,
			fee DOUBLE,
			buy_fee DOUBLE,
			sell_fee DOUBLE,
			amount DOUBLE,
			time TIMESTAMP,
			pnl DOUBLE,
			pnl_rate DOUBLE,
			reason TEXT,
			notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS daily_stats (
			date TEXT PRIMARY KEY,
			total_value DOUBLE,
			total_pnl DOUBLE,
			total_fees DOUBLE,
			day_return DOUBLE,
			holdings INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS snapshot_holdings (
			date TEXT,
			symbol TEXT,
			current_price DOUBLE,
			net_pnl DOUBLE,
			net_pnl_rate DOUBLE
		)`,
	}

	for _, statement := range statements {
		if _, err := a.db.Exec(statement); err != nil {
			return errors.Wrap(errors.ErrCodeExportFailed, "failed to create staging table", err)
		}
	}

	return nil
}

// WriteHistory stages the transaction log.
func (a *Archiver) WriteHistory(history []types.Transaction) error {
	for _, tx := range history {
		query := a.sq.Insert("transactions").
			Columns("id", "type", "symbol", "name", "price", "buy_price", "sell_price",
				"quantity", "fee", "buy_fee", "sell_fee", "amount", "time", "pnl",
				"pnl_rate", "reason", "notes").
			Values(
				tx.ID,
				string(tx.Type),
				tx.Symbol,
				tx.Name,
				tx.Price.InexactFloat64(),
				tx.BuyPrice.InexactFloat64(),
				tx.SellPrice.InexactFloat64(),
				tx.Quantity,
				tx.Fee.InexactFloat64(),
				tx.BuyFee.InexactFloat64(),
				tx.SellFee.InexactFloat64(),
				tx.Amount.InexactFloat64(),
				tx.Time,
				tx.PnL.InexactFloat64(),
				tx.PnLRate.InexactFloat64(),
				tx.Reason,
				tx.Notes,
			)

		sqlStr, args, err := query.ToSql()
		if err != nil {
			return errors.Wrap(errors.ErrCodeExportFailed, "failed to build transaction insert", err)
		}

		if _, err := a.db.Exec(sqlStr, args...); err != nil {
			return errors.Wrap(errors.ErrCodeExportFailed, "failed to stage transaction", err)
		}
	}

	return nil
}

// WriteDailyStats stages the snapshot sequence and its per-holding detail.
func (a *Archiver) WriteDailyStats(stats []types.DailySnapshot) error {
	for _, snapshot := range stats {
		query := a.sq.Insert("daily_stats").
			Columns("date", "total_value", "total_pnl", "total_fees", "day_return", "holdings").
			Values(
				snapshot.Date,
				snapshot.TotalValue.InexactFloat64(),
				snapshot.TotalPnL.InexactFloat64(),
				snapshot.TotalFees.InexactFloat64(),
				snapshot.DayReturn.InexactFloat64(),
				len(snapshot.Holdings),
			)

		sqlStr, args, err := query.ToSql()
		if err != nil {
			return errors.Wrap(errors.ErrCodeExportFailed, "failed to build snapshot insert", err)
		}

		if _, err := a.db.Exec(sqlStr, args...); err != nil {
			return errors.Wrap(errors.ErrCodeExportFailed, "failed to stage snapshot", err)
		}

		for _, holding := range snapshot.Holdings {
			detail := a.sq.Insert("snapshot_holdings").
				Columns("date", "symbol", "current_price", "net_pnl", "net_pnl_rate").
				Values(
					snapshot.Date,
					holding.Symbol,
					holding.CurrentPrice.InexactFloat64(),
					holding.NetPnL.InexactFloat64(),
					holding.NetPnLRate.InexactFloat64(),
				)

			sqlStr, args, err := detail.ToSql()
			if err != nil {
				return errors.Wrap(errors.ErrCodeExportFailed, "failed to build holding insert", err)
			}

			if _, err := a.db.Exec(sqlStr, args...); err != nil {
				return errors.Wrap(errors.ErrCodeExportFailed, "failed to stage holding detail", err)
			}
		}
	}

	return nil
}

// Export copies the staged tables to Parquet files under dir and returns
// their paths.
func (a *Archiver) Export(dir string) (map[string]string, error) {
	paths := map[string]string{
		"transactions":      filepath.Join(dir, "transactions.parquet"),
		"daily_stats":       filepath.Join(dir, "daily_stats.parquet"),
		"snapshot_holdings": filepath.Join(dir, "snapshot_holdings.parquet"),
	}

	for table, path := range paths {
		if _, err := a.db.Exec(fmt.Sprintf(`COPY %s TO '%s' (FORMAT PARQUET)`, table, path)); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to export %s", table)
		}

		a.log.Info("exported table",
			zap.String("table", table),
			zap.String("path", path),
		)
	}

	return paths, nil
}

// Close releases the staging database.
func (a *Archiver) Close() error {
	return a.db.Close()
}

// Archive stages the given history and snapshots and exports them under dir
// in one shot.
func Archive(dir string, history []types.Transaction, stats []types.DailySnapshot, log *logger.Logger) (map[string]string, error) {
	archiver, err := NewArchiver(log)
	if err != nil {
		return nil, err
	}
	defer archiver.Close()

	if err := archiver.WriteHistory(history); err != nil {
		return nil, err
	}

	if err := archiver.WriteDailyStats(stats); err != nil {
		return nil, err
	}

	return archiver.Export(dir)
}
