package database

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alexwday/aegis-calendar-events-refresh/internal/model"
)

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Uploader replaces the target table's contents with one run's canonical
// events. The refresh is delete-then-insert inside a single transaction, so
// readers never observe a partial upload.
type Uploader struct {
	db     *pgxpool.Pool
	table  string
	logger *slog.Logger
}

// NewUploader creates an Uploader for the given table.
func NewUploader(db *pgxpool.Pool, table string, logger *slog.Logger) (*Uploader, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{db: db, table: table, logger: logger}, nil
}

// ValidateSchema checks the target table exists and carries every canonical
// column. Extra columns are tolerated and logged; missing ones are fatal.
func (u *Uploader) ValidateSchema(ctx context.Context) error {
	rows, err := u.db.Query(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = $1
	`, u.table)
	if err != nil {
		return fmt.Errorf("query table columns: %w", err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return fmt.Errorf("scan column name: %w", err)
		}
		present[col] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read table columns: %w", err)
	}

	if len(present) == 0 {
		return fmt.Errorf("table %q not found", u.table)
	}

	var missing, extra []string
	for _, col := range model.Columns {
		if !present[col] {
			missing = append(missing, col)
		}
		delete(present, col)
	}
	for col := range present {
		extra = append(extra, col)
	}

	if len(missing) > 0 {
		return fmt.Errorf("table %q is missing columns: %s", u.table, strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		u.logger.Warn("table has extra columns (ignored)",
			"table", u.table,
			"columns", strings.Join(extra, ", "),
		)
	}
	return nil
}

// RowCount returns the current number of rows in the target table.
func (u *Uploader) RowCount(ctx context.Context) (int64, error) {
	var count int64
	err := u.db.QueryRow(ctx, "SELECT COUNT(*) FROM "+u.table).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return count, nil
}

// DryRun validates schema and reports what a refresh would change, without
// modifying the database.
func (u *Uploader) DryRun(ctx context.Context, events []model.CanonicalEvent) error {
	if err := u.ValidateSchema(ctx); err != nil {
		return err
	}
	count, err := u.RowCount(ctx)
	if err != nil {
		return err
	}
	u.logger.Info("dry run: no database changes made",
		"table", u.table,
		"would_delete", count,
		"would_insert", len(events),
	)
	return nil
}

// Refresh deletes all existing rows and inserts the new events.
// Returns (deleted, inserted).
func (u *Uploader) Refresh(ctx context.Context, events []model.CanonicalEvent) (int64, int64, error) {
	if err := u.ValidateSchema(ctx); err != nil {
		return 0, 0, err
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, "DELETE FROM "+u.table)
	if err != nil {
		return 0, 0, fmt.Errorf("delete existing rows: %w", err)
	}
	deleted := tag.RowsAffected()

	inserted, err := u.insertBatch(ctx, tx, events)
	if err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("commit refresh: %w", err)
	}

	u.logger.Info("table refreshed",
		"table", u.table,
		"deleted", deleted,
		"inserted", inserted,
	)
	return deleted, inserted, nil
}

func (u *Uploader) insertBatch(ctx context.Context, tx pgx.Tx, events []model.CanonicalEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(model.Columns))
	for i := range model.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	stmt := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		u.table,
		strings.Join(model.Columns, ", "),
		strings.Join(placeholders, ", "),
	)

	batch := &pgx.Batch{}
	for _, e := range events {
		row := e.Row()
		args := make([]any, len(row))
		for i, v := range row {
			if v == "" {
				args[i] = nil
			} else {
				args[i] = v
			}
		}
		batch.Queue(stmt, args...)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range events {
		tag, err := results.Exec()
		if err != nil {
			return 0, fmt.Errorf("insert event: %w", err)
		}
		inserted += tag.RowsAffected()
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}
	return inserted, nil
}
