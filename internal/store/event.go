package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Every event row carries a sequence number drawn from one counter
// shared by all event tables, so a diagnosis and the LLM calls it made can
// be put in order. The row ids are per table and cannot.

const sequenceTableName = "global_sequence"

var nowUTC = func() time.Time { return time.Now().UTC() }

func sqlite() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// seedSequence creates the counter row if the database is new.
func seedSequence(ctx context.Context, db *sql.DB) error {
	query, args := sqlite().Insert(sequenceTableName).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}

// nextSequence claims the next number inside tx. A rolled back insert
// gives its number back.
func nextSequence(ctx context.Context, tx *sql.Tx) (int64, error) {
	var seq int64
	err := tx.QueryRowContext(ctx,
		`UPDATE `+sequenceTableName+` SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

type eventRepo struct {
	db *sql.DB
}

// insert appends one row to table, stamping it with a sequence number and
// the current time.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values []any) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	seq, err := nextSequence(ctx, tx)
	if err != nil {
		return err
	}
	query, args := sqlite().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seq, nowUTC()}, values...)...).
		Query()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return tx.Commit()
}

// selectEvents selects columns from table newest first, narrowed by opts.
func selectEvents(table string, columns []string, opts QueryOpts) *entsql.Selector {
	t := sqlite().Table(table)
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT(t.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(t.C("sequence"), opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C("timestamp"), opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(t.C("timestamp"), opts.To.UTC()))
	}

	sel := sqlite().Select(t.Columns(columns...)...).From(t).
		OrderBy(entsql.Desc(t.C("sequence")))
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}
