// Package storage is the durable string key/value area the session store
// persists into. It mirrors a browser's local storage: string keys,
// string values, missing keys are not an error.
package storage

import (
	"context"
	"database/sql"
)

// Store is a durable key/value area.
//
// Get reports ok=false for a missing key. Update runs fn against a
// transactional view; either every write in fn lands or none does.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
	Update(ctx context.Context, fn func(ctx context.Context, w Writer) error) error
}

// Writer is the write half of Store, handed to Update callbacks.
type Writer interface {
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// DBTX is the subset of database/sql used by the SQLite store.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with it and commits on success.
// On error or panic the transaction is rolled back; panics are rethrown.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
