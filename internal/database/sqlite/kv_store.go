package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/osse101/VirtualStore_Go/internal/database"
	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/logger"
	"github.com/osse101/VirtualStore_Go/internal/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// KeyValueStore implements repository.KeyValueStore on a local SQLite file.
// It plays the role of the on-device preference store.
type KeyValueStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies migrations
func Open(ctx context.Context, path string) (*KeyValueStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateDir, err)
		}
	}

	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpen, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPing, err)
	}

	if err := database.MigrateSQLite(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	// SQLite allows one writer; a single connection serializes transactions.
	// Readers outside a transaction wait for the writer to finish.
	db.SetMaxOpenConns(1)

	logger.FromContext(ctx).Info("Opened sqlite store", "path", path)
	return &KeyValueStore{db: db}, nil
}

// KeyValueTx implements repository.KeyValueTx
type KeyValueTx struct {
	tx *sql.Tx
}

// BeginTx starts a new transaction
func (s *KeyValueStore) BeginTx(ctx context.Context) (repository.KeyValueTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &KeyValueTx{tx: tx}, nil
}

// Get reads one value outside of a transaction
func (s *KeyValueStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	return getValue(ctx, s.db, namespace, key)
}

// List reads every value of namespace whose key starts with prefix
func (s *KeyValueStore) List(ctx context.Context, namespace, prefix string) (map[string]string, error) {
	return listValues(ctx, s.db, namespace, prefix)
}

// Ping checks the database
func (s *KeyValueStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *KeyValueStore) Close() {
	if err := s.db.Close(); err != nil {
		logger.FromContext(context.Background()).Error("Failed to close sqlite store", "error", err)
	}
}

// Commit commits the transaction
func (t *KeyValueTx) Commit(ctx context.Context) error {
	return mapTxErr(t.tx.Commit())
}

// Rollback rolls back the transaction
func (t *KeyValueTx) Rollback(ctx context.Context) error {
	return mapTxErr(t.tx.Rollback())
}

// Get for Tx
func (t *KeyValueTx) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	return getValue(ctx, t.tx, namespace, key)
}

// List for Tx
func (t *KeyValueTx) List(ctx context.Context, namespace, prefix string) (map[string]string, error) {
	return listValues(ctx, t.tx, namespace, prefix)
}

// Set upserts a value
func (t *KeyValueTx) Set(ctx context.Context, namespace, key, value string) error {
	if _, err := t.tx.ExecContext(ctx, querySetValue, namespace, key, value); err != nil {
		return fmt.Errorf("%s %s/%s: %w", ErrMsgFailedToSetValue, namespace, key, err)
	}
	return nil
}

// Delete removes a value; deleting an absent key is not an error
func (t *KeyValueTx) Delete(ctx context.Context, namespace, key string) error {
	if _, err := t.tx.ExecContext(ctx, queryDeleteValue, namespace, key); err != nil {
		return fmt.Errorf("%s %s/%s: %w", ErrMsgFailedToDeleteValue, namespace, key, err)
	}
	return nil
}

func getValue(ctx context.Context, q querier, namespace, key string) (string, bool, error) {
	var value string
	err := q.QueryRowContext(ctx, queryGetValue, namespace, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%s %s/%s: %w", ErrMsgFailedToGetValue, namespace, key, err)
	}
	return value, true, nil
}

func listValues(ctx context.Context, q querier, namespace, prefix string) (map[string]string, error) {
	rows, err := q.QueryContext(ctx, queryListValues, namespace, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToListValues, namespace, err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToListValues, namespace, err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToListValues, namespace, err)
	}
	return values, nil
}

func mapTxErr(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return domain.ErrTxClosed
	}
	return err
}
