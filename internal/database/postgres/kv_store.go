package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// KeyValueStore implements repository.KeyValueStore for PostgreSQL
type KeyValueStore struct {
	db *pgxpool.Pool
}

// NewKeyValueStore creates a new KeyValueStore
func NewKeyValueStore(db *pgxpool.Pool) *KeyValueStore {
	return &KeyValueStore{db: db}
}

// KeyValueTx implements repository.KeyValueTx
type KeyValueTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (s *KeyValueStore) BeginTx(ctx context.Context) (repository.KeyValueTx, error) {
	tx, err := s.db.Begin(ctx)
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

// Ping checks the connection
func (s *KeyValueStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the pool
func (s *KeyValueStore) Close() {
	s.db.Close()
}

// Commit commits the transaction
func (t *KeyValueTx) Commit(ctx context.Context) error {
	return mapTxErr(t.tx.Commit(ctx))
}

// Rollback rolls back the transaction
func (t *KeyValueTx) Rollback(ctx context.Context) error {
	return mapTxErr(t.tx.Rollback(ctx))
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
	if _, err := t.tx.Exec(ctx, querySetValue, namespace, key, value); err != nil {
		return fmt.Errorf("%s %s/%s: %w", ErrMsgFailedToSetValue, namespace, key, err)
	}
	return nil
}

// Delete removes a value; deleting an absent key is not an error
func (t *KeyValueTx) Delete(ctx context.Context, namespace, key string) error {
	if _, err := t.tx.Exec(ctx, queryDeleteValue, namespace, key); err != nil {
		return fmt.Errorf("%s %s/%s: %w", ErrMsgFailedToDeleteValue, namespace, key, err)
	}
	return nil
}

func getValue(ctx context.Context, q querier, namespace, key string) (string, bool, error) {
	var value string
	err := q.QueryRow(ctx, queryGetValue, namespace, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%s %s/%s: %w", ErrMsgFailedToGetValue, namespace, key, err)
	}
	return value, true, nil
}

func listValues(ctx context.Context, q querier, namespace, prefix string) (map[string]string, error) {
	rows, err := q.Query(ctx, queryListValues, namespace, prefix)
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
	if errors.Is(err, pgx.ErrTxClosed) {
		return domain.ErrTxClosed
	}
	return err
}
