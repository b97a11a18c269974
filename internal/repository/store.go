package repository

import "context"

// KeyValueStore is the persistence substrate for catalog and ledger rows.
// Rows are grouped by namespace: the catalog lives in its own namespace and
// every ledger owner gets another.
type KeyValueStore interface {
	Get(ctx context.Context, namespace, key string) (value string, found bool, err error)
	List(ctx context.Context, namespace, prefix string) (map[string]string, error)

	// BeginTx starts a transaction; writes are visible to other readers only after Commit
	BeginTx(ctx context.Context) (KeyValueTx, error)

	Ping(ctx context.Context) error
	Close()
}

// KeyValueTx extends Tx with key/value operations
type KeyValueTx interface {
	Tx // Commit, Rollback

	Get(ctx context.Context, namespace, key string) (value string, found bool, err error)
	List(ctx context.Context, namespace, prefix string) (map[string]string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
}
