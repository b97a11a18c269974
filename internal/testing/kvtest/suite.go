// Package kvtest holds behaviour checks shared by every repository.KeyValueStore implementation.
package kvtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/repository"
)

// Run exercises store against the key/value contract.
// The store must be empty when Run starts.
func Run(t *testing.T, store repository.KeyValueStore) {
	t.Helper()

	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, store) })
	t.Run("CommitPersists", func(t *testing.T) { testCommitPersists(t, store) })
	t.Run("RollbackDiscards", func(t *testing.T) { testRollbackDiscards(t, store) })
	t.Run("TxSeesOwnWrites", func(t *testing.T) { testTxSeesOwnWrites(t, store) })
	t.Run("Overwrite", func(t *testing.T) { testOverwrite(t, store) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, store) })
	t.Run("NamespacesIsolated", func(t *testing.T) { testNamespacesIsolated(t, store) })
	t.Run("ListPrefix", func(t *testing.T) { testListPrefix(t, store) })
	t.Run("RollbackAfterCommit", func(t *testing.T) { testRollbackAfterCommit(t, store) })
}

func set(t *testing.T, store repository.KeyValueStore, namespace string, kv map[string]string) {
	t.Helper()
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	for k, v := range kv {
		require.NoError(t, tx.Set(ctx, namespace, k, v))
	}
	require.NoError(t, tx.Commit(ctx))
}

func testGetMissing(t *testing.T, store repository.KeyValueStore) {
	v, found, err := store.Get(context.Background(), "missing", "nothing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, v)
}

func testCommitPersists(t *testing.T, store repository.KeyValueStore) {
	set(t, store, "commit", map[string]string{"good.gem.balance": "5"})

	v, found, err := store.Get(context.Background(), "commit", "good.gem.balance")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "5", v)
}

func testRollbackDiscards(t *testing.T, store repository.KeyValueStore) {
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Set(ctx, "rollback", "k", "v"))
	require.NoError(t, tx.Rollback(ctx))

	_, found, err := store.Get(ctx, "rollback", "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func testTxSeesOwnWrites(t *testing.T, store repository.KeyValueStore) {
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	require.NoError(t, tx.Set(ctx, "own", "k", "v1"))
	v, found, err := tx.Get(ctx, "own", "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v1", v)

	require.NoError(t, tx.Delete(ctx, "own", "k"))
	_, found, err = tx.Get(ctx, "own", "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func testOverwrite(t *testing.T, store repository.KeyValueStore) {
	set(t, store, "overwrite", map[string]string{"k": "1"})
	set(t, store, "overwrite", map[string]string{"k": "2"})

	v, _, err := store.Get(context.Background(), "overwrite", "k")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func testDelete(t *testing.T, store repository.KeyValueStore) {
	ctx := context.Background()
	set(t, store, "delete", map[string]string{"k": "1"})

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Delete(ctx, "delete", "k"))
	require.NoError(t, tx.Delete(ctx, "delete", "absent"))
	require.NoError(t, tx.Commit(ctx))

	_, found, err := store.Get(ctx, "delete", "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func testNamespacesIsolated(t *testing.T, store repository.KeyValueStore) {
	set(t, store, "alice", map[string]string{"k": "a"})
	set(t, store, "bob", map[string]string{"k": "b"})

	v, _, err := store.Get(context.Background(), "alice", "k")
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, _, err = store.Get(context.Background(), "bob", "k")
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func testListPrefix(t *testing.T, store repository.KeyValueStore) {
	set(t, store, "list", map[string]string{
		"good.gem.balance":      "3",
		"good.hat.equipped":     "1",
		"currency.coin.balance": "100",
		"good_100%.odd":         "x",
	})

	values, err := store.List(context.Background(), "list", "good.")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"good.gem.balance":  "3",
		"good.hat.equipped": "1",
	}, values)

	values, err = store.List(context.Background(), "list", "")
	require.NoError(t, err)
	assert.Len(t, values, 4)

	values, err = store.List(context.Background(), "empty", "good.")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func testRollbackAfterCommit(t *testing.T, store repository.KeyValueStore) {
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Set(ctx, "closed", "k", "v"))
	require.NoError(t, tx.Commit(ctx))

	assert.ErrorIs(t, tx.Rollback(ctx), domain.ErrTxClosed)
}
