package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/testing/leaktest"
	"github.com/osse101/VirtualStore_Go/internal/worker"
)

type call struct {
	kind      string
	productID string
	payload   string
	token     string
	ids       []string
	details   []domain.MarketItemDetails
}

type recordingCallbacks struct {
	calls chan call
}

func newRecordingCallbacks() *recordingCallbacks {
	return &recordingCallbacks{calls: make(chan call, 16)}
}

func (r *recordingCallbacks) OnPurchaseCompleted(ctx context.Context, productID, payload, token string) {
	r.calls <- call{kind: "completed", productID: productID, payload: payload, token: token}
}

func (r *recordingCallbacks) OnPurchaseCancelled(ctx context.Context, productID string) {
	r.calls <- call{kind: "cancelled", productID: productID}
}

func (r *recordingCallbacks) OnPurchaseFailed(ctx context.Context, productID, message string) {
	r.calls <- call{kind: "failed", productID: productID, payload: message}
}

func (r *recordingCallbacks) OnRefund(ctx context.Context, productID string) {
	r.calls <- call{kind: "refund", productID: productID}
}

func (r *recordingCallbacks) OnRestoreFinished(ctx context.Context, productIDs []string, err error) {
	r.calls <- call{kind: "restored", ids: productIDs}
}

func (r *recordingCallbacks) OnItemsDetailsRefreshed(ctx context.Context, details []domain.MarketItemDetails, err error) {
	r.calls <- call{kind: "refreshed", details: details}
}

func (r *recordingCallbacks) next(t *testing.T) call {
	t.Helper()
	select {
	case c := <-r.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a callback")
		return call{}
	}
}

func newSandbox(t *testing.T, cfg SandboxConfig) (*Sandbox, *recordingCallbacks) {
	t.Helper()
	pool := worker.NewPool(context.Background(), 2, 8)
	pool.Start()
	t.Cleanup(func() { _ = pool.Stop(context.Background()) })

	sb := NewSandbox(pool, cfg)
	cb := newRecordingCallbacks()
	sb.SetCallbacks(cb)
	return sb, cb
}

func TestSandbox_PurchaseOutcomes(t *testing.T) {
	tests := []struct {
		outcome Outcome
		kind    string
	}{
		{OutcomeComplete, "completed"},
		{OutcomeCancel, "cancelled"},
		{OutcomeFail, "failed"},
	}
	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			sb, cb := newSandbox(t, SandboxConfig{Outcome: tt.outcome, BillingSupported: true})

			require.NoError(t, sb.SubmitPurchase(context.Background(), "com.example.noads", "dev"))

			c := cb.next(t)
			assert.Equal(t, tt.kind, c.kind)
			assert.Equal(t, "com.example.noads", c.productID)
		})
	}
}

func TestSandbox_CompletedPurchasesHaveUniqueTokens(t *testing.T) {
	sb, cb := newSandbox(t, SandboxConfig{BillingSupported: true})

	require.NoError(t, sb.SubmitPurchase(context.Background(), "p1", "a"))
	require.NoError(t, sb.SubmitPurchase(context.Background(), "p1", "b"))

	first, second := cb.next(t), cb.next(t)
	assert.NotEmpty(t, first.token)
	assert.NotEqual(t, first.token, second.token)
}

func TestSandbox_RestoreReportsCompletedProducts(t *testing.T) {
	sb, cb := newSandbox(t, SandboxConfig{BillingSupported: true})
	ctx := context.Background()

	require.NoError(t, sb.Settle(ctx, "p2", "", OutcomeComplete))
	require.NoError(t, sb.Settle(ctx, "p1", "", OutcomeComplete))
	require.NoError(t, sb.Settle(ctx, "p3", "", OutcomeComplete))
	require.NoError(t, sb.Settle(ctx, "p3", "", OutcomeRefund))
	for i := 0; i < 4; i++ {
		cb.next(t)
	}

	require.NoError(t, sb.RestoreTransactions(ctx))
	c := cb.next(t)
	assert.Equal(t, "restored", c.kind)
	assert.Equal(t, []string{"p1", "p2"}, c.ids)
}

func TestSandbox_RefreshDescribesProducts(t *testing.T) {
	sb, cb := newSandbox(t, SandboxConfig{BillingSupported: true})

	err := sb.RefreshItemsDetails(context.Background(), []Product{
		{ProductID: "com.example.noads", Name: "no ads forever", Description: "Removes ads", Price: 2.99},
	})
	require.NoError(t, err)

	c := cb.next(t)
	assert.Equal(t, []domain.MarketItemDetails{
		{ProductID: "com.example.noads", Price: "$2.99", Title: "No Ads Forever", Description: "Removes ads"},
	}, c.details)
}

func TestSandbox_BillingNotSupported(t *testing.T) {
	sb, _ := newSandbox(t, SandboxConfig{})

	assert.False(t, sb.BillingSupported(context.Background()))
	err := sb.SubmitPurchase(context.Background(), "p1", "")
	assert.ErrorIs(t, err, domain.ErrMarketUnavailable)
}

func TestSandbox_NoCallbacks(t *testing.T) {
	pool := worker.NewPool(context.Background(), 1, 1)
	sb := NewSandbox(pool, SandboxConfig{BillingSupported: true})

	assert.ErrorIs(t, sb.SubmitPurchase(context.Background(), "p1", ""), domain.ErrMarketUnavailable)
	assert.ErrorIs(t, sb.RestoreTransactions(context.Background()), domain.ErrMarketUnavailable)
	require.NoError(t, pool.Stop(context.Background()))
}

func TestSandbox_StoppedPoolRejects(t *testing.T) {
	pool := worker.NewPool(context.Background(), 1, 1)
	pool.Start()
	sb := NewSandbox(pool, SandboxConfig{BillingSupported: true})
	sb.SetCallbacks(newRecordingCallbacks())
	require.NoError(t, pool.Stop(context.Background()))

	err := sb.SubmitPurchase(context.Background(), "p1", "")
	assert.ErrorIs(t, err, domain.ErrMarketUnavailable)
	assert.ErrorIs(t, err, worker.ErrPoolStopped)
}

func TestSandbox_ShutdownAbandonsDelayedSettlements(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := worker.NewPool(context.Background(), 1, 4)
		pool.Start()
		sb := NewSandbox(pool, SandboxConfig{BillingSupported: true, Delay: time.Hour})
		cb := newRecordingCallbacks()
		sb.SetCallbacks(cb)

		require.NoError(t, sb.SubmitPurchase(context.Background(), "p1", ""))
		require.NoError(t, pool.Stop(context.Background()))
		assert.Empty(t, cb.calls)
	})
}

func TestParseOutcome(t *testing.T) {
	o, err := ParseOutcome("cancel")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancel, o)

	_, err = ParseOutcome("explode")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
