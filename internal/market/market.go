// Package market defines the billing provider boundary and a sandbox provider
// that settles purchases asynchronously on a worker pool.
package market

import (
	"context"
	"fmt"

	"github.com/osse101/VirtualStore_Go/internal/domain"
)

// Product is what the provider needs to know to describe a catalog product
type Product struct {
	ProductID   string
	Name        string
	Description string
	Price       float64
}

// Provider is a real-money billing backend. Every request answers later
// through the Callbacks registered with SetCallbacks.
type Provider interface {
	SetCallbacks(cb Callbacks)
	BillingSupported(ctx context.Context) bool
	SubmitPurchase(ctx context.Context, productID, payload string) error
	RestoreTransactions(ctx context.Context) error
	RefreshItemsDetails(ctx context.Context, products []Product) error
}

// Settler is a Provider that can settle a purchase on request, minting the
// purchase token itself
type Settler interface {
	Settle(ctx context.Context, productID, payload string, outcome Outcome) error
}

// Callbacks receives the asynchronous outcomes of Provider requests
type Callbacks interface {
	OnPurchaseCompleted(ctx context.Context, productID, payload, token string)
	OnPurchaseCancelled(ctx context.Context, productID string)
	OnPurchaseFailed(ctx context.Context, productID, message string)
	OnRefund(ctx context.Context, productID string)
	// OnRestoreFinished lists the non-consumable products the market remembers
	OnRestoreFinished(ctx context.Context, productIDs []string, err error)
	OnItemsDetailsRefreshed(ctx context.Context, details []domain.MarketItemDetails, err error)
}

// Outcome is how the sandbox settles a purchase
type Outcome string

const (
	OutcomeComplete Outcome = "complete"
	OutcomeCancel   Outcome = "cancel"
	OutcomeFail     Outcome = "fail"
	OutcomeRefund   Outcome = "refund"
)

// ParseOutcome validates an outcome name
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomeComplete, OutcomeCancel, OutcomeFail, OutcomeRefund:
		return o, nil
	}
	return "", fmt.Errorf(ErrMsgUnknownOutcome, s, domain.ErrInvalidInput)
}
