package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgItemNotFound          = "item not found"
	ErrMsgWrongItemKind         = "wrong item kind"
	ErrMsgCatalogInvalid        = "invalid catalog definition"
	ErrMsgCatalogNotInitialized = "catalog not initialized"
	ErrMsgUpgradeOutOfSequence  = "upgrade out of sequence"

	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgNotOwned          = "item not owned"
	ErrMsgAlreadyOwned      = "item already owned"

	// Wire errors
	ErrMsgMalformedWireData = "malformed wire data"

	// Market errors
	ErrMsgMarketUnavailable = "market unavailable"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Transaction errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Catalog errors
	ErrItemNotFound          = errors.New(ErrMsgItemNotFound)
	ErrWrongItemKind         = errors.New(ErrMsgWrongItemKind)
	ErrCatalogInvalid        = errors.New(ErrMsgCatalogInvalid)
	ErrCatalogNotInitialized = errors.New(ErrMsgCatalogNotInitialized)
	ErrUpgradeOutOfSequence  = errors.New(ErrMsgUpgradeOutOfSequence)

	// Ledger errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrNotOwned          = errors.New(ErrMsgNotOwned)
	ErrAlreadyOwned      = errors.New(ErrMsgAlreadyOwned)

	// Wire errors
	ErrMalformedWireData = errors.New(ErrMsgMalformedWireData)

	// Market errors
	ErrMarketUnavailable = errors.New(ErrMsgMarketUnavailable)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Transaction errors
	ErrTxClosed = errors.New(ErrMsgTxClosed)
)
