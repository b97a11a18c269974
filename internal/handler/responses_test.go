package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/VirtualStore_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{domain.ErrItemNotFound, http.StatusNotFound, ErrMsgItemNotFoundError},
		{fmt.Errorf("%w: sword", domain.ErrWrongItemKind), http.StatusBadRequest, ErrMsgWrongItemKindError},
		{fmt.Errorf("buy gem: %w", domain.ErrInsufficientFunds), http.StatusBadRequest, ErrMsgNotEnoughFundsError},
		{domain.ErrNotOwned, http.StatusBadRequest, ErrMsgNotOwnedError},
		{domain.ErrAlreadyOwned, http.StatusConflict, ErrMsgAlreadyOwnedError},
		{domain.ErrUpgradeOutOfSequence, http.StatusConflict, ErrMsgOutOfSequenceError},
		{domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInputError},
		{domain.ErrMalformedWireData, http.StatusBadRequest, ErrMsgMalformedDataError},
		{domain.ErrCatalogInvalid, http.StatusBadRequest, ErrMsgCatalogInvalidError},
		{domain.ErrCatalogNotInitialized, http.StatusServiceUnavailable, ErrMsgNotInitializedError},
		{fmt.Errorf("submit: %w: %w", domain.ErrMarketUnavailable, errors.New("billing down")), http.StatusServiceUnavailable, ErrMsgMarketUnavailableErr},
		{errors.New("connection reset by peer"), http.StatusInternalServerError, ErrMsgGenericServerError},
		{nil, http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
