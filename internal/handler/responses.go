package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// bufferPool reduces allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode first so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed store operation and writes the mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceFailed, "operation", opName, "error", err)
	} else {
		log.Warn(LogMsgServiceFailed, "operation", opName, "error", err)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgItemNotFoundError    = "Item not found"
	ErrMsgWrongItemKindError   = "That operation does not apply to this item"
	ErrMsgNotEnoughFundsError  = "Not enough funds"
	ErrMsgNotOwnedError        = "You don't own that item"
	ErrMsgAlreadyOwnedError    = "You already own that item"
	ErrMsgOutOfSequenceError   = "Buy the previous upgrade first"
	ErrMsgInvalidInputError    = "Invalid request. Please check your inputs."
	ErrMsgMalformedDataError   = "Malformed store data"
	ErrMsgCatalogInvalidError  = "Store definition is invalid"
	ErrMsgNotInitializedError  = "Store is not initialized yet"
	ErrMsgMarketUnavailableErr = "Market is unavailable. Please try again later."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// user-facing messages. Anything unrecognized becomes a generic 500.
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrWrongItemKind):
		return http.StatusBadRequest, ErrMsgWrongItemKindError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughFundsError
	case errors.Is(err, domain.ErrNotOwned):
		return http.StatusBadRequest, ErrMsgNotOwnedError
	case errors.Is(err, domain.ErrAlreadyOwned):
		return http.StatusConflict, ErrMsgAlreadyOwnedError
	case errors.Is(err, domain.ErrUpgradeOutOfSequence):
		return http.StatusConflict, ErrMsgOutOfSequenceError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrMalformedWireData):
		return http.StatusBadRequest, ErrMsgMalformedDataError
	case errors.Is(err, domain.ErrCatalogInvalid):
		return http.StatusBadRequest, ErrMsgCatalogInvalidError
	case errors.Is(err, domain.ErrCatalogNotInitialized):
		return http.StatusServiceUnavailable, ErrMsgNotInitializedError
	case errors.Is(err, domain.ErrMarketUnavailable):
		return http.StatusServiceUnavailable, ErrMsgMarketUnavailableErr
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
