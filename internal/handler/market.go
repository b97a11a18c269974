package handler

import (
	"context"
	"net/http"

	"github.com/osse101/VirtualStore_Go/internal/inventory"
	"github.com/osse101/VirtualStore_Go/internal/market"
	"github.com/osse101/VirtualStore_Go/internal/store"
)

// MarketOperations is the store-level market surface; *store.Store implements it
type MarketOperations interface {
	BuyMarketItem(ctx context.Context, productID, payload string) (*inventory.BuyResult, error)
	RefreshInventory(ctx context.Context) error
	RefreshMarketItemsDetails(ctx context.Context) error
	RestoreTransactions(ctx context.Context) error
	TransactionsAlreadyRestored(ctx context.Context) (bool, error)
	HandleMarketCallback(ctx context.Context, cb store.MarketCallback) error

	StartIabServiceInBg(ctx context.Context)
	StopIabServiceInBg(ctx context.Context)
	IabServiceRunning() bool
}

var _ MarketOperations = (*store.Store)(nil)

// MarketBuyRequest buys a market product by product id
type MarketBuyRequest struct {
	ProductID string `json:"product_id" validate:"required,max=200"`
	Payload   string `json:"payload" validate:"max=1024"`
}

// MarketCallbackRequest is a billing provider notification
type MarketCallbackRequest struct {
	ProductID string `json:"product_id" validate:"required,max=200"`
	Payload   string `json:"payload" validate:"max=1024"`
	Token     string `json:"token" validate:"max=512"`
	Outcome   string `json:"outcome" validate:"required,outcome"`
	Message   string `json:"message" validate:"max=1024"`
}

// RestoreStatusResponse reports whether transactions were restored before
type RestoreStatusResponse struct {
	Restored bool `json:"restored"`
}

// IabStatusResponse reports whether the billing service runs in the background
type IabStatusResponse struct {
	Running bool `json:"running"`
}

// HandleMarketBuy starts a real-money purchase
// @Summary Buy market product
// @Tags market
// @Accept json
// @Produce json
// @Param request body MarketBuyRequest true "Product"
// @Success 202 {object} inventory.BuyResult
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/store/market/buy [post]
func HandleMarketBuy(ops MarketOperations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MarketBuyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Market buy"); err != nil {
			return
		}
		result, err := ops.BuyMarketItem(r.Context(), req.ProductID, req.Payload)
		if err != nil {
			respondServiceError(w, r, "Market buy", err)
			return
		}
		respondJSON(w, pendingStatus(result.Pending), result)
	}
}

// HandleMarketRefresh asks the market for fresh product details.
// With ?inventory=true it restores transactions as well.
// @Summary Refresh market details
// @Tags market
// @Produce json
// @Param inventory query bool false "Also restore transactions"
// @Success 202 {object} SuccessResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/store/market/refresh [post]
func HandleMarketRefresh(ops MarketOperations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refresh := ops.RefreshMarketItemsDetails
		if GetOptionalQueryParam(r, "inventory", "false") == "true" {
			refresh = ops.RefreshInventory
		}
		if err := refresh(r.Context()); err != nil {
			respondServiceError(w, r, "Market refresh", err)
			return
		}
		respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgMarketRefreshStarted})
	}
}

// HandleMarketRestore restores owned non-consumables from the market
// @Summary Restore transactions
// @Tags market
// @Produce json
// @Success 202 {object} SuccessResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/store/market/restore [post]
func HandleMarketRestore(ops MarketOperations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ops.RestoreTransactions(r.Context()); err != nil {
			respondServiceError(w, r, "Market restore", err)
			return
		}
		respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgMarketRestoreStarted})
	}
}

// HandleMarketRestoreStatus reports whether a restore has succeeded before
// @Summary Restore status
// @Tags market
// @Produce json
// @Success 200 {object} RestoreStatusResponse
// @Router /api/v1/store/market/restore [get]
func HandleMarketRestoreStatus(ops MarketOperations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restored, err := ops.TransactionsAlreadyRestored(r.Context())
		if err != nil {
			respondServiceError(w, r, "Restore status", err)
			return
		}
		respondJSON(w, http.StatusOK, RestoreStatusResponse{Restored: restored})
	}
}

// HandleMarketCallback applies a billing provider notification
// @Summary Market callback
// @Description Webhook for purchase completion, cancellation, failure or refund
// @Tags market
// @Accept json
// @Produce json
// @Param request body MarketCallbackRequest true "Notification"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/store/market/callback [post]
func HandleMarketCallback(ops MarketOperations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MarketCallbackRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Market callback"); err != nil {
			return
		}
		outcome, err := market.ParseOutcome(req.Outcome)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidOutcome)
			return
		}
		err = ops.HandleMarketCallback(r.Context(), store.MarketCallback{
			ProductID: req.ProductID,
			Payload:   req.Payload,
			Token:     req.Token,
			Outcome:   outcome,
			Message:   req.Message,
		})
		if err != nil {
			respondServiceError(w, r, "Market callback", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgMarketCallbackAccepted})
	}
}

// HandleIabStatus reports whether the billing service runs in the background
// @Summary Billing service status
// @Tags market
// @Produce json
// @Success 200 {object} IabStatusResponse
// @Router /api/v1/store/market/iab [get]
func HandleIabStatus(ops MarketOperations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, IabStatusResponse{Running: ops.IabServiceRunning()})
	}
}

// HandleIabStart keeps the billing service running in the background
// @Summary Start billing service
// @Tags market
// @Produce json
// @Success 200 {object} IabStatusResponse
// @Router /api/v1/store/market/iab/start [post]
func HandleIabStart(ops MarketOperations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ops.StartIabServiceInBg(r.Context())
		respondJSON(w, http.StatusOK, IabStatusResponse{Running: ops.IabServiceRunning()})
	}
}

// HandleIabStop stops the background billing service
// @Summary Stop billing service
// @Tags market
// @Produce json
// @Success 200 {object} IabStatusResponse
// @Router /api/v1/store/market/iab/stop [post]
func HandleIabStop(ops MarketOperations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ops.StopIabServiceInBg(r.Context())
		respondJSON(w, http.StatusOK, IabStatusResponse{Running: ops.IabServiceRunning()})
	}
}
