package handler

import (
	"net/http"

	"github.com/osse101/VirtualStore_Go/internal/inventory"
)

// BuyRequest buys an item with its own purchase type
type BuyRequest struct {
	ItemID  string `json:"item_id" validate:"required,itemid,max=200"`
	Payload string `json:"payload" validate:"max=1024"`
}

// AmountRequest credits or debits an item balance
type AmountRequest struct {
	ItemID string `json:"item_id" validate:"required,itemid,max=200"`
	Amount int    `json:"amount" validate:"min=1,max=1000000"`
}

// BalanceResponse reports the balance of one item
type BalanceResponse struct {
	ItemID  string `json:"item_id"`
	Balance int    `json:"balance"`
}

// HandleGetBalance returns the balance of a currency, good or non-consumable
// @Summary Get balance
// @Description Integer balance for currencies and single-use goods, 0 or 1 for owned-once items
// @Tags inventory
// @Produce json
// @Param itemID path string true "Item id"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/store/balance/{itemID} [get]
func HandleGetBalance(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetPathParam(r, w, "itemID")
		if !ok {
			return
		}
		balance, err := svc.GetBalance(r.Context(), itemID)
		if err != nil {
			respondServiceError(w, r, "Get balance", err)
			return
		}
		respondJSON(w, http.StatusOK, BalanceResponse{ItemID: itemID, Balance: balance})
	}
}

// HandleBuy buys an item. Virtual-item purchases settle immediately;
// market purchases are accepted and settle when the market calls back.
// @Summary Buy item
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body BuyRequest true "Purchase"
// @Success 200 {object} inventory.BuyResult
// @Success 202 {object} inventory.BuyResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/store/buy [post]
func HandleBuy(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy"); err != nil {
			return
		}
		result, err := svc.Buy(r.Context(), req.ItemID, req.Payload)
		if err != nil {
			respondServiceError(w, r, "Buy", err)
			return
		}
		respondJSON(w, pendingStatus(result.Pending), result)
	}
}

// HandleGive credits an item without charging for it
// @Summary Give item
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body AmountRequest true "Credit"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/store/give [post]
func HandleGive(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AmountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Give"); err != nil {
			return
		}
		if err := svc.Give(r.Context(), req.ItemID, req.Amount); err != nil {
			respondServiceError(w, r, "Give", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgGiveSuccess})
	}
}

// HandleTake debits an item; balances never drop below zero
// @Summary Take item
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body AmountRequest true "Debit"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/store/take [post]
func HandleTake(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AmountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Take"); err != nil {
			return
		}
		if err := svc.Take(r.Context(), req.ItemID, req.Amount); err != nil {
			respondServiceError(w, r, "Take", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTakeSuccess})
	}
}

func pendingStatus(pending bool) int {
	if pending {
		return http.StatusAccepted
	}
	return http.StatusOK
}
