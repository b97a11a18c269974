package handler

import (
	"net/http"

	"github.com/osse101/VirtualStore_Go/internal/inventory"
)

// NonConsumableResponse reports ownership of a non-consumable item
type NonConsumableResponse struct {
	ItemID string `json:"item_id"`
	Owned  bool   `json:"owned"`
}

// HandleNonConsumableExists reports whether a non-consumable is owned
// @Summary Non-consumable ownership
// @Tags non-consumables
// @Produce json
// @Param itemID path string true "Item id"
// @Success 200 {object} NonConsumableResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/store/non-consumables/{itemID} [get]
func HandleNonConsumableExists(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetPathParam(r, w, "itemID")
		if !ok {
			return
		}
		owned, err := svc.NonConsumableExists(r.Context(), itemID)
		if err != nil {
			respondServiceError(w, r, "Non-consumable exists", err)
			return
		}
		respondJSON(w, http.StatusOK, NonConsumableResponse{ItemID: itemID, Owned: owned})
	}
}

// HandleAddNonConsumable marks a non-consumable as owned
// @Summary Add non-consumable
// @Tags non-consumables
// @Produce json
// @Param itemID path string true "Item id"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/store/non-consumables/{itemID} [post]
func HandleAddNonConsumable(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetPathParam(r, w, "itemID")
		if !ok {
			return
		}
		if err := svc.AddNonConsumable(r.Context(), itemID); err != nil {
			respondServiceError(w, r, "Add non-consumable", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNonConsumableAdded})
	}
}

// HandleRemoveNonConsumable clears ownership of a non-consumable
// @Summary Remove non-consumable
// @Tags non-consumables
// @Produce json
// @Param itemID path string true "Item id"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/store/non-consumables/{itemID} [delete]
func HandleRemoveNonConsumable(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetPathParam(r, w, "itemID")
		if !ok {
			return
		}
		if err := svc.RemoveNonConsumable(r.Context(), itemID); err != nil {
			respondServiceError(w, r, "Remove non-consumable", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNonConsumableRemoved})
	}
}
