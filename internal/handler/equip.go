package handler

import (
	"net/http"

	"github.com/osse101/VirtualStore_Go/internal/inventory"
)

// GoodRequest names the good an equip or upgrade operation applies to
type GoodRequest struct {
	GoodID string `json:"good_id" validate:"required,itemid,max=200"`
}

// EquippedResponse reports whether a good is equipped
type EquippedResponse struct {
	GoodItemID string `json:"good_item_id"`
	Equipped   bool   `json:"equipped"`
}

// HandleEquip equips an owned good, unequipping whatever its equipping model excludes
// @Summary Equip good
// @Tags equipment
// @Accept json
// @Produce json
// @Param request body GoodRequest true "Good"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/store/equip [post]
func HandleEquip(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GoodRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Equip"); err != nil {
			return
		}
		if err := svc.Equip(r.Context(), req.GoodID); err != nil {
			respondServiceError(w, r, "Equip", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgEquipSuccess})
	}
}

// HandleUnequip unequips a good
// @Summary Unequip good
// @Tags equipment
// @Accept json
// @Produce json
// @Param request body GoodRequest true "Good"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/store/unequip [post]
func HandleUnequip(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GoodRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unequip"); err != nil {
			return
		}
		if err := svc.Unequip(r.Context(), req.GoodID); err != nil {
			respondServiceError(w, r, "Unequip", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgUnequipSuccess})
	}
}

// HandleIsEquipped reports whether a good is equipped
// @Summary Is good equipped
// @Tags equipment
// @Produce json
// @Param goodID path string true "Good id"
// @Success 200 {object} EquippedResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/store/equipped/{goodID} [get]
func HandleIsEquipped(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goodID, ok := GetPathParam(r, w, "goodID")
		if !ok {
			return
		}
		equipped, err := svc.IsEquipped(r.Context(), goodID)
		if err != nil {
			respondServiceError(w, r, "Is equipped", err)
			return
		}
		respondJSON(w, http.StatusOK, EquippedResponse{GoodItemID: goodID, Equipped: equipped})
	}
}
