package handler

import (
	"net/http"

	"github.com/osse101/VirtualStore_Go/internal/inventory"
)

// CurrentUpgradeResponse reports where a good stands on its upgrade chain
type CurrentUpgradeResponse struct {
	GoodItemID    string `json:"good_item_id"`
	UpgradeItemID string `json:"upgrade_item_id"`
	Level         int    `json:"level"`
}

// HandleUpgrade buys the next step of a good's upgrade chain
// @Summary Upgrade good
// @Description Buys the next upgrade. At the last step nothing is bought.
// @Tags upgrades
// @Accept json
// @Produce json
// @Param request body GoodRequest true "Good"
// @Success 200 {object} DataResponse
// @Success 202 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/store/upgrade [post]
func HandleUpgrade(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GoodRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Upgrade"); err != nil {
			return
		}
		result, err := svc.Upgrade(r.Context(), req.GoodID)
		if err != nil {
			respondServiceError(w, r, "Upgrade", err)
			return
		}
		resp := DataResponse{Data: result}
		if result.UpgradeItemID == "" {
			resp.Message = MsgUpgradeAlreadyAtLastStep
		}
		respondJSON(w, pendingStatus(result.Pending), resp)
	}
}

// HandleRemoveUpgrades clears every upgrade of a good
// @Summary Remove upgrades
// @Tags upgrades
// @Accept json
// @Produce json
// @Param request body GoodRequest true "Good"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/store/remove-upgrades [post]
func HandleRemoveUpgrades(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GoodRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Remove upgrades"); err != nil {
			return
		}
		if err := svc.RemoveUpgrades(r.Context(), req.GoodID); err != nil {
			respondServiceError(w, r, "Remove upgrades", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgUpgradesRemovedSuccess})
	}
}

// HandleGetCurrentUpgrade returns the current upgrade and level of a good
// @Summary Get current upgrade
// @Tags upgrades
// @Produce json
// @Param goodID path string true "Good id"
// @Success 200 {object} CurrentUpgradeResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/store/upgrades/{goodID}/current [get]
func HandleGetCurrentUpgrade(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goodID, ok := GetPathParam(r, w, "goodID")
		if !ok {
			return
		}
		upgradeID, err := svc.GetCurrentUpgrade(r.Context(), goodID)
		if err != nil {
			respondServiceError(w, r, "Get current upgrade", err)
			return
		}
		level, err := svc.GetUpgradeLevel(r.Context(), goodID)
		if err != nil {
			respondServiceError(w, r, "Get current upgrade", err)
			return
		}
		respondJSON(w, http.StatusOK, CurrentUpgradeResponse{
			GoodItemID:    goodID,
			UpgradeItemID: upgradeID,
			Level:         level,
		})
	}
}
