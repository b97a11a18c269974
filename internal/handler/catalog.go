package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/VirtualStore_Go/internal/catalog"
	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/logger"
	"github.com/osse101/VirtualStore_Go/internal/wire"
)

// UpgradesResponse lists the upgrade chain of a good in order
type UpgradesResponse struct {
	GoodItemID string               `json:"good_item_id"`
	Upgrades   []domain.VirtualItem `json:"upgrades"`
}

// HandleListItems lists catalog items, optionally filtered by kind
// @Summary List catalog items
// @Description Lists every item, or only the items of one kind (e.g. EquippableVG)
// @Tags catalog
// @Produce json
// @Param kind query string false "Item kind"
// @Success 200 {array} domain.VirtualItem
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/store/items [get]
func HandleListItems(cat catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !cat.Initialized() {
			respondServiceError(w, r, "List items", domain.ErrCatalogNotInitialized)
			return
		}

		kind := domain.ItemKind(GetOptionalQueryParam(r, "kind", ""))
		if kind == "" {
			respondJSON(w, http.StatusOK, cat.Items())
			return
		}
		if !isKnownKind(kind) {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidKindParam, kind))
			return
		}

		items := make([]domain.VirtualItem, 0)
		for _, item := range cat.Items() {
			if item.Kind == kind {
				items = append(items, item)
			}
		}
		respondJSON(w, http.StatusOK, items)
	}
}

// HandleGetItem returns one catalog item
// @Summary Get catalog item
// @Tags catalog
// @Produce json
// @Param itemID path string true "Item id"
// @Success 200 {object} domain.VirtualItem
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/store/items/{itemID} [get]
func HandleGetItem(cat catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetPathParam(r, w, "itemID")
		if !ok {
			return
		}
		item, err := cat.GetItem(itemID)
		if err != nil {
			respondServiceError(w, r, "Get item", err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

// HandleGetItemWire returns one catalog item in its className/item envelope
// @Summary Get catalog item wire form
// @Description Encodes the item exactly as it is persisted and exchanged with clients
// @Tags catalog
// @Produce json
// @Param itemID path string true "Item id"
// @Success 200 {object} wire.Envelope
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/store/items/{itemID}/wire [get]
func HandleGetItemWire(cat catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetPathParam(r, w, "itemID")
		if !ok {
			return
		}
		item, err := cat.GetItem(itemID)
		if err != nil {
			respondServiceError(w, r, "Get item wire", err)
			return
		}
		data, err := wire.EncodeItem(item)
		if err != nil {
			logger.FromContext(r.Context()).Error(LogMsgWireEncodeError, "item_id", itemID, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgEncodeItemFailed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// HandleGetProduct resolves a market product id to its purchasable item
// @Summary Get item by market product id
// @Tags catalog
// @Produce json
// @Param productID path string true "Market product id"
// @Success 200 {object} domain.VirtualItem
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/store/products/{productID} [get]
func HandleGetProduct(cat catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := GetPathParam(r, w, "productID")
		if !ok {
			return
		}
		item, err := cat.GetPurchasable(productID)
		if err != nil {
			respondServiceError(w, r, "Get product", err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

// HandleListCategories lists the categories
// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.VirtualCategory
// @Router /api/v1/store/categories [get]
func HandleListCategories(cat catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories := cat.Categories()
		if categories == nil {
			categories = []domain.VirtualCategory{}
		}
		respondJSON(w, http.StatusOK, categories)
	}
}

// HandleGetCategoryOf returns the category containing a good
// @Summary Get category of a good
// @Tags catalog
// @Produce json
// @Param goodID path string true "Good id"
// @Success 200 {object} domain.VirtualCategory
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/store/goods/{goodID}/category [get]
func HandleGetCategoryOf(cat catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goodID, ok := GetPathParam(r, w, "goodID")
		if !ok {
			return
		}
		category, err := cat.GetCategoryOf(goodID)
		if err != nil {
			respondServiceError(w, r, "Get category", err)
			return
		}
		respondJSON(w, http.StatusOK, category)
	}
}

// HandleGetUpgrades lists the upgrade chain of a good, first step first
// @Summary List upgrades of a good
// @Tags catalog
// @Produce json
// @Param goodID path string true "Good id"
// @Success 200 {object} UpgradesResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/store/goods/{goodID}/upgrades [get]
func HandleGetUpgrades(cat catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goodID, ok := GetPathParam(r, w, "goodID")
		if !ok {
			return
		}
		upgrades, err := cat.GetUpgrades(goodID)
		if err != nil {
			respondServiceError(w, r, "Get upgrades", err)
			return
		}
		respondJSON(w, http.StatusOK, UpgradesResponse{GoodItemID: goodID, Upgrades: upgrades})
	}
}

func isKnownKind(kind domain.ItemKind) bool {
	for _, k := range domain.AllItemKinds {
		if k == kind {
			return true
		}
	}
	return false
}
