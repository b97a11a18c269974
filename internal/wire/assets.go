package wire

import (
	"encoding/json"
	"fmt"

	"github.com/osse101/VirtualStore_Go/internal/domain"
)

// CategoryDocument is the JSON form of a category
type CategoryDocument struct {
	Name        string   `json:"name" jsonschema:"required,minLength=1"`
	GoodItemIDs []string `json:"goods_itemIds"`
}

// GoodsDocument groups goods by variant
type GoodsDocument struct {
	SingleUse  []ItemDocument `json:"singleUse"`
	Lifetime   []ItemDocument `json:"lifetime"`
	Equippable []ItemDocument `json:"equippable"`
	Upgrades   []ItemDocument `json:"goodUpgrades"`
	Packs      []ItemDocument `json:"goodPacks"`
}

// AssetsDocument is the JSON form of a full store definition
type AssetsDocument struct {
	Version        int                `json:"version" jsonschema:"required,minimum=0,description=Bumping the version replaces a previously stored catalog"`
	Categories     []CategoryDocument `json:"categories"`
	Currencies     []ItemDocument     `json:"currencies"`
	CurrencyPacks  []ItemDocument     `json:"currencyPacks"`
	Goods          GoodsDocument      `json:"goods"`
	NonConsumables []ItemDocument     `json:"nonConsumables"`
}

// EncodeAssets encodes a store definition
func EncodeAssets(assets domain.StoreAssets) ([]byte, error) {
	doc := AssetsDocument{
		Version:    assets.Version,
		Categories: make([]CategoryDocument, 0, len(assets.Categories)),
	}
	for _, c := range assets.Categories {
		doc.Categories = append(doc.Categories, EncodeCategory(c))
	}

	var err error
	groups := []struct {
		dst   *[]ItemDocument
		items []domain.VirtualItem
	}{
		{&doc.Currencies, assets.Currencies},
		{&doc.CurrencyPacks, assets.CurrencyPacks},
		{&doc.Goods.SingleUse, assets.Goods.SingleUse},
		{&doc.Goods.Lifetime, assets.Goods.Lifetime},
		{&doc.Goods.Equippable, assets.Goods.Equippable},
		{&doc.Goods.Upgrades, assets.Goods.Upgrades},
		{&doc.Goods.Packs, assets.Goods.Packs},
		{&doc.NonConsumables, assets.NonConsumables},
	}
	for _, g := range groups {
		if *g.dst, err = toDocuments(g.items); err != nil {
			return nil, err
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEncodeFailed, err)
	}
	return data, nil
}

// DecodeAssets decodes a store definition
func DecodeAssets(data []byte) (domain.StoreAssets, error) {
	return defaultCodec.DecodeAssets(data)
}

// DecodeAssets decodes a store definition
func (c Codec) DecodeAssets(data []byte) (domain.StoreAssets, error) {
	var doc AssetsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.StoreAssets{}, fmt.Errorf(ErrMsgDecodeAssetsFailed, fmt.Errorf("%w: %v", domain.ErrMalformedWireData, err))
	}
	return c.FromAssetsDocument(doc)
}

// FromAssetsDocument converts a decoded document into a store definition
func (c Codec) FromAssetsDocument(doc AssetsDocument) (domain.StoreAssets, error) {
	assets := domain.StoreAssets{Version: doc.Version}
	for _, cd := range doc.Categories {
		assets.Categories = append(assets.Categories, DecodeCategory(cd))
	}

	var err error
	groups := []struct {
		kind domain.ItemKind
		dst  *[]domain.VirtualItem
		docs []ItemDocument
	}{
		{domain.KindVirtualCurrency, &assets.Currencies, doc.Currencies},
		{domain.KindVirtualCurrencyPack, &assets.CurrencyPacks, doc.CurrencyPacks},
		{domain.KindSingleUseVG, &assets.Goods.SingleUse, doc.Goods.SingleUse},
		{domain.KindLifetimeVG, &assets.Goods.Lifetime, doc.Goods.Lifetime},
		{domain.KindEquippableVG, &assets.Goods.Equippable, doc.Goods.Equippable},
		{domain.KindUpgradeVG, &assets.Goods.Upgrades, doc.Goods.Upgrades},
		{domain.KindSingleUsePackVG, &assets.Goods.Packs, doc.Goods.Packs},
		{domain.KindNonConsumableItem, &assets.NonConsumables, doc.NonConsumables},
	}
	for _, g := range groups {
		if *g.dst, err = c.fromDocuments(g.kind, g.docs); err != nil {
			return domain.StoreAssets{}, fmt.Errorf(ErrMsgDecodeAssetsFailed, err)
		}
	}
	return assets, nil
}

// EncodeCategory converts a category into its JSON document
func EncodeCategory(c domain.VirtualCategory) CategoryDocument {
	ids := make([]string, len(c.GoodItemIDs))
	copy(ids, c.GoodItemIDs)
	return CategoryDocument{Name: c.Name, GoodItemIDs: ids}
}

// DecodeCategory converts a JSON document into a category
func DecodeCategory(doc CategoryDocument) domain.VirtualCategory {
	var ids []string
	ids = append(ids, doc.GoodItemIDs...)
	return domain.VirtualCategory{Name: doc.Name, GoodItemIDs: ids}
}

func toDocuments(items []domain.VirtualItem) ([]ItemDocument, error) {
	docs := make([]ItemDocument, 0, len(items))
	for _, item := range items {
		doc, err := ToDocument(item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (c Codec) fromDocuments(kind domain.ItemKind, docs []ItemDocument) ([]domain.VirtualItem, error) {
	var items []domain.VirtualItem
	for _, doc := range docs {
		item, err := c.FromDocument(kind, doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
