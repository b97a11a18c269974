package catalog

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/logger"
	"github.com/osse101/VirtualStore_Go/internal/repository"
	"github.com/osse101/VirtualStore_Go/internal/wire"
)

// Service defines the interface for catalog operations.
// Lookups never block on persistence; only Initialize and ApplyMarketDetails write.
type Service interface {
	Initialize(ctx context.Context, assets domain.StoreAssets) (bool, error)
	Initialized() bool
	Version() int

	GetItem(itemID string) (domain.VirtualItem, error)
	GetPurchasable(productID string) (domain.VirtualItem, error)
	GetCategoryOf(goodID string) (domain.VirtualCategory, error)
	GetFirstUpgrade(goodID string) (domain.VirtualItem, error)
	GetLastUpgrade(goodID string) (domain.VirtualItem, error)
	GetUpgrades(goodID string) ([]domain.VirtualItem, error)

	Items() []domain.VirtualItem
	Currencies() []domain.VirtualItem
	CurrencyPacks() []domain.VirtualItem
	Goods() []domain.VirtualItem
	NonConsumables() []domain.VirtualItem
	Categories() []domain.VirtualCategory
	Assets() domain.StoreAssets

	ApplyMarketDetails(ctx context.Context, details []domain.MarketItemDetails) ([]domain.MarketItemDetails, error)
}

type service struct {
	store repository.KeyValueStore
	idx   *index
	mu    sync.RWMutex
	// writeMu serializes Initialize and ApplyMarketDetails
	writeMu sync.Mutex
}

// NewService creates a catalog persisted in store
func NewService(store repository.KeyValueStore) Service {
	return &service{store: store}
}

// Initialize installs assets unless a persisted catalog of the same or a newer
// version exists, in which case the persisted catalog is loaded and assets are
// ignored. It reports whether the stored catalog was replaced.
func (s *service) Initialize(ctx context.Context, assets domain.StoreAssets) (bool, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgInitializeCalled, "version", assets.Version)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	persisted, found, err := s.loadPersisted(ctx)
	if err != nil {
		return false, err
	}
	if found && persisted.assets.Version >= assets.Version {
		s.swap(persisted)
		log.Info(LogMsgCatalogKept, "persisted_version", persisted.assets.Version, "supplied_version", assets.Version)
		s.warnUncategorized(ctx, persisted)
		return false, nil
	}

	idx, err := buildIndex(assets.Clone())
	if err != nil {
		return false, err
	}
	if err := s.persist(ctx, idx); err != nil {
		return false, err
	}
	s.swap(idx)

	log.Info(LogMsgCatalogReplaced, "version", assets.Version, "items", len(idx.order))
	s.warnUncategorized(ctx, idx)
	return true, nil
}

// loadPersisted returns the stored catalog. A stored catalog that no longer
// decodes or validates is reported as absent so the caller replaces it.
func (s *service) loadPersisted(ctx context.Context) (*index, bool, error) {
	log := logger.FromContext(ctx)

	rawVersion, found, err := s.store.Get(ctx, Namespace, KeyVersion)
	if err != nil {
		return nil, false, fmt.Errorf(ErrMsgReadPersistedFailed, err)
	}
	if !found {
		return nil, false, nil
	}
	raw, found, err := s.store.Get(ctx, Namespace, KeyAssets)
	if err != nil {
		return nil, false, fmt.Errorf(ErrMsgReadPersistedFailed, err)
	}
	if !found {
		log.Warn(LogMsgPersistedCorrupt, "reason", "assets missing")
		return nil, false, nil
	}

	version, err := strconv.Atoi(rawVersion)
	if err != nil {
		log.Warn(LogMsgPersistedCorrupt, "reason", "bad version", "error", err)
		return nil, false, nil
	}
	assets, err := wire.DecodeAssets([]byte(raw))
	if err != nil {
		log.Warn(LogMsgPersistedCorrupt, "error", err)
		return nil, false, nil
	}
	assets.Version = version

	idx, err := buildIndex(assets)
	if err != nil {
		log.Warn(LogMsgPersistedCorrupt, "error", err)
		return nil, false, nil
	}
	log.Debug(LogMsgCatalogLoaded, "version", version, "items", len(idx.order))
	return idx, true, nil
}

func (s *service) persist(ctx context.Context, idx *index) error {
	data, err := wire.EncodeAssets(idx.assets)
	if err != nil {
		return fmt.Errorf(ErrMsgEncodeCatalogFailed, err)
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.Set(ctx, Namespace, KeyVersion, strconv.Itoa(idx.assets.Version)); err != nil {
		return fmt.Errorf(ErrMsgPersistFailed, err)
	}
	if err := tx.Set(ctx, Namespace, KeyAssets, string(data)); err != nil {
		return fmt.Errorf(ErrMsgPersistFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitFailed, err)
	}
	return nil
}

func (s *service) warnUncategorized(ctx context.Context, idx *index) {
	log := logger.FromContext(ctx)
	for _, id := range idx.uncategorizedCategoryGoods() {
		log.Warn(LogMsgCategoryMissing, "item_id", id)
	}
}

func (s *service) swap(idx *index) {
	s.mu.Lock()
	s.idx = idx
	s.mu.Unlock()
}

func (s *service) current() (*index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.idx == nil {
		return nil, domain.ErrCatalogNotInitialized
	}
	return s.idx, nil
}

func (s *service) Initialized() bool {
	_, err := s.current()
	return err == nil
}

// Version returns the version of the active catalog, or -1 before Initialize
func (s *service) Version() int {
	idx, err := s.current()
	if err != nil {
		return -1
	}
	return idx.assets.Version
}

func (s *service) GetItem(itemID string) (domain.VirtualItem, error) {
	idx, err := s.current()
	if err != nil {
		return domain.VirtualItem{}, err
	}
	item, ok := idx.items[itemID]
	if !ok {
		return domain.VirtualItem{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	return item.Clone(), nil
}

// GetPurchasable finds the market-purchasable item sold as productID
func (s *service) GetPurchasable(productID string) (domain.VirtualItem, error) {
	idx, err := s.current()
	if err != nil {
		return domain.VirtualItem{}, err
	}
	itemID, ok := idx.byProduct[productID]
	if !ok {
		return domain.VirtualItem{}, fmt.Errorf("%w: product %s", domain.ErrItemNotFound, productID)
	}
	item := idx.items[itemID]
	return item.Clone(), nil
}

// GetCategoryOf returns the category holding goodID.
// A good outside every category is reported as ErrItemNotFound.
func (s *service) GetCategoryOf(goodID string) (domain.VirtualCategory, error) {
	idx, err := s.current()
	if err != nil {
		return domain.VirtualCategory{}, err
	}
	if _, ok := idx.items[goodID]; !ok {
		return domain.VirtualCategory{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, goodID)
	}
	name, ok := idx.categoryOf[goodID]
	if !ok {
		return domain.VirtualCategory{}, fmt.Errorf("%w: no category for %s", domain.ErrItemNotFound, goodID)
	}
	return idx.categories[name].Clone(), nil
}

func (s *service) GetFirstUpgrade(goodID string) (domain.VirtualItem, error) {
	chain, err := s.GetUpgrades(goodID)
	if err != nil {
		return domain.VirtualItem{}, err
	}
	if len(chain) == 0 {
		return domain.VirtualItem{}, fmt.Errorf("%w: no upgrades for %s", domain.ErrItemNotFound, goodID)
	}
	return chain[0], nil
}

func (s *service) GetLastUpgrade(goodID string) (domain.VirtualItem, error) {
	chain, err := s.GetUpgrades(goodID)
	if err != nil {
		return domain.VirtualItem{}, err
	}
	if len(chain) == 0 {
		return domain.VirtualItem{}, fmt.Errorf("%w: no upgrades for %s", domain.ErrItemNotFound, goodID)
	}
	return chain[len(chain)-1], nil
}

// GetUpgrades returns the upgrade scale of goodID ordered first to last.
// A good without upgrades yields an empty scale.
func (s *service) GetUpgrades(goodID string) ([]domain.VirtualItem, error) {
	idx, err := s.current()
	if err != nil {
		return nil, err
	}
	if _, ok := idx.items[goodID]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, goodID)
	}
	ids := idx.upgrades[goodID]
	chain := make([]domain.VirtualItem, 0, len(ids))
	for _, id := range ids {
		item := idx.items[id]
		chain = append(chain, item.Clone())
	}
	return chain, nil
}

func (s *service) Items() []domain.VirtualItem {
	idx, err := s.current()
	if err != nil {
		return nil
	}
	return idx.listItems(idx.assets.AllItems())
}

func (s *service) Currencies() []domain.VirtualItem {
	idx, err := s.current()
	if err != nil {
		return nil
	}
	return idx.listItems(idx.assets.Currencies)
}

func (s *service) CurrencyPacks() []domain.VirtualItem {
	idx, err := s.current()
	if err != nil {
		return nil
	}
	return idx.listItems(idx.assets.CurrencyPacks)
}

func (s *service) Goods() []domain.VirtualItem {
	idx, err := s.current()
	if err != nil {
		return nil
	}
	return idx.listItems(idx.assets.Goods.All())
}

func (s *service) NonConsumables() []domain.VirtualItem {
	idx, err := s.current()
	if err != nil {
		return nil
	}
	return idx.listItems(idx.assets.NonConsumables)
}

func (s *service) Categories() []domain.VirtualCategory {
	idx, err := s.current()
	if err != nil {
		return nil
	}
	out := make([]domain.VirtualCategory, 0, len(idx.catOrder))
	for _, name := range idx.catOrder {
		out = append(out, idx.categories[name].Clone())
	}
	return out
}

func (s *service) Assets() domain.StoreAssets {
	idx, err := s.current()
	if err != nil {
		return domain.StoreAssets{}
	}
	return idx.assets.Clone()
}

// ApplyMarketDetails updates the market display fields of the items sold as the
// reported products and persists the result. Details for unknown products are
// skipped. It returns the details that were applied.
func (s *service) ApplyMarketDetails(ctx context.Context, details []domain.MarketItemDetails) ([]domain.MarketItemDetails, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgApplyDetailsCalled, "count", len(details))

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	idx, err := s.current()
	if err != nil {
		return nil, err
	}

	// The last report for a product wins
	byProduct := make(map[string]domain.MarketItemDetails, len(details))
	var order []string
	for _, d := range details {
		if _, ok := idx.byProduct[d.ProductID]; !ok {
			log.Warn(LogMsgMarketDetailsSkipped, "product_id", d.ProductID)
			continue
		}
		if _, dup := byProduct[d.ProductID]; !dup {
			order = append(order, d.ProductID)
		}
		byProduct[d.ProductID] = d
	}
	applied := make([]domain.MarketItemDetails, 0, len(order))
	for _, productID := range order {
		applied = append(applied, byProduct[productID])
	}
	if len(applied) == 0 {
		return applied, nil
	}

	refreshed := idx.assets.MapItems(func(item domain.VirtualItem) domain.VirtualItem {
		if !item.Purchase.IsMarket() {
			return item
		}
		if d, ok := byProduct[item.Purchase.Market.ProductID]; ok {
			item.Purchase.Market.MarketPrice = d.Price
			item.Purchase.Market.MarketTitle = d.Title
			item.Purchase.Market.MarketDescription = d.Description
		}
		return item
	})

	next, err := buildIndex(refreshed)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.swap(next)

	log.Info(LogMsgMarketDetailsApplied, "applied", len(applied), "reported", len(details))
	return applied, nil
}
