package mvc

import (
	"context"

	"github.com/rujira-labs/finsdk/domain"
)

// DiscoveryUsecase resolves asset pairs to orderbook contracts.
type DiscoveryUsecase interface {
	// DiscoverContracts returns the pair to contract map, refreshing it when the cache is stale.
	// Concurrent callers share a single refresh.
	DiscoverContracts(ctx context.Context) (domain.DiscoveredContracts, error)
	// FindMarket returns the market for the asset pair in either direction.
	FindMarket(ctx context.Context, baseAsset, quoteAsset string) (domain.Market, bool, error)
	// GetContractAddress returns the contract address for the asset pair in either direction.
	GetContractAddress(ctx context.Context, baseAsset, quoteAsset string) (string, bool, error)
	// ListMarkets returns every known market.
	ListMarkets(ctx context.Context) ([]domain.Market, error)
	// ClearCache drops the discovery and market caches.
	ClearCache()
	// GetCacheStatus reports the state of the discovery cache.
	GetCacheStatus() domain.DiscoveryCacheStatus
}
