package mocks

import (
	"context"

	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/mvc"
)

var _ mvc.DiscoveryUsecase = (*DiscoveryUsecaseMock)(nil)

// DiscoveryUsecaseMock is a mock struct that implements mvc.DiscoveryUsecase.
type DiscoveryUsecaseMock struct {
	DiscoverContractsFunc  func(ctx context.Context) (domain.DiscoveredContracts, error)
	FindMarketFunc         func(ctx context.Context, baseAsset, quoteAsset string) (domain.Market, bool, error)
	GetContractAddressFunc func(ctx context.Context, baseAsset, quoteAsset string) (string, bool, error)
	ListMarketsFunc        func(ctx context.Context) ([]domain.Market, error)
	ClearCacheFunc         func()
	GetCacheStatusFunc     func() domain.DiscoveryCacheStatus
}

func (m *DiscoveryUsecaseMock) DiscoverContracts(ctx context.Context) (domain.DiscoveredContracts, error) {
	if m.DiscoverContractsFunc != nil {
		return m.DiscoverContractsFunc(ctx)
	}
	panic("unimplemented")
}

func (m *DiscoveryUsecaseMock) FindMarket(ctx context.Context, baseAsset, quoteAsset string) (domain.Market, bool, error) {
	if m.FindMarketFunc != nil {
		return m.FindMarketFunc(ctx, baseAsset, quoteAsset)
	}
	panic("unimplemented")
}

// WithFindMarkets resolves each listed market in either direction and reports every other pair as absent.
func (m *DiscoveryUsecaseMock) WithFindMarkets(markets ...domain.Market) {
	m.FindMarketFunc = func(ctx context.Context, baseAsset, quoteAsset string) (domain.Market, bool, error) {
		for _, market := range markets {
			if (market.BaseAsset == baseAsset && market.QuoteAsset == quoteAsset) ||
				(market.BaseAsset == quoteAsset && market.QuoteAsset == baseAsset) {
				return market, true, nil
			}
		}
		return domain.Market{}, false, nil
	}
}

func (m *DiscoveryUsecaseMock) GetContractAddress(ctx context.Context, baseAsset, quoteAsset string) (string, bool, error) {
	if m.GetContractAddressFunc != nil {
		return m.GetContractAddressFunc(ctx, baseAsset, quoteAsset)
	}
	panic("unimplemented")
}

func (m *DiscoveryUsecaseMock) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	if m.ListMarketsFunc != nil {
		return m.ListMarketsFunc(ctx)
	}
	panic("unimplemented")
}

func (m *DiscoveryUsecaseMock) ClearCache() {
	if m.ClearCacheFunc != nil {
		m.ClearCacheFunc()
		return
	}
	panic("unimplemented")
}

func (m *DiscoveryUsecaseMock) GetCacheStatus() domain.DiscoveryCacheStatus {
	if m.GetCacheStatusFunc != nil {
		return m.GetCacheStatusFunc()
	}
	panic("unimplemented")
}
