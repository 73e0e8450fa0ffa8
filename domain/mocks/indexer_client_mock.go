package mocks

import (
	"context"

	"github.com/rujira-labs/finsdk/domain"
)

var _ domain.IndexerClient = (*IndexerClientMock)(nil)

// IndexerClientMock is a mock struct that implements domain.IndexerClient.
type IndexerClientMock struct {
	GetMarketsCb func(ctx context.Context) (domain.IndexedMarkets, error)
	GetMarketCb  func(ctx context.Context, baseDenom, quoteDenom string) (domain.IndexedMarket, bool, error)
}

func (m *IndexerClientMock) GetMarkets(ctx context.Context) (domain.IndexedMarkets, error) {
	if m.GetMarketsCb != nil {
		return m.GetMarketsCb(ctx)
	}
	panic("IndexerClientMock.GetMarkets unimplemented")
}

func (m *IndexerClientMock) WithGetMarkets(markets domain.IndexedMarkets, err error) {
	m.GetMarketsCb = func(ctx context.Context) (domain.IndexedMarkets, error) {
		return markets, err
	}
}

func (m *IndexerClientMock) GetMarket(ctx context.Context, baseDenom, quoteDenom string) (domain.IndexedMarket, bool, error) {
	if m.GetMarketCb != nil {
		return m.GetMarketCb(ctx, baseDenom, quoteDenom)
	}
	panic("IndexerClientMock.GetMarket unimplemented")
}
