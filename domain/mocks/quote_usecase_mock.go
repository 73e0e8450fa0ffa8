package mocks

import (
	"context"

	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/mvc"
)

var _ mvc.QuoteUsecase = (*QuoteUsecaseMock)(nil)

// QuoteUsecaseMock is a mock struct that implements mvc.QuoteUsecase.
type QuoteUsecaseMock struct {
	GetQuoteFunc           func(ctx context.Context, req domain.QuoteRequest, opts domain.QuoteOptions) (domain.SwapQuote, error)
	ExecuteFunc            func(ctx context.Context, quote domain.SwapQuote, opts domain.ExecuteOptions) (domain.SwapResult, error)
	ExecuteSwapFunc        func(ctx context.Context, req domain.QuoteRequest, quoteOpts domain.QuoteOptions, execOpts domain.ExecuteOptions) (domain.SwapResult, error)
	BatchGetQuotesFunc     func(ctx context.Context, routeNames []string, amount string, destination string) map[string]*domain.SwapQuote
	GetAllRouteQuotesFunc  func(ctx context.Context, amount string, destination string) map[string]*domain.SwapQuote
	GetRoutesFunc          func() []domain.Route
	ClearCacheFunc         func()
	LoadPersistedPairsFunc func(ctx context.Context) error
}

func (m *QuoteUsecaseMock) GetQuote(ctx context.Context, req domain.QuoteRequest, opts domain.QuoteOptions) (domain.SwapQuote, error) {
	if m.GetQuoteFunc != nil {
		return m.GetQuoteFunc(ctx, req, opts)
	}
	panic("unimplemented")
}

func (m *QuoteUsecaseMock) Execute(ctx context.Context, quote domain.SwapQuote, opts domain.ExecuteOptions) (domain.SwapResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, quote, opts)
	}
	panic("unimplemented")
}

func (m *QuoteUsecaseMock) ExecuteSwap(ctx context.Context, req domain.QuoteRequest, quoteOpts domain.QuoteOptions, execOpts domain.ExecuteOptions) (domain.SwapResult, error) {
	if m.ExecuteSwapFunc != nil {
		return m.ExecuteSwapFunc(ctx, req, quoteOpts, execOpts)
	}
	panic("unimplemented")
}

func (m *QuoteUsecaseMock) BatchGetQuotes(ctx context.Context, routeNames []string, amount string, destination string) map[string]*domain.SwapQuote {
	if m.BatchGetQuotesFunc != nil {
		return m.BatchGetQuotesFunc(ctx, routeNames, amount, destination)
	}
	panic("unimplemented")
}

func (m *QuoteUsecaseMock) GetAllRouteQuotes(ctx context.Context, amount string, destination string) map[string]*domain.SwapQuote {
	if m.GetAllRouteQuotesFunc != nil {
		return m.GetAllRouteQuotesFunc(ctx, amount, destination)
	}
	panic("unimplemented")
}

func (m *QuoteUsecaseMock) GetRoutes() []domain.Route {
	if m.GetRoutesFunc != nil {
		return m.GetRoutesFunc()
	}
	panic("unimplemented")
}

func (m *QuoteUsecaseMock) ClearCache() {
	if m.ClearCacheFunc != nil {
		m.ClearCacheFunc()
		return
	}
	panic("unimplemented")
}

func (m *QuoteUsecaseMock) LoadPersistedPairs(ctx context.Context) error {
	if m.LoadPersistedPairsFunc != nil {
		return m.LoadPersistedPairsFunc(ctx)
	}
	panic("unimplemented")
}
