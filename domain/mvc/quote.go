package mvc

import (
	"context"

	"github.com/rujira-labs/finsdk/domain"
)

// QuoteUsecase represents the quote engine's usecases.
type QuoteUsecase interface {
	// GetQuote returns a quote for the request, served from cache when allowed by opts.
	GetQuote(ctx context.Context, req domain.QuoteRequest, opts domain.QuoteOptions) (domain.SwapQuote, error)
	// Execute submits the swap described by quote.
	// Returns a QuoteExpired error if the quote is within the expiry buffer of its expiry.
	Execute(ctx context.Context, quote domain.SwapQuote, opts domain.ExecuteOptions) (domain.SwapResult, error)
	// ExecuteSwap quotes and executes in one step.
	ExecuteSwap(ctx context.Context, req domain.QuoteRequest, quoteOpts domain.QuoteOptions, execOpts domain.ExecuteOptions) (domain.SwapResult, error)
	// BatchGetQuotes quotes the named routes. Failed or unknown routes map to nil.
	BatchGetQuotes(ctx context.Context, routeNames []string, amount string, destination string) map[string]*domain.SwapQuote
	// GetAllRouteQuotes quotes every configured route.
	GetAllRouteQuotes(ctx context.Context, amount string, destination string) map[string]*domain.SwapQuote
	// GetRoutes returns the configured routes.
	GetRoutes() []domain.Route
	// ClearCache drops all cached quotes.
	ClearCache()
	// LoadPersistedPairs seeds the local pair table from the pair store.
	LoadPersistedPairs(ctx context.Context) error
}
