package quoteusecase

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rujira-labs/finsdk/domain"
)

// BatchGetQuotes implements mvc.QuoteUsecase.
// Routes are quoted in chunks of the configured batch concurrency. A failing route never fails the batch.
func (q *quoteUseCase) BatchGetQuotes(ctx context.Context, routeNames []string, amount string, destination string) map[string]*domain.SwapQuote {
	results := make(map[string]*domain.SwapQuote, len(routeNames))

	routesByName := make(map[string]domain.Route, len(q.routes))
	for _, route := range q.routes {
		routesByName[route.Name] = route
	}

	var mu sync.Mutex
	for start := 0; start < len(routeNames); start += q.config.BatchConcurrency {
		end := start + q.config.BatchConcurrency
		if end > len(routeNames) {
			end = len(routeNames)
		}

		var g errgroup.Group
		for _, name := range routeNames[start:end] {
			name := name
			g.Go(func() error {
				quote := q.routeQuote(ctx, routesByName, name, amount, destination)

				mu.Lock()
				results[name] = quote
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}

	return results
}

// GetAllRouteQuotes implements mvc.QuoteUsecase.
func (q *quoteUseCase) GetAllRouteQuotes(ctx context.Context, amount string, destination string) map[string]*domain.SwapQuote {
	names := make([]string, 0, len(q.routes))
	for _, route := range q.routes {
		names = append(names, route.Name)
	}
	return q.BatchGetQuotes(ctx, names, amount, destination)
}

func (q *quoteUseCase) routeQuote(ctx context.Context, routesByName map[string]domain.Route, name, amount, destination string) *domain.SwapQuote {
	route, ok := routesByName[name]
	if !ok {
		q.logger.Warn("unknown route", zap.String("route", name))
		return nil
	}

	quote, err := q.GetQuote(ctx, domain.QuoteRequest{
		FromAsset:          route.FromAsset,
		ToAsset:            route.ToAsset,
		Amount:             amount,
		DestinationAddress: destination,
	}, domain.QuoteOptions{})
	if err != nil {
		q.logger.Warn("failed to quote route", zap.String("route", name), zap.Error(err))
		return nil
	}
	return &quote
}
