package discoveryusecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rujira-labs/finsdk/discovery/telemetry"
	"github.com/rujira-labs/finsdk/domain"
)

// chainScanConcurrency bounds the number of concurrent contract config queries.
const chainScanConcurrency = 8

var errNoCodeIDs = errors.New("no orderbook code ids configured for chain scan")

// scanChain enumerates every instance of the configured orderbook code IDs and queries its config.
// Instances that fail to answer or trade unknown denoms are skipped.
// It fails only if no code ID could be enumerated.
func (d *discoveryUseCase) scanChain(ctx context.Context) ([]domain.Market, error) {
	ctx, span := tracer.Start(ctx, "discoveryUseCase.scanChain")
	defer span.End()

	if len(d.config.CodeIDs) == 0 {
		return nil, errNoCodeIDs
	}

	var (
		addresses []string
		lastErr   error
		listed    int
	)
	for _, codeID := range d.config.CodeIDs {
		contracts, err := d.chainClient.ListContractsByCode(ctx, codeID)
		if err != nil {
			d.logger.Warn("failed to list contracts by code", zap.Uint64("code_id", codeID), zap.Error(err))
			lastErr = fmt.Errorf("list contracts of code %d: %w", codeID, err)
			continue
		}
		listed++
		addresses = append(addresses, contracts...)
	}

	if listed == 0 {
		return nil, lastErr
	}

	var (
		mu      sync.Mutex
		markets = make([]domain.Market, 0, len(addresses))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(chainScanConcurrency)

	for _, address := range addresses {
		address := address
		g.Go(func() error {
			market, err := d.queryMarket(gctx, address)
			if err != nil {
				telemetry.ChainScanSkippedCounter.Inc()
				d.logger.Debug("skipping contract during chain scan", zap.String("address", address), zap.Error(err))
				return nil
			}

			mu.Lock()
			markets = append(markets, market)
			mu.Unlock()
			return nil
		})
	}

	// Instance failures are swallowed above, so Wait never returns an error.
	_ = g.Wait()

	return markets, nil
}

func (d *discoveryUseCase) queryMarket(ctx context.Context, address string) (domain.Market, error) {
	var config domain.FinConfigResponse
	if err := d.chainClient.QueryContract(ctx, address, domain.FinConfigQuery{}, &config); err != nil {
		return domain.Market{}, err
	}
	return d.configToMarket(address, config)
}
