package discoveryusecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lightningnetwork/lnd/clock"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/rujira-labs/finsdk/discovery/telemetry"
	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/cache"
	"github.com/rujira-labs/finsdk/domain/mvc"
	"github.com/rujira-labs/finsdk/log"
)

const (
	tracerName = "finsdk-discovery"

	// discoveryKey is the singleflight key shared by every discovery cycle.
	discoveryKey = "discover"

	marketCacheSize = 256
)

var tracer = otel.Tracer(tracerName)

type discoveryUseCase struct {
	indexer       domain.IndexerClient
	chainClient   domain.ChainClient
	assetRegistry domain.AssetRegistry
	config        domain.DiscoveryConfig
	clock         clock.Clock
	logger        log.Logger

	group singleflight.Group

	mu         sync.RWMutex
	discovered *domain.DiscoveredContracts
	// knownMarkets are the markets of the last discovery cycle keyed by pair key.
	knownMarkets map[string]domain.Market

	markets *cache.Cache[domain.Market]
}

var _ mvc.DiscoveryUsecase = &discoveryUseCase{}

// Option configures the discovery use case.
type Option func(*discoveryUseCase)

// WithClock overrides the clock used for cache expiry.
func WithClock(c clock.Clock) Option {
	return func(d *discoveryUseCase) {
		d.clock = c
	}
}

// New creates a new discovery use case.
// indexer may be nil, in which case discovery always scans the chain.
func New(
	indexer domain.IndexerClient,
	chainClient domain.ChainClient,
	assetRegistry domain.AssetRegistry,
	config domain.DiscoveryConfig,
	logger log.Logger,
	opts ...Option,
) mvc.DiscoveryUsecase {
	d := &discoveryUseCase{
		indexer:       indexer,
		chainClient:   chainClient,
		assetRegistry: assetRegistry,
		config:        config,
		clock:         clock.NewDefaultClock(),
		logger:        logger,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.markets = cache.New[domain.Market](marketCacheSize, config.CacheTTL(), cache.WithClock(d.clock))

	return d
}

// DiscoverContracts implements mvc.DiscoveryUsecase.
func (d *discoveryUseCase) DiscoverContracts(ctx context.Context) (domain.DiscoveredContracts, error) {
	if discovered, ok := d.fresh(); ok {
		return discovered, nil
	}

	// The cycle outlives any single caller so that one cancellation does not fail the callers sharing it.
	resultCh := d.group.DoChan(discoveryKey, func() (any, error) {
		if discovered, ok := d.fresh(); ok {
			return discovered, nil
		}
		return d.discover(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return domain.DiscoveredContracts{}, ctx.Err()
	case result := <-resultCh:
		if result.Err != nil {
			return domain.DiscoveredContracts{}, result.Err
		}
		return result.Val.(domain.DiscoveredContracts), nil
	}
}

// discover runs a single discovery cycle: the indexer first, the chain scan second.
func (d *discoveryUseCase) discover(ctx context.Context) (domain.DiscoveredContracts, error) {
	ctx, span := tracer.Start(ctx, "discoveryUseCase.discover")
	defer span.End()

	var indexerErr error
	if d.indexer != nil {
		markets, err := d.discoverFromIndexer(ctx)
		if err == nil {
			return d.store(domain.DiscoverySourceIndexedAPI, markets, nil), nil
		}

		class := domain.ClassifyDiscoveryError(err)
		telemetry.IndexerErrorsCounter.WithLabelValues(string(class)).Inc()

		if !class.AllowsFallback() {
			span.RecordError(err)
			span.SetStatus(codes.Error, "indexer rejected credentials")
			return domain.DiscoveredContracts{}, domain.DiscoveryAuthError{Err: err}
		}

		d.logger.Warn("indexed discovery failed, falling back to chain scan", zap.String("class", string(class)), zap.Error(err))
		indexerErr = err
	}

	markets, err := d.scanChain(ctx)
	if err == nil {
		return d.store(domain.DiscoverySourceChainScan, markets, nil), nil
	}

	lastErr := err
	if indexerErr != nil {
		lastErr = fmt.Errorf("chain scan: %w (indexer: %v)", err, indexerErr)
	}

	d.logger.Error("contract discovery failed", zap.Error(lastErr))
	span.RecordError(lastErr)

	return d.store(domain.DiscoverySourceFallbackFailed, nil, lastErr), nil
}

// store replaces the cached discovery result with the markets of the cycle.
func (d *discoveryUseCase) store(source domain.DiscoverySource, markets []domain.Market, lastErr error) domain.DiscoveredContracts {
	pairToAddress := make(map[string]string, len(markets))
	knownMarkets := make(map[string]domain.Market, len(markets))
	for _, market := range markets {
		key := domain.PairKey(market.BaseAsset, market.QuoteAsset)
		pairToAddress[key] = market.ContractAddress
		knownMarkets[key] = market
	}

	discovered := domain.DiscoveredContracts{
		PairToAddress: pairToAddress,
		DiscoveredAt:  d.clock.Now(),
		Source:        source,
		LastError:     lastErr,
	}

	d.mu.Lock()
	d.discovered = &discovered
	d.knownMarkets = knownMarkets
	d.mu.Unlock()

	telemetry.DiscoveryCyclesCounter.WithLabelValues(string(source)).Inc()
	telemetry.DiscoveredContractsGauge.Set(float64(len(pairToAddress)))

	d.logger.Info("discovered contracts", zap.String("source", string(source)), zap.Int("count", len(pairToAddress)))

	return copyDiscovered(discovered)
}

// fresh returns the cached discovery result if it is within the cache TTL.
func (d *discoveryUseCase) fresh() (domain.DiscoveredContracts, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.discovered == nil || d.discovered.IsStale(d.clock.Now(), d.config.CacheTTL()) {
		return domain.DiscoveredContracts{}, false
	}
	return copyDiscovered(*d.discovered), true
}

// GetContractAddress implements mvc.DiscoveryUsecase.
func (d *discoveryUseCase) GetContractAddress(ctx context.Context, baseAsset, quoteAsset string) (string, bool, error) {
	market, found, err := d.FindMarket(ctx, baseAsset, quoteAsset)
	if err != nil || !found {
		return "", false, err
	}
	return market.ContractAddress, true, nil
}

// ListMarkets implements mvc.DiscoveryUsecase.
func (d *discoveryUseCase) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	if _, err := d.DiscoverContracts(ctx); err != nil {
		return nil, err
	}

	d.mu.RLock()
	markets := make([]domain.Market, 0, len(d.knownMarkets))
	for _, market := range d.knownMarkets {
		markets = append(markets, market)
	}
	d.mu.RUnlock()

	sort.Slice(markets, func(i, j int) bool {
		return domain.PairKey(markets[i].BaseAsset, markets[i].QuoteAsset) < domain.PairKey(markets[j].BaseAsset, markets[j].QuoteAsset)
	})

	return markets, nil
}

// ClearCache implements mvc.DiscoveryUsecase.
func (d *discoveryUseCase) ClearCache() {
	d.mu.Lock()
	d.discovered = nil
	d.knownMarkets = nil
	d.mu.Unlock()

	d.markets.Clear()
}

// GetCacheStatus implements mvc.DiscoveryUsecase.
func (d *discoveryUseCase) GetCacheStatus() domain.DiscoveryCacheStatus {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.discovered == nil {
		return domain.DiscoveryCacheStatus{}
	}

	now := d.clock.Now()
	status := domain.DiscoveryCacheStatus{
		HasCache:      true,
		Source:        d.discovered.Source,
		DiscoveredAt:  d.discovered.DiscoveredAt,
		Age:           now.Sub(d.discovered.DiscoveredAt),
		IsStale:       d.discovered.IsStale(now, d.config.CacheTTL()),
		ContractCount: len(d.discovered.PairToAddress),
	}
	if d.discovered.LastError != nil {
		status.LastError = d.discovered.LastError.Error()
	}
	return status
}

func copyDiscovered(discovered domain.DiscoveredContracts) domain.DiscoveredContracts {
	pairToAddress := make(map[string]string, len(discovered.PairToAddress))
	for key, address := range discovered.PairToAddress {
		pairToAddress[key] = address
	}
	discovered.PairToAddress = pairToAddress
	return discovered
}

func spanPairAttributes(baseAsset, quoteAsset string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("base_asset", baseAsset),
		attribute.String("quote_asset", quoteAsset),
	}
}
