// Package sdk is the entry point for quoting and executing swaps on FIN orderbook contracts.
package sdk

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lightningnetwork/lnd/clock"
	"go.uber.org/zap"

	discoveryusecase "github.com/rujira-labs/finsdk/discovery/usecase"
	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/mvc"
	"github.com/rujira-labs/finsdk/indexer"
	"github.com/rujira-labs/finsdk/log"
	quoteusecase "github.com/rujira-labs/finsdk/quote/usecase"
	tokensusecase "github.com/rujira-labs/finsdk/tokens/usecase"
	"github.com/rujira-labs/finsdk/validator"
)

// Dependencies are the collaborators of the SDK. Only ChainClient is required.
type Dependencies struct {
	ChainClient domain.ChainClient

	// Indexer defaults to an HTTP client for Discovery.IndexerURL, if set.
	Indexer domain.IndexerClient
	// AssetRegistry defaults to the builtin rules plus the configured denom overrides.
	AssetRegistry domain.AssetRegistry
	// AddressValidator defaults to validator.NewAddressValidator.
	AddressValidator domain.AddressValidator

	// Broadcaster provides the default swap sender. Without it Execute needs an explicit sender.
	Broadcaster domain.TxBroadcaster
	// PairStore persists discovered pair addresses across restarts.
	PairStore domain.PairStore

	Clock  clock.Clock
	Logger log.Logger
}

// SDK quotes and executes swaps and discovers orderbook contracts.
type SDK struct {
	chainClient      domain.ChainClient
	assetRegistry    domain.AssetRegistry
	addressValidator domain.AddressValidator

	quoteUsecase     mvc.QuoteUsecase
	discoveryUsecase mvc.DiscoveryUsecase

	closers []io.Closer
	logger  log.Logger
}

// New validates config and wires the SDK. Persisted pair addresses are loaded before it returns.
func New(ctx context.Context, config domain.Config, deps Dependencies) (*SDK, error) {
	if err := validator.Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.ChainClient == nil {
		return nil, errors.New("chain client is required")
	}

	if deps.Logger == nil {
		deps.Logger = &log.NoOpLogger{}
	}
	if deps.Clock == nil {
		deps.Clock = clock.NewDefaultClock()
	}
	if deps.AssetRegistry == nil {
		deps.AssetRegistry = tokensusecase.NewAssetRegistry(config.DenomOverrides)
	}
	if deps.AddressValidator == nil {
		deps.AddressValidator = validator.NewAddressValidator()
	}
	if deps.Indexer == nil && config.Discovery.IndexerURL != "" {
		deps.Indexer = indexer.New(config.Discovery.IndexerURL, config.Discovery.IndexerAPIKey, config.Discovery.IndexerTimeout(), config.Discovery.IndexerRequestsPerMinute)
	}

	discoveryUsecase := discoveryusecase.New(
		deps.Indexer,
		deps.ChainClient,
		deps.AssetRegistry,
		*config.Discovery,
		deps.Logger,
		discoveryusecase.WithClock(deps.Clock),
	)

	quoteOpts := []quoteusecase.Option{
		quoteusecase.WithClock(deps.Clock),
		quoteusecase.WithStaticPairs(config.StaticPairs),
	}
	if deps.Broadcaster != nil {
		quoteOpts = append(quoteOpts, quoteusecase.WithBroadcaster(deps.Broadcaster))
	}
	if deps.PairStore != nil {
		quoteOpts = append(quoteOpts, quoteusecase.WithPairStore(deps.PairStore))
	}

	quoteUsecase, err := quoteusecase.New(
		deps.ChainClient,
		discoveryUsecase,
		deps.AssetRegistry,
		deps.AddressValidator,
		*config.Quote,
		config.Routes,
		deps.Logger,
		quoteOpts...,
	)
	if err != nil {
		return nil, err
	}

	if err := quoteUsecase.LoadPersistedPairs(ctx); err != nil {
		deps.Logger.Warn("failed to load persisted pair addresses", zap.Error(err))
	}

	return &SDK{
		chainClient:      deps.ChainClient,
		assetRegistry:    deps.AssetRegistry,
		addressValidator: deps.AddressValidator,
		quoteUsecase:     quoteUsecase,
		discoveryUsecase: discoveryUsecase,
		logger:           deps.Logger,
	}, nil
}

// GetQuote quotes swapping req.Amount of req.FromAsset to req.ToAsset.
func (s *SDK) GetQuote(ctx context.Context, req domain.QuoteRequest, opts domain.QuoteOptions) (domain.SwapQuote, error) {
	return s.quoteUsecase.GetQuote(ctx, req, opts)
}

// Execute submits the swap of a previously obtained quote.
func (s *SDK) Execute(ctx context.Context, quote domain.SwapQuote, opts domain.ExecuteOptions) (domain.SwapResult, error) {
	return s.quoteUsecase.Execute(ctx, quote, opts)
}

// ExecuteSwap quotes and executes in one call.
func (s *SDK) ExecuteSwap(ctx context.Context, req domain.QuoteRequest, quoteOpts domain.QuoteOptions, execOpts domain.ExecuteOptions) (domain.SwapResult, error) {
	return s.quoteUsecase.ExecuteSwap(ctx, req, quoteOpts, execOpts)
}

// BatchGetQuotes quotes the named routes. Routes that fail map to nil.
func (s *SDK) BatchGetQuotes(ctx context.Context, routeNames []string, amount string, destination string) map[string]*domain.SwapQuote {
	return s.quoteUsecase.BatchGetQuotes(ctx, routeNames, amount, destination)
}

// GetAllRouteQuotes quotes every configured route.
func (s *SDK) GetAllRouteQuotes(ctx context.Context, amount string, destination string) map[string]*domain.SwapQuote {
	return s.quoteUsecase.GetAllRouteQuotes(ctx, amount, destination)
}

// GetRoutes returns the configured routes.
func (s *SDK) GetRoutes() []domain.Route {
	return s.quoteUsecase.GetRoutes()
}

// DiscoverContracts returns the pair to contract address table, running a discovery cycle if stale.
func (s *SDK) DiscoverContracts(ctx context.Context) (domain.DiscoveredContracts, error) {
	return s.discoveryUsecase.DiscoverContracts(ctx)
}

// FindMarket returns the market of the pair in either orientation.
func (s *SDK) FindMarket(ctx context.Context, baseAsset, quoteAsset string) (domain.Market, bool, error) {
	return s.discoveryUsecase.FindMarket(ctx, baseAsset, quoteAsset)
}

// GetContractAddress returns the contract address of the pair in either orientation.
func (s *SDK) GetContractAddress(ctx context.Context, baseAsset, quoteAsset string) (string, bool, error) {
	return s.discoveryUsecase.GetContractAddress(ctx, baseAsset, quoteAsset)
}

// ListMarkets returns every discovered market.
func (s *SDK) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	return s.discoveryUsecase.ListMarkets(ctx)
}

// GetCacheStatus reports the state of the discovery cache.
func (s *SDK) GetCacheStatus() domain.DiscoveryCacheStatus {
	return s.discoveryUsecase.GetCacheStatus()
}

// ClearCache drops cached quotes and discovery results.
func (s *SDK) ClearCache() {
	s.quoteUsecase.ClearCache()
	s.discoveryUsecase.ClearCache()
}

// ValidateAddress validates address for the chain of asset.
func (s *SDK) ValidateAddress(asset string, address string) error {
	return s.addressValidator.ValidateAddress(asset, address)
}

// ChainClient returns the chain client the SDK was built with.
func (s *SDK) ChainClient() domain.ChainClient {
	return s.chainClient
}

// AssetRegistry returns the registry used to resolve asset identifiers.
func (s *SDK) AssetRegistry() domain.AssetRegistry {
	return s.assetRegistry
}

// AddressValidator returns the destination address validator.
func (s *SDK) AddressValidator() domain.AddressValidator {
	return s.addressValidator
}

// QuoteUsecase returns the quote engine.
func (s *SDK) QuoteUsecase() mvc.QuoteUsecase {
	return s.quoteUsecase
}

// DiscoveryUsecase returns the discovery service.
func (s *SDK) DiscoveryUsecase() mvc.DiscoveryUsecase {
	return s.discoveryUsecase
}

// Close releases the resources opened by Open.
func (s *SDK) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
