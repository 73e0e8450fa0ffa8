package quoteusecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/cache"
	"github.com/rujira-labs/finsdk/domain/mvc"
	"github.com/rujira-labs/finsdk/log"
	"github.com/rujira-labs/finsdk/quote/telemetry"
)

const (
	tracerName = "finsdk-quote"

	// settlementAsset identifies the chain swap outputs are paid out on.
	settlementAsset = "THOR.RUNE"

	persistTimeout = 5 * time.Second
)

var tracer = otel.Tracer(tracerName)

type quoteUseCase struct {
	chainClient      domain.ChainClient
	discovery        mvc.DiscoveryUsecase
	assetRegistry    domain.AssetRegistry
	addressValidator domain.AddressValidator
	broadcaster      domain.TxBroadcaster
	pairStore        domain.PairStore

	config     domain.QuoteConfig
	routes     []domain.Route
	networkFee osmomath.Int
	thresholds ImpactThresholds

	pairs  *cache.PairAddresses
	quotes *cache.Cache[domain.SwapQuote]

	// persistMu serializes pair table saves.
	persistMu sync.Mutex

	clock      clock.Clock
	newQuoteID func() string
	logger     log.Logger
}

var _ mvc.QuoteUsecase = &quoteUseCase{}

// Option configures the quote use case.
type Option func(*quoteUseCase)

// WithClock overrides the clock quotes are stamped with.
func WithClock(c clock.Clock) Option {
	return func(q *quoteUseCase) {
		q.clock = c
	}
}

// WithBroadcaster sets the broadcaster whose address is the default sender of swaps.
func WithBroadcaster(broadcaster domain.TxBroadcaster) Option {
	return func(q *quoteUseCase) {
		q.broadcaster = broadcaster
	}
}

// WithPairStore sets the store newly discovered pair addresses are persisted to.
func WithPairStore(pairStore domain.PairStore) Option {
	return func(q *quoteUseCase) {
		q.pairStore = pairStore
	}
}

// WithStaticPairs seeds the local pair table.
func WithStaticPairs(staticPairs []domain.StaticPair) Option {
	return func(q *quoteUseCase) {
		q.pairs = cache.NewPairAddresses(staticPairs)
	}
}

// WithQuoteIDGenerator overrides how quote ids are generated.
func WithQuoteIDGenerator(newQuoteID func() string) Option {
	return func(q *quoteUseCase) {
		q.newQuoteID = newQuoteID
	}
}

// New creates a new quote use case.
// The config must have been validated.
func New(
	chainClient domain.ChainClient,
	discovery mvc.DiscoveryUsecase,
	assetRegistry domain.AssetRegistry,
	addressValidator domain.AddressValidator,
	config domain.QuoteConfig,
	routes []domain.Route,
	logger log.Logger,
	opts ...Option,
) (mvc.QuoteUsecase, error) {
	networkFee, ok := osmomath.NewIntFromString(config.NetworkFee)
	if !ok {
		return nil, fmt.Errorf("invalid network fee %q", config.NetworkFee)
	}
	medium, ok := osmomath.NewIntFromString(config.MediumTradeThreshold)
	if !ok {
		return nil, fmt.Errorf("invalid medium trade threshold %q", config.MediumTradeThreshold)
	}
	large, ok := osmomath.NewIntFromString(config.LargeTradeThreshold)
	if !ok {
		return nil, fmt.Errorf("invalid large trade threshold %q", config.LargeTradeThreshold)
	}

	q := &quoteUseCase{
		chainClient:      chainClient,
		discovery:        discovery,
		assetRegistry:    assetRegistry,
		addressValidator: addressValidator,
		config:           config,
		routes:           routes,
		networkFee:       networkFee,
		thresholds:       ImpactThresholds{Medium: medium, Large: large},
		pairs:            cache.NewPairAddresses(nil),
		clock:            clock.NewDefaultClock(),
		newQuoteID:       uuid.NewString,
		logger:           logger,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.quotes = cache.New[domain.SwapQuote](config.CacheMaxSize, config.CacheTTL(), cache.WithClock(q.clock))

	return q, nil
}

// GetQuote implements mvc.QuoteUsecase.
func (q *quoteUseCase) GetQuote(ctx context.Context, req domain.QuoteRequest, opts domain.QuoteOptions) (_ domain.SwapQuote, err error) {
	ctx, span := tracer.Start(ctx, "quoteUseCase.GetQuote", trace.WithAttributes(
		attribute.String("from_asset", req.FromAsset),
		attribute.String("to_asset", req.ToAsset),
		attribute.String("amount", req.Amount),
	))
	defer func() {
		if err != nil {
			telemetry.QuoteErrorsCounter.WithLabelValues(string(domain.KindOf(err))).Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, amount, err := q.validateRequest(req)
	if err != nil {
		return domain.SwapQuote{}, err
	}
	if !opts.SkipCache {
		if cached, ok := q.cachedQuote(req, opts); ok {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			// The cached entry carries the request of whoever fetched it.
			return cached.WithRequest(req), nil
		}
	}

	telemetry.QuoteCacheMissesCounter.Inc()

	quote, err := q.fetchQuote(ctx, req, amount)
	if err != nil {
		return domain.SwapQuote{}, err
	}

	q.quotes.Set(req.CacheKey(), quote)

	q.logger.Debug("fetched quote",
		zap.String("quote_id", quote.QuoteID),
		zap.String("from_asset", req.FromAsset),
		zap.String("to_asset", req.ToAsset),
		zap.Stringer("expected_output", quote.ExpectedOutput),
		zap.String("price_impact", quote.PriceImpact),
	)

	return quote, nil
}

// cachedQuote returns the cached quote for req if opts allow reusing it.
// Without an explicit staleness bound an old quote is still reused, with a warning attached.
func (q *quoteUseCase) cachedQuote(req domain.QuoteRequest, opts domain.QuoteOptions) (domain.SwapQuote, bool) {
	cached, ok := q.quotes.Get(req.CacheKey())
	if !ok {
		return domain.SwapQuote{}, false
	}

	age := cached.Age(q.clock.Now())

	if opts.MaxStaleness > 0 {
		if age > opts.MaxStaleness {
			return domain.SwapQuote{}, false
		}
		telemetry.QuoteCacheHitsCounter.WithLabelValues("false").Inc()
		return cached, true
	}

	if age > q.config.StalenessWarning() {
		telemetry.QuoteCacheHitsCounter.WithLabelValues("true").Inc()
		return cached.WithWarning(fmt.Sprintf("quote is %ds old; request with SkipCache or MaxStaleness for a fresh quote", int64(age/time.Second))), true
	}

	telemetry.QuoteCacheHitsCounter.WithLabelValues("false").Inc()
	return cached, true
}

// fetchQuote simulates the swap and prices it against a fresh order book snapshot.
func (q *quoteUseCase) fetchQuote(ctx context.Context, req domain.QuoteRequest, amount osmomath.Int) (domain.SwapQuote, error) {
	fromDenom, err := q.assetRegistry.AssetToDenom(req.FromAsset)
	if err != nil {
		return domain.SwapQuote{}, err
	}

	contractAddress, reversed, err := q.resolveContract(ctx, req.FromAsset, req.ToAsset)
	if err != nil {
		return domain.SwapQuote{}, err
	}

	start := time.Now()

	var (
		simulation domain.SimulationResult
		book       *domain.OrderBook
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		simulation, err = q.chainClient.SimulateSwap(gctx, contractAddress, fromDenom, amount)
		return err
	})
	g.Go(func() error {
		orderBook, err := q.chainClient.GetOrderBook(gctx, contractAddress, q.config.OrderBookDepth)
		if err != nil {
			q.logger.Debug("order book unavailable, estimating price impact", zap.String("contract", contractAddress), zap.Error(err))
			return nil
		}
		book = &orderBook
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.SwapQuote{}, domain.NormalizeError(err)
	}

	telemetry.QuoteFetchDurationHistogram.Observe(time.Since(start).Seconds())

	expected := simulation.Returned
	if !expected.IsPositive() {
		return domain.SwapQuote{}, domain.NewSDKError(domain.ErrKindContractError, fmt.Sprintf("simulation of %s %s on %s returned no output", amount, req.FromAsset, contractAddress), nil)
	}

	// Book prices are quote per base. Offering the quote asset means out/in is base per quote.
	if reversed {
		book = invertOrderBook(book)
	}
	impact := EstimatePriceImpact(amount, expected, book, q.thresholds)

	fees := q.computeFees(expected, simulation.Fee)

	now := q.clock.Now()
	quote := domain.SwapQuote{
		Request:         req,
		ExpectedOutput:  expected,
		MinimumOutput:   domain.ComputeMinimumOutput(expected, req.SlippageToleranceBps),
		Rate:            amount.MulRaw(domain.RatePrecision).Quo(expected),
		PriceImpact:     impact.Value,
		Fees:            fees,
		ContractAddress: contractAddress,
		QuoteID:         q.newQuoteID(),
		CreatedAt:       now,
		ExpiresAt:       now.Add(q.config.QuoteTTL()),
	}

	if !impact.FromOrderBook {
		if impact.Value == unknownImpact {
			quote = quote.WithWarning("price impact unknown for this trade size; acknowledge before executing")
		} else {
			quote = quote.WithWarning(fmt.Sprintf("price impact estimated at %s%% without order book data", impact.Value))
		}
	}

	return quote, nil
}

func (q *quoteUseCase) computeFees(expected, protocolFee osmomath.Int) domain.Fees {
	if protocolFee.IsNil() {
		protocolFee = osmomath.ZeroInt()
	}

	affiliate := expected.MulRaw(int64(q.config.AffiliateFeeBps)).QuoRaw(domain.BpsDenominator)

	return domain.Fees{
		Network:   q.networkFee,
		Protocol:  protocolFee,
		Affiliate: affiliate,
		Total:     q.networkFee.Add(protocolFee).Add(affiliate),
	}
}

// resolveContract returns the orderbook contract for the pair. reversed is true if
// fromAsset is the quote asset of the contract.
// Newly discovered addresses are written back to the local pair table and persisted.
func (q *quoteUseCase) resolveContract(ctx context.Context, fromAsset, toAsset string) (string, bool, error) {
	if address, ok := q.pairs.Get(domain.PairKey(fromAsset, toAsset)); ok {
		return address, false, nil
	}
	if address, ok := q.pairs.Get(domain.PairKey(toAsset, fromAsset)); ok {
		return address, true, nil
	}

	market, found, err := q.discovery.FindMarket(ctx, fromAsset, toAsset)
	if err != nil {
		return "", false, domain.NormalizeError(err)
	}
	if !found {
		return "", false, domain.NewSDKError(domain.ErrKindContractNotFound, fmt.Sprintf("no orderbook contract for %s/%s", fromAsset, toAsset), nil)
	}

	if q.pairs.Set(domain.PairKey(market.BaseAsset, market.QuoteAsset), market.ContractAddress) {
		q.persistPairs()
	}

	return market.ContractAddress, strings.EqualFold(market.BaseAsset, toAsset), nil
}

// persistPairs saves the pair table in the background. Failures are logged only.
// Saves run one at a time and each takes its snapshot under the lock.
func (q *quoteUseCase) persistPairs() {
	if q.pairStore == nil {
		return
	}

	go func() {
		q.persistMu.Lock()
		defer q.persistMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		snapshot := q.pairs.Snapshot()
		if err := q.pairStore.Save(ctx, snapshot); err != nil {
			q.logger.Warn("failed to persist pair addresses", zap.Int("pairs", len(snapshot)), zap.Error(err))
		}
	}()
}

// LoadPersistedPairs implements mvc.QuoteUsecase.
func (q *quoteUseCase) LoadPersistedPairs(ctx context.Context) error {
	if q.pairStore == nil {
		return nil
	}

	pairs, err := q.pairStore.Load(ctx)
	if err != nil {
		return err
	}

	q.pairs.Load(pairs)
	q.logger.Info("loaded persisted pair addresses", zap.Int("pairs", len(pairs)))
	return nil
}

// GetRoutes implements mvc.QuoteUsecase.
func (q *quoteUseCase) GetRoutes() []domain.Route {
	routes := make([]domain.Route, len(q.routes))
	copy(routes, q.routes)
	return routes
}

// ClearCache implements mvc.QuoteUsecase.
func (q *quoteUseCase) ClearCache() {
	q.quotes.Clear()
}
