package discoveryusecase

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rujira-labs/finsdk/domain"
)

// FindMarket implements mvc.DiscoveryUsecase.
func (d *discoveryUseCase) FindMarket(ctx context.Context, baseAsset, quoteAsset string) (domain.Market, bool, error) {
	ctx, span := tracer.Start(ctx, "discoveryUseCase.FindMarket", trace.WithAttributes(spanPairAttributes(baseAsset, quoteAsset)...))
	defer span.End()

	if market, ok := d.cachedMarket(baseAsset, quoteAsset); ok {
		return market, true, nil
	}

	if d.indexer != nil {
		market, found, err := d.findIndexedMarket(ctx, baseAsset, quoteAsset)
		if err != nil {
			return domain.Market{}, false, err
		}
		if found {
			d.markets.Set(domain.PairKey(market.BaseAsset, market.QuoteAsset), market)
			return market, true, nil
		}
	}

	discovered, err := d.DiscoverContracts(ctx)
	if err != nil {
		return domain.Market{}, false, err
	}

	address, reversed, ok := discovered.Lookup(baseAsset, quoteAsset)
	if !ok {
		return domain.Market{}, false, nil
	}

	if reversed {
		baseAsset, quoteAsset = quoteAsset, baseAsset
	}

	market, ok := d.knownMarket(baseAsset, quoteAsset)
	if !ok || market.ContractAddress != address {
		market = d.placeholderMarket(address, baseAsset, quoteAsset)
	}

	d.markets.Set(domain.PairKey(baseAsset, quoteAsset), market)
	return market, true, nil
}

// cachedMarket looks the pair up in the market cache in both directions.
func (d *discoveryUseCase) cachedMarket(baseAsset, quoteAsset string) (domain.Market, bool) {
	if market, ok := d.markets.Get(domain.PairKey(baseAsset, quoteAsset)); ok {
		return market, true
	}
	return d.markets.Get(domain.PairKey(quoteAsset, baseAsset))
}

func (d *discoveryUseCase) knownMarket(baseAsset, quoteAsset string) (domain.Market, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	market, ok := d.knownMarkets[domain.PairKey(baseAsset, quoteAsset)]
	return market, ok
}

// findIndexedMarket asks the indexer for the pair and its reverse.
// Authentication failures are returned, every other failure defers to the discovery map.
func (d *discoveryUseCase) findIndexedMarket(ctx context.Context, baseAsset, quoteAsset string) (domain.Market, bool, error) {
	baseDenom, err := d.assetRegistry.AssetToDenom(baseAsset)
	if err != nil {
		return domain.Market{}, false, err
	}
	quoteDenom, err := d.assetRegistry.AssetToDenom(quoteAsset)
	if err != nil {
		return domain.Market{}, false, err
	}

	for _, denoms := range [][2]string{{baseDenom, quoteDenom}, {quoteDenom, baseDenom}} {
		indexed, found, err := d.indexer.GetMarket(ctx, denoms[0], denoms[1])
		if err != nil {
			class := domain.ClassifyDiscoveryError(err)
			if !class.AllowsFallback() {
				return domain.Market{}, false, domain.DiscoveryAuthError{Err: err}
			}

			d.logger.Debug("indexed market lookup failed", zap.String("base_denom", denoms[0]), zap.String("quote_denom", denoms[1]), zap.String("class", string(class)), zap.Error(err))
			return domain.Market{}, false, nil
		}
		if !found {
			continue
		}

		market, err := d.toMarket(indexed)
		if err != nil {
			d.logger.Debug("skipping indexed market", zap.String("address", indexed.Address), zap.Error(err))
			continue
		}
		return market, true, nil
	}

	return domain.Market{}, false, nil
}

// discoverFromIndexer lists all markets from the indexer.
// Markets whose denoms cannot be converted to assets are skipped.
func (d *discoveryUseCase) discoverFromIndexer(ctx context.Context) ([]domain.Market, error) {
	indexed, err := d.indexer.GetMarkets(ctx)
	if err != nil {
		return nil, err
	}

	markets := make([]domain.Market, 0, len(indexed.Markets))
	for _, indexedMarket := range indexed.Markets {
		market, err := d.toMarket(indexedMarket)
		if err != nil {
			d.logger.Debug("skipping indexed market", zap.String("address", indexedMarket.Address), zap.Error(err))
			continue
		}
		markets = append(markets, market)
	}

	return markets, nil
}

// toMarket converts an indexed market, filling missing config with the configured defaults.
func (d *discoveryUseCase) toMarket(indexed domain.IndexedMarket) (domain.Market, error) {
	baseAsset, err := d.assetRegistry.DenomToAsset(indexed.Denoms.Base)
	if err != nil {
		return domain.Market{}, err
	}
	quoteAsset, err := d.assetRegistry.DenomToAsset(indexed.Denoms.Quote)
	if err != nil {
		return domain.Market{}, err
	}

	market := domain.Market{
		ContractAddress: indexed.Address,
		BaseAsset:       baseAsset,
		QuoteAsset:      quoteAsset,
		BaseDenom:       indexed.Denoms.Base,
		QuoteDenom:      indexed.Denoms.Quote,
		TickSize:        d.config.DefaultTickSize,
		TakerFee:        d.config.DefaultTakerFee,
		MakerFee:        d.config.DefaultMakerFee,
	}

	if indexed.Config != nil {
		market.TickSize = valueOr(indexed.Config.Tick, market.TickSize)
		market.TakerFee = valueOr(indexed.Config.FeeTaker, market.TakerFee)
		market.MakerFee = valueOr(indexed.Config.FeeMaker, market.MakerFee)
	}

	return market, nil
}

// placeholderMarket returns a market only known by address.
func (d *discoveryUseCase) placeholderMarket(address, baseAsset, quoteAsset string) domain.Market {
	market := domain.Market{
		ContractAddress: address,
		BaseAsset:       baseAsset,
		QuoteAsset:      quoteAsset,
		TickSize:        d.config.DefaultTickSize,
		TakerFee:        d.config.DefaultTakerFee,
		MakerFee:        d.config.DefaultMakerFee,
	}

	if denom, err := d.assetRegistry.AssetToDenom(baseAsset); err == nil {
		market.BaseDenom = denom
	}
	if denom, err := d.assetRegistry.AssetToDenom(quoteAsset); err == nil {
		market.QuoteDenom = denom
	}

	return market
}

func (d *discoveryUseCase) configToMarket(address string, config domain.FinConfigResponse) (domain.Market, error) {
	baseAsset, err := d.assetRegistry.DenomToAsset(config.Denoms[0])
	if err != nil {
		return domain.Market{}, err
	}
	quoteAsset, err := d.assetRegistry.DenomToAsset(config.Denoms[1])
	if err != nil {
		return domain.Market{}, err
	}

	return domain.Market{
		ContractAddress: address,
		BaseAsset:       baseAsset,
		QuoteAsset:      quoteAsset,
		BaseDenom:       config.Denoms[0],
		QuoteDenom:      config.Denoms[1],
		TickSize:        strconv.FormatUint(uint64(config.Tick), 10),
		TakerFee:        valueOr(config.FeeTaker, d.config.DefaultTakerFee),
		MakerFee:        valueOr(config.FeeMaker, d.config.DefaultMakerFee),
	}, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
