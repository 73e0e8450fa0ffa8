package discoveryusecase_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/suite"

	discoveryusecase "github.com/rujira-labs/finsdk/discovery/usecase"
	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/mocks"
	"github.com/rujira-labs/finsdk/domain/mvc"
	"github.com/rujira-labs/finsdk/log"
	tokensusecase "github.com/rujira-labs/finsdk/tokens/usecase"
)

type DiscoveryUseCaseTestSuite struct {
	suite.Suite

	clock   *clock.TestClock
	indexer *mocks.IndexerClientMock
	chain   *mocks.ChainClientMock
}

const (
	btcRuneContract  = "thor1btcrune"
	usdcRuneContract = "thor1usdcrune"
	ethRuneContract  = "thor1ethrune"

	btcAsset  = "BTC.BTC"
	runeAsset = "THOR.RUNE"
	usdcAsset = "ETH.USDC-0XA0B8"
)

var (
	defaultStartTime = time.Unix(1_700_000_000, 0)

	indexedMarkets = domain.IndexedMarkets{
		Markets: []domain.IndexedMarket{
			{
				Address: btcRuneContract,
				Denoms:  domain.IndexedDenoms{Base: "btc-btc", Quote: "rune"},
				Config:  &domain.IndexedMarketConfig{Tick: "5", FeeTaker: "0.002", FeeMaker: "0.001"},
			},
			{
				Address: usdcRuneContract,
				Denoms:  domain.IndexedDenoms{Base: "eth-usdc-0xa0b8", Quote: "rune"},
			},
		},
	}

	errServer = &domain.IndexerHTTPError{StatusCode: http.StatusBadGateway, URL: "http://indexer/markets"}
	errAuth   = &domain.IndexerHTTPError{StatusCode: http.StatusUnauthorized, URL: "http://indexer/markets"}
)

func TestDiscoveryUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(DiscoveryUseCaseTestSuite))
}

func (s *DiscoveryUseCaseTestSuite) SetupTest() {
	s.clock = clock.NewTestClock(defaultStartTime)
	s.indexer = &mocks.IndexerClientMock{}
	s.chain = &mocks.ChainClientMock{}
}

func (s *DiscoveryUseCaseTestSuite) newUseCase(withIndexer bool) mvc.DiscoveryUsecase {
	config := *domain.DefaultDiscoveryConfig()
	config.CodeIDs = []uint64{7}

	var indexer domain.IndexerClient
	if withIndexer {
		indexer = s.indexer
	}

	return discoveryusecase.New(
		indexer,
		s.chain,
		tokensusecase.NewAssetRegistry(nil),
		config,
		&log.NoOpLogger{},
		discoveryusecase.WithClock(s.clock),
	)
}

// withChainScan sets up a chain with one healthy orderbook and one contract that fails its config query.
func (s *DiscoveryUseCaseTestSuite) withChainScan(listCalls *atomic.Int32) {
	s.chain.ListContractsByCodeCb = func(ctx context.Context, codeID uint64) ([]string, error) {
		if listCalls != nil {
			listCalls.Add(1)
		}
		s.Require().Equal(uint64(7), codeID)
		return []string{ethRuneContract, "thor1broken"}, nil
	}
	s.chain.QueryContractCb = func(ctx context.Context, contractAddress string, query any, response any) error {
		s.Require().IsType(domain.FinConfigQuery{}, query)
		if contractAddress == "thor1broken" {
			return errors.New("contract migrated")
		}
		config := response.(*domain.FinConfigResponse)
		*config = domain.FinConfigResponse{Denoms: [2]string{"eth-eth", "rune"}, Tick: 4, FeeTaker: "0.003", FeeMaker: "0.0015"}
		return nil
	}
}

func (s *DiscoveryUseCaseTestSuite) TestDiscoverContracts_Indexer() {
	s.indexer.WithGetMarkets(indexedMarkets, nil)
	usecase := s.newUseCase(true)

	discovered, err := usecase.DiscoverContracts(context.Background())
	s.Require().NoError(err)
	s.Require().Equal(domain.DiscoverySourceIndexedAPI, discovered.Source)
	s.Require().Equal(map[string]string{
		domain.PairKey(btcAsset, runeAsset):  btcRuneContract,
		domain.PairKey(usdcAsset, runeAsset): usdcRuneContract,
	}, discovered.PairToAddress)
	s.Require().Equal(defaultStartTime, discovered.DiscoveredAt)
	s.Require().NoError(discovered.LastError)
}

func (s *DiscoveryUseCaseTestSuite) TestDiscoverContracts_CachedWithinTTL() {
	var calls atomic.Int32
	s.indexer.GetMarketsCb = func(ctx context.Context) (domain.IndexedMarkets, error) {
		calls.Add(1)
		return indexedMarkets, nil
	}
	usecase := s.newUseCase(true)

	_, err := usecase.DiscoverContracts(context.Background())
	s.Require().NoError(err)

	s.clock.SetTime(defaultStartTime.Add(4 * time.Minute))
	_, err = usecase.DiscoverContracts(context.Background())
	s.Require().NoError(err)
	s.Require().Equal(int32(1), calls.Load())

	s.clock.SetTime(defaultStartTime.Add(5 * time.Minute))
	discovered, err := usecase.DiscoverContracts(context.Background())
	s.Require().NoError(err)
	s.Require().Equal(int32(2), calls.Load())
	s.Require().Equal(defaultStartTime.Add(5*time.Minute), discovered.DiscoveredAt)
}

func (s *DiscoveryUseCaseTestSuite) TestDiscoverContracts_Singleflight() {
	var calls atomic.Int32
	release := make(chan struct{})
	s.indexer.GetMarketsCb = func(ctx context.Context) (domain.IndexedMarkets, error) {
		calls.Add(1)
		<-release
		return indexedMarkets, nil
	}
	usecase := s.newUseCase(true)

	const callers = 2
	var wg sync.WaitGroup
	results := make([]domain.DiscoveredContracts, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = usecase.DiscoverContracts(context.Background())
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	s.Require().Equal(int32(1), calls.Load())
	for i := 0; i < callers; i++ {
		s.Require().NoError(errs[i])
		s.Require().Len(results[i].PairToAddress, 2)
	}
}

func (s *DiscoveryUseCaseTestSuite) TestDiscoverContracts_AuthErrorNeverScans() {
	var listCalls atomic.Int32
	s.indexer.WithGetMarkets(domain.IndexedMarkets{}, errAuth)
	s.withChainScan(&listCalls)
	usecase := s.newUseCase(true)

	_, err := usecase.DiscoverContracts(context.Background())
	s.Require().Error(err)

	var authErr domain.DiscoveryAuthError
	s.Require().ErrorAs(err, &authErr)
	s.Require().Equal(int32(0), listCalls.Load())

	// Authentication failures are not cached.
	s.Require().False(usecase.GetCacheStatus().HasCache)
}

func (s *DiscoveryUseCaseTestSuite) TestDiscoverContracts_FallbackClasses() {
	tests := []struct {
		name string
		err  error
	}{
		{name: "server", err: errServer},
		{name: "network", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}},
		{name: "timeout", err: context.DeadlineExceeded},
		{name: "protocol", err: &domain.IndexerDecodeError{URL: "http://indexer/markets", Err: errors.New("unexpected token")}},
		{name: "unknown", err: errors.New("boom")},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			var listCalls atomic.Int32
			s.indexer.WithGetMarkets(domain.IndexedMarkets{}, tt.err)
			s.withChainScan(&listCalls)
			usecase := s.newUseCase(true)

			discovered, err := usecase.DiscoverContracts(context.Background())
			s.Require().NoError(err)
			s.Require().Equal(int32(1), listCalls.Load())
			s.Require().Equal(domain.DiscoverySourceChainScan, discovered.Source)
			s.Require().Equal(map[string]string{
				domain.PairKey("ETH.ETH", runeAsset): ethRuneContract,
			}, discovered.PairToAddress)
		})
	}
}

func (s *DiscoveryUseCaseTestSuite) TestDiscoverContracts_ChainScanReplacesCache() {
	s.indexer.WithGetMarkets(indexedMarkets, nil)
	s.withChainScan(nil)
	usecase := s.newUseCase(true)

	_, err := usecase.DiscoverContracts(context.Background())
	s.Require().NoError(err)

	s.indexer.WithGetMarkets(domain.IndexedMarkets{}, errServer)
	s.clock.SetTime(defaultStartTime.Add(10 * time.Minute))

	discovered, err := usecase.DiscoverContracts(context.Background())
	s.Require().NoError(err)
	s.Require().Equal(domain.DiscoverySourceChainScan, discovered.Source)
	s.Require().NotContains(discovered.PairToAddress, domain.PairKey(btcAsset, runeAsset))
}

func (s *DiscoveryUseCaseTestSuite) TestDiscoverContracts_BothSourcesFail() {
	s.indexer.WithGetMarkets(domain.IndexedMarkets{}, errServer)
	s.chain.ListContractsByCodeCb = func(ctx context.Context, codeID uint64) ([]string, error) {
		return nil, errors.New("connection refused")
	}
	usecase := s.newUseCase(true)

	discovered, err := usecase.DiscoverContracts(context.Background())
	s.Require().NoError(err)
	s.Require().Equal(domain.DiscoverySourceFallbackFailed, discovered.Source)
	s.Require().Empty(discovered.PairToAddress)
	s.Require().Error(discovered.LastError)
	s.Require().Contains(discovered.LastError.Error(), "connection refused")

	status := usecase.GetCacheStatus()
	s.Require().True(status.HasCache)
	s.Require().Equal(domain.DiscoverySourceFallbackFailed, status.Source)
	s.Require().NotEmpty(status.LastError)

	_, found, err := usecase.GetContractAddress(context.Background(), "ETH.ETH", runeAsset)
	s.Require().NoError(err)
	s.Require().False(found)
}

func (s *DiscoveryUseCaseTestSuite) TestDiscoverContracts_NoIndexer() {
	s.withChainScan(nil)
	usecase := s.newUseCase(false)

	discovered, err := usecase.DiscoverContracts(context.Background())
	s.Require().NoError(err)
	s.Require().Equal(domain.DiscoverySourceChainScan, discovered.Source)
}

func (s *DiscoveryUseCaseTestSuite) TestFindMarket_Indexed() {
	s.indexer.GetMarketCb = func(ctx context.Context, baseDenom, quoteDenom string) (domain.IndexedMarket, bool, error) {
		if baseDenom == "btc-btc" && quoteDenom == "rune" {
			return indexedMarkets.Markets[0], true, nil
		}
		return domain.IndexedMarket{}, false, nil
	}
	usecase := s.newUseCase(true)

	// Reverse direction resolves to the same contract.
	market, found, err := usecase.FindMarket(context.Background(), runeAsset, btcAsset)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Require().Equal(domain.Market{
		ContractAddress: btcRuneContract,
		BaseAsset:       btcAsset,
		QuoteAsset:      runeAsset,
		BaseDenom:       "btc-btc",
		QuoteDenom:      "rune",
		TickSize:        "5",
		TakerFee:        "0.002",
		MakerFee:        "0.001",
	}, market)

	// Served from the market cache.
	s.indexer.GetMarketCb = nil
	address, found, err := usecase.GetContractAddress(context.Background(), btcAsset, runeAsset)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Require().Equal(btcRuneContract, address)
}

func (s *DiscoveryUseCaseTestSuite) TestFindMarket_AuthErrorPropagates() {
	s.indexer.GetMarketCb = func(ctx context.Context, baseDenom, quoteDenom string) (domain.IndexedMarket, bool, error) {
		return domain.IndexedMarket{}, false, errAuth
	}
	usecase := s.newUseCase(true)

	_, _, err := usecase.FindMarket(context.Background(), btcAsset, runeAsset)

	var authErr domain.DiscoveryAuthError
	s.Require().ErrorAs(err, &authErr)
}

func (s *DiscoveryUseCaseTestSuite) TestFindMarket_FallsBackToDiscoveryMap() {
	s.indexer.GetMarketCb = func(ctx context.Context, baseDenom, quoteDenom string) (domain.IndexedMarket, bool, error) {
		return domain.IndexedMarket{}, false, errServer
	}
	s.indexer.WithGetMarkets(domain.IndexedMarkets{}, errServer)
	s.withChainScan(nil)
	usecase := s.newUseCase(true)

	market, found, err := usecase.FindMarket(context.Background(), runeAsset, "ETH.ETH")
	s.Require().NoError(err)
	s.Require().True(found)
	s.Require().Equal(ethRuneContract, market.ContractAddress)
	s.Require().Equal("ETH.ETH", market.BaseAsset)
	s.Require().Equal("eth-eth", market.BaseDenom)
	s.Require().Equal("4", market.TickSize)
	s.Require().Equal("0.003", market.TakerFee)
}

func (s *DiscoveryUseCaseTestSuite) TestListMarketsAndClearCache() {
	var calls atomic.Int32
	s.indexer.GetMarketsCb = func(ctx context.Context) (domain.IndexedMarkets, error) {
		calls.Add(1)
		return indexedMarkets, nil
	}
	usecase := s.newUseCase(true)

	markets, err := usecase.ListMarkets(context.Background())
	s.Require().NoError(err)
	s.Require().Len(markets, 2)
	s.Require().Equal(btcRuneContract, markets[0].ContractAddress)
	s.Require().Equal(usdcRuneContract, markets[1].ContractAddress)

	// Placeholders fill a missing indexed config.
	defaults := domain.DefaultDiscoveryConfig()
	s.Require().Equal(defaults.DefaultTakerFee, markets[1].TakerFee)

	status := usecase.GetCacheStatus()
	s.Require().True(status.HasCache)
	s.Require().Equal(2, status.ContractCount)
	s.Require().False(status.IsStale)

	usecase.ClearCache()
	s.Require().False(usecase.GetCacheStatus().HasCache)

	_, err = usecase.ListMarkets(context.Background())
	s.Require().NoError(err)
	s.Require().Equal(int32(2), calls.Load())
}
