package sdk_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/mocks"
	"github.com/rujira-labs/finsdk/sdk"
)

type SDKTestSuite struct {
	suite.Suite

	chain   *mocks.ChainClientMock
	indexer *mocks.IndexerClientMock
	store   *mocks.PairStoreMock
	config  domain.Config
}

func TestSDKTestSuite(t *testing.T) {
	suite.Run(t, new(SDKTestSuite))
}

func (s *SDKTestSuite) SetupTest() {
	s.chain = &mocks.ChainClientMock{}
	s.chain.SimulateSwapCb = func(ctx context.Context, contractAddress string, denom string, amount osmomath.Int) (domain.SimulationResult, error) {
		return domain.SimulationResult{Returned: amount.MulRaw(2), Fee: osmomath.ZeroInt()}, nil
	}
	s.chain.WithGetOrderBook(domain.OrderBook{
		Bids: []domain.OrderBookLevel{{Price: decimal.RequireFromString("1.99"), Total: osmomath.NewInt(100)}},
		Asks: []domain.OrderBookLevel{{Price: decimal.RequireFromString("2.01"), Total: osmomath.NewInt(100)}},
	}, nil)

	s.indexer = &mocks.IndexerClientMock{
		GetMarketCb: func(ctx context.Context, baseDenom, quoteDenom string) (domain.IndexedMarket, bool, error) {
			if baseDenom == "btc-btc" && quoteDenom == "rune" {
				return domain.IndexedMarket{Address: "thor1btcrune", Denoms: domain.IndexedDenoms{Base: "btc-btc", Quote: "rune"}}, true, nil
			}
			return domain.IndexedMarket{}, false, nil
		},
	}

	s.store = &mocks.PairStoreMock{}

	s.config = domain.Config{
		Quote:     domain.DefaultQuoteConfig(),
		Discovery: domain.DefaultDiscoveryConfig(),
		Routes: []domain.Route{
			{Name: "btc-to-rune", FromAsset: "BTC.BTC", ToAsset: "THOR.RUNE"},
		},
	}
	s.config.Discovery.CodeIDs = []uint64{7}
}

func (s *SDKTestSuite) newSDK() *sdk.SDK {
	finSDK, err := sdk.New(context.Background(), s.config, sdk.Dependencies{
		ChainClient: s.chain,
		Indexer:     s.indexer,
		PairStore:   s.store,
		Clock:       clock.NewTestClock(time.Unix(1_700_000_000, 0)),
	})
	s.Require().NoError(err)
	return finSDK
}

func (s *SDKTestSuite) TestNew_Invalid() {
	_, err := sdk.New(context.Background(), domain.Config{}, sdk.Dependencies{ChainClient: s.chain})
	s.Require().Error(err)

	_, err = sdk.New(context.Background(), s.config, sdk.Dependencies{})
	s.Require().Error(err)

	s.config.Quote.DefaultSlippageBps = domain.MaxSlippageToleranceBps + 1
	_, err = sdk.New(context.Background(), s.config, sdk.Dependencies{ChainClient: s.chain})
	s.Require().Error(err)
}

func (s *SDKTestSuite) TestGetQuote() {
	finSDK := s.newSDK()

	quote, err := finSDK.GetQuote(context.Background(), domain.QuoteRequest{
		FromAsset: "BTC.BTC",
		ToAsset:   "THOR.RUNE",
		Amount:    "1000",
	}, domain.QuoteOptions{})
	s.Require().NoError(err)
	s.Require().Equal("thor1btcrune", quote.ContractAddress)
	s.Require().Equal("2000", quote.ExpectedOutput.String())
	s.Require().Equal("0.0000", quote.PriceImpact)

	quotes := finSDK.GetAllRouteQuotes(context.Background(), "1000", "")
	s.Require().NotNil(quotes["btc-to-rune"])
	s.Require().Equal(quote.QuoteID, quotes["btc-to-rune"].QuoteID)

	address, found, err := finSDK.GetContractAddress(context.Background(), "THOR.RUNE", "BTC.BTC")
	s.Require().NoError(err)
	s.Require().True(found)
	s.Require().Equal("thor1btcrune", address)
}

func (s *SDKTestSuite) TestPersistedPairsLoaded() {
	s.store.LoadCb = func(ctx context.Context) (map[string]string, error) {
		return map[string]string{domain.PairKey("BTC.BTC", "THOR.RUNE"): "thor1persisted"}, nil
	}
	s.indexer.GetMarketCb = func(ctx context.Context, baseDenom, quoteDenom string) (domain.IndexedMarket, bool, error) {
		s.FailNow("indexer must not be consulted")
		return domain.IndexedMarket{}, false, nil
	}
	finSDK := s.newSDK()

	quote, err := finSDK.GetQuote(context.Background(), domain.QuoteRequest{FromAsset: "BTC.BTC", ToAsset: "THOR.RUNE", Amount: "1000"}, domain.QuoteOptions{})
	s.Require().NoError(err)
	s.Require().Equal("thor1persisted", quote.ContractAddress)
}

func (s *SDKTestSuite) TestPersistedPairsLoadFailureTolerated() {
	s.store.LoadCb = func(ctx context.Context) (map[string]string, error) {
		return nil, errors.New("corrupt database")
	}
	s.newSDK()
}

func (s *SDKTestSuite) TestValidateAddress() {
	finSDK := s.newSDK()

	s.Require().NoError(finSDK.ValidateAddress("ETH.ETH", "0x52908400098527886E0F7030069857D2E4169EE7"))
	s.Require().ErrorIs(finSDK.ValidateAddress("ETH.ETH", "0x123"), domain.ErrInvalidAddress)
	s.Require().ErrorIs(finSDK.ValidateAddress("THOR.RUNE", ""), domain.ErrInvalidAddress)
}

func (s *SDKTestSuite) TestExecuteWithoutSender() {
	finSDK := s.newSDK()

	_, err := finSDK.ExecuteSwap(context.Background(), domain.QuoteRequest{FromAsset: "BTC.BTC", ToAsset: "THOR.RUNE", Amount: "1000"}, domain.QuoteOptions{}, domain.ExecuteOptions{})
	s.Require().ErrorIs(err, domain.ErrInvalidAddress)
}

func (s *SDKTestSuite) TestClearCache() {
	finSDK := s.newSDK()

	_, err := finSDK.GetQuote(context.Background(), domain.QuoteRequest{FromAsset: "BTC.BTC", ToAsset: "THOR.RUNE", Amount: "1000"}, domain.QuoteOptions{})
	s.Require().NoError(err)

	finSDK.ClearCache()
	s.Require().False(finSDK.GetCacheStatus().HasCache)
	s.Require().NoError(finSDK.Close())
}
