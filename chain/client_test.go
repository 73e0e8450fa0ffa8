package chain_test

import (
	"context"
	"errors"
	"testing"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"

	"github.com/rujira-labs/finsdk/chain"
	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/json"
	"github.com/rujira-labs/finsdk/domain/mocks"
)

const contractAddress = "thor1fincontract"

type ChainClientTestSuite struct {
	suite.Suite

	wasmClient  *mocks.WasmQueryClientMock
	bankClient  *mocks.BankQueryClientMock
	broadcaster *mocks.TxBroadcasterMock
	client      domain.ChainClient
}

func TestChainClientTestSuite(t *testing.T) {
	suite.Run(t, new(ChainClientTestSuite))
}

type statusClientMock struct {
	height int64
	err    error
}

func (m statusClientMock) Status(ctx context.Context) (*coretypes.ResultStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &coretypes.ResultStatus{SyncInfo: coretypes.SyncInfo{LatestBlockHeight: m.height}}, nil
}

func (s *ChainClientTestSuite) SetupTest() {
	s.wasmClient = &mocks.WasmQueryClientMock{}
	s.bankClient = &mocks.BankQueryClientMock{}
	s.broadcaster = &mocks.TxBroadcasterMock{}
	s.client = chain.NewClientFromQueryClients(s.wasmClient, s.bankClient, statusClientMock{height: 42}, s.broadcaster)
}

func (s *ChainClientTestSuite) TestSimulateSwap() {
	var capturedQuery string
	s.wasmClient.SmartContractStateCb = func(ctx context.Context, in *wasmtypes.QuerySmartContractStateRequest, opts ...grpc.CallOption) (*wasmtypes.QuerySmartContractStateResponse, error) {
		s.Require().Equal(contractAddress, in.Address)
		capturedQuery = string(in.QueryData)
		return &wasmtypes.QuerySmartContractStateResponse{Data: []byte(`{"returned":"98500","fee":"150"}`)}, nil
	}

	result, err := s.client.SimulateSwap(context.Background(), contractAddress, "rune", osmomath.NewInt(100000))
	s.Require().NoError(err)

	s.Require().JSONEq(`{"simulate":{"denom":"rune","amount":"100000"}}`, capturedQuery)
	s.Require().Equal(osmomath.NewInt(98500), result.Returned)
	s.Require().Equal(osmomath.NewInt(150), result.Fee)
}

func (s *ChainClientTestSuite) TestSimulateSwap_Error() {
	s.wasmClient.WithSmartContractState("", errors.New("query wasm contract failed: insufficient liquidity"))

	_, err := s.client.SimulateSwap(context.Background(), contractAddress, "rune", osmomath.NewInt(1))
	s.Require().Error(err)
	s.Require().Equal(domain.ErrKindContractError, domain.KindOf(domain.NormalizeError(err)))
}

func (s *ChainClientTestSuite) TestGetOrderBook() {
	var capturedQuery string
	s.wasmClient.SmartContractStateCb = func(ctx context.Context, in *wasmtypes.QuerySmartContractStateRequest, opts ...grpc.CallOption) (*wasmtypes.QuerySmartContractStateResponse, error) {
		capturedQuery = string(in.QueryData)
		return &wasmtypes.QuerySmartContractStateResponse{Data: []byte(`{
			"base":[{"price":"1.01","total":"500"},{"price":"1.02","total":"700"}],
			"quote":[{"price":"0.99","total":"400"}]
		}`)}, nil
	}

	book, err := s.client.GetOrderBook(context.Background(), contractAddress, 10)
	s.Require().NoError(err)

	s.Require().JSONEq(`{"book":{"limit":10}}`, capturedQuery)
	s.Require().Len(book.Asks, 2)
	s.Require().Len(book.Bids, 1)

	bestAsk, ok := book.BestAsk()
	s.Require().True(ok)
	s.Require().True(decimal.RequireFromString("1.01").Equal(bestAsk))

	bestBid, ok := book.BestBid()
	s.Require().True(ok)
	s.Require().True(decimal.RequireFromString("0.99").Equal(bestBid))
	s.Require().Equal(osmomath.NewInt(400), book.Bids[0].Total)
}

func (s *ChainClientTestSuite) TestQueryContract() {
	s.wasmClient.WithSmartContractState(`{"denoms":["rune","btc-btc"],"tick":6,"fee_taker":"0.0015","fee_maker":"0.00075"}`, nil)

	var config domain.FinConfigResponse
	err := s.client.QueryContract(context.Background(), contractAddress, domain.FinConfigQuery{}, &config)
	s.Require().NoError(err)
	s.Require().Equal([2]string{"rune", "btc-btc"}, config.Denoms)
	s.Require().Equal(uint8(6), config.Tick)
}

func (s *ChainClientTestSuite) TestListContractsByCode_Paginates() {
	pages := map[string]*wasmtypes.QueryContractsByCodeResponse{
		"": {
			Contracts:  []string{"thor1a", "thor1b"},
			Pagination: &query.PageResponse{NextKey: []byte("page2")},
		},
		"page2": {
			Contracts: []string{"thor1c"},
		},
	}

	s.wasmClient.ContractsByCodeCb = func(ctx context.Context, in *wasmtypes.QueryContractsByCodeRequest, opts ...grpc.CallOption) (*wasmtypes.QueryContractsByCodeResponse, error) {
		s.Require().Equal(uint64(7), in.CodeId)
		return pages[string(in.Pagination.Key)], nil
	}

	contracts, err := s.client.ListContractsByCode(context.Background(), 7)
	s.Require().NoError(err)
	s.Require().Equal([]string{"thor1a", "thor1b", "thor1c"}, contracts)
}

func (s *ChainClientTestSuite) TestGetBalance() {
	s.bankClient.BalanceCb = func(ctx context.Context, in *banktypes.QueryBalanceRequest, opts ...grpc.CallOption) (*banktypes.QueryBalanceResponse, error) {
		if in.Denom == "rune" {
			coin := sdk.NewCoin("rune", osmomath.NewInt(1234))
			return &banktypes.QueryBalanceResponse{Balance: &coin}, nil
		}
		return &banktypes.QueryBalanceResponse{}, nil
	}

	balance, err := s.client.GetBalance(context.Background(), "thor1sender", "rune")
	s.Require().NoError(err)
	s.Require().Equal(osmomath.NewInt(1234), balance)

	balance, err = s.client.GetBalance(context.Background(), "thor1sender", "btc-btc")
	s.Require().NoError(err)
	s.Require().True(balance.IsZero())
}

func (s *ChainClientTestSuite) TestGetLatestHeight() {
	height, err := s.client.GetLatestHeight(context.Background())
	s.Require().NoError(err)
	s.Require().Equal(uint64(42), height)

	noRPC := chain.NewClientFromQueryClients(s.wasmClient, s.bankClient, nil, nil)
	_, err = noRPC.GetLatestHeight(context.Background())
	s.Require().Error(err)
}

func (s *ChainClientTestSuite) TestExecuteContract() {
	var capturedMsgs []sdk.Msg
	var capturedMemo string
	s.broadcaster.BroadcastMsgsCb = func(ctx context.Context, msgs []sdk.Msg, memo string) (string, error) {
		capturedMsgs = msgs
		capturedMemo = memo
		return "ABCDEF", nil
	}

	msg, err := json.Marshal(map[string]any{"swap": map[string]any{}})
	s.Require().NoError(err)

	funds := sdk.Coins{sdk.Coin{Denom: "rune", Amount: osmomath.NewInt(100)}}
	txHash, err := s.client.ExecuteContract(context.Background(), "thor1sender", contractAddress, msg, funds, "memo")
	s.Require().NoError(err)
	s.Require().Equal("ABCDEF", txHash)
	s.Require().Equal("memo", capturedMemo)
	s.Require().Len(capturedMsgs, 1)

	executeMsg, ok := capturedMsgs[0].(*wasmtypes.MsgExecuteContract)
	s.Require().True(ok)
	s.Require().Equal("thor1sender", executeMsg.Sender)
	s.Require().Equal(contractAddress, executeMsg.Contract)
	s.Require().Equal(funds, executeMsg.Funds)

	_, err = s.client.ExecuteContract(context.Background(), "thor1sender", contractAddress, []byte("{not json"), funds, "")
	s.Require().Error(err)
}

func (s *ChainClientTestSuite) TestExecuteContract_ReadOnly() {
	readOnly := chain.NewClientFromQueryClients(s.wasmClient, s.bankClient, nil, nil)

	_, err := readOnly.ExecuteContract(context.Background(), "thor1sender", contractAddress, []byte(`{}`), sdk.Coins{}, "")
	s.Require().ErrorIs(err, chain.ErrReadOnly)
}
