package mocks

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/rujira-labs/finsdk/domain"
)

var _ domain.ChainClient = (*ChainClientMock)(nil)

// ChainClientMock is a mock struct that implements domain.ChainClient.
type ChainClientMock struct {
	SimulateSwapCb        func(ctx context.Context, contractAddress string, denom string, amount osmomath.Int) (domain.SimulationResult, error)
	GetOrderBookCb        func(ctx context.Context, contractAddress string, limit int) (domain.OrderBook, error)
	QueryContractCb       func(ctx context.Context, contractAddress string, query any, response any) error
	ListContractsByCodeCb func(ctx context.Context, codeID uint64) ([]string, error)
	GetBalanceCb          func(ctx context.Context, address string, denom string) (osmomath.Int, error)
	GetLatestHeightCb     func(ctx context.Context) (uint64, error)
	ExecuteContractCb     func(ctx context.Context, sender string, contractAddress string, msg []byte, funds sdk.Coins, memo string) (string, error)
}

func (m *ChainClientMock) SimulateSwap(ctx context.Context, contractAddress string, denom string, amount osmomath.Int) (domain.SimulationResult, error) {
	if m.SimulateSwapCb != nil {
		return m.SimulateSwapCb(ctx, contractAddress, denom, amount)
	}
	panic("ChainClientMock.SimulateSwap unimplemented")
}

func (m *ChainClientMock) WithSimulateSwap(result domain.SimulationResult, err error) {
	m.SimulateSwapCb = func(ctx context.Context, contractAddress string, denom string, amount osmomath.Int) (domain.SimulationResult, error) {
		return result, err
	}
}

func (m *ChainClientMock) GetOrderBook(ctx context.Context, contractAddress string, limit int) (domain.OrderBook, error) {
	if m.GetOrderBookCb != nil {
		return m.GetOrderBookCb(ctx, contractAddress, limit)
	}
	panic("ChainClientMock.GetOrderBook unimplemented")
}

func (m *ChainClientMock) WithGetOrderBook(book domain.OrderBook, err error) {
	m.GetOrderBookCb = func(ctx context.Context, contractAddress string, limit int) (domain.OrderBook, error) {
		return book, err
	}
}

func (m *ChainClientMock) QueryContract(ctx context.Context, contractAddress string, query any, response any) error {
	if m.QueryContractCb != nil {
		return m.QueryContractCb(ctx, contractAddress, query, response)
	}
	panic("ChainClientMock.QueryContract unimplemented")
}

func (m *ChainClientMock) ListContractsByCode(ctx context.Context, codeID uint64) ([]string, error) {
	if m.ListContractsByCodeCb != nil {
		return m.ListContractsByCodeCb(ctx, codeID)
	}
	panic("ChainClientMock.ListContractsByCode unimplemented")
}

func (m *ChainClientMock) GetBalance(ctx context.Context, address string, denom string) (osmomath.Int, error) {
	if m.GetBalanceCb != nil {
		return m.GetBalanceCb(ctx, address, denom)
	}
	panic("ChainClientMock.GetBalance unimplemented")
}

func (m *ChainClientMock) WithGetBalance(balance osmomath.Int, err error) {
	m.GetBalanceCb = func(ctx context.Context, address string, denom string) (osmomath.Int, error) {
		return balance, err
	}
}

func (m *ChainClientMock) GetLatestHeight(ctx context.Context) (uint64, error) {
	if m.GetLatestHeightCb != nil {
		return m.GetLatestHeightCb(ctx)
	}
	panic("ChainClientMock.GetLatestHeight unimplemented")
}

func (m *ChainClientMock) ExecuteContract(ctx context.Context, sender string, contractAddress string, msg []byte, funds sdk.Coins, memo string) (string, error) {
	if m.ExecuteContractCb != nil {
		return m.ExecuteContractCb(ctx, sender, contractAddress, msg, funds, memo)
	}
	panic("ChainClientMock.ExecuteContract unimplemented")
}
