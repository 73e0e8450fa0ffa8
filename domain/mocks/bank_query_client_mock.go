package mocks

import (
	"context"

	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"google.golang.org/grpc"
)

var _ banktypes.QueryClient = (*BankQueryClientMock)(nil)

// BankQueryClientMock mocks the bank module query client. Only Balance is supported.
type BankQueryClientMock struct {
	banktypes.QueryClient

	BalanceCb func(ctx context.Context, in *banktypes.QueryBalanceRequest, opts ...grpc.CallOption) (*banktypes.QueryBalanceResponse, error)
}

func (m *BankQueryClientMock) Balance(ctx context.Context, in *banktypes.QueryBalanceRequest, opts ...grpc.CallOption) (*banktypes.QueryBalanceResponse, error) {
	if m.BalanceCb != nil {
		return m.BalanceCb(ctx, in, opts...)
	}
	panic("BankQueryClientMock.Balance unimplemented")
}
