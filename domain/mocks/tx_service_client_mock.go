package mocks

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"google.golang.org/grpc"
)

var _ txtypes.ServiceClient = (*TxServiceClientMock)(nil)

// TxServiceClientMock mocks the tx service client. Only BroadcastTx is supported.
type TxServiceClientMock struct {
	txtypes.ServiceClient

	BroadcastTxFunc func(ctx context.Context, in *txtypes.BroadcastTxRequest, opts ...grpc.CallOption) (*txtypes.BroadcastTxResponse, error)
}

func (m *TxServiceClientMock) BroadcastTx(ctx context.Context, in *txtypes.BroadcastTxRequest, opts ...grpc.CallOption) (*txtypes.BroadcastTxResponse, error) {
	if m.BroadcastTxFunc != nil {
		return m.BroadcastTxFunc(ctx, in, opts...)
	}
	panic("TxServiceClientMock.BroadcastTx unimplemented")
}

// WithBroadcastResult makes BroadcastTx return response and err.
func (m *TxServiceClientMock) WithBroadcastResult(response *sdk.TxResponse, err error) {
	m.BroadcastTxFunc = func(ctx context.Context, in *txtypes.BroadcastTxRequest, opts ...grpc.CallOption) (*txtypes.BroadcastTxResponse, error) {
		if err != nil {
			return nil, err
		}
		return &txtypes.BroadcastTxResponse{TxResponse: response}, nil
	}
}
