package mocks

import (
	"context"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"google.golang.org/grpc"
)

var _ wasmtypes.QueryClient = (*WasmQueryClientMock)(nil)

// WasmQueryClientMock mocks the wasm module query client.
// Only smart queries and contract enumeration are supported; any other method panics.
type WasmQueryClientMock struct {
	wasmtypes.QueryClient

	SmartContractStateCb func(ctx context.Context, in *wasmtypes.QuerySmartContractStateRequest, opts ...grpc.CallOption) (*wasmtypes.QuerySmartContractStateResponse, error)
	ContractsByCodeCb    func(ctx context.Context, in *wasmtypes.QueryContractsByCodeRequest, opts ...grpc.CallOption) (*wasmtypes.QueryContractsByCodeResponse, error)
}

func (m *WasmQueryClientMock) SmartContractState(ctx context.Context, in *wasmtypes.QuerySmartContractStateRequest, opts ...grpc.CallOption) (*wasmtypes.QuerySmartContractStateResponse, error) {
	if m.SmartContractStateCb != nil {
		return m.SmartContractStateCb(ctx, in, opts...)
	}
	panic("WasmQueryClientMock.SmartContractState unimplemented")
}

// WithSmartContractState responds to every smart query with data.
func (m *WasmQueryClientMock) WithSmartContractState(data string, err error) {
	m.SmartContractStateCb = func(ctx context.Context, in *wasmtypes.QuerySmartContractStateRequest, opts ...grpc.CallOption) (*wasmtypes.QuerySmartContractStateResponse, error) {
		if err != nil {
			return nil, err
		}
		return &wasmtypes.QuerySmartContractStateResponse{Data: []byte(data)}, nil
	}
}

func (m *WasmQueryClientMock) ContractsByCode(ctx context.Context, in *wasmtypes.QueryContractsByCodeRequest, opts ...grpc.CallOption) (*wasmtypes.QueryContractsByCodeResponse, error) {
	if m.ContractsByCodeCb != nil {
		return m.ContractsByCodeCb(ctx, in, opts...)
	}
	panic("WasmQueryClientMock.ContractsByCode unimplemented")
}
