package mocks

import (
	txclient "github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"

	fintx "github.com/rujira-labs/finsdk/domain/cosmos/tx"
)

var _ fintx.GasCalculator = (*GasCalculatorMock)(nil)

// GasCalculatorMock returns a fixed gas estimate unless CalculateGasFunc is set.
type GasCalculatorMock struct {
	CalculateGasFunc func(txf txclient.Factory, msgs ...sdk.Msg) (*txtypes.SimulateResponse, uint64, error)
}

func (m *GasCalculatorMock) CalculateGas(txf txclient.Factory, msgs ...sdk.Msg) (*txtypes.SimulateResponse, uint64, error) {
	if m.CalculateGasFunc != nil {
		return m.CalculateGasFunc(txf, msgs...)
	}
	panic("GasCalculatorMock.CalculateGas unimplemented")
}

// WithGasEstimate makes every estimate return gas, or err when it is non-nil.
func (m *GasCalculatorMock) WithGasEstimate(gas uint64, err error) {
	m.CalculateGasFunc = func(txf txclient.Factory, msgs ...sdk.Msg) (*txtypes.SimulateResponse, uint64, error) {
		if err != nil {
			return nil, 0, err
		}
		return &txtypes.SimulateResponse{GasInfo: &sdk.GasInfo{GasUsed: gas}}, gas, nil
	}
}
