package tx

import (
	txclient "github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	gogogrpc "github.com/cosmos/gogoproto/grpc"
)

// GasCalculator estimates the gas of a transaction before it is signed.
type GasCalculator interface {
	// CalculateGas returns the simulation result and the gas used scaled by the factory gas adjustment.
	CalculateGas(txf txclient.Factory, msgs ...sdk.Msg) (*txtypes.SimulateResponse, uint64, error)
}

// GasCalculatorFunc adapts a function to GasCalculator.
type GasCalculatorFunc func(txf txclient.Factory, msgs ...sdk.Msg) (*txtypes.SimulateResponse, uint64, error)

// CalculateGas implements GasCalculator.
func (f GasCalculatorFunc) CalculateGas(txf txclient.Factory, msgs ...sdk.Msg) (*txtypes.SimulateResponse, uint64, error) {
	return f(txf, msgs...)
}

// NewGasCalculator returns a GasCalculator that simulates transactions against the node behind conn.
func NewGasCalculator(conn gogogrpc.ClientConn) GasCalculator {
	return GasCalculatorFunc(func(txf txclient.Factory, msgs ...sdk.Msg) (*txtypes.SimulateResponse, uint64, error) {
		return txclient.CalculateGas(conn, txf, msgs...)
	})
}
