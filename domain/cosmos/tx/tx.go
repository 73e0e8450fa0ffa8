package tx

import (
	"context"
	"fmt"

	"github.com/cosmos/cosmos-sdk/client"
	txclient "github.com/cosmos/cosmos-sdk/client/tx"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/rujira-labs/finsdk/domain/keyring"
)

// Account is the signer state needed to build a transaction.
type Account struct {
	Sequence      uint64
	AccountNumber uint64
}

// FeeConfig determines the fee attached to a transaction.
type FeeConfig struct {
	Denom         string
	GasPrice      osmomath.Dec
	GasAdjustment float64
}

// SimulateMsgs simulates msgs and returns the simulation response together with the adjusted gas.
func SimulateMsgs(
	gasCalculator GasCalculator,
	encodingConfig EncodingConfig,
	account Account,
	chainID string,
	gasAdjustment float64,
	memo string,
	msgs []sdk.Msg,
) (*txtypes.SimulateResponse, uint64, error) {
	txFactory := txclient.Factory{}.
		WithTxConfig(encodingConfig.TxConfig).
		WithAccountNumber(account.AccountNumber).
		WithSequence(account.Sequence).
		WithChainID(chainID).
		WithGasAdjustment(gasAdjustment).
		WithMemo(memo)

	return gasCalculator.CalculateGas(txFactory, msgs...)
}

// BuildTx builds and signs a transaction carrying msgs with the key held by keyring.
func BuildTx(
	ctx context.Context,
	keyring keyring.Keyring,
	gasCalculator GasCalculator,
	encodingConfig EncodingConfig,
	account Account,
	chainID string,
	fee FeeConfig,
	memo string,
	msgs ...sdk.Msg,
) (client.TxBuilder, error) {
	key := keyring.GetKey()
	privKey := &secp256k1.PrivKey{Key: key.Bytes()}

	txBuilder := encodingConfig.TxConfig.NewTxBuilder()

	if err := txBuilder.SetMsgs(msgs...); err != nil {
		return nil, err
	}
	txBuilder.SetMemo(memo)

	_, gas, err := SimulateMsgs(gasCalculator, encodingConfig, account, chainID, fee.GasAdjustment, memo, msgs)
	if err != nil {
		return nil, fmt.Errorf("simulate tx: %w", err)
	}
	txBuilder.SetGasLimit(gas)
	txBuilder.SetFeeAmount(sdk.NewCoins(sdk.NewCoin(fee.Denom, CalculateFeeAmount(fee.GasPrice, gas))))

	// Signing in direct mode requires the signer infos to be set before the sign bytes are computed.
	if err := txBuilder.SetSignatures(BuildSignatures(privKey.PubKey(), nil, account.Sequence)); err != nil {
		return nil, err
	}

	signed, err := txclient.SignWithPrivKey(
		ctx,
		signingtypes.SignMode_SIGN_MODE_DIRECT,
		BuildSignerData(chainID, account.AccountNumber, account.Sequence),
		txBuilder,
		privKey,
		encodingConfig.TxConfig,
		account.Sequence,
	)
	if err != nil {
		return nil, err
	}

	if err := txBuilder.SetSignatures(signed); err != nil {
		return nil, err
	}

	return txBuilder, nil
}

// SendTx broadcasts a transaction to the chain in sync mode, returning the result and error.
func SendTx(ctx context.Context, txClient txtypes.ServiceClient, txBytes []byte) (*sdk.TxResponse, error) {
	resp, err := txClient.BroadcastTx(
		ctx,
		&txtypes.BroadcastTxRequest{
			Mode:    txtypes.BroadcastMode_BROADCAST_MODE_SYNC,
			TxBytes: txBytes,
		},
	)
	if err != nil {
		return nil, err
	}

	return resp.TxResponse, nil
}

// BuildSignatures returns a direct mode signature for publicKey.
func BuildSignatures(publicKey cryptotypes.PubKey, signature []byte, sequence uint64) signingtypes.SignatureV2 {
	return signingtypes.SignatureV2{
		PubKey: publicKey,
		Data: &signingtypes.SingleSignatureData{
			SignMode:  signingtypes.SignMode_SIGN_MODE_DIRECT,
			Signature: signature,
		},
		Sequence: sequence,
	}
}

// BuildSignerData returns the signer data for an account on chainID.
func BuildSignerData(chainID string, accountNumber, sequence uint64) authsigning.SignerData {
	return authsigning.SignerData{
		ChainID:       chainID,
		AccountNumber: accountNumber,
		Sequence:      sequence,
	}
}

// CalculateFeeAmount calculates the fee based on gas and gas price, rounding up.
func CalculateFeeAmount(gasPrice osmomath.Dec, gas uint64) osmomath.Int {
	return gasPrice.MulInt64(int64(gas)).Ceil().TruncateInt()
}
