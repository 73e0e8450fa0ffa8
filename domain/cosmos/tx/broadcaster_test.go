package tx_test

import (
	"context"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/rujira-labs/finsdk/domain"
	fintx "github.com/rujira-labs/finsdk/domain/cosmos/tx"
	"github.com/rujira-labs/finsdk/domain/keyring"
	"github.com/rujira-labs/finsdk/domain/mocks"
	"github.com/rujira-labs/finsdk/log"
)

func newTestBroadcaster(t *testing.T, accountClient *mocks.AuthQueryClientMock, txClient *mocks.TxServiceClientMock) (*fintx.Broadcaster, string) {
	t.Helper()

	kr := keyring.FromPrivKey(mustPrivKey(testPrivKeyHex))

	gasCalculator := mocks.GasCalculatorMock{}
	gasCalculator.WithGasEstimate(200000, nil)

	broadcaster, err := fintx.NewBroadcasterWithClients(
		kr,
		accountClient,
		&gasCalculator,
		txClient,
		encodingConfig,
		"thorchain-1",
		domain.SignerConfig{
			Bech32Prefix:  "thor",
			FeeDenom:      "rune",
			GasPrice:      "0.02",
			GasAdjustment: 1.5,
		},
		&log.NoOpLogger{},
	)
	require.NoError(t, err)

	sender, err := broadcaster.SenderAddress(context.Background())
	require.NoError(t, err)

	return broadcaster, sender
}

func TestBroadcaster_BroadcastMsgs(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		accountClient := mocks.AuthQueryClientMock{}
		accountClient.WithAccount(&authtypes.BaseAccount{AccountNumber: 12, Sequence: 4}, nil)

		var broadcastBytes []byte
		txClient := mocks.TxServiceClientMock{
			BroadcastTxFunc: func(ctx context.Context, in *txtypes.BroadcastTxRequest, opts ...grpc.CallOption) (*txtypes.BroadcastTxResponse, error) {
				broadcastBytes = in.TxBytes
				require.Equal(t, txtypes.BroadcastMode_BROADCAST_MODE_SYNC, in.Mode)
				return &txtypes.BroadcastTxResponse{TxResponse: &sdk.TxResponse{TxHash: "ABCDEF"}}, nil
			},
		}

		broadcaster, sender := newTestBroadcaster(t, &accountClient, &txClient)
		require.Contains(t, sender, "thor1")

		txHash, err := broadcaster.BroadcastMsgs(context.Background(), []sdk.Msg{newMsg(sender, sender, `{}`)}, "memo")
		require.NoError(t, err)
		require.Equal(t, "ABCDEF", txHash)

		decoded, err := encodingConfig.TxConfig.TxDecoder()(broadcastBytes)
		require.NoError(t, err)
		require.Len(t, decoded.GetMsgs(), 1)
	})

	t.Run("rejected in check tx", func(t *testing.T) {
		accountClient := mocks.AuthQueryClientMock{}
		accountClient.WithAccount(&authtypes.BaseAccount{AccountNumber: 12, Sequence: 4}, nil)

		txClient := mocks.TxServiceClientMock{}
		txClient.WithBroadcastResult(&sdk.TxResponse{
			TxHash:    "FF",
			Codespace: "sdk",
			Code:      5,
			RawLog:    "insufficient funds",
		}, nil)

		broadcaster, sender := newTestBroadcaster(t, &accountClient, &txClient)

		_, err := broadcaster.BroadcastMsgs(context.Background(), []sdk.Msg{newMsg(sender, sender, `{}`)}, "")

		var broadcastErr fintx.BroadcastError
		require.ErrorAs(t, err, &broadcastErr)
		require.Equal(t, uint32(5), broadcastErr.Code)
		require.Equal(t, "insufficient funds", broadcastErr.RawLog)
	})

	t.Run("account lookup fails", func(t *testing.T) {
		accountClient := mocks.AuthQueryClientMock{}
		accountClient.WithAccount(nil, assert.AnError)

		broadcaster, sender := newTestBroadcaster(t, &accountClient, &mocks.TxServiceClientMock{})

		_, err := broadcaster.BroadcastMsgs(context.Background(), []sdk.Msg{newMsg(sender, sender, `{}`)}, "")
		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestNewBroadcasterWithClients_InvalidGasPrice(t *testing.T) {
	_, err := fintx.NewBroadcasterWithClients(
		keyring.FromPrivKey(mustPrivKey(testPrivKeyHex)),
		&mocks.AuthQueryClientMock{},
		&mocks.GasCalculatorMock{},
		&mocks.TxServiceClientMock{},
		encodingConfig,
		"thorchain-1",
		domain.SignerConfig{Bech32Prefix: "thor", FeeDenom: "rune", GasPrice: "abc", GasAdjustment: 1.5},
		&log.NoOpLogger{},
	)
	require.Error(t, err)
}
