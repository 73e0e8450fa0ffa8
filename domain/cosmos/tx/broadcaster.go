package tx

import (
	"context"
	"fmt"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	gogogrpc "github.com/cosmos/gogoproto/grpc"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/rujira-labs/finsdk/domain"
	authtypes "github.com/rujira-labs/finsdk/domain/cosmos/auth/types"
	"github.com/rujira-labs/finsdk/domain/keyring"
	"github.com/rujira-labs/finsdk/log"
)

// BroadcastError is returned when the node rejects a transaction in CheckTx.
type BroadcastError struct {
	TxHash    string
	Codespace string
	Code      uint32
	RawLog    string
}

// Error implements the error interface.
func (e BroadcastError) Error() string {
	return fmt.Sprintf("tx %s rejected with code %d (%s): %s", e.TxHash, e.Code, e.Codespace, e.RawLog)
}

// Broadcaster signs transactions with a local key and broadcasts them over gRPC.
// Broadcasts are serialized so that account sequences are consumed in order.
type Broadcaster struct {
	mu sync.Mutex

	keyring        keyring.Keyring
	accountClient  authtypes.QueryClient
	gasCalculator  GasCalculator
	txClient       txtypes.ServiceClient
	encodingConfig EncodingConfig

	chainID      string
	bech32Prefix string
	fee          FeeConfig

	logger log.Logger
}

var _ domain.TxBroadcaster = &Broadcaster{}

// NewBroadcaster creates a broadcaster over the gRPC connection.
func NewBroadcaster(conn gogogrpc.ClientConn, kr keyring.Keyring, chainID string, signerConfig domain.SignerConfig, logger log.Logger) (*Broadcaster, error) {
	encodingConfig, err := NewEncodingConfig(signerConfig.Bech32Prefix)
	if err != nil {
		return nil, err
	}

	return NewBroadcasterWithClients(
		kr,
		authtypes.NewQueryClient(conn),
		NewGasCalculator(conn),
		txtypes.NewServiceClient(conn),
		encodingConfig,
		chainID,
		signerConfig,
		logger,
	)
}

// NewBroadcasterWithClients creates a broadcaster over explicit clients.
func NewBroadcasterWithClients(
	kr keyring.Keyring,
	accountClient authtypes.QueryClient,
	gasCalculator GasCalculator,
	txClient txtypes.ServiceClient,
	encodingConfig EncodingConfig,
	chainID string,
	signerConfig domain.SignerConfig,
	logger log.Logger,
) (*Broadcaster, error) {
	gasPrice, err := osmomath.NewDecFromStr(signerConfig.GasPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid gas price %q: %w", signerConfig.GasPrice, err)
	}

	return &Broadcaster{
		keyring:        kr,
		accountClient:  accountClient,
		gasCalculator:  gasCalculator,
		txClient:       txClient,
		encodingConfig: encodingConfig,
		chainID:        chainID,
		bech32Prefix:   signerConfig.Bech32Prefix,
		fee: FeeConfig{
			Denom:         signerConfig.FeeDenom,
			GasPrice:      gasPrice,
			GasAdjustment: signerConfig.GasAdjustment,
		},
		logger: logger,
	}, nil
}

// SenderAddress implements domain.TxBroadcaster.
func (b *Broadcaster) SenderAddress(ctx context.Context) (string, error) {
	return bech32.ConvertAndEncode(b.bech32Prefix, b.keyring.GetAddress())
}

// BroadcastMsgs implements domain.TxBroadcaster.
func (b *Broadcaster) BroadcastMsgs(ctx context.Context, msgs []sdk.Msg, memo string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sender, err := b.SenderAddress(ctx)
	if err != nil {
		return "", err
	}

	baseAccount, err := b.accountClient.GetAccount(ctx, sender)
	if err != nil {
		return "", fmt.Errorf("get account %s: %w", sender, err)
	}

	account := Account{
		Sequence:      baseAccount.Sequence,
		AccountNumber: baseAccount.AccountNumber,
	}

	txBuilder, err := BuildTx(ctx, b.keyring, b.gasCalculator, b.encodingConfig, account, b.chainID, b.fee, memo, msgs...)
	if err != nil {
		return "", err
	}

	txBytes, err := b.encodingConfig.TxConfig.TxEncoder()(txBuilder.GetTx())
	if err != nil {
		return "", err
	}

	response, err := SendTx(ctx, b.txClient, txBytes)
	if err != nil {
		return "", err
	}

	if response.Code != 0 {
		return "", BroadcastError{
			TxHash:    response.TxHash,
			Codespace: response.Codespace,
			Code:      response.Code,
			RawLog:    response.RawLog,
		}
	}

	b.logger.Info("broadcasted tx",
		zap.String("tx_hash", response.TxHash),
		zap.String("sender", sender),
		zap.Uint64("sequence", account.Sequence),
		zap.Int("msgs", len(msgs)),
	)

	return response.TxHash, nil
}
