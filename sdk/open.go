package sdk

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/rujira-labs/finsdk/chain"
	deliverygrpc "github.com/rujira-labs/finsdk/delivery/grpc"
	boltrepo "github.com/rujira-labs/finsdk/discovery/repository/bolt"
	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/cosmos/tx"
	"github.com/rujira-labs/finsdk/domain/keyring"
	"github.com/rujira-labs/finsdk/log"
)

// OpenOptions select the optional parts Open wires.
type OpenOptions struct {
	// Keyring enables signing. Without it the SDK is read-only.
	Keyring keyring.Keyring
	Logger  log.Logger
}

// Open connects to the node endpoints of config and returns a ready SDK.
// The caller must Close it.
func Open(ctx context.Context, config domain.Config, opts OpenOptions) (_ *SDK, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = &log.NoOpLogger{}
	}

	var closers []io.Closer
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				_ = closers[i].Close()
			}
		}
	}()

	grpcClient, err := deliverygrpc.NewClient(config.ChainGRPCEndpoint, deliverygrpc.WithTLS(config.ChainGRPCTLS))
	if err != nil {
		return nil, err
	}
	closers = append(closers, grpcClient)

	var statusClient chain.StatusClient
	if config.ChainRPCEndpoint != "" {
		statusClient, err = chain.NewStatusClient(config.ChainRPCEndpoint)
		if err != nil {
			return nil, err
		}
	}

	var broadcaster domain.TxBroadcaster
	if opts.Keyring != nil && config.Signer != nil {
		txBroadcaster, err := tx.NewBroadcaster(grpcClient.ClientConn, opts.Keyring, config.ChainID, *config.Signer, logger)
		if err != nil {
			return nil, err
		}
		broadcaster = txBroadcaster

		sender, err := txBroadcaster.SenderAddress(ctx)
		if err != nil {
			return nil, err
		}
		logger.Info("signing enabled", zap.String("sender", sender))
	}

	var pairStore domain.PairStore
	if config.PairStorePath != "" {
		boltStore, err := boltrepo.NewPairStore(config.PairStorePath, nil)
		if err != nil {
			return nil, err
		}
		closers = append(closers, boltStore)
		pairStore = boltStore
	}

	s, err := New(ctx, config, Dependencies{
		ChainClient: chain.NewClient(grpcClient, statusClient, broadcaster),
		Broadcaster: broadcaster,
		PairStore:   pairStore,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	s.closers = closers

	return s, nil
}
