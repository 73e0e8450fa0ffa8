package chain

import (
	"context"
	"errors"
	"fmt"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/osmosis-labs/osmosis/osmomath"
	"google.golang.org/grpc"

	"github.com/rujira-labs/finsdk/domain"
	cosmwasmdomain "github.com/rujira-labs/finsdk/domain/cosmwasm"
	"github.com/rujira-labs/finsdk/domain/json"
)

const (
	// contractsPageLimit is the page size used when enumerating contracts by code.
	contractsPageLimit = 100
)

// ErrReadOnly is returned when executing a contract on a client built without a broadcaster.
var ErrReadOnly = errors.New("chain client has no transaction broadcaster")

// StatusClient is the part of the CometBFT RPC client used for node health.
type StatusClient interface {
	Status(ctx context.Context) (*coretypes.ResultStatus, error)
}

type chainClient struct {
	wasmClient   wasmtypes.QueryClient
	bankClient   banktypes.QueryClient
	statusClient StatusClient
	broadcaster  domain.TxBroadcaster
}

var _ domain.ChainClient = &chainClient{}

// NewStatusClient returns a CometBFT RPC client for the node at rpcEndpoint.
func NewStatusClient(rpcEndpoint string) (StatusClient, error) {
	rpcClient, err := client.NewClientFromNode(rpcEndpoint)
	if err != nil {
		return nil, err
	}
	return rpcClient, nil
}

// NewClient returns a chain client over the given gRPC connection.
// statusClient and broadcaster are optional: without a status client the latest height is unavailable,
// without a broadcaster the client is read-only.
func NewClient(grpcConn grpc.ClientConnInterface, statusClient StatusClient, broadcaster domain.TxBroadcaster) domain.ChainClient {
	return NewClientFromQueryClients(wasmtypes.NewQueryClient(grpcConn), banktypes.NewQueryClient(grpcConn), statusClient, broadcaster)
}

// NewClientFromQueryClients returns a chain client over the given module query clients.
func NewClientFromQueryClients(wasmClient wasmtypes.QueryClient, bankClient banktypes.QueryClient, statusClient StatusClient, broadcaster domain.TxBroadcaster) domain.ChainClient {
	return &chainClient{
		wasmClient:   wasmClient,
		bankClient:   bankClient,
		statusClient: statusClient,
		broadcaster:  broadcaster,
	}
}

// SimulateSwap implements domain.ChainClient.
func (c *chainClient) SimulateSwap(ctx context.Context, contractAddress string, denom string, amount osmomath.Int) (domain.SimulationResult, error) {
	request := simulateRequest{
		Simulate: simulateCoin{
			Denom:  denom,
			Amount: amount,
		},
	}

	var response simulateResponse
	if err := cosmwasmdomain.QuerySmart(ctx, c.wasmClient, contractAddress, request, &response); err != nil {
		return domain.SimulationResult{}, fmt.Errorf("simulate %s %s on %s: %w", amount, denom, contractAddress, err)
	}

	if response.Returned.IsNil() {
		response.Returned = osmomath.ZeroInt()
	}
	if response.Fee.IsNil() {
		response.Fee = osmomath.ZeroInt()
	}

	return domain.SimulationResult{
		Returned: response.Returned,
		Fee:      response.Fee,
	}, nil
}

// GetOrderBook implements domain.ChainClient.
func (c *chainClient) GetOrderBook(ctx context.Context, contractAddress string, limit int) (domain.OrderBook, error) {
	var response bookResponse
	if err := cosmwasmdomain.QuerySmart(ctx, c.wasmClient, contractAddress, bookRequest{Book: bookLimit{Limit: limit}}, &response); err != nil {
		return domain.OrderBook{}, fmt.Errorf("book of %s: %w", contractAddress, err)
	}

	return domain.OrderBook{
		Bids: toLevels(response.Quote),
		Asks: toLevels(response.Base),
	}, nil
}

func toLevels(items []bookItem) []domain.OrderBookLevel {
	levels := make([]domain.OrderBookLevel, 0, len(items))
	for _, item := range items {
		levels = append(levels, domain.OrderBookLevel{
			Price: item.Price,
			Total: item.Total,
		})
	}
	return levels
}

// QueryContract implements domain.ChainClient.
func (c *chainClient) QueryContract(ctx context.Context, contractAddress string, query any, response any) error {
	return cosmwasmdomain.QuerySmart(ctx, c.wasmClient, contractAddress, query, response)
}

// ListContractsByCode implements domain.ChainClient.
func (c *chainClient) ListContractsByCode(ctx context.Context, codeID uint64) ([]string, error) {
	return cosmwasmdomain.ListContractsByCode(ctx, c.wasmClient, codeID, contractsPageLimit)
}

// GetBalance implements domain.ChainClient.
func (c *chainClient) GetBalance(ctx context.Context, address string, denom string) (osmomath.Int, error) {
	response, err := c.bankClient.Balance(ctx, &banktypes.QueryBalanceRequest{
		Address: address,
		Denom:   denom,
	})
	if err != nil {
		return osmomath.Int{}, fmt.Errorf("balance of %s for %s: %w", denom, address, err)
	}

	if response.Balance == nil || response.Balance.Amount.IsNil() {
		return osmomath.ZeroInt(), nil
	}
	return response.Balance.Amount, nil
}

// GetLatestHeight implements domain.ChainClient.
func (c *chainClient) GetLatestHeight(ctx context.Context) (uint64, error) {
	if c.statusClient == nil {
		return 0, errors.New("chain client has no rpc endpoint")
	}

	statusResult, err := c.statusClient.Status(ctx)
	if err != nil {
		return 0, err
	}

	return uint64(statusResult.SyncInfo.LatestBlockHeight), nil
}

// ExecuteContract implements domain.ChainClient.
func (c *chainClient) ExecuteContract(ctx context.Context, sender string, contractAddress string, msg []byte, funds sdk.Coins, memo string) (string, error) {
	if c.broadcaster == nil {
		return "", ErrReadOnly
	}
	if !json.Valid(msg) {
		return "", fmt.Errorf("execute msg for %s is not valid JSON", contractAddress)
	}

	executeMsg := &wasmtypes.MsgExecuteContract{
		Sender:   sender,
		Contract: contractAddress,
		Msg:      msg,
		Funds:    funds,
	}

	return c.broadcaster.BroadcastMsgs(ctx, []sdk.Msg{executeMsg}, memo)
}
