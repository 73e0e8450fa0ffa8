package domain

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// ChainClient is the subset of chain access the SDK consumes.
type ChainClient interface {
	// SimulateSwap simulates swapping amount of denom against the orderbook contract.
	SimulateSwap(ctx context.Context, contractAddress string, denom string, amount osmomath.Int) (SimulationResult, error)
	// GetOrderBook returns up to limit levels per side of the orderbook contract.
	GetOrderBook(ctx context.Context, contractAddress string, limit int) (OrderBook, error)
	// QueryContract runs a smart query against the contract and unmarshals the result into response.
	QueryContract(ctx context.Context, contractAddress string, query any, response any) error
	// ListContractsByCode returns all contract instances of the given code ID.
	ListContractsByCode(ctx context.Context, codeID uint64) ([]string, error)
	// GetBalance returns the balance of denom held by address.
	GetBalance(ctx context.Context, address string, denom string) (osmomath.Int, error)
	// GetLatestHeight returns the latest block height of the node.
	GetLatestHeight(ctx context.Context) (uint64, error)
	// ExecuteContract executes msg on the contract with funds attached and returns the tx hash.
	ExecuteContract(ctx context.Context, sender string, contractAddress string, msg []byte, funds sdk.Coins, memo string) (string, error)
}

// TxBroadcaster signs and broadcasts messages. It is the boundary to the signing vault.
type TxBroadcaster interface {
	// SenderAddress returns the address the broadcaster signs for.
	SenderAddress(ctx context.Context) (string, error)
	// BroadcastMsgs signs and broadcasts msgs, returning the tx hash.
	BroadcastMsgs(ctx context.Context, msgs []sdk.Msg, memo string) (string, error)
}

// IndexedDenoms are the settlement denoms of an indexed market.
type IndexedDenoms struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

// IndexedMarketConfig is the optional contract config echoed by the indexer.
type IndexedMarketConfig struct {
	Tick     string `json:"tick"`
	FeeTaker string `json:"fee_taker"`
	FeeMaker string `json:"fee_maker"`
}

// IndexedMarket is a market as returned by the indexed discovery API.
type IndexedMarket struct {
	Address string               `json:"address"`
	Denoms  IndexedDenoms        `json:"denoms"`
	Config  *IndexedMarketConfig `json:"config,omitempty"`
}

// IndexedMarkets is the response of the markets listing endpoint.
type IndexedMarkets struct {
	Markets []IndexedMarket `json:"markets"`
}

// IndexerClient is the indexed discovery API.
type IndexerClient interface {
	// GetMarkets lists all known markets.
	GetMarkets(ctx context.Context) (IndexedMarkets, error)
	// GetMarket returns the market for the denom pair. False if the indexer does not know it.
	GetMarket(ctx context.Context, baseDenom, quoteDenom string) (IndexedMarket, bool, error)
}

// PairStore persists the pair key to contract address table.
type PairStore interface {
	Save(ctx context.Context, pairs map[string]string) error
	Load(ctx context.Context) (map[string]string, error)
}

// AssetRegistry converts between canonical cross-chain asset identifiers and chain denoms.
type AssetRegistry interface {
	AssetToDenom(asset string) (string, error)
	DenomToAsset(denom string) (string, error)
}

// AddressValidator validates destination addresses for an asset's chain.
type AddressValidator interface {
	ValidateAddress(asset string, address string) error
}
