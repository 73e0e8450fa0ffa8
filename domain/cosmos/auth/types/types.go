// Package types provides the account query used to obtain the signer's account number and sequence.
package types

import (
	"context"
	"fmt"

	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	gogogrpc "github.com/cosmos/gogoproto/grpc"
)

// QueryClient is the client API for the auth module.
type QueryClient interface {
	// GetAccount retrieves account information for a given address.
	GetAccount(ctx context.Context, address string) (*authtypes.BaseAccount, error)
}

// NewQueryClient creates a new QueryClient over the gRPC connection.
func NewQueryClient(conn gogogrpc.ClientConn) QueryClient {
	return &queryClient{client: authtypes.NewQueryClient(conn)}
}

var _ QueryClient = &queryClient{}

type queryClient struct {
	client authtypes.QueryClient
}

// GetAccount retrieves account information for a given address.
func (c *queryClient) GetAccount(ctx context.Context, address string) (*authtypes.BaseAccount, error) {
	response, err := c.client.AccountInfo(ctx, &authtypes.QueryAccountInfoRequest{Address: address})
	if err != nil {
		return nil, err
	}
	if response.Info == nil {
		return nil, fmt.Errorf("account %s not found", address)
	}
	return response.Info, nil
}
