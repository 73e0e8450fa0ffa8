// Package cosmwasmdomain wraps the wasm module queries used against FIN contracts.
package cosmwasmdomain

import (
	"context"
	"fmt"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/rujira-labs/finsdk/domain/json"
)

// QuerySmart runs a JSON smart query against contractAddress and decodes the result into response.
// Errors from the node are returned unwrapped so that their gRPC status is preserved.
func QuerySmart(ctx context.Context, wasmClient wasmtypes.QueryClient, contractAddress string, request, response any) error {
	queryData, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to encode query for %s: %w", contractAddress, err)
	}

	result, err := wasmClient.SmartContractState(ctx, &wasmtypes.QuerySmartContractStateRequest{
		Address:   contractAddress,
		QueryData: queryData,
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(result.Data, response); err != nil {
		return fmt.Errorf("failed to decode response of %s: %w", contractAddress, err)
	}
	return nil
}

// ListContractsByCode returns every contract instance of codeID, following pagination.
func ListContractsByCode(ctx context.Context, wasmClient wasmtypes.QueryClient, codeID uint64, pageLimit uint64) ([]string, error) {
	var (
		contracts []string
		nextKey   []byte
	)

	for {
		response, err := wasmClient.ContractsByCode(ctx, &wasmtypes.QueryContractsByCodeRequest{
			CodeId: codeID,
			Pagination: &query.PageRequest{
				Key:   nextKey,
				Limit: pageLimit,
			},
		})
		if err != nil {
			return nil, err
		}

		contracts = append(contracts, response.Contracts...)

		if response.Pagination == nil || len(response.Pagination.NextKey) == 0 {
			return contracts, nil
		}
		nextKey = response.Pagination.NextKey
	}
}
