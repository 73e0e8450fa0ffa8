package mocks

import (
	"context"

	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	finauthtypes "github.com/rujira-labs/finsdk/domain/cosmos/auth/types"
)

var _ finauthtypes.QueryClient = (*AuthQueryClientMock)(nil)

// AuthQueryClientMock mocks account lookups for the transaction broadcaster.
type AuthQueryClientMock struct {
	GetAccountFunc func(ctx context.Context, address string) (*authtypes.BaseAccount, error)
}

func (m *AuthQueryClientMock) GetAccount(ctx context.Context, address string) (*authtypes.BaseAccount, error) {
	if m.GetAccountFunc != nil {
		return m.GetAccountFunc(ctx, address)
	}
	panic("AuthQueryClientMock.GetAccount unimplemented")
}

// WithAccount makes every lookup return account and err.
func (m *AuthQueryClientMock) WithAccount(account *authtypes.BaseAccount, err error) {
	m.GetAccountFunc = func(ctx context.Context, address string) (*authtypes.BaseAccount, error) {
		return account, err
	}
}
