package mocks

import (
	"context"

	"github.com/rujira-labs/finsdk/domain"
)

var _ domain.PairStore = (*PairStoreMock)(nil)

// PairStoreMock is a mock struct that implements domain.PairStore.
type PairStoreMock struct {
	SaveCb func(ctx context.Context, pairs map[string]string) error
	LoadCb func(ctx context.Context) (map[string]string, error)
}

func (m *PairStoreMock) Save(ctx context.Context, pairs map[string]string) error {
	if m.SaveCb != nil {
		return m.SaveCb(ctx, pairs)
	}
	return nil
}

func (m *PairStoreMock) Load(ctx context.Context) (map[string]string, error) {
	if m.LoadCb != nil {
		return m.LoadCb(ctx)
	}
	return map[string]string{}, nil
}
