package mocks

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/rujira-labs/finsdk/domain"
)

var _ domain.TxBroadcaster = (*TxBroadcasterMock)(nil)

// TxBroadcasterMock is a mock struct that implements domain.TxBroadcaster.
type TxBroadcasterMock struct {
	SenderAddressCb func(ctx context.Context) (string, error)
	BroadcastMsgsCb func(ctx context.Context, msgs []sdk.Msg, memo string) (string, error)
}

func (m *TxBroadcasterMock) SenderAddress(ctx context.Context) (string, error) {
	if m.SenderAddressCb != nil {
		return m.SenderAddressCb(ctx)
	}
	panic("TxBroadcasterMock.SenderAddress unimplemented")
}

func (m *TxBroadcasterMock) WithSenderAddress(address string) {
	m.SenderAddressCb = func(ctx context.Context) (string, error) {
		return address, nil
	}
}

func (m *TxBroadcasterMock) BroadcastMsgs(ctx context.Context, msgs []sdk.Msg, memo string) (string, error) {
	if m.BroadcastMsgsCb != nil {
		return m.BroadcastMsgsCb(ctx, msgs, memo)
	}
	panic("TxBroadcasterMock.BroadcastMsgs unimplemented")
}
