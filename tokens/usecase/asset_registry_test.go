package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/tokens/usecase"
)

func TestAssetRegistry_AssetToDenom(t *testing.T) {
	registry := usecase.NewAssetRegistry([]domain.DenomOverride{
		{Asset: "GAIA.ATOM", Denom: "ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2"},
	})

	tests := []struct {
		asset         string
		expectedDenom string
		expectErr     bool
	}{
		{asset: "THOR.RUNE", expectedDenom: "rune"},
		{asset: "thor.rune", expectedDenom: "rune"},
		{asset: "THOR.TCY", expectedDenom: "tcy"},
		{asset: "THOR.RUJI", expectedDenom: "x/ruji"},
		{asset: "BTC.BTC", expectedDenom: "btc-btc"},
		{asset: "BTC-BTC", expectedDenom: "btc-btc"},
		{asset: "ETH.USDC-0XA0B86991C6218B36C1D19D4A2E9EB0CE3606EB48", expectedDenom: "eth-usdc-0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"},
		{asset: "GAIA.ATOM", expectedDenom: "ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2"},
		{asset: "", expectErr: true},
		{asset: "BTC", expectErr: true},
		{asset: "BTC.", expectErr: true},
		{asset: "BTC~BTC", expectErr: true},
		{asset: "B$C.BTC", expectErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.asset, func(t *testing.T) {
			denom, err := registry.AssetToDenom(tc.asset)
			if tc.expectErr {
				require.Error(t, err)
				require.Equal(t, domain.ErrKindInvalidAsset, domain.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedDenom, denom)
		})
	}
}

func TestAssetRegistry_DenomToAsset(t *testing.T) {
	registry := usecase.NewAssetRegistry([]domain.DenomOverride{
		{Asset: "GAIA.ATOM", Denom: "ibc/ATOM"},
	})

	tests := []struct {
		denom         string
		expectedAsset string
		expectErr     bool
	}{
		{denom: "rune", expectedAsset: "THOR.RUNE"},
		{denom: "tcy", expectedAsset: "THOR.TCY"},
		{denom: "x/ruji", expectedAsset: "THOR.RUJI"},
		{denom: "btc-btc", expectedAsset: "BTC.BTC"},
		{denom: "eth-usdc-0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", expectedAsset: "ETH.USDC-0XA0B86991C6218B36C1D19D4A2E9EB0CE3606EB48"},
		{denom: "ibc/ATOM", expectedAsset: "GAIA.ATOM"},
		{denom: "uatom", expectErr: true},
		{denom: "x/", expectErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.denom, func(t *testing.T) {
			asset, err := registry.DenomToAsset(tc.denom)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedAsset, asset)
		})
	}
}

func TestAssetRegistry_RoundTrip(t *testing.T) {
	registry := usecase.NewAssetRegistry(nil)

	for _, asset := range []string{"THOR.RUNE", "THOR.RUJI", "BTC.BTC", "ETH.ETH", "AVAX.USDC-0XB97EF9EF8734C71904D8002F8B6BC66DD9C48A6E"} {
		denom, err := registry.AssetToDenom(asset)
		require.NoError(t, err)

		roundTripped, err := registry.DenomToAsset(denom)
		require.NoError(t, err)
		require.Equal(t, asset, roundTripped)
	}
}

func TestAssetRegistry_RegisterReplaces(t *testing.T) {
	registry := usecase.NewAssetRegistry(nil)

	registry.Register("THOR.RUJI", "x/ruji-v2")

	denom, err := registry.AssetToDenom("THOR.RUJI")
	require.NoError(t, err)
	require.Equal(t, "x/ruji-v2", denom)

	asset, err := registry.DenomToAsset("x/ruji-v2")
	require.NoError(t, err)
	require.Equal(t, "THOR.RUJI", asset)
}
