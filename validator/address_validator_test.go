package validator_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/stretchr/testify/require"

	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/validator"
)

func mustBech32(t *testing.T, prefix string, length int) string {
	address, err := bech32.ConvertAndEncode(prefix, make([]byte, length))
	require.NoError(t, err)
	return address
}

func mustBase58(t *testing.T, pubKeyHashAddrID byte) string {
	address, err := btcutil.NewAddressPubKeyHash(make([]byte, 20), &chaincfg.Params{PubKeyHashAddrID: pubKeyHashAddrID})
	require.NoError(t, err)
	return address.EncodeAddress()
}

func TestAddressValidator_ValidateAddress(t *testing.T) {
	var (
		thorAccount  = mustBech32(t, "thor", 20)
		thorContract = mustBech32(t, "thor", 32)
		cosmosAddr   = mustBech32(t, "cosmos", 20)
		litecoinAddr = mustBase58(t, 0x30)
		dogeAddr     = mustBase58(t, 0x1e)
	)

	tests := []struct {
		name    string
		asset   string
		address string
		wantErr bool
	}{
		{name: "thor account", asset: "THOR.RUNE", address: thorAccount},
		{name: "thor contract", asset: "THOR.RUJI", address: thorContract},
		{name: "thor with cosmos prefix", asset: "THOR.RUNE", address: cosmosAddr, wantErr: true},
		{name: "secured asset settles on thorchain", asset: "BTC-BTC", address: thorAccount},
		{name: "secured asset rejects l1 address", asset: "BTC-BTC", address: "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", wantErr: true},
		{name: "trade asset settles on thorchain", asset: "ETH~ETH", address: thorAccount},
		{name: "btc legacy", asset: "BTC.BTC", address: "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"},
		{name: "btc segwit", asset: "BTC.BTC", address: "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq"},
		{name: "btc bad checksum", asset: "BTC.BTC", address: "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNb", wantErr: true},
		{name: "btc given litecoin address", asset: "BTC.BTC", address: litecoinAddr, wantErr: true},
		{name: "litecoin legacy", asset: "LTC.LTC", address: litecoinAddr},
		{name: "dogecoin", asset: "DOGE.DOGE", address: dogeAddr},
		{name: "bch cashaddr", asset: "BCH.BCH", address: "bitcoincash:qpm2qsznhks23z7629mms6s4cwef74vcwvy22gdx6a"},
		{name: "bch legacy", asset: "BCH.BCH", address: "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"},
		{name: "bch garbage", asset: "BCH.BCH", address: "bitcoincash:notanaddress", wantErr: true},
		{name: "eth", asset: "ETH.USDC-0XA0B86991C6218B36C1D19D4A2E9EB0CE3606EB48", address: "0x52908400098527886E0F7030069857D2E4169EE7"},
		{name: "eth bad hex", asset: "ETH.ETH", address: "0x5290840009852788", wantErr: true},
		{name: "gaia", asset: "GAIA.ATOM", address: cosmosAddr},
		{name: "unknown chain accepts anything", asset: "XRD.XRD", address: "account_rdx1"},
		{name: "empty address", asset: "XRD.XRD", address: " ", wantErr: true},
	}

	v := validator.NewAddressValidator()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateAddress(tc.asset, tc.address)
			if tc.wantErr {
				require.Error(t, err)
				require.Equal(t, domain.ErrKindInvalidAddress, domain.KindOf(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestChainOf(t *testing.T) {
	tests := []struct {
		asset               string
		expectedChain       string
		expectedOnTHORChain bool
	}{
		{asset: "BTC.BTC", expectedChain: "BTC"},
		{asset: "eth.usdc-0xabc", expectedChain: "ETH"},
		{asset: "BTC-BTC", expectedChain: "BTC", expectedOnTHORChain: true},
		{asset: "BTC~BTC", expectedChain: "BTC", expectedOnTHORChain: true},
		{asset: "BTC/BTC", expectedChain: "BTC", expectedOnTHORChain: true},
		{asset: "rune", expectedChain: "RUNE"},
	}

	for _, tc := range tests {
		t.Run(tc.asset, func(t *testing.T) {
			chain, onTHORChain := validator.ChainOf(tc.asset)
			require.Equal(t, tc.expectedChain, chain)
			require.Equal(t, tc.expectedOnTHORChain, onTHORChain)
		})
	}
}
