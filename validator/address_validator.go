package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rujira-labs/finsdk/domain"
)

var (
	litecoinMainNetParams = chaincfg.Params{
		Name:             "litecoin",
		Net:              wire.BitcoinNet(0xdbb6c0fb),
		Bech32HRPSegwit:  "ltc",
		PubKeyHashAddrID: 0x30,
		ScriptHashAddrID: 0x32,
	}

	dogecoinMainNetParams = chaincfg.Params{
		Name:             "dogecoin",
		Net:              wire.BitcoinNet(0xc0c0c0c0),
		PubKeyHashAddrID: 0x1e,
		ScriptHashAddrID: 0x16,
	}
)

func init() {
	// Segwit prefixes are looked up through the chaincfg registry.
	if err := chaincfg.Register(&litecoinMainNetParams); err != nil && !errors.Is(err, chaincfg.ErrDuplicateNet) {
		panic(err)
	}
}

const (
	chainTHOR = "THOR"
	chainBTC  = "BTC"
	chainLTC  = "LTC"
	chainBCH  = "BCH"
	chainDOGE = "DOGE"
	chainGAIA = "GAIA"

	cashAddrPrefix  = "bitcoincash:"
	cashAddrCharset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
	cashAddrLength  = 42
)

var evmChains = map[string]struct{}{
	"ETH":  {},
	"BSC":  {},
	"AVAX": {},
	"BASE": {},
}

// thorchainPrefixes are the bech32 human readable parts of mainnet, stagenet and testnet.
var thorchainPrefixes = map[string]struct{}{
	"thor":  {},
	"sthor": {},
	"tthor": {},
}

// AddressValidator validates addresses by the chain of an asset identifier.
// Chains it does not know accept any non-empty address.
type AddressValidator struct{}

var _ domain.AddressValidator = AddressValidator{}

// NewAddressValidator returns an address validator.
func NewAddressValidator() AddressValidator {
	return AddressValidator{}
}

// ValidateAddress implements domain.AddressValidator.
func (v AddressValidator) ValidateAddress(asset string, address string) error {
	if strings.TrimSpace(address) == "" {
		return domain.NewSDKError(domain.ErrKindInvalidAddress, "address must not be empty", nil)
	}

	chain, heldOnTHORChain := ChainOf(asset)
	if heldOnTHORChain {
		chain = chainTHOR
	}

	var err error
	switch chain {
	case chainTHOR:
		err = validateBech32(address, thorchainPrefixes)
	case chainGAIA:
		err = validateBech32(address, map[string]struct{}{"cosmos": {}})
	case chainBTC:
		err = validateUTXO(address, &chaincfg.MainNetParams)
	case chainLTC:
		err = validateUTXO(address, &litecoinMainNetParams)
	case chainDOGE:
		err = validateUTXO(address, &dogecoinMainNetParams)
	case chainBCH:
		err = validateBitcoinCash(address)
	default:
		if _, ok := evmChains[chain]; ok && !common.IsHexAddress(address) {
			err = fmt.Errorf("not a hex address")
		}
	}
	if err != nil {
		return domain.NewSDKError(domain.ErrKindInvalidAddress, fmt.Sprintf("invalid %s address %q", chain, address), err)
	}
	return nil
}

// ChainOf returns the chain of a CHAIN.SYMBOL[-CONTRACT] asset identifier.
// The boolean is true when the asset notation denotes an asset held on THORChain
// (secured CHAIN-SYMBOL, trade CHAIN~SYMBOL or synthetic CHAIN/SYMBOL).
func ChainOf(asset string) (string, bool) {
	idx := strings.IndexAny(asset, ".-~/")
	if idx < 0 {
		return strings.ToUpper(asset), false
	}
	return strings.ToUpper(asset[:idx]), asset[idx] != '.'
}

func validateBech32(address string, prefixes map[string]struct{}) error {
	hrp, data, err := bech32.DecodeAndConvert(address)
	if err != nil {
		return err
	}
	if _, ok := prefixes[hrp]; !ok {
		return fmt.Errorf("unexpected prefix %q", hrp)
	}
	// Accounts are 20 bytes, contracts 32.
	if len(data) != 20 && len(data) != 32 {
		return fmt.Errorf("unexpected address length %d", len(data))
	}
	return nil
}

func validateUTXO(address string, params *chaincfg.Params) error {
	decoded, err := btcutil.DecodeAddress(address, params)
	if err != nil {
		return err
	}
	if !decoded.IsForNet(params) {
		return fmt.Errorf("address is not for %s", params.Name)
	}
	return nil
}

// validateBitcoinCash accepts legacy base58 addresses and cashaddr payloads.
func validateBitcoinCash(address string) error {
	if validateUTXO(address, &chaincfg.MainNetParams) == nil {
		return nil
	}

	payload := strings.TrimPrefix(strings.ToLower(address), cashAddrPrefix)
	if len(payload) != cashAddrLength || (payload[0] != 'q' && payload[0] != 'p') {
		return errors.New("not a cashaddr")
	}
	for _, c := range payload {
		if !strings.ContainsRune(cashAddrCharset, c) {
			return fmt.Errorf("invalid cashaddr character %q", c)
		}
	}
	return nil
}
