package usecase

import (
	"strings"
	"sync"

	"github.com/rujira-labs/finsdk/domain"
)

const (
	thorChain = "THOR"

	// Native THORChain module tokens are denominated under this prefix.
	nativeTokenDenomPrefix = "x/"

	l1Separator      = "."
	securedSeparator = "-"
)

// builtinDenoms are the native THORChain assets whose denoms do not follow the x/ rule.
var builtinDenoms = []domain.DenomOverride{
	{Asset: "THOR.RUNE", Denom: "rune"},
	{Asset: "THOR.TCY", Denom: "tcy"},
}

// AssetRegistry maps canonical CHAIN.SYMBOL[-CONTRACT] identifiers to chain denoms and back.
//
// Layer 1 assets trade on the orderbook as secured assets: BTC.BTC is settled as btc-btc and
// ETH.USDC-0XA0B8... as eth-usdc-0xa0b8.... Native THORChain tokens other than the builtins use
// x/<symbol>. Explicit overrides take precedence over every rule.
type AssetRegistry struct {
	mu           sync.RWMutex
	assetToDenom map[string]string
	denomToAsset map[string]string
}

var _ domain.AssetRegistry = &AssetRegistry{}

// NewAssetRegistry returns a registry with the builtin mappings and the given overrides.
func NewAssetRegistry(overrides []domain.DenomOverride) *AssetRegistry {
	r := &AssetRegistry{
		assetToDenom: make(map[string]string, len(builtinDenoms)+len(overrides)),
		denomToAsset: make(map[string]string, len(builtinDenoms)+len(overrides)),
	}
	for _, override := range builtinDenoms {
		r.Register(override.Asset, override.Denom)
	}
	for _, override := range overrides {
		r.Register(override.Asset, override.Denom)
	}
	return r
}

// Register adds an explicit mapping, replacing any previous one for the asset.
func (r *AssetRegistry) Register(asset, denom string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	asset = strings.ToUpper(strings.TrimSpace(asset))
	denom = strings.TrimSpace(denom)

	if previous, ok := r.assetToDenom[asset]; ok {
		delete(r.denomToAsset, previous)
	}
	r.assetToDenom[asset] = denom
	r.denomToAsset[denom] = asset
}

// AssetToDenom implements domain.AssetRegistry.
func (r *AssetRegistry) AssetToDenom(asset string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(asset))
	if normalized == "" {
		return "", invalidAsset(asset, "empty asset")
	}

	r.mu.RLock()
	denom, ok := r.assetToDenom[normalized]
	r.mu.RUnlock()
	if ok {
		return denom, nil
	}

	if chain, symbol, ok := strings.Cut(normalized, l1Separator); ok {
		if err := validateParts(chain, symbol); err != nil {
			return "", invalidAsset(asset, err.Error())
		}
		if chain == thorChain {
			return nativeTokenDenomPrefix + strings.ToLower(symbol), nil
		}
		return strings.ToLower(chain + securedSeparator + symbol), nil
	}

	if chain, symbol, ok := strings.Cut(normalized, securedSeparator); ok {
		if err := validateParts(chain, symbol); err != nil {
			return "", invalidAsset(asset, err.Error())
		}
		return strings.ToLower(normalized), nil
	}

	return "", invalidAsset(asset, "expected CHAIN.SYMBOL or CHAIN-SYMBOL")
}

// DenomToAsset implements domain.AssetRegistry.
func (r *AssetRegistry) DenomToAsset(denom string) (string, error) {
	denom = strings.TrimSpace(denom)

	r.mu.RLock()
	asset, ok := r.denomToAsset[denom]
	r.mu.RUnlock()
	if ok {
		return asset, nil
	}

	if symbol, ok := strings.CutPrefix(denom, nativeTokenDenomPrefix); ok && symbol != "" {
		return thorChain + l1Separator + strings.ToUpper(symbol), nil
	}

	chain, symbol, ok := strings.Cut(denom, securedSeparator)
	if !ok || validateParts(chain, symbol) != nil {
		return "", domain.NewSDKError(domain.ErrKindInvalidAsset, "unsupported denom "+denom, DenomNotRecognizedError{Denom: denom})
	}
	return strings.ToUpper(chain + l1Separator + symbol), nil
}

func validateParts(chain, symbol string) error {
	if chain == "" || symbol == "" {
		return errMissingPart
	}
	if !isAlphanumeric(chain) {
		return errInvalidChain
	}
	for _, r := range symbol {
		if !isAlphanumericRune(r) && r != '-' && r != '.' {
			return errInvalidSymbol
		}
	}
	return nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !isAlphanumericRune(r) {
			return false
		}
	}
	return true
}

func isAlphanumericRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func invalidAsset(asset, reason string) error {
	return domain.NewSDKError(domain.ErrKindInvalidAsset, "unsupported asset "+asset, AssetNotRecognizedError{Asset: asset, Reason: reason})
}
