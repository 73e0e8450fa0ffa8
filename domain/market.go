package domain

import "time"

// Market is a read-only projection of an orderbook contract as reported
// by the indexer or the chain.
type Market struct {
	ContractAddress string `json:"contract_address"`
	BaseAsset       string `json:"base_asset"`
	QuoteAsset      string `json:"quote_asset"`
	BaseDenom       string `json:"base_denom"`
	QuoteDenom      string `json:"quote_denom"`
	TickSize        string `json:"tick_size"`
	TakerFee        string `json:"taker_fee"`
	MakerFee        string `json:"maker_fee"`
}

// PairKey formats the discovery map key for an asset pair.
func PairKey(base, quote string) string {
	return base + "/" + quote
}

// DiscoverySource tags where a discovery result came from.
type DiscoverySource string

const (
	DiscoverySourceIndexedAPI     DiscoverySource = "indexed-api"
	DiscoverySourceChainScan      DiscoverySource = "chain-scan"
	DiscoverySourceFallbackFailed DiscoverySource = "fallback-failed"
)

// DiscoveredContracts is the result of one discovery cycle.
type DiscoveredContracts struct {
	PairToAddress map[string]string
	DiscoveredAt  time.Time
	Source        DiscoverySource
	LastError     error
}

// Lookup returns the contract address for the pair, trying the forward key first
// and the reversed key second. reversed is true if the address was found under the reversed key.
func (d DiscoveredContracts) Lookup(base, quote string) (address string, reversed bool, ok bool) {
	if address, ok := d.PairToAddress[PairKey(base, quote)]; ok {
		return address, false, true
	}
	if address, ok := d.PairToAddress[PairKey(quote, base)]; ok {
		return address, true, true
	}
	return "", false, false
}

// IsStale returns true if the result is older than ttl.
func (d DiscoveredContracts) IsStale(now time.Time, ttl time.Duration) bool {
	return d.DiscoveredAt.IsZero() || now.Sub(d.DiscoveredAt) >= ttl
}

// DiscoveryCacheStatus reports the state of the discovery cache.
type DiscoveryCacheStatus struct {
	HasCache      bool            `json:"has_cache"`
	Source        DiscoverySource `json:"source,omitempty"`
	DiscoveredAt  time.Time       `json:"discovered_at"`
	Age           time.Duration   `json:"age"`
	IsStale       bool            `json:"is_stale"`
	ContractCount int             `json:"contract_count"`
	LastError     string          `json:"last_error,omitempty"`
}
