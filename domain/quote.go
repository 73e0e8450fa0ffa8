package domain

import (
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
)

const (
	// MaxSlippageToleranceBps is the largest slippage tolerance accepted, 50%.
	MaxSlippageToleranceBps uint32 = 5000
	// BpsDenominator is the basis points denominator.
	BpsDenominator int64 = 10_000
	// RatePrecision is the fixed point scale of SwapQuote.Rate (8 decimals).
	RatePrecision int64 = 100_000_000
)

// QuoteRequest describes a swap to be quoted.
// Amount is a non-negative integer string in base units of FromAsset.
// SlippageToleranceBps of zero means unset, in which case the configured default applies.
type QuoteRequest struct {
	FromAsset            string `json:"from_asset"`
	ToAsset              string `json:"to_asset"`
	Amount               string `json:"amount"`
	SlippageToleranceBps uint32 `json:"slippage_tolerance_bps,omitempty"`
	DestinationAddress   string `json:"destination_address,omitempty"`
}

// CacheKey returns the quote cache key for the request.
// Slippage is not part of the key. Slippage dependent fields are derived at read time.
func (r QuoteRequest) CacheKey() string {
	return r.FromAsset + "/" + r.ToAsset + "/" + r.Amount
}

// Fees is the fee breakdown of a quote in base units of the output asset.
type Fees struct {
	Network   osmomath.Int `json:"network"`
	Protocol  osmomath.Int `json:"protocol"`
	Affiliate osmomath.Int `json:"affiliate"`
	Total     osmomath.Int `json:"total"`
}

// SwapQuote is a priced, time bounded offer to execute a swap.
// It is treated as an immutable value: request dependent fields are recomputed
// into a new copy via WithRequest rather than mutated in place.
type SwapQuote struct {
	Request         QuoteRequest `json:"request"`
	ExpectedOutput  osmomath.Int `json:"expected_output"`
	MinimumOutput   osmomath.Int `json:"minimum_output"`
	Rate            osmomath.Int `json:"rate"`
	PriceImpact     string       `json:"price_impact"`
	Fees            Fees         `json:"fees"`
	ContractAddress string       `json:"contract_address"`
	QuoteID         string       `json:"quote_id"`
	CreatedAt       time.Time    `json:"created_at"`
	ExpiresAt       time.Time    `json:"expires_at"`
	Warning         string       `json:"warning,omitempty"`
}

// WithRequest returns a copy of the quote issued for req, which must share the cache key
// of the quote's own request. The minimum output is recomputed for req's slippage tolerance.
func (q SwapQuote) WithRequest(req QuoteRequest) SwapQuote {
	q.Request = req
	q.MinimumOutput = ComputeMinimumOutput(q.ExpectedOutput, req.SlippageToleranceBps)
	return q
}

// WithWarning returns a copy of the quote with the warning appended.
func (q SwapQuote) WithWarning(warning string) SwapQuote {
	if warning == "" {
		return q
	}
	if q.Warning == "" {
		q.Warning = warning
	} else {
		q.Warning = q.Warning + "; " + warning
	}
	return q
}

// Age returns how long ago the quote was created.
func (q SwapQuote) Age(now time.Time) time.Duration {
	return now.Sub(q.CreatedAt)
}

// IsExpired returns true if the quote can no longer be safely executed,
// i.e. now is past the expiry minus the given buffer.
func (q SwapQuote) IsExpired(now time.Time, buffer time.Duration) bool {
	return now.After(q.ExpiresAt.Add(-buffer))
}

// ComputeMinimumOutput returns expected * (10000 - slippageBps) / 10000, truncated.
func ComputeMinimumOutput(expected osmomath.Int, slippageBps uint32) osmomath.Int {
	if slippageBps >= uint32(BpsDenominator) {
		return osmomath.ZeroInt()
	}
	return expected.MulRaw(BpsDenominator - int64(slippageBps)).QuoRaw(BpsDenominator)
}

// QuoteOptions control cache behaviour of a single GetQuote call.
type QuoteOptions struct {
	// SkipCache forces a fresh quote.
	SkipCache bool
	// MaxStaleness, when positive, is the maximum age of a cached quote that may be returned.
	MaxStaleness time.Duration
}

// ExecuteOptions control a single swap execution.
type ExecuteOptions struct {
	// Sender is the swap sender. With a transaction broadcaster configured it must equal
	// the broadcaster's address; without one it is required.
	Sender string
	// SkipBalanceCheck disables the pre-execution balance check.
	SkipBalanceCheck bool
	// SlippageToleranceBps, when non-zero, overrides the slippage the quote was computed with.
	SlippageToleranceBps uint32
	Memo                 string
}

// SwapResult is the outcome of a submitted swap.
type SwapResult struct {
	TxHash          string       `json:"tx_hash"`
	QuoteID         string       `json:"quote_id"`
	ContractAddress string       `json:"contract_address"`
	Sender          string       `json:"sender"`
	AmountIn        osmomath.Int `json:"amount_in"`
	MinimumOutput   osmomath.Int `json:"minimum_output"`
}
