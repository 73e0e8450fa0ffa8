package types

import "errors"

// Handler Errors
var (
	ErrFromAssetNotSpecified = errors.New("fromAsset is required")
	ErrToAssetNotSpecified   = errors.New("toAsset is required")
	ErrAmountNotSpecified    = errors.New("amount is required")
	ErrSlippageNotValid      = errors.New("slippageBps must be an integer")
	ErrMaxStalenessNotValid  = errors.New("maxStalenessMs must be an integer")
	ErrSkipCacheNotValid     = errors.New("skipCache must be a boolean")
)
