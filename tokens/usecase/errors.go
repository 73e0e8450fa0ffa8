package usecase

import "fmt"

// AssetNotRecognizedError is returned when an asset identifier cannot be mapped to a chain denom.
type AssetNotRecognizedError struct {
	Asset  string
	Reason string
}

// Error implements the error interface.
func (e AssetNotRecognizedError) Error() string {
	return fmt.Sprintf("asset (%s) is not recognized: %s", e.Asset, e.Reason)
}

// DenomNotRecognizedError is returned when a chain denom cannot be mapped to an asset identifier.
type DenomNotRecognizedError struct {
	Denom string
}

// Error implements the error interface.
func (e DenomNotRecognizedError) Error() string {
	return fmt.Sprintf("denom (%s) does not map to a known asset", e.Denom)
}

type assetPartError string

func (e assetPartError) Error() string {
	return string(e)
}

const (
	errMissingPart   assetPartError = "chain and symbol must not be empty"
	errInvalidChain  assetPartError = "chain must be alphanumeric"
	errInvalidSymbol assetPartError = "symbol contains invalid characters"
)
