package chain

import (
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/shopspring/decimal"
)

// simulateRequest is the FIN contract simulate query.
type simulateRequest struct {
	Simulate simulateCoin `json:"simulate"`
}

type simulateCoin struct {
	Denom  string       `json:"denom"`
	Amount osmomath.Int `json:"amount"`
}

// simulateResponse is the FIN contract simulate response.
type simulateResponse struct {
	Returned osmomath.Int `json:"returned"`
	Fee      osmomath.Int `json:"fee"`
}

// bookRequest is the FIN contract book query.
type bookRequest struct {
	Book bookLimit `json:"book"`
}

type bookLimit struct {
	Limit int `json:"limit"`
}

type bookItem struct {
	Price decimal.Decimal `json:"price"`
	Total osmomath.Int    `json:"total"`
}

// bookResponse is the FIN contract book response.
// Base are the resting orders selling the base denom (asks), quote are those selling the quote denom (bids).
type bookResponse struct {
	Base  []bookItem `json:"base"`
	Quote []bookItem `json:"quote"`
}
