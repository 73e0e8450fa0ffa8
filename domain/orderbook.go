package domain

import (
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/shopspring/decimal"
)

// OrderBookLevel is a single aggregated price level.
type OrderBookLevel struct {
	Price decimal.Decimal
	Total osmomath.Int
}

// OrderBook is a snapshot of an orderbook contract.
type OrderBook struct {
	Bids []OrderBookLevel
	Asks []OrderBookLevel
}

// BestBid returns the highest bid price. False if there are no bids.
func (b *OrderBook) BestBid() (decimal.Decimal, bool) {
	if b == nil || len(b.Bids) == 0 {
		return decimal.Zero, false
	}
	best := b.Bids[0].Price
	for _, level := range b.Bids[1:] {
		if level.Price.GreaterThan(best) {
			best = level.Price
		}
	}
	return best, true
}

// BestAsk returns the lowest ask price. False if there are no asks.
func (b *OrderBook) BestAsk() (decimal.Decimal, bool) {
	if b == nil || len(b.Asks) == 0 {
		return decimal.Zero, false
	}
	best := b.Asks[0].Price
	for _, level := range b.Asks[1:] {
		if level.Price.LessThan(best) {
			best = level.Price
		}
	}
	return best, true
}

// SimulationResult is the outcome of simulating a swap against an orderbook contract.
type SimulationResult struct {
	Returned osmomath.Int
	Fee      osmomath.Int
}

// PriceImpact is the estimated price impact of a trade, as a percentage string.
// FromOrderBook is false when Value is a heuristic range or "unknown".
type PriceImpact struct {
	Value         string
	FromOrderBook bool
}
