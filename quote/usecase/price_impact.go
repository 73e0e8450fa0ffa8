package quoteusecase

import (
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/shopspring/decimal"

	"github.com/rujira-labs/finsdk/domain"
)

const (
	// impactDisplayDecimals is the number of decimals of an order book derived impact.
	impactDisplayDecimals = 4
	// divisionPrecision is the scale intermediate quotients are rounded to.
	divisionPrecision = 18

	heuristicSmallTradeImpact  = "1.0-3.0"
	heuristicMediumTradeImpact = "2.0-5.0"
	unknownImpact              = "unknown"
	maxDisplayedImpact         = "50.00"
)

var (
	maxImpact = decimal.NewFromInt(50)
	hundred   = decimal.NewFromInt(100)
	two       = decimal.NewFromInt(2)
)

// ImpactThresholds are the input sizes, in base units, separating the heuristic tiers.
type ImpactThresholds struct {
	Medium osmomath.Int
	Large  osmomath.Int
}

// EstimatePriceImpact returns the percentage deviation of the execution price out/in from the
// mid price of book. book must be oriented so that its prices are quoted in units of out per in.
// Without a usable book it falls back to a range keyed on the input size.
func EstimatePriceImpact(in, out osmomath.Int, book *domain.OrderBook, thresholds ImpactThresholds) domain.PriceImpact {
	if impact, ok := orderBookImpact(in, out, book); ok {
		return domain.PriceImpact{Value: impact, FromOrderBook: true}
	}

	switch {
	case in.LT(thresholds.Medium):
		return domain.PriceImpact{Value: heuristicSmallTradeImpact}
	case in.LT(thresholds.Large):
		return domain.PriceImpact{Value: heuristicMediumTradeImpact}
	default:
		return domain.PriceImpact{Value: unknownImpact}
	}
}

func orderBookImpact(in, out osmomath.Int, book *domain.OrderBook) (string, bool) {
	if !in.IsPositive() || out.IsNegative() {
		return "", false
	}

	bestBid, ok := book.BestBid()
	if !ok {
		return "", false
	}
	bestAsk, ok := book.BestAsk()
	if !ok {
		return "", false
	}

	mid := bestBid.Add(bestAsk).DivRound(two, divisionPrecision)
	if !mid.IsPositive() {
		return "", false
	}

	execution := decimal.NewFromBigInt(out.BigInt(), 0).DivRound(decimal.NewFromBigInt(in.BigInt(), 0), divisionPrecision)
	impact := execution.Sub(mid).Abs().DivRound(mid, divisionPrecision).Mul(hundred)

	if impact.GreaterThan(maxImpact) {
		return maxDisplayedImpact, true
	}
	return impact.StringFixed(impactDisplayDecimals), true
}

// invertOrderBook returns the book seen from the quote side: prices become 1/price
// and bids and asks swap sides.
func invertOrderBook(book *domain.OrderBook) *domain.OrderBook {
	if book == nil {
		return nil
	}

	invert := func(levels []domain.OrderBookLevel) []domain.OrderBookLevel {
		inverted := make([]domain.OrderBookLevel, 0, len(levels))
		for _, level := range levels {
			if !level.Price.IsPositive() {
				continue
			}
			inverted = append(inverted, domain.OrderBookLevel{
				Price: decimal.NewFromInt(1).DivRound(level.Price, divisionPrecision),
				Total: level.Total,
			})
		}
		return inverted
	}

	return &domain.OrderBook{
		Bids: invert(book.Asks),
		Asks: invert(book.Bids),
	}
}
