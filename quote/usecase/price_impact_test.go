package quoteusecase_test

import (
	"testing"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rujira-labs/finsdk/domain"
	quoteusecase "github.com/rujira-labs/finsdk/quote/usecase"
)

var (
	defaultThresholds = quoteusecase.ImpactThresholds{
		Medium: osmomath.NewInt(10_000_000_000),
		Large:  osmomath.NewInt(100_000_000_000),
	}

	tightBook = &domain.OrderBook{
		Bids: []domain.OrderBookLevel{
			{Price: decimal.RequireFromString("0.98"), Total: osmomath.NewInt(1000)},
			{Price: decimal.RequireFromString("0.99"), Total: osmomath.NewInt(1000)},
		},
		Asks: []domain.OrderBookLevel{
			{Price: decimal.RequireFromString("1.02"), Total: osmomath.NewInt(1000)},
			{Price: decimal.RequireFromString("1.01"), Total: osmomath.NewInt(1000)},
		},
	}
)

func TestEstimatePriceImpact(t *testing.T) {
	tests := []struct {
		name     string
		in       osmomath.Int
		out      osmomath.Int
		book     *domain.OrderBook
		expected domain.PriceImpact
	}{
		{
			name:     "execution at mid price",
			in:       osmomath.NewInt(1000),
			out:      osmomath.NewInt(1000),
			book:     tightBook,
			expected: domain.PriceImpact{Value: "0.0000", FromOrderBook: true},
		},
		{
			name:     "one percent below mid",
			in:       osmomath.NewInt(1000),
			out:      osmomath.NewInt(990),
			book:     tightBook,
			expected: domain.PriceImpact{Value: "1.0000", FromOrderBook: true},
		},
		{
			name:     "above mid is absolute",
			in:       osmomath.NewInt(3),
			out:      osmomath.NewInt(4),
			book:     tightBook,
			expected: domain.PriceImpact{Value: "33.3333", FromOrderBook: true},
		},
		{
			name:     "clamped when the book is too thin",
			in:       osmomath.NewInt(1000),
			out:      osmomath.NewInt(10),
			book:     tightBook,
			expected: domain.PriceImpact{Value: "50.00", FromOrderBook: true},
		},
		{
			name:     "no book, small trade",
			in:       osmomath.NewInt(1_000_000_000),
			out:      osmomath.NewInt(1_000_000_000),
			expected: domain.PriceImpact{Value: "1.0-3.0"},
		},
		{
			name:     "one sided book, medium trade",
			in:       osmomath.NewInt(10_000_000_000),
			out:      osmomath.NewInt(10_000_000_000),
			book:     &domain.OrderBook{Bids: tightBook.Bids},
			expected: domain.PriceImpact{Value: "2.0-5.0"},
		},
		{
			name:     "no book, large trade",
			in:       osmomath.NewInt(100_000_000_000),
			out:      osmomath.NewInt(100_000_000_000),
			book:     &domain.OrderBook{},
			expected: domain.PriceImpact{Value: "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := quoteusecase.EstimatePriceImpact(tt.in, tt.out, tt.book, defaultThresholds)
			require.Equal(t, tt.expected, actual)
		})
	}
}

func TestInvertOrderBook(t *testing.T) {
	require.Nil(t, quoteusecase.InvertOrderBook(nil))

	book := &domain.OrderBook{
		Bids: []domain.OrderBookLevel{{Price: decimal.RequireFromString("0.5"), Total: osmomath.NewInt(10)}},
		Asks: []domain.OrderBookLevel{
			{Price: decimal.RequireFromString("4"), Total: osmomath.NewInt(20)},
			{Price: decimal.Zero, Total: osmomath.NewInt(30)},
		},
	}

	inverted := quoteusecase.InvertOrderBook(book)

	require.Len(t, inverted.Bids, 1)
	require.True(t, decimal.RequireFromString("0.25").Equal(inverted.Bids[0].Price))
	require.Equal(t, osmomath.NewInt(20), inverted.Bids[0].Total)

	require.Len(t, inverted.Asks, 1)
	require.True(t, decimal.NewFromInt(2).Equal(inverted.Asks[0].Price))
}
