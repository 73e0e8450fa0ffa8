package quoteusecase

import "github.com/rujira-labs/finsdk/domain"

func InvertOrderBook(book *domain.OrderBook) *domain.OrderBook {
	return invertOrderBook(book)
}
