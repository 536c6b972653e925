package repository

import (
	"context"

	"checkout-service/internal/domain"
)

// SettlementStore is the persistence surface of the settlement core. Lookups
// return (nil, nil) when the row does not exist.
type SettlementStore interface {
	FindBooks(ctx context.Context, ids []uint64) (map[uint64]*domain.Book, error)
	FindOrderByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindOrderByTransactionID(ctx context.Context, transactionID string) (*domain.Order, error)

	// CreateOrderWithStock persists the order with its items and decrements
	// stock for every cart line inside one transaction. Stock is re-checked
	// under row locks before the decrement; on any failure nothing persists.
	// Returns domain.ErrDuplicateTransaction when the transaction id is
	// already taken and *domain.StockError when the re-check fails.
	CreateOrderWithStock(ctx context.Context, order *domain.Order, items []domain.CartItem) error

	// UpdateOrderStatus moves an order from one lifecycle status to another.
	// The from-status is part of the predicate so concurrent updates cannot
	// clobber each other; no matching row returns domain.ErrOrderNotFound.
	UpdateOrderStatus(ctx context.Context, id uint64, from, to domain.OrderStatus) error
}
