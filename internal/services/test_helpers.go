package services

import (
	"time"

	"checkout-service/internal/domain"
	"checkout-service/internal/infra"
)

func CreateMockBook(id uint64, title string, price, stock int64) *domain.Book {
	return &domain.Book{
		ID:    id,
		Title: title,
		Price: price,
		Stock: stock,
	}
}

func CreateMockOrder(id, userID uint64, total int64, transactionID string, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:            id,
		UserID:        userID,
		TotalAmount:   total,
		TransactionID: transactionID,
		Status:        status,
		CreatedAt:     time.Now(),
	}
}

func CreateMockIntent(id, status string, amount int64, metadata map[string]string) *infra.PaymentIntent {
	return &infra.PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       status,
		Amount:       amount,
		Currency:     "usd",
		Metadata:     metadata,
	}
}

const (
	TestUserID   = uint64(42)
	TestIntentID = "pi_test_123"
	TestBookID   = uint64(7)
)
