package mocks

import (
	"context"

	"checkout-service/internal/domain"
	"checkout-service/internal/infra"

	"github.com/stretchr/testify/mock"
)

type MockSettlementStore struct {
	mock.Mock
}

func (m *MockSettlementStore) FindBooks(ctx context.Context, ids []uint64) (map[uint64]*domain.Book, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64]*domain.Book), args.Error(1)
}

func (m *MockSettlementStore) FindOrderByID(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockSettlementStore) FindOrderByTransactionID(ctx context.Context, transactionID string) (*domain.Order, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockSettlementStore) CreateOrderWithStock(ctx context.Context, order *domain.Order, items []domain.CartItem) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

func (m *MockSettlementStore) UpdateOrderStatus(ctx context.Context, id uint64, from, to domain.OrderStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

type MockPaymentClient struct {
	mock.Mock
}

func (m *MockPaymentClient) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*infra.PaymentIntent, error) {
	args := m.Called(ctx, amount, currency, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.PaymentIntent), args.Error(1)
}

func (m *MockPaymentClient) RetrieveIntent(ctx context.Context, id string) (*infra.PaymentIntent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.PaymentIntent), args.Error(1)
}

type MockStagingStore struct {
	mock.Mock
}

func (m *MockStagingStore) Put(ctx context.Context, intentID string, po *infra.PendingOrder) error {
	args := m.Called(ctx, intentID, po)
	return args.Error(0)
}

func (m *MockStagingStore) Get(ctx context.Context, intentID string) (*infra.PendingOrder, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.PendingOrder), args.Error(1)
}

func (m *MockStagingStore) Delete(ctx context.Context, intentID string) error {
	args := m.Called(ctx, intentID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}
