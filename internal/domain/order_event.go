package domain

import "time"

type OrderSettledEvent struct {
	OrderID       uint64    `json:"orderId"`
	UserID        uint64    `json:"userId"`
	TotalAmount   int64     `json:"totalAmount"`
	PaymentMethod string    `json:"paymentMethod"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt"`
}

type OrderStatusChangedEvent struct {
	OrderID   uint64      `json:"orderId"`
	OldStatus OrderStatus `json:"oldStatus"`
	NewStatus OrderStatus `json:"newStatus"`
	ChangedAt time.Time   `json:"changedAt"`
}
