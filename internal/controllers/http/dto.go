package http

import (
	"math"

	"checkout-service/internal/domain"
)

// Amounts cross the wire as 2-decimal currency values and are converted to
// integer cents at this boundary.

type CartItemDTO struct {
	ID       uint64  `json:"id" binding:"required"`
	Quantity int64   `json:"quantity" binding:"required,min=1"`
	Price    float64 `json:"price" binding:"min=0"`
}

type CreateIntentRequest struct {
	Amount float64       `json:"amount" binding:"required,gt=0"`
	Items  []CartItemDTO `json:"items" binding:"required,min=1,dive"`
}

type CreateIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string        `json:"payment_intent_id" binding:"required"`
	Items           []CartItemDTO `json:"items" binding:"required,min=1,dive"`
	TotalAmount     float64       `json:"total_amount" binding:"min=0"`
}

type SaveOrderRequest struct {
	Items         []CartItemDTO `json:"items" binding:"required,min=1,dive"`
	TotalAmount   float64       `json:"total_amount" binding:"min=0"`
	PaymentMethod string        `json:"payment_method" binding:"required"`
	PaymentStatus string        `json:"payment_status" binding:"required,oneof=paid unpaid pending"`
	TransactionID string        `json:"transaction_id"`
	MobileNumber  string        `json:"mobile_number"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed processing shipped delivered cancelled"`
}

type SettleResponse struct {
	Success       bool   `json:"success"`
	OrderID       uint64 `json:"order_id"`
	TransactionID string `json:"transaction_id"`
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func toCartItems(dtos []CartItemDTO) []domain.CartItem {
	items := make([]domain.CartItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, domain.CartItem{
			BookID:    d.ID,
			Quantity:  d.Quantity,
			UnitPrice: toCents(d.Price),
		})
	}
	return items
}
