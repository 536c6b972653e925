package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPending PaymentStatus = "pending"
)

const PaymentMethodCard = "card"

// transitions lists the allowed next statuses for each lifecycle state.
// Cancellation is allowed from any state before shipping.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ValidOrderStatus(s string) bool {
	_, ok := transitions[OrderStatus(s)]
	return ok
}

// CartItem is a client-quoted cart line. It is never persisted; unit price
// is the price quoted at cart time, in cents, and is carried through to the
// order item untouched so a catalog price change between quote and
// settlement cannot drift the charged amount.
type CartItem struct {
	BookID    uint64 `json:"id"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"price"`
}

type Order struct {
	ID            uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID        uint64        `json:"userId" gorm:"not null;index"`
	TotalAmount   int64         `json:"totalAmount" gorm:"not null"`
	PaymentMethod string        `json:"paymentMethod" gorm:"not null"`
	PaymentStatus PaymentStatus `json:"paymentStatus" gorm:"not null;default:'unpaid'"`
	TransactionID string        `json:"transactionId" gorm:"size:191;not null;uniqueIndex"`
	Status        OrderStatus   `json:"status" gorm:"not null;default:'pending'"`
	MobileNumber  string        `json:"mobileNumber,omitempty"`
	Items         []OrderItem   `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

type OrderItem struct {
	ID         uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID    uint64 `json:"orderId" gorm:"not null;index"`
	BookID     uint64 `json:"bookId" gorm:"not null;index"`
	Quantity   int64  `json:"quantity" gorm:"not null"`
	UnitPrice  int64  `json:"unitPrice" gorm:"not null"`
	TotalPrice int64  `json:"totalPrice" gorm:"not null"`
}

// NewOrder assembles an order and its items from a verified cart. Item totals
// are derived from the quoted unit prices, never recomputed from the catalog.
func NewOrder(userID uint64, items []CartItem, totalAmount int64, paymentMethod string, paymentStatus PaymentStatus, transactionID, mobileNumber string) *Order {
	o := &Order{
		UserID:        userID,
		TotalAmount:   totalAmount,
		PaymentMethod: paymentMethod,
		PaymentStatus: paymentStatus,
		TransactionID: transactionID,
		Status:        StatusPending,
		MobileNumber:  mobileNumber,
	}
	for _, it := range items {
		o.Items = append(o.Items, OrderItem{
			BookID:     it.BookID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.UnitPrice * it.Quantity,
		})
	}
	return o
}
