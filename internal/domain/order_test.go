package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderHash(t *testing.T) {
	items := []CartItem{{BookID: 7, Quantity: 2}, {BookID: 3, Quantity: 1}}

	h := OrderHash(items, 42)
	assert.Len(t, h, 20)
	assert.Equal(t, h, OrderHash(items, 42), "hash must be deterministic")

	reordered := []CartItem{{BookID: 3, Quantity: 1}, {BookID: 7, Quantity: 2}}
	assert.NotEqual(t, h, OrderHash(reordered, 42), "item order is part of the digest")
	assert.NotEqual(t, h, OrderHash(items, 43), "user id is part of the digest")
}

func TestItemsSummary(t *testing.T) {
	items := []CartItem{{BookID: 7, Quantity: 2}, {BookID: 3, Quantity: 1}}
	assert.Equal(t, "7:2,3:1", ItemsSummary(items))

	var many []CartItem
	for i := 0; i < 200; i++ {
		many = append(many, CartItem{BookID: uint64(1000000 + i), Quantity: 99})
	}
	s := ItemsSummary(many)
	assert.LessOrEqual(t, len(s), 500)
	assert.True(t, strings.HasSuffix(s, "..."))
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusProcessing))
	assert.True(t, StatusProcessing.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusShipped.CanTransitionTo(StatusDelivered))

	assert.False(t, StatusShipped.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusDelivered.CanTransitionTo(StatusPending))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusPending.CanTransitionTo(StatusShipped))
}

func TestNewOrderDerivesItemTotals(t *testing.T) {
	o := NewOrder(42, []CartItem{
		{BookID: 7, Quantity: 2, UnitPrice: 1500},
		{BookID: 3, Quantity: 3, UnitPrice: 700},
	}, 5100, "card", PaymentPaid, "pi_1", "")

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, int64(5100), o.TotalAmount)
	assert.Len(t, o.Items, 2)
	assert.Equal(t, int64(3000), o.Items[0].TotalPrice)
	assert.Equal(t, int64(2100), o.Items[1].TotalPrice)
}

func TestStockErrorMessages(t *testing.T) {
	out := &StockError{OutOfStock: []StockIssue{{BookID: 3}, {BookID: 9, Title: "SICP"}}}
	assert.Equal(t, "some items are out of stock: book 3, SICP", out.Error())

	insufficient := &StockError{Insufficient: []StockIssue{
		{BookID: 1, Title: "Clean Code", Requested: 5, Available: 2},
	}}
	assert.Equal(t, "insufficient stock: Clean Code (Available: 2, Requested: 5)", insufficient.Error())
}
