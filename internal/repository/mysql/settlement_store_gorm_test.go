package mysql

import (
	"testing"

	"checkout-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAggregateQuantities(t *testing.T) {
	needed := aggregateQuantities([]domain.CartItem{
		{BookID: 7, Quantity: 2},
		{BookID: 3, Quantity: 1},
		{BookID: 7, Quantity: 2},
	})

	assert.Equal(t, map[uint64]int64{7: 4, 3: 1}, needed)
}

func TestRecheckStock_DuplicateLinesCheckedAgainstCombinedQuantity(t *testing.T) {
	items := []domain.CartItem{
		{BookID: 7, Quantity: 2},
		{BookID: 7, Quantity: 2},
	}
	ids := bookIDs(items)
	byID := map[uint64]*domain.Book{
		7: {ID: 7, Title: "The Go Programming Language", Stock: 3},
	}

	stockErr := recheckStock(ids, aggregateQuantities(items), byID)

	assert.NotNil(t, stockErr)
	assert.Len(t, stockErr.Insufficient, 1)
	assert.Equal(t, int64(4), stockErr.Insufficient[0].Requested)
	assert.Equal(t, int64(3), stockErr.Insufficient[0].Available)
}

func TestRecheckStock_AggregatesAllFailures(t *testing.T) {
	items := []domain.CartItem{
		{BookID: 1, Quantity: 5},
		{BookID: 2, Quantity: 1},
		{BookID: 9, Quantity: 1},
	}
	ids := bookIDs(items)
	byID := map[uint64]*domain.Book{
		1: {ID: 1, Title: "Clean Code", Stock: 2},
		2: {ID: 2, Title: "SICP", Stock: 10},
	}

	stockErr := recheckStock(ids, aggregateQuantities(items), byID)

	assert.NotNil(t, stockErr)
	assert.Len(t, stockErr.Insufficient, 1)
	assert.Equal(t, uint64(1), stockErr.Insufficient[0].BookID)
	assert.Len(t, stockErr.OutOfStock, 1)
	assert.Equal(t, uint64(9), stockErr.OutOfStock[0].BookID)
}

func TestRecheckStock_AllAvailable(t *testing.T) {
	items := []domain.CartItem{{BookID: 7, Quantity: 2}}
	byID := map[uint64]*domain.Book{
		7: {ID: 7, Title: "The Go Programming Language", Stock: 2},
	}

	assert.Nil(t, recheckStock(bookIDs(items), aggregateQuantities(items), byID))
}
