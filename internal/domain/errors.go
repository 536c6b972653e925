package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderVerificationFailed = errors.New("order verification failed")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")

	// ErrProcessorUnavailable marks a transient failure talking to the
	// payment processor. Callers may retry; settlement state is untouched.
	ErrProcessorUnavailable = errors.New("payment processor unavailable")

	// ErrDuplicateTransaction is returned by the store when an insert hits
	// the unique transaction id index. The orchestrator resolves it to the
	// already-settled order rather than surfacing it.
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
)

// PaymentNotCompletedError reports a payment intent that has not reached the
// processor's success status. Settlement must not proceed until it does.
type PaymentNotCompletedError struct {
	Status string
}

func (e *PaymentNotCompletedError) Error() string {
	return "payment not completed. status: " + e.Status
}

// StockIssue describes one unavailable cart line.
type StockIssue struct {
	BookID    uint64 `json:"bookId"`
	Title     string `json:"title,omitempty"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
}

func (i StockIssue) label() string {
	if i.Title != "" {
		return i.Title
	}
	return fmt.Sprintf("book %d", i.BookID)
}

// StockError aggregates every failing cart line in one report so the caller
// can show a complete list instead of the first failure.
type StockError struct {
	OutOfStock   []StockIssue `json:"outOfStock,omitempty"`
	Insufficient []StockIssue `json:"insufficient,omitempty"`
}

func (e *StockError) Error() string {
	if len(e.OutOfStock) > 0 {
		labels := make([]string, 0, len(e.OutOfStock))
		for _, i := range e.OutOfStock {
			labels = append(labels, i.label())
		}
		return "some items are out of stock: " + strings.Join(labels, ", ")
	}
	parts := make([]string, 0, len(e.Insufficient))
	for _, i := range e.Insufficient {
		parts = append(parts, fmt.Sprintf("%s (Available: %d, Requested: %d)", i.label(), i.Available, i.Requested))
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}

func (e *StockError) Empty() bool {
	return len(e.OutOfStock) == 0 && len(e.Insufficient) == 0
}
