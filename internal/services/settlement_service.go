package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"checkout-service/internal/domain"
	"checkout-service/internal/infra"
	rabbit "checkout-service/internal/infra/rabbitmq"
	"checkout-service/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const currencyUSD = "usd"

var ErrMissingPaymentIntent = errors.New("payment intent id required for card settlement")

// SettlementService is the single entry point for turning a verified payment
// and a cart into a persisted order with decremented stock.
type SettlementService struct {
	store     repository.SettlementStore
	payments  infra.PaymentClientInterface
	staging   infra.StagingStoreInterface
	publisher rabbit.PublisherInterface
}

func NewSettlementService(store repository.SettlementStore, payments infra.PaymentClientInterface, staging infra.StagingStoreInterface, publisher rabbit.PublisherInterface) *SettlementService {
	return &SettlementService{
		store:     store,
		payments:  payments,
		staging:   staging,
		publisher: publisher,
	}
}

type IntentResult struct {
	PaymentIntentID string
	ClientSecret    string
}

// CreateIntent registers a payment intent for the cart and stages the cart
// snapshot under the intent id. The processor-visible metadata carries the
// order hash and item summary so Settle can cross-check without trusting the
// client-submitted cart again.
func (s *SettlementService) CreateIntent(ctx context.Context, userID uint64, items []domain.CartItem, totalAmount int64) (*IntentResult, error) {
	if err := s.CheckAvailability(ctx, items); err != nil {
		return nil, err
	}

	metadata := map[string]string{
		"user_id":       strconv.FormatUint(userID, 10),
		"item_count":    strconv.Itoa(len(items)),
		"items_summary": domain.ItemsSummary(items),
		"order_hash":    domain.OrderHash(items, userID),
	}

	intent, err := s.payments.CreateIntent(ctx, totalAmount, currencyUSD, metadata)
	if err != nil {
		return nil, err
	}

	// Staging is advisory; Settle falls back to the request cart if this
	// entry is missing, so a failed write must not fail the intent.
	if err := s.staging.Put(ctx, intent.ID, &infra.PendingOrder{
		UserID:      userID,
		Items:       items,
		TotalAmount: totalAmount,
	}); err != nil {
		log.Printf("Failed to stage pending order for intent %s: %v", intent.ID, err)
	}

	return &IntentResult{PaymentIntentID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

// CheckAvailability reports every unavailable cart line in one error rather
// than short-circuiting on the first.
func (s *SettlementService) CheckAvailability(ctx context.Context, items []domain.CartItem) error {
	ids := make([]uint64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.BookID)
	}
	books, err := s.store.FindBooks(ctx, ids)
	if err != nil {
		return err
	}

	stockErr := &domain.StockError{}
	for _, it := range items {
		b, ok := books[it.BookID]
		if !ok {
			stockErr.OutOfStock = append(stockErr.OutOfStock, domain.StockIssue{
				BookID: it.BookID, Requested: it.Quantity,
			})
			continue
		}
		if b.Stock < it.Quantity {
			stockErr.Insufficient = append(stockErr.Insufficient, domain.StockIssue{
				BookID: b.ID, Title: b.Title, Requested: it.Quantity, Available: b.Stock,
			})
		}
	}
	if !stockErr.Empty() {
		return stockErr
	}
	return nil
}

type SettleRequest struct {
	UserID        uint64
	Items         []domain.CartItem
	TotalAmount   int64
	PaymentMethod string
	PaymentStatus domain.PaymentStatus
	TransactionID string
	MobileNumber  string
}

type SettleResult struct {
	OrderID        uint64
	TransactionID  string
	AlreadySettled bool
}

// Settle completes a purchase. Card payments are verified against the
// processor; other methods are locally attested. Retrying with the same
// transaction id returns the original order and touches stock exactly once.
func (s *SettlementService) Settle(ctx context.Context, req SettleRequest) (*SettleResult, error) {
	if req.PaymentMethod == domain.PaymentMethodCard {
		return s.settleCard(ctx, req)
	}
	return s.settleLocal(ctx, req)
}

func (s *SettlementService) settleCard(ctx context.Context, req SettleRequest) (*SettleResult, error) {
	intentID := req.TransactionID
	if intentID == "" {
		return nil, ErrMissingPaymentIntent
	}

	// Intent retrieval and the staged snapshot read are independent I/O.
	var (
		intent *infra.PaymentIntent
		staged *infra.PendingOrder
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		intent, err = s.payments.RetrieveIntent(gctx, intentID)
		return err
	})
	g.Go(func() error {
		po, err := s.staging.Get(gctx, intentID)
		if err != nil {
			log.Printf("Staging read failed for intent %s: %v", intentID, err)
			return nil
		}
		staged = po
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if intent.Status != infra.IntentStatusSucceeded {
		return nil, &domain.PaymentNotCompletedError{Status: intent.Status}
	}

	if existing, err := s.store.FindOrderByTransactionID(ctx, intentID); err != nil {
		return nil, err
	} else if existing != nil {
		return &SettleResult{OrderID: existing.ID, TransactionID: intentID, AlreadySettled: true}, nil
	}

	userID, items, total := req.UserID, req.Items, req.TotalAmount
	if staged != nil {
		userID, items, total = staged.UserID, staged.Items, staged.TotalAmount
	}

	if err := s.CheckAvailability(ctx, items); err != nil {
		return nil, err
	}

	if intent.Metadata["order_hash"] != domain.OrderHash(items, userID) {
		return nil, domain.ErrOrderVerificationFailed
	}

	order := domain.NewOrder(userID, items, total, domain.PaymentMethodCard, domain.PaymentPaid, intentID, req.MobileNumber)
	result, err := s.persistSettlement(ctx, order, items)
	if err != nil {
		return nil, err
	}
	if !result.AlreadySettled {
		if err := s.staging.Delete(ctx, intentID); err != nil {
			log.Printf("Failed to clear staging for intent %s: %v", intentID, err)
		}
	}
	return result, nil
}

func (s *SettlementService) settleLocal(ctx context.Context, req SettleRequest) (*SettleResult, error) {
	key := req.TransactionID
	if key == "" {
		// Uniqueness is enforced by the orders table, not this generator.
		key = req.PaymentMethod + "_" + uuid.NewString()
	}

	if existing, err := s.store.FindOrderByTransactionID(ctx, key); err != nil {
		return nil, err
	} else if existing != nil {
		return &SettleResult{OrderID: existing.ID, TransactionID: key, AlreadySettled: true}, nil
	}

	if err := s.CheckAvailability(ctx, req.Items); err != nil {
		return nil, err
	}

	order := domain.NewOrder(req.UserID, req.Items, req.TotalAmount, req.PaymentMethod, req.PaymentStatus, key, req.MobileNumber)
	return s.persistSettlement(ctx, order, req.Items)
}

// persistSettlement runs the atomic step. A duplicate transaction id means a
// concurrent settlement won the race; the winner's order is returned instead
// of an error.
func (s *SettlementService) persistSettlement(ctx context.Context, order *domain.Order, items []domain.CartItem) (*SettleResult, error) {
	if err := s.store.CreateOrderWithStock(ctx, order, items); err != nil {
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			existing, ferr := s.store.FindOrderByTransactionID(ctx, order.TransactionID)
			if ferr != nil {
				return nil, ferr
			}
			if existing != nil {
				return &SettleResult{OrderID: existing.ID, TransactionID: order.TransactionID, AlreadySettled: true}, nil
			}
		}
		return nil, err
	}

	go s.publishOrderSettled(context.Background(), order)

	return &SettleResult{OrderID: order.ID, TransactionID: order.TransactionID}, nil
}

func (s *SettlementService) GetOrderById(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := s.store.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// UpdateOrderStatus applies one lifecycle transition. The store predicate
// includes the current status, so a concurrent transition loses cleanly.
func (s *SettlementService) UpdateOrderStatus(ctx context.Context, id uint64, next domain.OrderStatus) (*domain.Order, error) {
	o, err := s.GetOrderById(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, o.Status, next)
	}
	if err := s.store.UpdateOrderStatus(ctx, id, o.Status, next); err != nil {
		return nil, err
	}

	old := o.Status
	o.Status = next
	log.Printf("Order %d status updated: %s -> %s", o.ID, old, next)
	go s.publishStatusChanged(context.Background(), o.ID, old, next)

	return o, nil
}

func (s *SettlementService) publishOrderSettled(ctx context.Context, order *domain.Order) {
	evt := domain.OrderSettledEvent{
		OrderID:       order.ID,
		UserID:        order.UserID,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		TransactionID: order.TransactionID,
		CreatedAt:     order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "order.settled", evt); err != nil {
		log.Printf("Failed to publish order.settled for order %d: %v", order.ID, err)
	}
}

func (s *SettlementService) publishStatusChanged(ctx context.Context, orderID uint64, old, next domain.OrderStatus) {
	evt := domain.OrderStatusChangedEvent{
		OrderID:   orderID,
		OldStatus: old,
		NewStatus: next,
		ChangedAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, "order.status_changed", evt); err != nil {
		log.Printf("Failed to publish order.status_changed for order %d: %v", orderID, err)
	}
}
