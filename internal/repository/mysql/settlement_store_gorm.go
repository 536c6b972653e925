package mysql

import (
	"context"
	"errors"
	"log"
	"sort"

	"checkout-service/internal/domain"
	"checkout-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settlementStore struct {
	db *gorm.DB
}

func NewSettlementStore(db *gorm.DB) repository.SettlementStore {
	return &settlementStore{db: db}
}

func (s *settlementStore) FindBooks(ctx context.Context, ids []uint64) (map[uint64]*domain.Book, error) {
	var books []domain.Book
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&books).Error; err != nil {
		log.Printf("FindBooks error: %v", err)
		return nil, err
	}
	out := make(map[uint64]*domain.Book, len(books))
	for i := range books {
		out[books[i].ID] = &books[i]
	}
	return out, nil
}

func (s *settlementStore) FindOrderByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindOrderByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (s *settlementStore) FindOrderByTransactionID(ctx context.Context, transactionID string) (*domain.Order, error) {
	var o domain.Order
	err := s.db.WithContext(ctx).Preload("Items").Where("transaction_id = ?", transactionID).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindOrderByTransactionID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (s *settlementStore) CreateOrderWithStock(ctx context.Context, order *domain.Order, items []domain.CartItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the exact book set in primary-key order so two settlements
		// touching overlapping books cannot deadlock or jointly oversell.
		ids := bookIDs(items)
		needed := aggregateQuantities(items)
		var books []domain.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", ids).Order("id").Find(&books).Error; err != nil {
			return err
		}
		byID := make(map[uint64]*domain.Book, len(books))
		for i := range books {
			byID[books[i].ID] = &books[i]
		}

		// Re-check under lock; the earlier advisory check may be stale.
		if stockErr := recheckStock(ids, needed, byID); stockErr != nil {
			return stockErr
		}

		if err := tx.Create(order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateTransaction
			}
			log.Printf("order insert error: %v", err)
			return err
		}

		for _, id := range ids {
			qty := needed[id]
			res := tx.Model(&domain.Book{}).
				Where("id = ? AND stock >= ?", id, qty).
				UpdateColumn("stock", gorm.Expr("stock - ?", qty))
			if res.Error != nil {
				log.Printf("stock decrement error for book %d: %v", id, res.Error)
				return res.Error
			}
			if res.RowsAffected == 0 {
				b := byID[id]
				return &domain.StockError{Insufficient: []domain.StockIssue{{
					BookID: id, Title: b.Title, Requested: qty, Available: b.Stock,
				}}}
			}
			log.Printf("stock updated for book %d: sold %d, order %d", id, qty, order.ID)
		}
		return nil
	})
}

func (s *settlementStore) UpdateOrderStatus(ctx context.Context, id uint64, from, to domain.OrderStatus) error {
	res := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		log.Printf("UpdateOrderStatus error: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// aggregateQuantities sums duplicate cart lines so a book requested twice is
// checked and decremented against its combined quantity, not per line.
func aggregateQuantities(items []domain.CartItem) map[uint64]int64 {
	needed := make(map[uint64]int64, len(items))
	for _, it := range items {
		needed[it.BookID] += it.Quantity
	}
	return needed
}

// recheckStock validates the aggregated requirements against the locked book
// rows and reports every failing book at once. Returns nil when all fit.
func recheckStock(ids []uint64, needed map[uint64]int64, byID map[uint64]*domain.Book) *domain.StockError {
	stockErr := &domain.StockError{}
	for _, id := range ids {
		b, ok := byID[id]
		if !ok {
			stockErr.OutOfStock = append(stockErr.OutOfStock, domain.StockIssue{
				BookID: id, Requested: needed[id],
			})
			continue
		}
		if b.Stock < needed[id] {
			stockErr.Insufficient = append(stockErr.Insufficient, domain.StockIssue{
				BookID: id, Title: b.Title, Requested: needed[id], Available: b.Stock,
			})
		}
	}
	if stockErr.Empty() {
		return nil
	}
	return stockErr
}

func bookIDs(items []domain.CartItem) []uint64 {
	seen := make(map[uint64]struct{}, len(items))
	ids := make([]uint64, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.BookID]; ok {
			continue
		}
		seen[it.BookID] = struct{}{}
		ids = append(ids, it.BookID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
