package domain

import "time"

// Book is the inventory unit. Catalog CRUD lives elsewhere; this service only
// reads book rows and mutates Stock inside settlement transactions.
type Book struct {
	ID            uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string    `json:"title" gorm:"not null"`
	Author        string    `json:"author"`
	Category      string    `json:"category"`
	Publisher     string    `json:"publisher"`
	Price         int64     `json:"price" gorm:"not null"`
	Stock         int64     `json:"stock" gorm:"not null;default:0"`
	AverageRating float64   `json:"averageRating"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
