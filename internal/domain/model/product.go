package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Stock       int64          `gorm:"not null" json:"stock"`
	MinStock    int64          `gorm:"not null;default:0" json:"min_stock"`
	Price       int64          `gorm:"not null" json:"price"`
	Unit        string         `gorm:"type:varchar(20);not null" json:"unit"`
	Category    string         `gorm:"type:varchar(100);not null;index" json:"category"`
	Barcode     *string        `gorm:"type:varchar(64);uniqueIndex" json:"barcode,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// 在庫が最低在庫以下かどうか
func (p Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
