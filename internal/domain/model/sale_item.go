package model

import "time"

// 販売明細。単価は販売時点のスナップショット。
type SaleItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleID    int64     `gorm:"not null;index" json:"sale_id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null;column:unit_price" json:"unit_price"`
	Subtotal  int64     `gorm:"not null" json:"subtotal"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
