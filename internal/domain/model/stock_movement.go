package model

import "time"

// 在庫が動いた理由
type MovementReason string

const (
	//手動調整（PATCH /products/:id/stock）。
	MovementManualAdjust MovementReason = "manual_adjust"

	//販売による減算。
	MovementSaleConsume MovementReason = "sale_consume"

	//キャンセルによる復元。
	MovementSaleRestore MovementReason = "sale_restore"

	//商品が消えていて復元できなかった（要手動照合）。
	MovementRestoreSkippedMissing MovementReason = "restore_skipped_missing_product"
)

// 在庫移動の履歴。すべての在庫変化をここに残す。
// 「誰が」「どの販売で」「どれだけ」動かしたかを追える。
type StockMovement struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   int64          `gorm:"not null;index" json:"product_id"`
	SaleID      *int64         `gorm:"index" json:"sale_id,omitempty"`
	ActorUserID *int64         `gorm:"index" json:"actor_user_id,omitempty"`
	Delta       int64          `gorm:"not null" json:"delta"`
	Reason      MovementReason `gorm:"type:varchar(50);not null;index" json:"reason"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
