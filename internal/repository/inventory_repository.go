package repository

import (
	"barstock/internal/domain/model"
	"context"
)

// 在庫変更はすべてここを通す。
type InventoryRepository interface {
	// stock += delta を条件付きUPDATE一発で適用する。
	// 結果が負になるなら ErrInsufficientStock、商品がなければ ErrNotFound。
	AdjustStock(ctx context.Context, productID int64, delta int64) (model.Product, error)

	// 在庫移動の履歴作成
	RecordMovement(ctx context.Context, m model.StockMovement) error
}
