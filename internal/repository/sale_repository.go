package repository

import (
	"barstock/internal/domain/model"
	"context"
	"time"
)

type SaleRepository interface {
	// 明細込みで作成してIDの入ったSaleを返す
	Create(ctx context.Context, sale model.Sale) (model.Sale, error)

	// IDで取得（明細込み）。なければ ErrNotFound。
	FindByID(ctx context.Context, id int64) (model.Sale, error)

	// 新しい順で全件
	List(ctx context.Context) ([]model.Sale, error)

	// 期間指定（明細込み、新しい順）
	ListByDateRange(ctx context.Context, from time.Time, to time.Time) ([]model.Sale, error)

	// 期間内のcompletedのみ（統計用）
	ListCompletedInRange(ctx context.Context, from time.Time, to time.Time) ([]model.Sale, error)

	// ステータスだけ更新
	UpdateStatus(ctx context.Context, id int64, status model.SaleStatus) error
}
