package repository

import (
	"barstock/internal/domain/model"
	"context"
)

type ProductRepository interface {
	// 全商品を返す
	List(ctx context.Context) ([]model.Product, error)

	// IDで商品を取得
	FindByID(ctx context.Context, id int64) (model.Product, error)

	// バーコードで商品を取得
	FindByBarcode(ctx context.Context, barcode string) (model.Product, error)

	// 在庫が最低在庫以下の商品を返す
	ListLowStock(ctx context.Context) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) (model.Product, error)
	Delete(ctx context.Context, id int64) error
}
