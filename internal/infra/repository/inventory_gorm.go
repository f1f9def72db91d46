package repository

import (
	"context"
	"errors"

	"barstock/internal/domain/model"
	repo "barstock/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// stock += delta を条件付きUPDATE一発で適用する。
// アプリ側のread-modify-writeにしない（並行リクエストで負になるのを防ぐ）。
func (r *InventoryGormRepository) AdjustStock(ctx context.Context, productID int64, delta int64) (model.Product, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock + ? >= 0", productID, delta).
		Update("stock", gorm.Expr("stock + ?", delta))

	if res.Error != nil {
		return model.Product{}, res.Error
	}

	if res.RowsAffected == 0 {
		// 商品がないのか在庫不足なのかを区別する
		var p model.Product
		err := r.db.WithContext(ctx).First(&p, productID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Product{}, repo.ErrNotFound
		}
		if err != nil {
			return model.Product{}, err
		}
		return model.Product{}, repo.ErrInsufficientStock
	}

	var p model.Product
	if err := r.db.WithContext(ctx).First(&p, productID).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 在庫移動の履歴作成
func (r *InventoryGormRepository) RecordMovement(ctx context.Context, m model.StockMovement) error {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	return nil
}
