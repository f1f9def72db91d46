package repository

import (
	"context"
	"errors"
	"time"

	"barstock/internal/domain/model"
	repo "barstock/internal/repository"

	"gorm.io/gorm"
)

type SaleGormRepository struct {
	db *gorm.DB
}

func NewSaleGormRepository(db *gorm.DB) *SaleGormRepository {
	return &SaleGormRepository{db: db}
}

// 明細込みで作成
func (r *SaleGormRepository) Create(ctx context.Context, sale model.Sale) (model.Sale, error) {
	if err := r.db.WithContext(ctx).Create(&sale).Error; err != nil {
		return model.Sale{}, err
	}
	return sale, nil
}

func (r *SaleGormRepository) FindByID(ctx context.Context, id int64) (model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Sale{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Sale{}, err
	}
	return s, nil
}

func (r *SaleGormRepository) List(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at desc").Order("id desc").
		Find(&sales).Error
	if err != nil {
		return []model.Sale{}, err
	}
	return sales, nil
}

// 期間指定（新しい順）
func (r *SaleGormRepository) ListByDateRange(ctx context.Context, from time.Time, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at desc").Order("id desc").
		Find(&sales).Error
	if err != nil {
		return []model.Sale{}, err
	}
	return sales, nil
}

// 統計はcompletedのみ対象
func (r *SaleGormRepository) ListCompletedInRange(ctx context.Context, from time.Time, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Where("status = ?", model.SaleStatusCompleted).
		Find(&sales).Error
	if err != nil {
		return []model.Sale{}, err
	}
	return sales, nil
}

func (r *SaleGormRepository) UpdateStatus(ctx context.Context, id int64, status model.SaleStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("id = ?", id).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
