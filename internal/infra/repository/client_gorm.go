package repository

import (
	"context"
	"errors"

	"barstock/internal/domain/model"
	repo "barstock/internal/repository"

	"gorm.io/gorm"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) List(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).Order("name asc").Find(&clients).Error
	if err != nil {
		return []model.Client{}, err
	}
	return clients, nil
}

func (r *ClientGormRepository) FindByID(ctx context.Context, id int64) (model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Client{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Client{}, err
	}
	return c, nil
}

func (r *ClientGormRepository) Create(ctx context.Context, c model.Client) (model.Client, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Client{}, err
	}
	return c, nil
}

func (r *ClientGormRepository) Update(ctx context.Context, c model.Client) (model.Client, error) {
	res := r.db.WithContext(ctx).Model(&model.Client{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":            c.Name,
		"email":           c.Email,
		"phone":           c.Phone,
		"credit_limit":    c.CreditLimit,
		"current_balance": c.CurrentBalance,
	})
	if res.Error != nil {
		return model.Client{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Client{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, c.ID)
}

func (r *ClientGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Client{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 残高が限度額を超えている顧客
func (r *ClientGormRepository) ListExceededCredit(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).
		Where("current_balance > credit_limit").
		Order("current_balance desc").
		Find(&clients).Error
	if err != nil {
		return []model.Client{}, err
	}
	return clients, nil
}
