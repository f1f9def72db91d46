package repository

import (
	"barstock/internal/domain/model"
	"context"
)

type ClientRepository interface {
	List(ctx context.Context) ([]model.Client, error)
	FindByID(ctx context.Context, id int64) (model.Client, error)
	Create(ctx context.Context, c model.Client) (model.Client, error)
	Update(ctx context.Context, c model.Client) (model.Client, error)
	Delete(ctx context.Context, id int64) error

	// 残高が限度額を超えている顧客
	ListExceededCredit(ctx context.Context) ([]model.Client, error)
}
