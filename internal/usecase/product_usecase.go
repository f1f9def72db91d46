package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"barstock/internal/domain/model"
	repo "barstock/internal/repository"

	"go.uber.org/zap"
)

type ProductUsecase struct {
	tx          repo.TransactionManager
	productRepo repo.ProductRepository
	logger      *zap.Logger
}

func NewProductUsecase(tx repo.TransactionManager, productRepo repo.ProductRepository, logger *zap.Logger) *ProductUsecase {
	return &ProductUsecase{tx: tx, productRepo: productRepo, logger: logger}
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Stock       int64   `json:"stock"`
	MinStock    int64   `json:"min_stock"`
	Price       int64   `json:"price"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
	Barcode     *string `json:"barcode,omitempty"`
}

func (in ProductInput) validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if len(name) > 100 {
		return NewHTTPError(http.StatusBadRequest, "name must not exceed 100 characters")
	}
	if strings.TrimSpace(in.Unit) == "" {
		return NewHTTPError(http.StatusBadRequest, "unit is required")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must not be negative")
	}
	if in.MinStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "min stock must not be negative")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}
	return nil
}

func (in ProductInput) toModel() model.Product {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "uncategorized"
	}
	return model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		Price:       in.Price,
		Unit:        strings.TrimSpace(in.Unit),
		Category:    category,
		Barcode:     in.Barcode,
	}
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.List(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) GetProductByBarcode(ctx context.Context, barcode string) (model.Product, error) {
	if strings.TrimSpace(barcode) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "barcode is required")
	}
	p, err := u.productRepo.FindByBarcode(ctx, barcode)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) ListLowStock(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.ListLowStock(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.Create(ctx, in.toModel())
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, id int64, in ProductInput) (model.Product, error) {
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	p := in.toModel()
	p.ID = id
	updated, err := u.productRepo.Update(ctx, p)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return updated, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, id int64) error {
	err := u.productRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 符号付きdeltaで在庫を調整する（直接の在庫調整エンドポイント用）。
// 調整と履歴作成を同じトランザクションで行う。
func (u *ProductUsecase) AdjustStock(ctx context.Context, actorUserID int64, productID int64, delta int64) (model.Product, error) {
	var updated model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Inventory().AdjustStock(ctx, productID, delta)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if errors.Is(err, repo.ErrInsufficientStock) {
			return NewHTTPError(http.StatusBadRequest, "insufficient stock")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Inventory().RecordMovement(ctx, model.StockMovement{
			ProductID:   productID,
			ActorUserID: &actorUserID,
			Delta:       delta,
			Reason:      model.MovementManualAdjust,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		updated = p
		return nil
	})

	if err != nil {
		return model.Product{}, err
	}

	if updated.IsLowStock() {
		u.logger.Warn("low stock",
			zap.Int64("product_id", updated.ID),
			zap.String("name", updated.Name),
			zap.Int64("stock", updated.Stock),
			zap.Int64("min_stock", updated.MinStock),
		)
	}
	return updated, nil
}
