package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"barstock/internal/domain/model"
	repo "barstock/internal/repository"

	"go.uber.org/zap"
)

type SaleUsecase struct {
	tx       repo.TransactionManager
	saleRepo repo.SaleRepository
	logger   *zap.Logger
}

func NewSaleUsecase(tx repo.TransactionManager, saleRepo repo.SaleRepository, logger *zap.Logger) *SaleUsecase {
	return &SaleUsecase{tx: tx, saleRepo: saleRepo, logger: logger}
}

type SaleItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

type CreateSaleInput struct {
	Items         []SaleItemInput `json:"items"`
	PaymentMethod string          `json:"payment_method"`
	ClientID      *int64          `json:"client_id,omitempty"`
}

// 販売を作成する。
// 1トランザクションで「全明細を検証 → 全明細を減算」する。
// どれか1つでも失敗したらロールバックして、在庫は一切変化しない。
// totalはサーバー側で計算する（クライアントの値は受け取らない）。
func (u *SaleUsecase) CreateSale(ctx context.Context, actorUserID int64, in CreateSaleInput) (model.Sale, error) {
	if len(in.Items) == 0 {
		return model.Sale{}, NewHTTPError(http.StatusBadRequest, "at least one item is required")
	}
	if !model.PaymentMethod(in.PaymentMethod).Valid() {
		return model.Sale{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid payment method: %s", in.PaymentMethod))
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return model.Sale{}, NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
		}
		if it.UnitPrice < 0 {
			return model.Sale{}, NewHTTPError(http.StatusBadRequest, "unit price must not be negative")
		}
	}

	var created model.Sale

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//検証パス：全明細の商品存在と現在庫を先に確認する
		for _, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product not found: %d", it.ProductID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if p.Stock < it.Quantity {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("insufficient stock for: %s", p.Name))
			}
		}

		//明細と合計を組み立てる
		items := make([]model.SaleItem, 0, len(in.Items))
		var total int64 = 0
		for _, it := range in.Items {
			subtotal := it.Quantity * it.UnitPrice
			items = append(items, model.SaleItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Subtotal:  subtotal,
			})
			total += subtotal
		}

		sale, err := r.Sales().Create(ctx, model.Sale{
			Items:         items,
			Total:         total,
			PaymentMethod: model.PaymentMethod(in.PaymentMethod),
			Status:        model.SaleStatusPending,
			ClientID:      in.ClientID,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//減算パス：条件付きUPDATEで減らす。
		//検証パスとの間に他リクエストが在庫を減らしていたらここで失敗してロールバックする。
		for _, it := range in.Items {
			p, err := r.Inventory().AdjustStock(ctx, it.ProductID, -it.Quantity)
			if errors.Is(err, repo.ErrInsufficientStock) {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("insufficient stock for: %d", it.ProductID))
			}
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product not found: %d", it.ProductID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			saleID := sale.ID
			if err := r.Inventory().RecordMovement(ctx, model.StockMovement{
				ProductID:   it.ProductID,
				SaleID:      &saleID,
				ActorUserID: &actorUserID,
				Delta:       -it.Quantity,
				Reason:      model.MovementSaleConsume,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			if p.IsLowStock() {
				u.logger.Warn("low stock after sale",
					zap.Int64("product_id", p.ID),
					zap.String("name", p.Name),
					zap.Int64("stock", p.Stock),
					zap.Int64("min_stock", p.MinStock),
				)
			}
		}

		created = sale
		return nil
	})

	if err != nil {
		return model.Sale{}, err
	}

	u.logger.Info("sale created",
		zap.Int64("sale_id", created.ID),
		zap.Int64("total", created.Total),
		zap.Int("items", len(created.Items)),
	)
	return created, nil
}

type UpdateSaleStatusInput struct {
	Status string `json:"status"`
}

// ステータスを更新する。cancelledへの遷移で在庫を戻す。
// すでにcancelledの販売を再度cancelledにしても在庫は二重に戻らない。
func (u *SaleUsecase) UpdateSaleStatus(ctx context.Context, actorUserID int64, saleID int64, in UpdateSaleStatusInput) (model.Sale, error) {
	target := model.SaleStatus(in.Status)
	if !target.Valid() {
		return model.Sale{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid status: %s", in.Status))
	}

	var updated model.Sale

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		sale, err := r.Sales().FindByID(ctx, saleID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "sale not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//cancelledへの遷移のときだけ在庫を戻す
		if target == model.SaleStatusCancelled && sale.Status != model.SaleStatusCancelled {
			for _, it := range sale.Items {
				if err := u.restoreItem(ctx, r, actorUserID, sale.ID, it); err != nil {
					return err
				}
			}
		}

		if err := r.Sales().UpdateStatus(ctx, saleID, target); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "sale not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		sale.Status = target
		updated = sale
		return nil
	})

	if err != nil {
		return model.Sale{}, err
	}

	u.logger.Info("sale status updated",
		zap.Int64("sale_id", saleID),
		zap.String("status", string(target)),
	)
	return updated, nil
}

// 1明細分の在庫を戻す。
// 商品が消えている場合は失敗させず、照合用の履歴を残してスキップする
// （販売のキャンセル自体は必ず成立させる）。
func (u *SaleUsecase) restoreItem(ctx context.Context, r repo.TxRepos, actorUserID int64, saleID int64, it model.SaleItem) error {
	_, err := r.Inventory().AdjustStock(ctx, it.ProductID, it.Quantity)
	if errors.Is(err, repo.ErrNotFound) {
		u.logger.Warn("stock restore skipped, product missing",
			zap.Int64("sale_id", saleID),
			zap.Int64("product_id", it.ProductID),
			zap.Int64("quantity", it.Quantity),
		)
		if err := r.Inventory().RecordMovement(ctx, model.StockMovement{
			ProductID:   it.ProductID,
			SaleID:      &saleID,
			ActorUserID: &actorUserID,
			Delta:       it.Quantity,
			Reason:      model.MovementRestoreSkippedMissing,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := r.Inventory().RecordMovement(ctx, model.StockMovement{
		ProductID:   it.ProductID,
		SaleID:      &saleID,
		ActorUserID: &actorUserID,
		Delta:       it.Quantity,
		Reason:      model.MovementSaleRestore,
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *SaleUsecase) ListSales(ctx context.Context) ([]model.Sale, error) {
	sales, err := u.saleRepo.List(ctx)
	if err != nil {
		return []model.Sale{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return sales, nil
}

func (u *SaleUsecase) GetSale(ctx context.Context, saleID int64) (model.Sale, error) {
	sale, err := u.saleRepo.FindByID(ctx, saleID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Sale{}, NewHTTPError(http.StatusNotFound, "sale not found")
	}
	if err != nil {
		return model.Sale{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return sale, nil
}

func (u *SaleUsecase) ListSalesByDateRange(ctx context.Context, from time.Time, to time.Time) ([]model.Sale, error) {
	sales, err := u.saleRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return []model.Sale{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return sales, nil
}

type SalesStatistics struct {
	TotalSales   int     `json:"totalSales"`
	TotalRevenue int64   `json:"totalRevenue"`
	AverageSale  float64 `json:"averageSale"`
}

// 期間内のcompletedな販売だけを集計する
func (u *SaleUsecase) Statistics(ctx context.Context, from time.Time, to time.Time) (SalesStatistics, error) {
	sales, err := u.saleRepo.ListCompletedInRange(ctx, from, to)
	if err != nil {
		return SalesStatistics{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	stats := SalesStatistics{TotalSales: len(sales)}
	for _, s := range sales {
		stats.TotalRevenue += s.Total
	}
	if stats.TotalSales > 0 {
		stats.AverageSale = float64(stats.TotalRevenue) / float64(stats.TotalSales)
	}
	return stats, nil
}
