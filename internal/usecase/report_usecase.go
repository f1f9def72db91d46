package usecase

import (
	"context"
	"net/http"
	"time"

	"barstock/internal/domain/model"
	repo "barstock/internal/repository"
)

type ReportUsecase struct {
	saleRepo    repo.SaleRepository
	productRepo repo.ProductRepository
}

func NewReportUsecase(saleRepo repo.SaleRepository, productRepo repo.ProductRepository) *ReportUsecase {
	return &ReportUsecase{saleRepo: saleRepo, productRepo: productRepo}
}

type SalesSummary struct {
	TotalSales   int       `json:"totalSales"`
	TotalRevenue int64     `json:"totalRevenue"`
	AverageSale  float64   `json:"averageSale"`
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
}

// 期間内のcompletedな販売を集計する。期間未指定なら直近30日。
func (u *ReportUsecase) SalesSummary(ctx context.Context, from *time.Time, to *time.Time) (SalesSummary, error) {
	end := time.Now()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -30)
	if from != nil {
		start = *from
	}
	if start.After(end) {
		return SalesSummary{}, NewHTTPError(http.StatusBadRequest, "invalid date range")
	}

	sales, err := u.saleRepo.ListCompletedInRange(ctx, start, end)
	if err != nil {
		return SalesSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	summary := SalesSummary{TotalSales: len(sales), From: start, To: end}
	for _, s := range sales {
		summary.TotalRevenue += s.Total
	}
	if summary.TotalSales > 0 {
		summary.AverageSale = float64(summary.TotalRevenue) / float64(summary.TotalSales)
	}
	return summary, nil
}

type InventoryStatus struct {
	TotalProducts int             `json:"totalProducts"`
	TotalValue    int64           `json:"totalValue"`
	LowStock      []model.Product `json:"lowStockProducts"`
	OutOfStock    []model.Product `json:"outOfStockProducts"`
	LastUpdated   time.Time       `json:"lastUpdated"`
}

// 在庫の現況（総額、低在庫、在庫切れ）
func (u *ReportUsecase) InventoryStatus(ctx context.Context) (InventoryStatus, error) {
	products, err := u.productRepo.List(ctx)
	if err != nil {
		return InventoryStatus{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	status := InventoryStatus{
		LowStock:    []model.Product{},
		OutOfStock:  []model.Product{},
		LastUpdated: time.Now(),
	}
	for _, p := range products {
		status.TotalValue += p.Stock * p.Price
		if p.Stock == 0 {
			status.OutOfStock = append(status.OutOfStock, p)
		} else if p.IsLowStock() {
			status.LowStock = append(status.LowStock, p)
		}
	}
	status.TotalProducts = len(products)
	return status, nil
}
