package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"barstock/internal/domain/model"
	"barstock/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSaleUsecase(s *fakeStore) *usecase.SaleUsecase {
	return usecase.NewSaleUsecase(fakeTxManager{s: s}, fakeSaleRepo{s: s}, zap.NewNop())
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, want, he.Status)
}

func TestCreateSale_ComputesTotals(t *testing.T) {
	s := newFakeStore()
	s.addProduct(model.Product{ID: 1, Name: "Lager", Stock: 10, Price: 1000})
	s.addProduct(model.Product{ID: 2, Name: "Lime", Stock: 10, Price: 500})
	uc := newSaleUsecase(s)

	sale, err := uc.CreateSale(context.Background(), 1, usecase.CreateSaleInput{
		Items: []usecase.SaleItemInput{
			{ProductID: 1, Quantity: 2, UnitPrice: 1000},
			{ProductID: 2, Quantity: 1, UnitPrice: 500},
		},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	require.Len(t, sale.Items, 2)
	assert.Equal(t, int64(2000), sale.Items[0].Subtotal)
	assert.Equal(t, int64(500), sale.Items[1].Subtotal)
	assert.Equal(t, int64(2500), sale.Total)
	assert.Equal(t, model.SaleStatusPending, sale.Status)
}

func TestCreateSale_DecrementsStock(t *testing.T) {
	s := newFakeStore()
	s.addProduct(model.Product{ID: 1, Name: "Lager", Stock: 10, MinStock: 2, Price: 1000})
	uc := newSaleUsecase(s)

	_, err := uc.CreateSale(context.Background(), 1, usecase.CreateSaleInput{
		Items:         []usecase.SaleItemInput{{ProductID: 1, Quantity: 4, UnitPrice: 1000}},
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6), s.products[1].Stock)
	assert.Len(t, s.movementsByReason(model.MovementSaleConsume), 1)
}

func TestCreateSale_InsufficientStock_NoMutation(t *testing.T) {
	s := newFakeStore()
	s.addProduct(model.Product{ID: 1, Name: "Lager", Stock: 10, Price: 1000})
	s.addProduct(model.Product{ID: 2, Name: "IPA", Stock: 2, Price: 1200})
	uc := newSaleUsecase(s)

	//1件目は足りるが2件目が足りない。全体が拒否されて在庫は一切動かない。
	_, err := uc.CreateSale(context.Background(), 1, usecase.CreateSaleInput{
		Items: []usecase.SaleItemInput{
			{ProductID: 1, Quantity: 3, UnitPrice: 1000},
			{ProductID: 2, Quantity: 5, UnitPrice: 1200},
		},
		PaymentMethod: "cash",
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, err.Error(), "IPA")

	assert.Equal(t, int64(10), s.products[1].Stock)
	assert.Equal(t, int64(2), s.products[2].Stock)
	assert.Empty(t, s.movements)
	assert.Empty(t, s.sales)
}

func TestCreateSale_ProductNotFound(t *testing.T) {
	s := newFakeStore()
	s.addProduct(model.Product{ID: 1, Name: "Lager", Stock: 10, Price: 1000})
	uc := newSaleUsecase(s)

	_, err := uc.CreateSale(context.Background(), 1, usecase.CreateSaleInput{
		Items: []usecase.SaleItemInput{
			{ProductID: 1, Quantity: 1, UnitPrice: 1000},
			{ProductID: 99, Quantity: 1, UnitPrice: 100},
		},
		PaymentMethod: "cash",
	})
	assertHTTPStatus(t, err, http.StatusNotFound)
	assert.Equal(t, int64(10), s.products[1].Stock)
}

func TestCreateSale_InvalidInput(t *testing.T) {
	s := newFakeStore()
	s.addProduct(model.Product{ID: 1, Name: "Lager", Stock: 10, Price: 1000})
	uc := newSaleUsecase(s)

	cases := []struct {
		name string
		in   usecase.CreateSaleInput
	}{
		{"no items", usecase.CreateSaleInput{PaymentMethod: "cash"}},
		{"zero quantity", usecase.CreateSaleInput{
			Items:         []usecase.SaleItemInput{{ProductID: 1, Quantity: 0, UnitPrice: 100}},
			PaymentMethod: "cash",
		}},
		{"negative price", usecase.CreateSaleInput{
			Items:         []usecase.SaleItemInput{{ProductID: 1, Quantity: 1, UnitPrice: -1}},
			PaymentMethod: "cash",
		}},
		{"bad payment method", usecase.CreateSaleInput{
			Items:         []usecase.SaleItemInput{{ProductID: 1, Quantity: 1, UnitPrice: 100}},
			PaymentMethod: "bitcoin",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateSale(context.Background(), 1, tc.in)
			assertHTTPStatus(t, err, http.StatusBadRequest)
		})
	}
	assert.Equal(t, int64(10), s.products[1].Stock)
}

func TestUpdateSaleStatus_InvalidStatus(t *testing.T) {
	s := newFakeStore()
	uc := newSaleUsecase(s)

	_, err := uc.UpdateSaleStatus(context.Background(), 1, 1, usecase.UpdateSaleStatusInput{Status: "shipped"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestUpdateSaleStatus_NotFound(t *testing.T) {
	s := newFakeStore()
	uc := newSaleUsecase(s)

	_, err := uc.UpdateSaleStatus(context.Background(), 1, 42, usecase.UpdateSaleStatusInput{Status: "completed"})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

// 作成→キャンセル→再キャンセルのライフサイクル。
// 在庫は一度だけ元に戻り、二重には戻らない。
func TestSaleLifecycle_CancelRestoresExactlyOnce(t *testing.T) {
	s := newFakeStore()
	s.addProduct(model.Product{ID: 1, Name: "Lager", Stock: 10, MinStock: 2, Price: 1000})
	uc := newSaleUsecase(s)
	ctx := context.Background()

	sale, err := uc.CreateSale(ctx, 1, usecase.CreateSaleInput{
		Items:         []usecase.SaleItemInput{{ProductID: 1, Quantity: 4, UnitPrice: 1000}},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), s.products[1].Stock)

	updated, err := uc.UpdateSaleStatus(ctx, 1, sale.ID, usecase.UpdateSaleStatusInput{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusCancelled, updated.Status)
	assert.Equal(t, int64(10), s.products[1].Stock)
	assert.Len(t, s.movementsByReason(model.MovementSaleRestore), 1)

	//再キャンセルはno-op（200相当）。在庫は動かない。
	updated, err = uc.UpdateSaleStatus(ctx, 1, sale.ID, usecase.UpdateSaleStatusInput{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusCancelled, updated.Status)
	assert.Equal(t, int64(10), s.products[1].Stock)
	assert.Len(t, s.movementsByReason(model.MovementSaleRestore), 1)
}

// キャンセル時に商品が消えていたら、その明細の復元はスキップして
// 照合用の履歴を残す。キャンセル自体は成立する。
func TestUpdateSaleStatus_CancelWithMissingProduct(t *testing.T) {
	s := newFakeStore()
	s.addProduct(model.Product{ID: 1, Name: "Lager", Stock: 10, Price: 1000})
	s.addProduct(model.Product{ID: 2, Name: "IPA", Stock: 5, Price: 1200})
	uc := newSaleUsecase(s)
	ctx := context.Background()

	sale, err := uc.CreateSale(ctx, 1, usecase.CreateSaleInput{
		Items: []usecase.SaleItemInput{
			{ProductID: 1, Quantity: 2, UnitPrice: 1000},
			{ProductID: 2, Quantity: 3, UnitPrice: 1200},
		},
		PaymentMethod: "credit",
	})
	require.NoError(t, err)

	//販売後に商品2が削除された
	delete(s.products, 2)

	updated, err := uc.UpdateSaleStatus(ctx, 1, sale.ID, usecase.UpdateSaleStatusInput{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusCancelled, updated.Status)

	//商品1だけ復元され、商品2はスキップ履歴が残る
	assert.Equal(t, int64(10), s.products[1].Stock)
	skipped := s.movementsByReason(model.MovementRestoreSkippedMissing)
	require.Len(t, skipped, 1)
	assert.Equal(t, int64(2), skipped[0].ProductID)
	assert.Equal(t, int64(3), skipped[0].Delta)
}

func TestStatistics_CompletedOnly(t *testing.T) {
	s := newFakeStore()
	s.addProduct(model.Product{ID: 1, Name: "Lager", Stock: 100, Price: 1000})
	uc := newSaleUsecase(s)
	ctx := context.Background()

	mk := func(qty int64) model.Sale {
		sale, err := uc.CreateSale(ctx, 1, usecase.CreateSaleInput{
			Items:         []usecase.SaleItemInput{{ProductID: 1, Quantity: qty, UnitPrice: 1000}},
			PaymentMethod: "cash",
		})
		require.NoError(t, err)
		return sale
	}

	s1 := mk(2)
	s2 := mk(3)
	mk(4) //pendingのまま

	_, err := uc.UpdateSaleStatus(ctx, 1, s1.ID, usecase.UpdateSaleStatusInput{Status: "completed"})
	require.NoError(t, err)
	_, err = uc.UpdateSaleStatus(ctx, 1, s2.ID, usecase.UpdateSaleStatusInput{Status: "completed"})
	require.NoError(t, err)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	stats, err := uc.Statistics(ctx, from, to)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalSales)
	assert.Equal(t, int64(5000), stats.TotalRevenue)
	assert.InDelta(t, 2500, stats.AverageSale, 0.001)
}
