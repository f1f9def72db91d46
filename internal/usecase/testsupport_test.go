package usecase_test

import (
	"context"
	"sort"
	"time"

	"barstock/internal/domain/model"
	repo "barstock/internal/repository"
)

// =====================
// インメモリのフェイク（在庫の不変条件を観察するため）
// =====================

type fakeStore struct {
	products   map[int64]model.Product
	sales      map[int64]model.Sale
	clients    map[int64]model.Client
	movements  []model.StockMovement
	nextSale   int64
	nextClient int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   map[int64]model.Product{},
		sales:      map[int64]model.Sale{},
		clients:    map[int64]model.Client{},
		nextSale:   1,
		nextClient: 1,
	}
}

func (s *fakeStore) addProduct(p model.Product) {
	s.products[p.ID] = p
}

func (s *fakeStore) movementsByReason(reason model.MovementReason) []model.StockMovement {
	var out []model.StockMovement
	for _, m := range s.movements {
		if m.Reason == reason {
			out = append(out, m)
		}
	}
	return out
}

// --- ProductRepository ---

func (s *fakeStore) List(ctx context.Context) ([]model.Product, error) {
	ids := make([]int64, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.products[id])
	}
	return out, nil
}

func (s *fakeStore) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (s *fakeStore) FindByBarcode(ctx context.Context, barcode string) (model.Product, error) {
	for _, p := range s.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

func (s *fakeStore) ListLowStock(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range s.products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeStore) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if p.ID == 0 {
		p.ID = int64(len(s.products) + 1)
	}
	s.products[p.ID] = p
	return p, nil
}

func (s *fakeStore) Update(ctx context.Context, p model.Product) (model.Product, error) {
	if _, ok := s.products[p.ID]; !ok {
		return model.Product{}, repo.ErrNotFound
	}
	s.products[p.ID] = p
	return p, nil
}

func (s *fakeStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// --- InventoryRepository ---

func (s *fakeStore) AdjustStock(ctx context.Context, productID int64, delta int64) (model.Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return model.Product{}, repo.ErrInsufficientStock
	}
	p.Stock += delta
	s.products[productID] = p
	return p, nil
}

func (s *fakeStore) RecordMovement(ctx context.Context, m model.StockMovement) error {
	s.movements = append(s.movements, m)
	return nil
}

// --- SaleRepository ---

func (s *fakeStore) CreateSale(ctx context.Context, sale model.Sale) (model.Sale, error) {
	sale.ID = s.nextSale
	s.nextSale++
	sale.CreatedAt = time.Now()
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
	}
	s.sales[sale.ID] = sale
	return sale, nil
}

func (s *fakeStore) FindSaleByID(ctx context.Context, id int64) (model.Sale, error) {
	sale, ok := s.sales[id]
	if !ok {
		return model.Sale{}, repo.ErrNotFound
	}
	return sale, nil
}

func (s *fakeStore) ListSales(ctx context.Context) ([]model.Sale, error) {
	var out []model.Sale
	for _, sale := range s.sales {
		out = append(out, sale)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeStore) ListByDateRange(ctx context.Context, from time.Time, to time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, sale := range s.sales {
		if !sale.CreatedAt.Before(from) && !sale.CreatedAt.After(to) {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (s *fakeStore) ListCompletedInRange(ctx context.Context, from time.Time, to time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, sale := range s.sales {
		if sale.Status != model.SaleStatusCompleted {
			continue
		}
		if !sale.CreatedAt.Before(from) && !sale.CreatedAt.After(to) {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateStatus(ctx context.Context, id int64, status model.SaleStatus) error {
	sale, ok := s.sales[id]
	if !ok {
		return repo.ErrNotFound
	}
	sale.Status = status
	s.sales[id] = sale
	return nil
}

// --- ClientRepository ---

func (s *fakeStore) addClient(c model.Client) {
	s.clients[c.ID] = c
	if c.ID >= s.nextClient {
		s.nextClient = c.ID + 1
	}
}

func (s *fakeStore) ListClients(ctx context.Context) ([]model.Client, error) {
	var out []model.Client
	for _, c := range s.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) FindClientByID(ctx context.Context, id int64) (model.Client, error) {
	c, ok := s.clients[id]
	if !ok {
		return model.Client{}, repo.ErrNotFound
	}
	return c, nil
}

func (s *fakeStore) CreateClient(ctx context.Context, c model.Client) (model.Client, error) {
	c.ID = s.nextClient
	s.nextClient++
	s.clients[c.ID] = c
	return c, nil
}

func (s *fakeStore) UpdateClient(ctx context.Context, c model.Client) (model.Client, error) {
	if _, ok := s.clients[c.ID]; !ok {
		return model.Client{}, repo.ErrNotFound
	}
	s.clients[c.ID] = c
	return c, nil
}

func (s *fakeStore) DeleteClient(ctx context.Context, id int64) error {
	if _, ok := s.clients[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.clients, id)
	return nil
}

func (s *fakeStore) ListExceededCredit(ctx context.Context) ([]model.Client, error) {
	var out []model.Client
	for _, c := range s.clients {
		if c.IsOverCreditLimit() {
			out = append(out, c)
		}
	}
	return out, nil
}

// =====================
// インターフェース合わせのアダプタ
// =====================

type fakeSaleRepo struct{ s *fakeStore }

func (r fakeSaleRepo) Create(ctx context.Context, sale model.Sale) (model.Sale, error) {
	return r.s.CreateSale(ctx, sale)
}
func (r fakeSaleRepo) FindByID(ctx context.Context, id int64) (model.Sale, error) {
	return r.s.FindSaleByID(ctx, id)
}
func (r fakeSaleRepo) List(ctx context.Context) ([]model.Sale, error) {
	return r.s.ListSales(ctx)
}
func (r fakeSaleRepo) ListByDateRange(ctx context.Context, from time.Time, to time.Time) ([]model.Sale, error) {
	return r.s.ListByDateRange(ctx, from, to)
}
func (r fakeSaleRepo) ListCompletedInRange(ctx context.Context, from time.Time, to time.Time) ([]model.Sale, error) {
	return r.s.ListCompletedInRange(ctx, from, to)
}
func (r fakeSaleRepo) UpdateStatus(ctx context.Context, id int64, status model.SaleStatus) error {
	return r.s.UpdateStatus(ctx, id, status)
}

type fakeClientRepo struct{ s *fakeStore }

func (r fakeClientRepo) List(ctx context.Context) ([]model.Client, error) {
	return r.s.ListClients(ctx)
}
func (r fakeClientRepo) FindByID(ctx context.Context, id int64) (model.Client, error) {
	return r.s.FindClientByID(ctx, id)
}
func (r fakeClientRepo) Create(ctx context.Context, c model.Client) (model.Client, error) {
	return r.s.CreateClient(ctx, c)
}
func (r fakeClientRepo) Update(ctx context.Context, c model.Client) (model.Client, error) {
	return r.s.UpdateClient(ctx, c)
}
func (r fakeClientRepo) Delete(ctx context.Context, id int64) error {
	return r.s.DeleteClient(ctx, id)
}
func (r fakeClientRepo) ListExceededCredit(ctx context.Context) ([]model.Client, error) {
	return r.s.ListExceededCredit(ctx)
}

// WithinTxは単にfnを呼ぶ（本物のロールバックはinfra側のテスト範囲）
type fakeTxManager struct{ s *fakeStore }

func (t fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(fakeTxRepos{s: t.s})
}

type fakeTxRepos struct{ s *fakeStore }

func (r fakeTxRepos) Sales() repo.SaleRepository          { return fakeSaleRepo{s: r.s} }
func (r fakeTxRepos) Products() repo.ProductRepository    { return r.s }
func (r fakeTxRepos) Inventory() repo.InventoryRepository { return r.s }
func (r fakeTxRepos) Clients() repo.ClientRepository      { return fakeClientRepo{s: r.s} }
