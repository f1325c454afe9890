package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"bookhaven-backend/internal/domains/catalog/model"
	"bookhaven-backend/internal/infrastructure/storage"
	"bookhaven-backend/pkg/clock"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// stubRepo serves a fixed catalog, slicing it the way the store would.
type stubRepo struct {
	products   []model.Product
	lastFilter *model.ProductFilter
	getByID    func(id int) (*model.Product, error)
}

func (s *stubRepo) List(_ context.Context, filter *model.ProductFilter, _ time.Time) ([]model.Product, int, error) {
	s.lastFilter = filter
	total := len(s.products)
	if filter.Offset >= total {
		return []model.Product{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return s.products[filter.Offset:end], total, nil
}

func (s *stubRepo) Search(context.Context, model.SearchProductsRequest) ([]model.Product, error) {
	return s.products, nil
}

func (s *stubRepo) GetByID(_ context.Context, id int) (*model.Product, error) {
	if s.getByID != nil {
		return s.getByID(id)
	}
	return nil, model.ErrProductNotFound
}

func (s *stubRepo) Create(context.Context, *model.Product) error           { return nil }
func (s *stubRepo) Update(context.Context, *model.Product) error           { return nil }
func (s *stubRepo) Delete(context.Context, int) error                      { return nil }
func (s *stubRepo) SetImage(context.Context, int, string) error            { return nil }
func (s *stubRepo) CreateTx(context.Context, pgx.Tx, *model.Product) error { return nil }

// memCache is an in-process cache.Cache for tests.
type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache { return &memCache{entries: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *memCache) DeletePattern(context.Context, string) error { return nil }
func (m *memCache) Ping(context.Context) error                  { return nil }

func fixedService(repo *stubRepo, c *memCache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: c,
		clock: clock.Fixed{T: testNow},
	}
}

func catalogOf(n int) []model.Product {
	products := make([]model.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, model.Product{
			ID:        i,
			Name:      fmt.Sprintf("Book %02d", i),
			Price:     decimal.NewFromInt(int64(10 + i)),
			CreatedAt: testNow.Add(-time.Duration(i) * time.Hour),
		})
	}
	return products
}

func TestListProducts_PaginationOver25Items(t *testing.T) {
	repo := &stubRepo{products: catalogOf(25)}
	svc := fixedService(repo, newMemCache())

	page3, err := svc.ListProducts(context.Background(), model.ListProductsRequest{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, page3.Total)
	assert.Equal(t, 3, page3.TotalPages)
	assert.Len(t, page3.Data, 5)
	assert.Equal(t, 20, repo.lastFilter.Offset)

	page4, err := svc.ListProducts(context.Background(), model.ListProductsRequest{Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page4.Data)
	assert.Equal(t, 3, page4.TotalPages)
}

func TestListProducts_PagesCoverCatalogWithoutGapsOrDuplicates(t *testing.T) {
	repo := &stubRepo{products: catalogOf(23)}
	svc := fixedService(repo, newMemCache())

	seen := map[int]bool{}
	for page := 1; page <= 5; page++ {
		resp, err := svc.ListProducts(context.Background(), model.ListProductsRequest{Page: page, Limit: 7})
		require.NoError(t, err)
		for _, v := range resp.Data {
			assert.False(t, seen[v.ID], "duplicate id %d on page %d", v.ID, page)
			seen[v.ID] = true
		}
	}
	assert.Len(t, seen, 23)
}

func TestListProducts_EchoesCategoryAndComputesFinalPrice(t *testing.T) {
	end := testNow.Add(24 * time.Hour)
	repo := &stubRepo{products: []model.Product{{
		ID:              1,
		Name:            "Deal Book",
		Price:           decimal.NewFromInt(100),
		OnSale:          true,
		DiscountPercent: decimal.NewNullDecimal(decimal.NewFromInt(20)),
		DiscountEndAt:   &end,
	}}}
	svc := fixedService(repo, newMemCache())

	resp, err := svc.ListProducts(context.Background(), model.ListProductsRequest{
		Page: 1, Limit: 10, Category: model.CategoryDeals,
	})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryDeals, resp.Category)
	require.Len(t, resp.Data, 1)
	assert.True(t, decimal.NewFromInt(80).Equal(resp.Data[0].FinalPrice))
}

func TestGetProduct_CachesEntityNotProjection(t *testing.T) {
	calls := 0
	end := testNow.Add(36 * time.Hour)
	repo := &stubRepo{getByID: func(id int) (*model.Product, error) {
		calls++
		return &model.Product{
			ID:              id,
			Name:            "Cached",
			Price:           decimal.NewFromInt(100),
			OnSale:          true,
			DiscountPercent: decimal.NewNullDecimal(decimal.NewFromInt(50)),
			DiscountEndAt:   &end,
		}, nil
	}}
	svc := fixedService(repo, newMemCache())

	first, err := svc.GetProduct(context.Background(), 9)
	require.NoError(t, err)
	second, err := svc.GetProduct(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second read should hit the cache")
	assert.True(t, decimal.NewFromInt(50).Equal(first.FinalPrice))
	assert.True(t, decimal.NewFromInt(50).Equal(second.FinalPrice))
	require.NotNil(t, second.DaysLeft)
	assert.Equal(t, 1, *second.DaysLeft)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := fixedService(&stubRepo{}, newMemCache())

	_, err := svc.GetProduct(context.Background(), 404)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestImageValidationErrorMapping(t *testing.T) {
	tooBig := fmt.Errorf("%w: exceeds 5MB", storage.ErrImageTooLarge)
	assert.ErrorIs(t, imageValidationError(tooBig), model.ErrImageTooLarge)

	badFormat := fmt.Errorf("%w: webp (only jpeg/png)", storage.ErrImageUnsupported)
	assert.ErrorIs(t, imageValidationError(badFormat), model.ErrInvalidImageFormat)
}
