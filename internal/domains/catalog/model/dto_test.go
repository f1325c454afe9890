package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 100, 1},
		{5, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestApplyCategories_RaisesFlags(t *testing.T) {
	form := ProductForm{Categories: `["bestsellers","deals","coming-soon"]`}
	form.ApplyCategories()

	assert.True(t, form.IsBestseller)
	assert.True(t, form.OnSale)
	assert.True(t, form.IsComingSoon)
	assert.False(t, form.IsAwardWinner)
	assert.False(t, form.IsNewRelease)
}

func TestApplyCategories_KeepsExplicitFlags(t *testing.T) {
	form := ProductForm{IsNewRelease: true, Categories: `["bestsellers"]`}
	form.ApplyCategories()

	assert.True(t, form.IsNewRelease)
	assert.True(t, form.IsBestseller)
}

func TestApplyCategories_IgnoresBadJSONAndUnknownSlugs(t *testing.T) {
	form := ProductForm{Categories: `not json`}
	form.ApplyCategories()
	assert.False(t, form.IsBestseller)

	form = ProductForm{Categories: `["unknown"]`}
	form.ApplyCategories()
	assert.Equal(t, ProductForm{Categories: `["unknown"]`}, form)
}

func TestProductFormValidate(t *testing.T) {
	valid := ProductForm{Name: "Dune", Price: decimal.NewFromInt(20)}
	assert.NoError(t, valid.Validate())

	missingName := ProductForm{Price: decimal.NewFromInt(20)}
	assert.Error(t, missingName.Validate())

	badPercent := valid
	badPercent.DiscountPercent = decimal.NewNullDecimal(decimal.NewFromInt(120))
	assert.Error(t, badPercent.Validate())

	negativeStock := valid
	negativeStock.StockQuantity = -1
	assert.Error(t, negativeStock.Validate())
}

func TestNewProductView_ComputesFinalPrice(t *testing.T) {
	end := now.Add(48 * time.Hour)
	p := &Product{
		ID:              7,
		Name:            "Dune",
		Price:           decimal.NewFromInt(100),
		OnSale:          true,
		DiscountPercent: decimal.NewNullDecimal(decimal.NewFromInt(20)),
		DiscountEndAt:   &end,
		TotalSold:       42,
		CreatedAt:       now.Add(-time.Hour),
	}

	view := NewProductView(p, now)

	assert.Equal(t, 7, view.ID)
	assert.True(t, decimal.NewFromInt(80).Equal(view.FinalPrice))
	assert.True(t, decimal.NewFromInt(100).Equal(view.Price))
	assert.Equal(t, 42, view.TotalSold)
}

func TestNewProductDetailView_IncludesExtendedFields(t *testing.T) {
	end := now.Add(48 * time.Hour)
	isbn := "978-0441013593"
	p := &Product{
		ID:              7,
		Name:            "Dune",
		ISBN:            &isbn,
		Price:           decimal.NewFromInt(100),
		OnSale:          true,
		DiscountPercent: decimal.NewNullDecimal(decimal.NewFromInt(20)),
		DiscountEndAt:   &end,
		StockQuantity:   5,
		Rating:          4.5,
	}

	view := NewProductDetailView(p, now)

	assert.Equal(t, &isbn, view.ISBN)
	assert.Equal(t, 5, view.StockQuantity)
	assert.Equal(t, 4.5, view.Rating)
	require.NotNil(t, view.DaysLeft)
	assert.Equal(t, 2, *view.DaysLeft)
}
