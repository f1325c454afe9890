package model

import (
	"testing"
	"time"

	catalogmodel "bookhaven-backend/internal/domains/catalog/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestNewBookmarkViewDiscountedProduct(t *testing.T) {
	author := "Ursula K. Le Guin"
	end := testNow.Add(48 * time.Hour)
	detail := BookmarkDetail{
		Bookmark: Bookmark{ID: 7, ProductID: 42, CreatedAt: testNow},
		Product: catalogmodel.Product{
			ID:              42,
			Name:            "The Dispossessed",
			Author:          &author,
			Price:           decimal.NewFromInt(20),
			OnSale:          true,
			DiscountPercent: decimal.NewNullDecimal(decimal.NewFromInt(25)),
			DiscountEndAt:   &end,
			Rating:          4.5,
		},
	}

	view := NewBookmarkView(detail, testNow)

	assert.Equal(t, 7, view.ID)
	assert.Equal(t, 42, view.ProductID)
	assert.Equal(t, "The Dispossessed", view.Product.Name)
	assert.True(t, view.Product.Price.Equal(decimal.NewFromInt(20)))
	assert.True(t, view.Product.FinalPrice.Equal(decimal.NewFromInt(15)))
}

func TestNewBookmarkViewExpiredDiscount(t *testing.T) {
	end := testNow.Add(-time.Hour)
	detail := BookmarkDetail{
		Bookmark: Bookmark{ID: 1, ProductID: 9},
		Product: catalogmodel.Product{
			ID:              9,
			Name:            "Expired Deal",
			Price:           decimal.NewFromInt(30),
			OnSale:          true,
			DiscountPercent: decimal.NewNullDecimal(decimal.NewFromInt(50)),
			DiscountEndAt:   &end,
		},
	}

	view := NewBookmarkView(detail, testNow)

	assert.True(t, view.Product.FinalPrice.Equal(decimal.NewFromInt(30)))
}

func TestAddBookmarkRequestValidate(t *testing.T) {
	assert.NoError(t, AddBookmarkRequest{ProductID: 1}.Validate())
	assert.Error(t, AddBookmarkRequest{}.Validate())
	assert.Error(t, AddBookmarkRequest{ProductID: -3}.Validate())
}
