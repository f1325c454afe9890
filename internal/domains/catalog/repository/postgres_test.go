package repository

import (
	"testing"
	"time"

	"bookhaven-backend/internal/domains/catalog/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestBuildListConditions_NoFilters(t *testing.T) {
	conditions, args := buildListConditions(&model.ProductFilter{}, testNow)

	assert.Empty(t, conditions)
	assert.Empty(t, args)
	assert.Equal(t, "", whereClause(conditions))
}

func TestBuildListConditions_Categories(t *testing.T) {
	tests := []struct {
		category string
		want     string
		argCount int
	}{
		{model.CategoryBestsellers, "is_bestseller = true", 0},
		{model.CategoryAwardWinners, "is_award_winner = true", 0},
		{model.CategoryComingSoon, "is_coming_soon = true", 0},
		{model.CategoryDeals, "(on_sale = true AND discount_percent > 0)", 0},
		{model.CategoryNewReleases, "(is_new_release = true OR (publication_date >= $1 AND publication_date <= $2))", 2},
		{model.CategoryNewArrivals, "created_at >= $1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			conditions, args := buildListConditions(&model.ProductFilter{Category: tt.category}, testNow)

			require.Len(t, conditions, 1)
			assert.Equal(t, tt.want, conditions[0])
			assert.Len(t, args, tt.argCount)
		})
	}
}

func TestBuildListConditions_CategoryIsCaseInsensitive(t *testing.T) {
	conditions, _ := buildListConditions(&model.ProductFilter{Category: "Bestsellers"}, testNow)

	require.Len(t, conditions, 1)
	assert.Equal(t, "is_bestseller = true", conditions[0])
}

func TestBuildListConditions_UnknownCategoryAppliesNoFilter(t *testing.T) {
	conditions, args := buildListConditions(&model.ProductFilter{Category: "unknown-value"}, testNow)

	assert.Empty(t, conditions)
	assert.Empty(t, args)
}

func TestBuildListConditions_NewReleasesWindow(t *testing.T) {
	_, args := buildListConditions(&model.ProductFilter{Category: model.CategoryNewReleases}, testNow)

	require.Len(t, args, 2)
	assert.Equal(t, testNow.AddDate(0, -3, 0), args[0])
	assert.Equal(t, testNow, args[1])
}

func TestBuildListConditions_NewArrivalsWindow(t *testing.T) {
	_, args := buildListConditions(&model.ProductFilter{Category: model.CategoryNewArrivals}, testNow)

	require.Len(t, args, 1)
	assert.Equal(t, testNow.AddDate(0, -1, 0), args[0])
}

func TestBuildListConditions_SearchUsesSinglePlaceholder(t *testing.T) {
	conditions, args := buildListConditions(&model.ProductFilter{Search: "tolkien"}, testNow)

	require.Len(t, conditions, 1)
	assert.Equal(t, "(name LIKE $1 OR description LIKE $1 OR author LIKE $1 OR isbn LIKE $1)", conditions[0])
	require.Len(t, args, 1)
	assert.Equal(t, "%tolkien%", args[0])
}

func TestBuildListConditions_GenreAllSentinel(t *testing.T) {
	for _, genre := range []string{"all", "All", "ALL"} {
		conditions, _ := buildListConditions(&model.ProductFilter{Genre: genre}, testNow)
		assert.Empty(t, conditions, "genre %q should disable the filter", genre)
	}

	conditions, args := buildListConditions(&model.ProductFilter{Genre: "Fantasy"}, testNow)
	require.Len(t, conditions, 1)
	assert.Equal(t, "genre = $1", conditions[0])
	assert.Equal(t, "Fantasy", args[0])
}

func TestBuildListConditions_PlaceholderNumberingAcrossFilters(t *testing.T) {
	maxPrice := decimal.NewFromInt(50)
	filter := &model.ProductFilter{
		Category: model.CategoryNewReleases,
		Search:   "dune",
		Genre:    "Sci-Fi",
		MaxPrice: &maxPrice,
	}

	conditions, args := buildListConditions(filter, testNow)

	require.Len(t, conditions, 4)
	assert.Equal(t, "(is_new_release = true OR (publication_date >= $1 AND publication_date <= $2))", conditions[0])
	assert.Equal(t, "(name LIKE $3 OR description LIKE $3 OR author LIKE $3 OR isbn LIKE $3)", conditions[1])
	assert.Equal(t, "genre = $4", conditions[2])
	assert.Equal(t, "price <= $5", conditions[3])
	require.Len(t, args, 5)
	assert.Equal(t, "%dune%", args[2])
	assert.Equal(t, "Sci-Fi", args[3])
	assert.Equal(t, maxPrice, args[4])
}

func TestBuildSearchConditions_QueryMatchesGenreToo(t *testing.T) {
	conditions, args := buildSearchConditions(model.SearchProductsRequest{Query: "fantasy"})

	require.Len(t, conditions, 1)
	assert.Equal(t,
		"(name LIKE $1 OR description LIKE $1 OR author LIKE $1 OR genre LIKE $1 OR isbn LIKE $1)",
		conditions[0])
	assert.Equal(t, "%fantasy%", args[0])
}

func TestBuildSearchConditions_PriceBounds(t *testing.T) {
	minPrice := decimal.NewFromInt(10)
	maxPrice := decimal.NewFromInt(30)
	conditions, args := buildSearchConditions(model.SearchProductsRequest{
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})

	require.Len(t, conditions, 2)
	assert.Equal(t, "price >= $1", conditions[0])
	assert.Equal(t, "price <= $2", conditions[1])
	assert.Equal(t, minPrice, args[0])
	assert.Equal(t, maxPrice, args[1])
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		sort string
		want string
	}{
		{model.SortPriceAsc, "price ASC, id ASC"},
		{model.SortPriceDesc, "price DESC, id ASC"},
		{model.SortPopularity, "total_sold DESC, id ASC"},
		{model.SortNewest, "publication_date DESC NULLS LAST, id ASC"},
		{model.SortName, "name ASC, id ASC"},
		{"", "name ASC, id ASC"},
		{"garbage", "name ASC, id ASC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, orderClause(tt.sort), "sort=%q", tt.sort)
	}
}

func TestWhereClause(t *testing.T) {
	assert.Equal(t, "", whereClause(nil))
	assert.Equal(t, "WHERE a = 1", whereClause([]string{"a = 1"}))
	assert.Equal(t, "WHERE a = 1 AND b = 2", whereClause([]string{"a = 1", "b = 2"}))
}
