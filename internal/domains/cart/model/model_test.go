package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildCartView_Empty(t *testing.T) {
	view := BuildCartView(nil)

	assert.Empty(t, view.Items)
	assert.True(t, view.Subtotal.IsZero())
	assert.True(t, view.Total.IsZero())
	assert.Equal(t, 0, view.ItemCount)
}

func TestBuildCartView_TotalsAndLinePricing(t *testing.T) {
	items := []CartItemDetail{
		{
			CartItem:     CartItem{ID: 1, ProductID: 10, Quantity: 2, UnitPrice: decimal.NewFromInt(9)},
			ProductName:  "Dune",
			ProductPrice: decimal.RequireFromString("12.50"),
		},
		{
			CartItem:           CartItem{ID: 2, ProductID: 11, Quantity: 3},
			ProductName:        "Hyperion",
			ProductDescription: strPtr("space opera"),
			ProductPrice:       decimal.NewFromInt(10),
			ProductImage:       strPtr("/img/hyperion.jpg"),
		},
	}

	view := BuildCartView(items)

	require.Len(t, view.Items, 2)
	// Lines are priced at the current product price, not the price
	// captured when the item was added.
	assert.True(t, decimal.RequireFromString("12.50").Equal(view.Items[0].UnitPrice))
	assert.True(t, decimal.RequireFromString("25.00").Equal(view.Items[0].Subtotal))
	assert.True(t, decimal.NewFromInt(30).Equal(view.Items[1].Subtotal))

	assert.True(t, decimal.NewFromInt(55).Equal(view.Subtotal))
	assert.True(t, view.Total.Equal(view.Subtotal))
	assert.Equal(t, 5, view.ItemCount)

	assert.Equal(t, "", view.Items[0].Product.Image)
	assert.Equal(t, "space opera", view.Items[1].Product.Description)
}

func TestAddToCartRequestValidate(t *testing.T) {
	assert.NoError(t, AddToCartRequest{ProductID: 1, Quantity: 1}.Validate())
	assert.Error(t, AddToCartRequest{ProductID: 0, Quantity: 1}.Validate())
	assert.Error(t, AddToCartRequest{ProductID: 1, Quantity: 0}.Validate())
	assert.Error(t, AddToCartRequest{ProductID: 1, Quantity: -2}.Validate())
}

func TestUpdateCartRequestValidate(t *testing.T) {
	assert.NoError(t, UpdateCartRequest{Quantity: 3}.Validate())
	assert.Error(t, UpdateCartRequest{Quantity: 0}.Validate())
}
