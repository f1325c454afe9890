package model

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateClaimCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateClaimCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	// 50 draws from a 36^8 space colliding would mean a broken generator.
	assert.Len(t, seen, 50)
}

func TestNewOrderView_TotalsFromCapturedUnitPrices(t *testing.T) {
	order := Order{ID: 1, Status: StatusPending}
	items := []OrderItemDetail{
		{
			OrderItem:    OrderItem{ID: 1, OrderID: 1, ProductID: 10, Quantity: 2, UnitPrice: decimal.NewFromInt(15)},
			ProductName:  "Dune",
			ProductPrice: decimal.NewFromInt(99), // current price, must not affect the total
		},
		{
			OrderItem:    OrderItem{ID: 2, OrderID: 1, ProductID: 11, Quantity: 1, UnitPrice: decimal.RequireFromString("9.50")},
			ProductName:  "Hyperion",
			ProductPrice: decimal.RequireFromString("9.50"),
		},
	}

	view := NewOrderView(order, items)

	require.Len(t, view.Items, 2)
	assert.True(t, decimal.RequireFromString("39.50").Equal(view.Total), "got %s", view.Total)
	assert.True(t, decimal.NewFromInt(15).Equal(view.Items[0].UnitPrice))
	assert.True(t, decimal.NewFromInt(99).Equal(view.Items[0].Product.Price))
}

func TestNewOrderView_EmptyItems(t *testing.T) {
	view := NewOrderView(Order{ID: 3}, nil)

	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusReady, StatusClaimed, StatusCancelled} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("shipped"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Pending"))
}

func TestCreateOrderRequestValidate(t *testing.T) {
	valid := CreateOrderRequest{
		FullName:      "Jo Reader",
		Email:         "jo@example.com",
		Phone:         "555-0101",
		Address:       "1 Main St",
		City:          "Springfield",
		PostalCode:    "12345",
		PaymentMethod: "cash",
	}
	assert.NoError(t, valid.Validate())

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, badEmail.Validate())

	missing := valid
	missing.Address = ""
	assert.Error(t, missing.Validate())
}

func TestUpdateOrderStatusRequestValidate(t *testing.T) {
	assert.NoError(t, UpdateOrderStatusRequest{Status: StatusReady}.Validate())
	assert.Error(t, UpdateOrderStatusRequest{Status: "shipped"}.Validate())
	assert.Error(t, UpdateOrderStatusRequest{}.Validate())
}

func TestClaimOrderRequestValidate(t *testing.T) {
	assert.NoError(t, ClaimOrderRequest{ClaimCode: "AB12CD34"}.Validate())
	assert.Error(t, ClaimOrderRequest{ClaimCode: "SHORT"}.Validate())
	assert.Error(t, ClaimOrderRequest{}.Validate())
}
