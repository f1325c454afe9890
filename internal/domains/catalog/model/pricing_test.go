package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func saleProduct(price int64, pct int64) *Product {
	return &Product{
		Price:           decimal.NewFromInt(price),
		OnSale:          true,
		DiscountPercent: decimal.NewNullDecimal(decimal.NewFromInt(pct)),
	}
}

func TestFinalPrice_ActiveDiscount(t *testing.T) {
	p := saleProduct(100, 20)
	p.DiscountEndAt = timePtr(now.Add(72 * time.Hour))

	require.True(t, p.IsDiscountActive(now))
	assert.True(t, decimal.NewFromInt(80).Equal(p.FinalPrice(now)), "got %s", p.FinalPrice(now))

	daysLeft := p.DaysLeft(now)
	require.NotNil(t, daysLeft)
	assert.Equal(t, 3, *daysLeft)
}

func TestFinalPrice_ExpiredWindow(t *testing.T) {
	p := saleProduct(100, 20)
	p.DiscountEndAt = timePtr(now.Add(-time.Hour))

	assert.False(t, p.IsDiscountActive(now))
	assert.True(t, decimal.NewFromInt(100).Equal(p.FinalPrice(now)))
	assert.Nil(t, p.DaysLeft(now))
}

func TestFinalPrice_WindowNotStarted(t *testing.T) {
	p := saleProduct(100, 20)
	p.DiscountStartAt = timePtr(now.Add(time.Hour))

	assert.False(t, p.IsDiscountActive(now))
	assert.True(t, decimal.NewFromInt(100).Equal(p.FinalPrice(now)))
}

func TestFinalPrice_OpenEndedWindow(t *testing.T) {
	// No bounds at all: active while on sale with a percent set.
	p := saleProduct(50, 10)

	assert.True(t, p.IsDiscountActive(now))
	assert.True(t, decimal.NewFromInt(45).Equal(p.FinalPrice(now)))
	// Active but no end date means no countdown.
	assert.Nil(t, p.DaysLeft(now))
}

func TestFinalPrice_InclusiveBounds(t *testing.T) {
	p := saleProduct(100, 20)
	p.DiscountStartAt = timePtr(now)
	p.DiscountEndAt = timePtr(now)

	assert.True(t, p.IsDiscountActive(now))
	assert.True(t, decimal.NewFromInt(80).Equal(p.FinalPrice(now)))
}

func TestFinalPrice_NotOnSale(t *testing.T) {
	p := saleProduct(100, 20)
	p.OnSale = false

	assert.False(t, p.IsDiscountActive(now))
	assert.True(t, decimal.NewFromInt(100).Equal(p.FinalPrice(now)))
}

func TestFinalPrice_NoPercent(t *testing.T) {
	p := &Product{Price: decimal.NewFromInt(100), OnSale: true}

	assert.False(t, p.IsDiscountActive(now))
	assert.True(t, decimal.NewFromInt(100).Equal(p.FinalPrice(now)))
}

func TestFinalPrice_FractionalPercentKeepsDecimalPrecision(t *testing.T) {
	p := &Product{
		Price:           decimal.RequireFromString("19.99"),
		OnSale:          true,
		DiscountPercent: decimal.NewNullDecimal(decimal.RequireFromString("12.5")),
	}

	assert.True(t, decimal.RequireFromString("17.491250").Equal(p.FinalPrice(now)))
}

func TestFinalPrice_NeverExceedsPrice(t *testing.T) {
	for pct := int64(0); pct <= 100; pct += 5 {
		p := saleProduct(40, pct)
		assert.True(t, p.FinalPrice(now).LessThanOrEqual(p.Price), "pct=%d", pct)
	}
}

func TestDaysLeft_FloorsPartialDays(t *testing.T) {
	p := saleProduct(100, 20)
	p.DiscountEndAt = timePtr(now.Add(47 * time.Hour))

	daysLeft := p.DaysLeft(now)
	require.NotNil(t, daysLeft)
	assert.Equal(t, 1, *daysLeft)
}
