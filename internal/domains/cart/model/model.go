package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrProductNotFound  = errors.New("product not found")
)

// CartItem - domain entity (from database)
type CartItem struct {
	ID        int             `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CartItemDetail - cart row joined with its product
type CartItemDetail struct {
	CartItem
	ProductName        string          `json:"-"`
	ProductDescription *string         `json:"-"`
	ProductPrice       decimal.Decimal `json:"-"`
	ProductImage       *string         `json:"-"`
}

// ============ REQUESTS ============

type AddToCartRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (r AddToCartRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, validation.Min(1)),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity"`
}

func (r UpdateCartRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

// ============ RESPONSES ============

// CartProduct - product summary embedded in a cart line
type CartProduct struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

type CartItemView struct {
	ID        int             `json:"id"`
	ProductID int             `json:"productId"`
	Product   CartProduct     `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Items     []CartItemView  `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// BuildCartView prices every line at the product's current list price
// and sums the totals. Stored unit prices are deliberately ignored on
// read so the cart always reflects today's catalog.
func BuildCartView(items []CartItemDetail) CartView {
	view := CartView{
		Items:    make([]CartItemView, 0, len(items)),
		Subtotal: decimal.Zero,
		Total:    decimal.Zero,
	}

	for _, item := range items {
		subtotal := item.ProductPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))

		description := ""
		if item.ProductDescription != nil {
			description = *item.ProductDescription
		}
		image := ""
		if item.ProductImage != nil {
			image = *item.ProductImage
		}

		view.Items = append(view.Items, CartItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Product: CartProduct{
				ID:          item.ProductID,
				Name:        item.ProductName,
				Description: description,
				Price:       item.ProductPrice,
				Image:       image,
			},
			Quantity:  item.Quantity,
			UnitPrice: item.ProductPrice,
			Subtotal:  subtotal,
		})

		view.Subtotal = view.Subtotal.Add(subtotal)
		view.ItemCount += item.Quantity
	}

	view.Total = view.Subtotal
	return view
}
