package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. An order starts pending, becomes ready when staff
// prepare the pickup, and ends claimed or cancelled.
const (
	StatusPending   = "pending"
	StatusReady     = "ready"
	StatusClaimed   = "claimed"
	StatusCancelled = "cancelled"
)

// StatusAll is the list-filter sentinel that disables status filtering.
const StatusAll = "all"

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReady, StatusClaimed, StatusCancelled:
		return true
	default:
		return false
	}
}

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrClaimCodeNotFound   = errors.New("claim code not found")
	ErrOrderAlreadyClaimed = errors.New("order already claimed")
	ErrOrderCancelled      = errors.New("order is cancelled")
	ErrNotOrderOwner       = errors.New("order belongs to another user")
)

// Order - domain entity (from database)
type Order struct {
	ID            int        `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	FullName      string     `json:"fullName"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	PostalCode    string     `json:"postalCode"`
	PaymentMethod string     `json:"paymentMethod"`
	Status        string     `json:"status"`
	ClaimCode     string     `json:"claimCode"`
	OrderDate     time.Time  `json:"orderDate"`
	CancelledAt   *time.Time `json:"cancelledDate"`
	ClaimedAt     *time.Time `json:"claimedDate"`
}

// OrderItem - order line entity
type OrderItem struct {
	ID        int             `json:"id"`
	OrderID   int             `json:"orderId"`
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// OrderItemDetail - order line joined with its product
type OrderItemDetail struct {
	OrderItem
	ProductName        string          `json:"-"`
	ProductDescription *string         `json:"-"`
	ProductPrice       decimal.Decimal `json:"-"`
	ProductImage       *string         `json:"-"`
}

// ============ REQUESTS ============

type CreateOrderRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	PaymentMethod string `json:"paymentMethod"`
}

func (r CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Phone, validation.Required),
		validation.Field(&r.Address, validation.Required),
		validation.Field(&r.City, validation.Required),
		validation.Field(&r.PostalCode, validation.Required),
		validation.Field(&r.PaymentMethod, validation.Required),
	)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateOrderStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required,
			validation.In(StatusPending, StatusReady, StatusClaimed, StatusCancelled)),
	)
}

type ClaimOrderRequest struct {
	ClaimCode string `json:"claimCode"`
}

func (r ClaimOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ClaimCode, validation.Required, validation.Length(8, 8)),
	)
}

// ============ RESPONSES ============

type OrderProduct struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       *string         `json:"image"`
}

type OrderItemView struct {
	ID        int             `json:"id"`
	ProductID int             `json:"productId"`
	Product   OrderProduct    `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// OrderView - order with its lines and the computed total
type OrderView struct {
	Order
	Total decimal.Decimal `json:"total"`
	Items []OrderItemView `json:"items"`
}

// NewOrderView sums quantity*unitPrice across the lines. Unit prices
// are the ones captured at checkout, so the total never drifts with
// later catalog edits.
func NewOrderView(order Order, items []OrderItemDetail) OrderView {
	view := OrderView{
		Order: order,
		Total: decimal.Zero,
		Items: make([]OrderItemView, 0, len(items)),
	}

	for _, item := range items {
		view.Items = append(view.Items, OrderItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Product: OrderProduct{
				ID:          item.ProductID,
				Name:        item.ProductName,
				Description: item.ProductDescription,
				Price:       item.ProductPrice,
				Image:       item.ProductImage,
			},
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
		view.Total = view.Total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return view
}
