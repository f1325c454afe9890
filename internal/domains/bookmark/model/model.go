package model

import (
	"errors"
	"time"

	catalogmodel "bookhaven-backend/internal/domains/catalog/model"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrBookmarkExists   = errors.New("bookmark already exists")
	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrProductNotFound  = errors.New("product not found")
)

// Bookmark - domain entity (from database)
type Bookmark struct {
	ID        int       `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ProductID int       `json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookmarkDetail carries the joined product row alongside the bookmark.
type BookmarkDetail struct {
	Bookmark
	Product catalogmodel.Product `json:"-"`
}

type AddBookmarkRequest struct {
	ProductID int `json:"productId"`
}

func (r AddBookmarkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, validation.Min(1)),
	)
}

// BookmarkProduct is the product summary embedded in a bookmark view.
type BookmarkProduct struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Author     *string         `json:"author"`
	Genre      *string         `json:"genre"`
	Image      *string         `json:"image"`
	Price      decimal.Decimal `json:"price"`
	OnSale     bool            `json:"onSale"`
	FinalPrice decimal.Decimal `json:"finalPrice"`
	Rating     float64         `json:"rating"`
}

type BookmarkView struct {
	ID        int             `json:"id"`
	ProductID int             `json:"productId"`
	CreatedAt time.Time       `json:"createdAt"`
	Product   BookmarkProduct `json:"product"`
}

// NewBookmarkView prices the embedded product at the given instant.
func NewBookmarkView(d BookmarkDetail, now time.Time) BookmarkView {
	p := d.Product
	return BookmarkView{
		ID:        d.ID,
		ProductID: d.ProductID,
		CreatedAt: d.CreatedAt,
		Product: BookmarkProduct{
			ID:         p.ID,
			Name:       p.Name,
			Author:     p.Author,
			Genre:      p.Genre,
			Image:      p.Image,
			Price:      p.Price,
			OnSale:     p.OnSale,
			FinalPrice: p.FinalPrice(now),
			Rating:     p.Rating,
		},
	}
}
