package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrNotPurchased    = errors.New("product was never purchased by this user")
	ErrAlreadyReviewed = errors.New("product already reviewed by this user")
	ErrNotReviewOwner  = errors.New("review belongs to another user")
)

// Review - domain entity (from database)
type Review struct {
	ID        int       `json:"id"`
	ProductID int       `json:"productId"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateReviewRequest struct {
	ProductID int    `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, validation.Min(1)),
		validation.Field(&r.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&r.Comment, validation.Length(0, 2000)),
	)
}
