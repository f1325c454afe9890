package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrBannerNotFound = errors.New("banner not found")

// Banner - promotional banner shown on the storefront. Visibility is
// the is_active flag intersected with the optional start/end window.
type Banner struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Subtitle     *string    `json:"subtitle"`
	ImageURL     string     `json:"imageUrl"`
	LinkURL      *string    `json:"linkUrl"`
	IsActive     bool       `json:"isActive"`
	DisplayOrder int        `json:"displayOrder"`
	StartAt      *time.Time `json:"startDate"`
	EndAt        *time.Time `json:"endDate"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

type BannerForm struct {
	Title        string     `json:"title"`
	Subtitle     *string    `json:"subtitle"`
	ImageURL     string     `json:"imageUrl"`
	LinkURL      *string    `json:"linkUrl"`
	IsActive     bool       `json:"isActive"`
	DisplayOrder int        `json:"displayOrder"`
	StartAt      *time.Time `json:"startDate"`
	EndAt        *time.Time `json:"endDate"`
}

func (f BannerForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&f.ImageURL, validation.Required),
		validation.Field(&f.DisplayOrder, validation.Min(0)),
		validation.Field(&f.EndAt, validation.By(f.endAfterStart)),
	)
}

func (f BannerForm) endAfterStart(interface{}) error {
	if f.StartAt != nil && f.EndAt != nil && !f.EndAt.After(*f.StartAt) {
		return errors.New("must be after startDate")
	}
	return nil
}
