package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Catalog categories. Each maps to a predicate over products; anything
// else passes through unfiltered (logged, not rejected).
const (
	CategoryBestsellers  = "bestsellers"
	CategoryAwardWinners = "award-winners"
	CategoryNewReleases  = "new-releases"
	CategoryNewArrivals  = "new-arrivals"
	CategoryComingSoon   = "coming-soon"
	CategoryDeals        = "deals"
)

// Sort keys. Unrecognized values fall back to SortName.
const (
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortName       = "name"
	SortPopularity = "popularity"
	SortNewest     = "newest"
)

// Product - domain entity (from database)
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Author      *string `json:"author"`
	Genre       *string `json:"genre"`
	Publisher   *string `json:"publisher"`
	ISBN        *string `json:"isbn"`
	Language    *string `json:"language"`
	Format      *string `json:"format"`
	Pages       *int    `json:"pages"`
	Dimensions  *string `json:"dimensions"`

	Weight decimal.NullDecimal `json:"weight"`
	Image  *string             `json:"image"`

	// Commerce
	Price              decimal.Decimal `json:"price"`
	StockQuantity      int             `json:"stockQuantity"`
	TotalSold          int             `json:"totalSold"`
	Rating             float64         `json:"rating"`
	IsAvailableInStore bool            `json:"isAvailableInStore"`

	// Promotional flags; independent, not mutually exclusive
	IsBestseller  bool `json:"isBestseller"`
	IsAwardWinner bool `json:"isAwardWinner"`
	IsNewRelease  bool `json:"isNewRelease"`
	IsComingSoon  bool `json:"isComingSoon"`
	OnSale        bool `json:"onSale"`

	// Discount window
	DiscountPercent decimal.NullDecimal `json:"discountPercent"`
	DiscountStartAt *time.Time          `json:"discountStartDate"`
	DiscountEndAt   *time.Time          `json:"discountEndDate"`

	PublicationDate *time.Time `json:"publicationDate"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt"`
}
