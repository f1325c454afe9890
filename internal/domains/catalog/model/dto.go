package model

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ============ REQUESTS ============

// ListProductsRequest - query parameters for GET /api/v1/products
type ListProductsRequest struct {
	Page     int
	Limit    int
	Category string
	Search   string
	Genre    string
	MaxPrice *decimal.Decimal
	Sort     string
}

// SearchProductsRequest - query parameters for GET /api/v1/products/search.
// A distinct, unpaginated contract kept for compatibility with the
// storefront search box.
type SearchProductsRequest struct {
	Query    string
	Genre    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
}

// ProductFilter - repository-level filter built from a list request
type ProductFilter struct {
	Category string
	Search   string
	Genre    string
	MaxPrice *decimal.Decimal
	Sort     string
	Limit    int
	Offset   int
}

// ProductForm - multipart form fields for create/update. All values
// arrive as strings; the handler parses them with shared/utils before
// validation.
type ProductForm struct {
	Name               string
	Description        *string
	Author             *string
	Genre              *string
	Publisher          *string
	ISBN               *string
	Language           *string
	Format             *string
	Pages              *int
	Dimensions         *string
	Weight             decimal.NullDecimal
	Price              decimal.Decimal
	StockQuantity      int
	IsAvailableInStore bool
	IsBestseller       bool
	IsAwardWinner      bool
	IsNewRelease       bool
	IsComingSoon       bool
	OnSale             bool
	DiscountPercent    decimal.NullDecimal
	DiscountStartAt    *time.Time
	DiscountEndAt      *time.Time
	PublicationDate    *time.Time
	// Categories is an optional JSON array of category slugs; each
	// recognized slug also raises the matching promotional flag.
	Categories string
}

func (f ProductForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 500)),
		validation.Field(&f.Price, validation.By(nonNegativeDecimal)),
		validation.Field(&f.StockQuantity, validation.Min(0)),
		validation.Field(&f.DiscountPercent, validation.By(percentRange)),
	)
}

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || d.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

func percentRange(value interface{}) error {
	d, ok := value.(decimal.NullDecimal)
	if !ok {
		return validation.NewError("validation_percent", "discountPercent must be a number")
	}
	if !d.Valid {
		return nil
	}
	if d.Decimal.IsNegative() || d.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return validation.NewError("validation_percent", "discountPercent must be between 0 and 100")
	}
	return nil
}

// ApplyCategories raises promotional flags named in the optional JSON
// categories list. Unparseable input is ignored, matching the lenient
// handling the storefront admin form relies on.
func (f *ProductForm) ApplyCategories() {
	if f.Categories == "" {
		return
	}
	var categories []string
	if err := json.Unmarshal([]byte(f.Categories), &categories); err != nil {
		return
	}
	for _, c := range categories {
		switch c {
		case CategoryBestsellers:
			f.IsBestseller = true
		case CategoryAwardWinners:
			f.IsAwardWinner = true
		case CategoryNewReleases:
			f.IsNewRelease = true
		case CategoryComingSoon:
			f.IsComingSoon = true
		case CategoryDeals:
			f.OnSale = true
		}
	}
}

// ============ RESPONSES ============

// ProductView - list projection with the computed effective price
type ProductView struct {
	ID              int                 `json:"id"`
	Name            string              `json:"name"`
	Description     *string             `json:"description"`
	Image           *string             `json:"image"`
	Price           decimal.Decimal     `json:"price"`
	Author          *string             `json:"author"`
	Genre           *string             `json:"genre"`
	Publisher       *string             `json:"publisher"`
	PublicationDate *time.Time          `json:"publicationDate"`
	IsAwardWinner   bool                `json:"isAwardWinner"`
	IsBestseller    bool                `json:"isBestseller"`
	IsNewRelease    bool                `json:"isNewRelease"`
	IsComingSoon    bool                `json:"isComingSoon"`
	DiscountPercent decimal.NullDecimal `json:"discountPercent"`
	DiscountStartAt *time.Time          `json:"discountStartDate"`
	DiscountEndAt   *time.Time          `json:"discountEndDate"`
	OnSale          bool                `json:"onSale"`
	FinalPrice      decimal.Decimal     `json:"finalPrice"`
	TotalSold       int                 `json:"totalSold"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// ProductDetailView - single-item projection; extends the list view
// with the remaining descriptive and commerce fields plus daysLeft.
type ProductDetailView struct {
	ProductView
	ISBN               *string             `json:"isbn"`
	Language           *string             `json:"language"`
	Format             *string             `json:"format"`
	Pages              *int                `json:"pages"`
	Dimensions         *string             `json:"dimensions"`
	Weight             decimal.NullDecimal `json:"weight"`
	DaysLeft           *int                `json:"daysLeft"`
	StockQuantity      int                 `json:"stockQuantity"`
	IsAvailableInStore bool                `json:"isAvailableInStore"`
	Rating             float64             `json:"rating"`
}

// ListProductsResponse - pagination envelope for GET /api/v1/products
type ListProductsResponse struct {
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
	Category   string        `json:"category"`
	Data       []ProductView `json:"data"`
}

// NewProductView projects a product for the list endpoint, evaluating
// the discount window at the given instant.
func NewProductView(p *Product, now time.Time) ProductView {
	return ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Image:           p.Image,
		Price:           p.Price,
		Author:          p.Author,
		Genre:           p.Genre,
		Publisher:       p.Publisher,
		PublicationDate: p.PublicationDate,
		IsAwardWinner:   p.IsAwardWinner,
		IsBestseller:    p.IsBestseller,
		IsNewRelease:    p.IsNewRelease,
		IsComingSoon:    p.IsComingSoon,
		DiscountPercent: p.DiscountPercent,
		DiscountStartAt: p.DiscountStartAt,
		DiscountEndAt:   p.DiscountEndAt,
		OnSale:          p.OnSale,
		FinalPrice:      p.FinalPrice(now),
		TotalSold:       p.TotalSold,
		CreatedAt:       p.CreatedAt,
	}
}

// NewProductDetailView projects a product for the single-item endpoint.
func NewProductDetailView(p *Product, now time.Time) ProductDetailView {
	return ProductDetailView{
		ProductView:        NewProductView(p, now),
		ISBN:               p.ISBN,
		Language:           p.Language,
		Format:             p.Format,
		Pages:              p.Pages,
		Dimensions:         p.Dimensions,
		Weight:             p.Weight,
		DaysLeft:           p.DaysLeft(now),
		StockQuantity:      p.StockQuantity,
		IsAvailableInStore: p.IsAvailableInStore,
		Rating:             p.Rating,
	}
}

// TotalPages computes ceil(total/limit); zero items means zero pages.
func TotalPages(total, limit int) int {
	if total == 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
