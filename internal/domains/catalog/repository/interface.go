package repository

import (
	"context"
	"time"

	"bookhaven-backend/internal/domains/catalog/model"

	"github.com/jackc/pgx/v5"
)

// RepositoryInterface - catalog persistence operations
type RepositoryInterface interface {
	// List returns the filtered page plus the total count computed
	// before sorting and pagination.
	List(ctx context.Context, filter *model.ProductFilter, now time.Time) ([]model.Product, int, error)

	// Search is the unpaginated storefront search contract.
	Search(ctx context.Context, req model.SearchProductsRequest) ([]model.Product, error)

	GetByID(ctx context.Context, id int) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id int) error

	// SetImage updates only the stored image URL.
	SetImage(ctx context.Context, id int, imageURL string) error

	// CreateTx inserts a product inside an existing transaction; bulk
	// import uses it so a failed row rolls back the whole file.
	CreateTx(ctx context.Context, tx pgx.Tx, p *model.Product) error
}
