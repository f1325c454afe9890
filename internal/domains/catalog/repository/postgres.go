package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookhaven-backend/internal/domains/catalog/model"
	"bookhaven-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresRepository - raw SQL with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - constructor
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const productColumns = `id, name, description, author, genre, publisher, isbn, language, format,
	pages, dimensions, weight, image, price, stock_quantity, total_sold, rating,
	is_available_in_store, is_bestseller, is_award_winner, is_new_release, is_coming_soon,
	on_sale, discount_percent, discount_start_at, discount_end_at, publication_date,
	created_at, updated_at`

func scanFields(p *model.Product) []interface{} {
	return []interface{}{
		&p.ID, &p.Name, &p.Description, &p.Author, &p.Genre, &p.Publisher, &p.ISBN,
		&p.Language, &p.Format, &p.Pages, &p.Dimensions, &p.Weight, &p.Image, &p.Price,
		&p.StockQuantity, &p.TotalSold, &p.Rating, &p.IsAvailableInStore, &p.IsBestseller,
		&p.IsAwardWinner, &p.IsNewRelease, &p.IsComingSoon, &p.OnSale, &p.DiscountPercent,
		&p.DiscountStartAt, &p.DiscountEndAt, &p.PublicationDate, &p.CreatedAt, &p.UpdatedAt,
	}
}

// ============================================
// QUERY COMPOSITION HELPERS
// ============================================

// buildListConditions translates a list filter into WHERE conditions
// and their args, evaluated against the given instant. Category is
// applied first, then search, genre, and the price cap; an
// unrecognized category passes through unfiltered.
func buildListConditions(f *model.ProductFilter, now time.Time) ([]string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if f.Category != "" {
		switch strings.ToLower(f.Category) {
		case model.CategoryBestsellers:
			conditions = append(conditions, "is_bestseller = true")
		case model.CategoryAwardWinners:
			conditions = append(conditions, "is_award_winner = true")
		case model.CategoryNewReleases:
			conditions = append(conditions, fmt.Sprintf(
				"(is_new_release = true OR (publication_date >= $%d AND publication_date <= $%d))",
				argIndex, argIndex+1))
			args = append(args, now.AddDate(0, -3, 0), now)
			argIndex += 2
		case model.CategoryNewArrivals:
			conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIndex))
			args = append(args, now.AddDate(0, -1, 0))
			argIndex++
		case model.CategoryComingSoon:
			conditions = append(conditions, "is_coming_soon = true")
		case model.CategoryDeals:
			conditions = append(conditions, "(on_sale = true AND discount_percent > 0)")
		default:
			logger.Warn("Unknown category, no filter applied", map[string]interface{}{
				"category": f.Category,
			})
		}
	}

	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name LIKE $%d OR description LIKE $%d OR author LIKE $%d OR isbn LIKE $%d)",
			argIndex, argIndex, argIndex, argIndex))
		args = append(args, "%"+f.Search+"%")
		argIndex++
	}

	// "all" disables the genre filter; any other value is an exact match
	if f.Genre != "" && !strings.EqualFold(f.Genre, "all") {
		conditions = append(conditions, fmt.Sprintf("genre = $%d", argIndex))
		args = append(args, f.Genre)
		argIndex++
	}

	if f.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *f.MaxPrice)
		argIndex++
	}

	return conditions, args
}

// buildSearchConditions is the storefront search variant: the query
// matches genre too, and a lower price bound is supported.
func buildSearchConditions(req model.SearchProductsRequest) ([]string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if req.Query != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name LIKE $%d OR description LIKE $%d OR author LIKE $%d OR genre LIKE $%d OR isbn LIKE $%d)",
			argIndex, argIndex, argIndex, argIndex, argIndex))
		args = append(args, "%"+req.Query+"%")
		argIndex++
	}

	if req.Genre != "" && !strings.EqualFold(req.Genre, "all") {
		conditions = append(conditions, fmt.Sprintf("genre = $%d", argIndex))
		args = append(args, req.Genre)
		argIndex++
	}

	if req.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *req.MinPrice)
		argIndex++
	}

	if req.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *req.MaxPrice)
		argIndex++
	}

	return conditions, args
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}

// orderClause maps a sort key to an ORDER BY expression. Every key
// carries an id tie-break so pagination is stable; unrecognized keys
// fall back to name.
func orderClause(sort string) string {
	switch sort {
	case model.SortPriceAsc:
		return "price ASC, id ASC"
	case model.SortPriceDesc:
		return "price DESC, id ASC"
	case model.SortPopularity:
		return "total_sold DESC, id ASC"
	case model.SortNewest:
		return "publication_date DESC NULLS LAST, id ASC"
	default:
		return "name ASC, id ASC"
	}
}

// ============================================
// LIST / SEARCH
// ============================================

func (r *postgresRepository) List(ctx context.Context, filter *model.ProductFilter, now time.Time) ([]model.Product, int, error) {
	conditions, args := buildListConditions(filter, now)
	where := whereClause(conditions)

	// Count on the fully filtered, unsorted, unpaginated set
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM products %s`, where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderClause(filter.Sort), len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	products, err := r.executeListQuery(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *postgresRepository) Search(ctx context.Context, req model.SearchProductsRequest) ([]model.Product, error) {
	conditions, args := buildSearchConditions(req)
	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY %s`,
		productColumns, whereClause(conditions), orderClause(req.Sort))

	return r.executeListQuery(ctx, query, args)
}

func (r *postgresRepository) executeListQuery(ctx context.Context, query string, args []interface{}) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products query failed: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(scanFields(&p)...); err != nil {
			return nil, fmt.Errorf("scan product failed: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

// ============================================
// CRUD
// ============================================

func (r *postgresRepository) GetByID(ctx context.Context, id int) (*model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(scanFields(&p)...)
	if err == pgx.ErrNoRows {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// queryRower is satisfied by both *pgxpool.Pool and pgx.Tx, so the
// insert is shared between single create and bulk import.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const insertProductQuery = `
	INSERT INTO products (
		name, description, author, genre, publisher, isbn, language, format,
		pages, dimensions, weight, image, price, stock_quantity, total_sold, rating,
		is_available_in_store, is_bestseller, is_award_winner, is_new_release,
		is_coming_soon, on_sale, discount_percent, discount_start_at, discount_end_at,
		publication_date, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8,
		$9, $10, $11, $12, $13, $14, $15, $16,
		$17, $18, $19, $20,
		$21, $22, $23, $24, $25,
		$26, $27
	)
	RETURNING id`

func insertProduct(ctx context.Context, q queryRower, p *model.Product) error {
	err := q.QueryRow(ctx, insertProductQuery,
		p.Name, p.Description, p.Author, p.Genre, p.Publisher, p.ISBN, p.Language, p.Format,
		p.Pages, p.Dimensions, p.Weight, p.Image, p.Price, p.StockQuantity, p.TotalSold, p.Rating,
		p.IsAvailableInStore, p.IsBestseller, p.IsAwardWinner, p.IsNewRelease,
		p.IsComingSoon, p.OnSale, p.DiscountPercent, p.DiscountStartAt, p.DiscountEndAt,
		p.PublicationDate, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Product) error {
	return insertProduct(ctx, r.pool, p)
}

func (r *postgresRepository) CreateTx(ctx context.Context, tx pgx.Tx, p *model.Product) error {
	return insertProduct(ctx, tx, p)
}

func (r *postgresRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, author = $3, genre = $4, publisher = $5,
		    isbn = $6, language = $7, format = $8, pages = $9, dimensions = $10,
		    weight = $11, image = $12, price = $13, stock_quantity = $14,
		    is_available_in_store = $15, is_bestseller = $16, is_award_winner = $17,
		    is_new_release = $18, is_coming_soon = $19, on_sale = $20,
		    discount_percent = $21, discount_start_at = $22, discount_end_at = $23,
		    publication_date = $24, updated_at = $25
		WHERE id = $26
	`

	result, err := r.pool.Exec(ctx, query,
		p.Name, p.Description, p.Author, p.Genre, p.Publisher,
		p.ISBN, p.Language, p.Format, p.Pages, p.Dimensions,
		p.Weight, p.Image, p.Price, p.StockQuantity,
		p.IsAvailableInStore, p.IsBestseller, p.IsAwardWinner,
		p.IsNewRelease, p.IsComingSoon, p.OnSale,
		p.DiscountPercent, p.DiscountStartAt, p.DiscountEndAt,
		p.PublicationDate, p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *postgresRepository) SetImage(ctx context.Context, id int, imageURL string) error {
	result, err := r.pool.Exec(ctx, `UPDATE products SET image = $1 WHERE id = $2`, imageURL, id)
	if err != nil {
		return fmt.Errorf("failed to set product image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}
