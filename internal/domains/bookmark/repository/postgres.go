package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookhaven-backend/internal/domains/bookmark/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// RepositoryInterface - bookmark persistence operations
type RepositoryInterface interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.BookmarkDetail, error)
	Add(ctx context.Context, userID uuid.UUID, productID int, now time.Time) (*model.Bookmark, error)
	Remove(ctx context.Context, userID uuid.UUID, productID int) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const bookmarksQuery = `
	SELECT
		b.id, b.user_id, b.product_id, b.created_at,
		p.id, p.name, p.author, p.genre, p.image, p.price, p.rating,
		p.on_sale, p.discount_percent, p.discount_start_at, p.discount_end_at
	FROM bookmarks b
	JOIN products p ON p.id = b.product_id
	WHERE b.user_id = $1
	ORDER BY b.created_at DESC, b.id DESC`

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.BookmarkDetail, error) {
	rows, err := r.pool.Query(ctx, bookmarksQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}
	defer rows.Close()

	details := make([]model.BookmarkDetail, 0)
	for rows.Next() {
		var d model.BookmarkDetail
		err := rows.Scan(
			&d.ID, &d.UserID, &d.ProductID, &d.CreatedAt,
			&d.Product.ID, &d.Product.Name, &d.Product.Author, &d.Product.Genre,
			&d.Product.Image, &d.Product.Price, &d.Product.Rating,
			&d.Product.OnSale, &d.Product.DiscountPercent,
			&d.Product.DiscountStartAt, &d.Product.DiscountEndAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// Add inserts via a SELECT from products so a missing product yields
// zero rows instead of a foreign key error.
func (r *postgresRepository) Add(ctx context.Context, userID uuid.UUID, productID int, now time.Time) (*model.Bookmark, error) {
	query := `
		INSERT INTO bookmarks (user_id, product_id, created_at)
		SELECT $1, p.id, $3
		FROM products p
		WHERE p.id = $2
		RETURNING id, user_id, product_id, created_at`

	var b model.Bookmark
	err := r.pool.QueryRow(ctx, query, userID, productID, now).
		Scan(&b.ID, &b.UserID, &b.ProductID, &b.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, model.ErrBookmarkExists
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to insert bookmark: %w", err)
	}
	return &b, nil
}

func (r *postgresRepository) Remove(ctx context.Context, userID uuid.UUID, productID int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM bookmarks WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookmarkNotFound
	}
	return nil
}
