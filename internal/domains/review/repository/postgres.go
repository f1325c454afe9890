package repository

import (
	"context"
	"errors"
	"fmt"

	"bookhaven-backend/internal/domains/review/model"
	"bookhaven-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// RepositoryInterface - review persistence operations
type RepositoryInterface interface {
	ListByProduct(ctx context.Context, productID int) ([]model.Review, error)
	GetByID(ctx context.Context, id int) (*model.Review, error)

	// HasClaimedPurchase reports whether the user has a claimed order
	// containing the product.
	HasClaimedPurchase(ctx context.Context, userID uuid.UUID, productID int) (bool, error)

	// Create inserts the review and recomputes the product's mean
	// rating in the same transaction. The (user, product) unique
	// constraint maps to ErrAlreadyReviewed.
	Create(ctx context.Context, review *model.Review) error

	// Delete removes the review and recomputes the mean the same way;
	// the last deletion resets the rating to 0.
	Delete(ctx context.Context, id, productID int) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) ListByProduct(ctx context.Context, productID int) ([]model.Review, error) {
	query := `
		SELECT id, product_id, user_id, user_name, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("reviews query failed: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var rv model.Review
		err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Comment, &rv.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan review failed: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reviews, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int) (*model.Review, error) {
	query := `
		SELECT id, product_id, user_id, user_name, rating, comment, created_at
		FROM reviews WHERE id = $1`

	var rv model.Review
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, model.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &rv, nil
}

func (r *postgresRepository) HasClaimedPurchase(ctx context.Context, userID uuid.UUID, productID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.user_id = $1 AND oi.product_id = $2 AND o.status = 'claimed'
		)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check purchase: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Create(ctx context.Context, review *model.Review) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO reviews (product_id, user_id, user_name, rating, comment, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			review.ProductID, review.UserID, review.UserName, review.Rating, review.Comment, review.CreatedAt,
		).Scan(&review.ID)
		if err != nil {
			return fmt.Errorf("failed to insert review: %w", err)
		}

		return recomputeRating(ctx, tx, review.ProductID)
	})

	if isUniqueViolation(err) {
		return model.ErrAlreadyReviewed
	}
	return err
}

func (r *postgresRepository) Delete(ctx context.Context, id, productID int) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		if result.RowsAffected() == 0 {
			return model.ErrReviewNotFound
		}

		return recomputeRating(ctx, tx, productID)
	})
}

// recomputeRating overwrites the denormalized mean from the surviving
// reviews, inside the caller's transaction so the insert or delete and
// the new mean land together. The mean itself is model.MeanRating, so
// the rule (including the reset to 0 after the last deletion) lives in
// one tested place.
func recomputeRating(ctx context.Context, tx pgx.Tx, productID int) error {
	rows, err := tx.Query(ctx, `SELECT rating FROM reviews WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("failed to load ratings: %w", err)
	}
	defer rows.Close()

	ratings := []int{}
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows error: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE products SET rating = $2 WHERE id = $1`,
		productID, model.MeanRating(ratings))
	if err != nil {
		return fmt.Errorf("failed to recompute rating: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
