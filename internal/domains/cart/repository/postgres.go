package repository

import (
	"context"
	"fmt"
	"time"

	"bookhaven-backend/internal/domains/cart/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface - cart persistence operations
type RepositoryInterface interface {
	GetItems(ctx context.Context, userID uuid.UUID) ([]model.CartItemDetail, error)

	// AddItem inserts or increments in one statement, so two
	// concurrent adds for the same user and product both land.
	AddItem(ctx context.Context, userID uuid.UUID, productID, quantity int, now time.Time) error

	UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID, quantity int, now time.Time) error
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID int) error
	Clear(ctx context.Context, userID uuid.UUID) error

	// GetItemsTx reads the cart inside a transaction; order placement
	// uses it so checkout sees a consistent snapshot.
	GetItemsTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]model.CartItemDetail, error)
	ClearTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const cartItemsQuery = `
	SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.unit_price,
	       ci.created_at, ci.updated_at,
	       p.name, p.description, p.price, p.image
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
	WHERE ci.user_id = $1
	ORDER BY ci.created_at ASC, ci.id ASC`

func (r *postgresRepository) GetItems(ctx context.Context, userID uuid.UUID) ([]model.CartItemDetail, error) {
	rows, err := r.pool.Query(ctx, cartItemsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("cart query failed: %w", err)
	}
	defer rows.Close()
	return collectCartItems(rows)
}

func (r *postgresRepository) GetItemsTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]model.CartItemDetail, error) {
	rows, err := tx.Query(ctx, cartItemsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("cart query failed: %w", err)
	}
	defer rows.Close()
	return collectCartItems(rows)
}

func collectCartItems(rows pgx.Rows) ([]model.CartItemDetail, error) {
	items := []model.CartItemDetail{}
	for rows.Next() {
		var item model.CartItemDetail
		err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.UnitPrice,
			&item.CreatedAt, &item.UpdatedAt,
			&item.ProductName, &item.ProductDescription, &item.ProductPrice, &item.ProductImage,
		)
		if err != nil {
			return nil, fmt.Errorf("scan cart item failed: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}

// addItemQuery is a single atomic statement: sourcing the row from
// products doubles as the existence check (zero rows means the product
// id is unknown), and the conflict branch increments in place so two
// concurrent adds can never lose an increment.
const addItemQuery = `
	INSERT INTO cart_items (user_id, product_id, quantity, unit_price, created_at, updated_at)
	SELECT $1, p.id, $3, p.price, $4, $4
	FROM products p
	WHERE p.id = $2
	ON CONFLICT (user_id, product_id)
	DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`

func (r *postgresRepository) AddItem(ctx context.Context, userID uuid.UUID, productID, quantity int, now time.Time) error {
	result, err := r.pool.Exec(ctx, addItemQuery, userID, productID, quantity, now)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID, quantity int, now time.Time) error {
	query := `UPDATE cart_items SET quantity = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.pool.Exec(ctx, query, quantity, now, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}
	return nil
}

func (r *postgresRepository) RemoveItem(ctx context.Context, userID uuid.UUID, itemID int) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}
	return nil
}

func (r *postgresRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (r *postgresRepository) ClearTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
