package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookhaven-backend/internal/domains/order/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface - order persistence operations
type RepositoryInterface interface {
	// CreateTx inserts the order and its lines inside the checkout
	// transaction.
	CreateTx(ctx context.Context, tx pgx.Tx, order *model.Order, items []model.OrderItem) error

	GetByID(ctx context.Context, id int) (*model.Order, []model.OrderItemDetail, error)
	GetByClaimCode(ctx context.Context, code string) (*model.Order, error)

	List(ctx context.Context, status string) ([]model.Order, map[int][]model.OrderItemDetail, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, map[int][]model.OrderItemDetail, error)

	// UpdateStatus stamps claimed_at / cancelled_at when the new
	// status warrants it.
	UpdateStatus(ctx context.Context, id int, status string, now time.Time) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const orderColumns = `id, user_id, full_name, email, phone, address, city, postal_code,
	payment_method, status, claim_code, order_date, cancelled_at, claimed_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.UserID, &o.FullName, &o.Email, &o.Phone, &o.Address, &o.City,
		&o.PostalCode, &o.PaymentMethod, &o.Status, &o.ClaimCode, &o.OrderDate,
		&o.CancelledAt, &o.ClaimedAt,
	)
}

func (r *postgresRepository) CreateTx(ctx context.Context, tx pgx.Tx, order *model.Order, items []model.OrderItem) error {
	query := `
		INSERT INTO orders (user_id, full_name, email, phone, address, city, postal_code,
		                    payment_method, status, claim_code, order_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err := tx.QueryRow(ctx, query,
		order.UserID, order.FullName, order.Email, order.Phone, order.Address,
		order.City, order.PostalCode, order.PaymentMethod, order.Status,
		order.ClaimCode, order.OrderDate,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
		err := tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			items[i].OrderID, items[i].ProductID, items[i].Quantity, items[i].UnitPrice,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int) (*model.Order, []model.OrderItemDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, id), &order)
	if err == pgx.ErrNoRows {
		return nil, nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get order: %w", err)
	}

	itemsByOrder, err := r.loadItems(ctx, []int32{int32(order.ID)})
	if err != nil {
		return nil, nil, err
	}

	return &order, itemsByOrder[order.ID], nil
}

func (r *postgresRepository) GetByClaimCode(ctx context.Context, code string) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE claim_code = $1`, orderColumns)

	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, code), &order)
	if err == pgx.ErrNoRows {
		return nil, model.ErrClaimCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order by claim code: %w", err)
	}

	return &order, nil
}

func (r *postgresRepository) List(ctx context.Context, status string) ([]model.Order, map[int][]model.OrderItemDetail, error) {
	conditions := []string{}
	args := []interface{}{}

	// "all" (or absence) disables the status filter
	if status != "" && !strings.EqualFold(status, model.StatusAll) {
		conditions = append(conditions, "LOWER(status) = LOWER($1)")
		args = append(args, status)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM orders %s ORDER BY order_date DESC, id DESC`, orderColumns, where)
	return r.queryOrders(ctx, query, args)
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, map[int][]model.OrderItemDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id = $1 ORDER BY order_date DESC, id DESC`, orderColumns)
	return r.queryOrders(ctx, query, []interface{}{userID})
}

func (r *postgresRepository) queryOrders(ctx context.Context, query string, args []interface{}) ([]model.Order, map[int][]model.OrderItemDetail, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("orders query failed: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	ids := []int32{}
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, nil, fmt.Errorf("scan order failed: %w", err)
		}
		orders = append(orders, o)
		ids = append(ids, int32(o.ID))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows error: %w", err)
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	return orders, items, nil
}

// loadItems fetches the joined lines for a batch of orders in one
// round trip.
func (r *postgresRepository) loadItems(ctx context.Context, orderIDs []int32) (map[int][]model.OrderItemDetail, error) {
	itemsByOrder := map[int][]model.OrderItemDetail{}
	if len(orderIDs) == 0 {
		return itemsByOrder, nil
	}

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price,
		       p.name, p.description, p.price, p.image
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("order items query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItemDetail
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice,
			&item.ProductName, &item.ProductDescription, &item.ProductPrice, &item.ProductImage,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item failed: %w", err)
		}
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return itemsByOrder, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id int, status string, now time.Time) error {
	query := `
		UPDATE orders
		SET status = $1,
		    claimed_at = CASE WHEN $1 = 'claimed' THEN $2 ELSE claimed_at END,
		    cancelled_at = CASE WHEN $1 = 'cancelled' THEN $2 ELSE cancelled_at END
		WHERE id = $3`

	result, err := r.pool.Exec(ctx, query, status, now, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}
