package repository

import (
	"context"
	"fmt"
	"time"

	"bookhaven-backend/internal/domains/banner/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface - banner persistence operations
type RepositoryInterface interface {
	ListActive(ctx context.Context, now time.Time) ([]model.Banner, error)
	ListAll(ctx context.Context) ([]model.Banner, error)
	GetByID(ctx context.Context, id int) (*model.Banner, error)
	Create(ctx context.Context, banner *model.Banner) error
	Update(ctx context.Context, banner *model.Banner) error
	Delete(ctx context.Context, id int) error
	ExpireOutdated(ctx context.Context, now time.Time) (int, error)
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const bannerColumns = `id, title, subtitle, image_url, link_url, is_active, display_order, start_at, end_at, created_at, updated_at`

func scanBanner(row pgx.Row, b *model.Banner) error {
	return row.Scan(
		&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.LinkURL,
		&b.IsActive, &b.DisplayOrder, &b.StartAt, &b.EndAt,
		&b.CreatedAt, &b.UpdatedAt,
	)
}

func (r *postgresRepository) collectBanners(ctx context.Context, query string, args ...interface{}) ([]model.Banner, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query banners: %w", err)
	}
	defer rows.Close()

	banners := make([]model.Banner, 0)
	for rows.Next() {
		var b model.Banner
		if err := scanBanner(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan banner: %w", err)
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func (r *postgresRepository) ListActive(ctx context.Context, now time.Time) ([]model.Banner, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM banners
		WHERE is_active = true
		  AND (start_at IS NULL OR start_at <= $1)
		  AND (end_at IS NULL OR end_at >= $1)
		ORDER BY display_order ASC, id ASC`, bannerColumns)

	return r.collectBanners(ctx, query, now)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Banner, error) {
	query := fmt.Sprintf(`SELECT %s FROM banners ORDER BY display_order ASC, id ASC`, bannerColumns)
	return r.collectBanners(ctx, query)
}

func (r *postgresRepository) GetByID(ctx context.Context, id int) (*model.Banner, error) {
	query := fmt.Sprintf(`SELECT %s FROM banners WHERE id = $1`, bannerColumns)

	var b model.Banner
	err := scanBanner(r.pool.QueryRow(ctx, query, id), &b)
	if err == pgx.ErrNoRows {
		return nil, model.ErrBannerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}
	return &b, nil
}

func (r *postgresRepository) Create(ctx context.Context, banner *model.Banner) error {
	query := `
		INSERT INTO banners (title, subtitle, image_url, link_url, is_active, display_order, start_at, end_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		banner.Title, banner.Subtitle, banner.ImageURL, banner.LinkURL,
		banner.IsActive, banner.DisplayOrder, banner.StartAt, banner.EndAt,
		banner.CreatedAt,
	).Scan(&banner.ID)
	if err != nil {
		return fmt.Errorf("failed to insert banner: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, banner *model.Banner) error {
	query := `
		UPDATE banners SET
			title = $1, subtitle = $2, image_url = $3, link_url = $4,
			is_active = $5, display_order = $6, start_at = $7, end_at = $8,
			updated_at = $9
		WHERE id = $10`

	tag, err := r.pool.Exec(ctx, query,
		banner.Title, banner.Subtitle, banner.ImageURL, banner.LinkURL,
		banner.IsActive, banner.DisplayOrder, banner.StartAt, banner.EndAt,
		banner.UpdatedAt, banner.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update banner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBannerNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBannerNotFound
	}
	return nil
}

// ExpireOutdated deactivates banners whose end date has passed.
// Returns the number of banners swept.
func (r *postgresRepository) ExpireOutdated(ctx context.Context, now time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE banners SET is_active = false, updated_at = $1
		 WHERE is_active = true AND end_at IS NOT NULL AND end_at < $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire banners: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
