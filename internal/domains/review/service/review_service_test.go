package service

import (
	"context"
	"testing"
	"time"

	"bookhaven-backend/internal/domains/review/model"
	usermodel "bookhaven-backend/internal/domains/user/model"
	"bookhaven-backend/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type stubReviewRepo struct {
	reviews   map[int]*model.Review
	purchased bool
	createErr error
	created   *model.Review
	deleted   bool
}

func (r *stubReviewRepo) ListByProduct(_ context.Context, productID int) ([]model.Review, error) {
	out := make([]model.Review, 0)
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) GetByID(_ context.Context, id int) (*model.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, model.ErrReviewNotFound
	}
	return rv, nil
}

func (r *stubReviewRepo) HasClaimedPurchase(_ context.Context, _ uuid.UUID, _ int) (bool, error) {
	return r.purchased, nil
}

func (r *stubReviewRepo) Create(_ context.Context, review *model.Review) error {
	if r.createErr != nil {
		return r.createErr
	}
	review.ID = 1
	r.created = review
	return nil
}

func (r *stubReviewRepo) Delete(_ context.Context, _ int, _ int) error {
	r.deleted = true
	return nil
}

type stubUserRepo struct {
	user *usermodel.User
}

func (r *stubUserRepo) GetByID(_ context.Context, _ uuid.UUID) (*usermodel.User, error) {
	return r.user, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, _ string) (*usermodel.User, error) {
	return r.user, nil
}

func (r *stubUserRepo) Create(_ context.Context, _ *usermodel.User) error { return nil }

type noopCache struct{}

func (noopCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) { return false, nil }
func (noopCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}
func (noopCache) Delete(_ context.Context, _ ...string) error     { return nil }
func (noopCache) DeletePattern(_ context.Context, _ string) error { return nil }
func (noopCache) Ping(_ context.Context) error                    { return nil }

func newTestService(repo *stubReviewRepo) ServiceInterface {
	userRepo := &stubUserRepo{user: &usermodel.User{ID: uuid.New(), FullName: "Jane Reader"}}
	return NewService(repo, userRepo, noopCache{}, clock.Fixed{T: testNow})
}

func TestCreateReviewRequiresClaimedPurchase(t *testing.T) {
	repo := &stubReviewRepo{purchased: false}
	svc := newTestService(repo)

	_, err := svc.CreateReview(context.Background(), uuid.New(), model.CreateReviewRequest{
		ProductID: 1, Rating: 5, Comment: "great",
	})

	assert.ErrorIs(t, err, model.ErrNotPurchased)
	assert.Nil(t, repo.created)
}

func TestCreateReviewStampsReviewerName(t *testing.T) {
	repo := &stubReviewRepo{purchased: true}
	svc := newTestService(repo)

	review, err := svc.CreateReview(context.Background(), uuid.New(), model.CreateReviewRequest{
		ProductID: 3, Rating: 4, Comment: "solid read",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Reader", review.UserName)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, testNow, review.CreatedAt)
}

func TestCreateReviewDuplicateSurfacesConflict(t *testing.T) {
	repo := &stubReviewRepo{purchased: true, createErr: model.ErrAlreadyReviewed}
	svc := newTestService(repo)

	_, err := svc.CreateReview(context.Background(), uuid.New(), model.CreateReviewRequest{
		ProductID: 3, Rating: 4, Comment: "again",
	})

	assert.ErrorIs(t, err, model.ErrAlreadyReviewed)
}

func TestCreateReviewValidatesRating(t *testing.T) {
	svc := newTestService(&stubReviewRepo{purchased: true})

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.CreateReview(context.Background(), uuid.New(), model.CreateReviewRequest{
			ProductID: 1, Rating: rating,
		})
		assert.Error(t, err, "rating %d should be rejected", rating)
	}
}

func TestDeleteReviewOwnerOnly(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	repo := &stubReviewRepo{reviews: map[int]*model.Review{
		5: {ID: 5, ProductID: 2, UserID: owner},
	}}
	svc := newTestService(repo)

	err := svc.DeleteReview(context.Background(), 5, stranger, false)
	assert.ErrorIs(t, err, model.ErrNotReviewOwner)
	assert.False(t, repo.deleted)

	err = svc.DeleteReview(context.Background(), 5, owner, false)
	assert.NoError(t, err)
	assert.True(t, repo.deleted)
}

func TestDeleteReviewAdminOverride(t *testing.T) {
	repo := &stubReviewRepo{reviews: map[int]*model.Review{
		5: {ID: 5, ProductID: 2, UserID: uuid.New()},
	}}
	svc := newTestService(repo)

	err := svc.DeleteReview(context.Background(), 5, uuid.New(), true)
	assert.NoError(t, err)
	assert.True(t, repo.deleted)
}
