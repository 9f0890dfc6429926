package review

import (
	"context"
	"errors"
	"strings"

	"stockstores-be/internal/apperr"
	"stockstores-be/internal/keylock"
	"stockstores-be/internal/logger"
	"stockstores-be/internal/product"
	"stockstores-be/internal/rating"

	"go.uber.org/zap"
)

// ProductStore is the part of the product repository reviews depend on.
type ProductStore interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
	SetRatingSummary(ctx context.Context, id string, s rating.Summary) (*product.Product, error)
}

type Service interface {
	Create(ctx context.Context, input CreateReviewInput) (*CreateResult, error)
	Get(ctx context.Context, id string) (*Review, error)
	ListByProduct(ctx context.Context, productID string) ([]Review, error)
	Update(ctx context.Context, id string, input UpdateReviewInput) (*Review, error)
	Delete(ctx context.Context, id string) (*product.Product, error)
	SyncUserInfo(ctx context.Context, userID string, info UserInfo) (int64, error)
}

type service struct {
	repo     Repository
	products ProductStore
	locks    *keylock.Map
}

func NewService(repo Repository, products ProductStore) Service {
	return &service{repo: repo, products: products, locks: keylock.New()}
}

func validRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

func trimmedComment(c string) *string {
	c = strings.TrimSpace(c)
	if c == "" {
		return nil
	}
	return &c
}

func (s *service) Create(ctx context.Context, input CreateReviewInput) (*CreateResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateReview"),
		zap.String("product_id", input.ProductID),
		zap.String("user_id", input.UserID),
	)

	switch {
	case input.ProductID == "":
		return nil, ErrProductRequired
	case input.UserID == "":
		return nil, ErrUserRequired
	case !validRating(input.Rating):
		return nil, ErrInvalidRating
	}

	unlock := s.locks.Lock(input.ProductID)
	defer unlock()

	if _, err := s.products.GetByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, apperr.NotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	existing, err := s.repo.FindByProductAndUser(ctx, input.ProductID, input.UserID)
	if err != nil {
		log.Error("duplicate check failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateReview
	}

	rv := &Review{
		ProductID:      input.ProductID,
		UserID:         input.UserID,
		UserFirstName:  input.UserFirstName,
		UserLastName:   input.UserLastName,
		UserPictureURL: input.UserPictureURL,
		Rating:         input.Rating,
		Comment:        trimmedComment(input.Comment),
	}

	// The unique index on (productId, userId) still rejects a racing insert.
	if err := s.repo.Create(ctx, rv); err != nil {
		if !errors.Is(err, ErrDuplicateReview) {
			log.Error("failed to create review", zap.Error(err))
		}
		return nil, err
	}

	updated, err := s.recompute(ctx, input.ProductID)
	if err != nil {
		log.Error("failed to refresh rating summary", zap.Error(err))
		return nil, err
	}

	log.Info("review created",
		zap.String("review_id", rv.ID),
		zap.Int("reviews_amount", updated.ReviewsAmount),
		zap.Float64("average_rating", updated.AverageRating),
	)

	return &CreateResult{Review: rv, UpdatedProduct: updated}, nil
}

// recompute rewrites the product's aggregates from its live reviews. The
// caller must hold the product's lock.
func (s *service) recompute(ctx context.Context, productID string) (*product.Product, error) {
	ratings, err := s.repo.Ratings(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.products.SetRatingSummary(ctx, productID, rating.Compute(ratings))
}

func (s *service) Get(ctx context.Context, id string) (*Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *service) Update(ctx context.Context, id string, input UpdateReviewInput) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateReview"),
		zap.String("review_id", id),
	)

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var u ReviewUpdate
	if input.Rating != nil {
		if !validRating(*input.Rating) {
			return nil, ErrInvalidRating
		}
		if *input.Rating != current.Rating {
			u.Rating = input.Rating
		}
	}
	if input.Comment != nil {
		if c := trimmedComment(*input.Comment); c != nil {
			u.Comment = c
		} else {
			u.UnsetComment = true
		}
	}

	if u.IsEmpty() {
		return current, nil
	}

	if u.Rating == nil {
		return s.repo.Update(ctx, id, u)
	}

	unlock := s.locks.Lock(current.ProductID)
	defer unlock()

	updated, err := s.repo.Update(ctx, id, u)
	if err != nil {
		return nil, err
	}

	if _, err := s.recompute(ctx, current.ProductID); err != nil {
		// The review keeps its new rating; the next write on this product
		// recomputes from scratch.
		log.Error("failed to refresh rating summary", zap.Error(err))
		return nil, err
	}

	log.Info("review rating changed",
		zap.Int("from", current.Rating),
		zap.Int("to", updated.Rating),
	)
	return updated, nil
}

// Delete removes the review and returns its product with refreshed
// aggregates. The product is nil when it no longer exists.
func (s *service) Delete(ctx context.Context, id string) (*product.Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteReview"),
		zap.String("review_id", id),
	)

	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(rv.ProductID)
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.recompute(ctx, rv.ProductID)
	if errors.Is(err, apperr.NotFound) {
		log.Warn("reviewed product no longer exists", zap.String("product_id", rv.ProductID))
		return nil, nil
	}
	if err != nil {
		log.Error("failed to refresh rating summary", zap.Error(err))
		return nil, err
	}

	log.Info("review deleted", zap.String("product_id", rv.ProductID))
	return updated, nil
}

func (s *service) SyncUserInfo(ctx context.Context, userID string, info UserInfo) (int64, error) {
	if userID == "" {
		return 0, ErrUserRequired
	}
	if info.IsEmpty() {
		return 0, ErrNothingToSync
	}

	n, err := s.repo.UpdateUserInfo(ctx, userID, info)
	if err != nil {
		return 0, err
	}

	logger.FromCtx(ctx).Info("review author info synced",
		zap.String("user_id", userID),
		zap.Int64("reviews", n),
	)
	return n, nil
}
